// Package jptext canonicalizes raw query strings into the forms the search
// indices are keyed by: NFKC + case folding, ASCII to fullwidth bridging, and
// katakana to hiragana folding. All functions are pure and total over
// arbitrary Unicode input.
package jptext

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	kanjiRE    = regexp.MustCompile(`[\x{3400}-\x{4dbf}\x{4e00}-\x{9fff}\x{f900}-\x{faff}]`)
	hiraganaRE = regexp.MustCompile(`^[\x{3040}-\x{309f}\x{30fc}\x{309d}\x{309e}]+$`)
	katakanaRE = regexp.MustCompile(`^[\x{30a0}-\x{30ff}\x{31f0}-\x{31ff}]+$`)
	latinishRE = regexp.MustCompile(`^[A-Za-z0-9 \-_"'./:+&()Ａ-Ｚａ-ｚ０-９　－＿]+$`)
)

// FullwidthMixed converts printable ASCII to its fullwidth counterpart
// in place, leaving every other rune unchanged. Space maps to the
// ideographic space U+3000, 0x21..0x7E shift by +0xFEE0.
func FullwidthMixed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteRune('　')
		case r >= 0x21 && r <= 0x7e:
			b.WriteRune(r + 0xfee0)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// KanaFold remaps katakana letters U+30A1..U+30F6 to hiragana by
// subtracting 0x60. Everything else passes through, so folding is
// idempotent.
func KanaFold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x30a1 && r <= 0x30f6 {
			b.WriteRune(r - 0x60)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeBase applies the shared baseline normalization: NFKC, case
// folding, and an ASCII to fullwidth shift when the folded result is
// purely latin-ish. The shift bridges half-width Latin queries to
// fullwidth-indexed keys; it is not romaji search.
func NormalizeBase(q string) string {
	q2 := cases.Fold().String(norm.NFKC.String(q))
	if latinishRE.MatchString(q2) {
		q2 = FullwidthMixed(q2)
	}
	return q2
}

// SearchVariants generates the normalized query candidates used for
// prefix search, deduplicated with order preserved. The first variant
// is the primary one. Both the case-folded and raw NFKC forms are
// expanded, each through the baseline pipeline and through an
// unconditional fullwidth-mixed pipeline, all kana-folded, so mixed
// Japanese and ASCII queries get a second normalization attempt.
func SearchVariants(q string) []string {
	nfkc := norm.NFKC.String(q)
	folded := cases.Fold().String(nfkc)

	seen := make(map[string]struct{}, 4)
	out := make([]string, 0, 4)
	for _, base := range []string{folded, nfkc} {
		for _, c := range []string{
			KanaFold(NormalizeBase(base)),
			KanaFold(FullwidthMixed(base)),
		} {
			if c == "" {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// LookupVariants generates the candidates for exact lookup, where
// multiple interpretations are too risky: the baseline form, plus the
// kana-folded form only when folding actually changed something.
func LookupVariants(q string) []string {
	q0 := NormalizeBase(q)
	q1 := KanaFold(q0)
	if q1 != q0 {
		return []string{q0, q1}
	}
	return []string{q0}
}
