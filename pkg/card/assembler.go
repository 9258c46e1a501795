// Package card joins canonical entry records with their per-language
// augmentation chunks into denormalized cards. Cards are built fresh per
// request and never persisted. Absent translation data degrades to empty
// fields; only unreadable dataset files are errors. Unknown ids come
// back as a card with the Error marker set, so callers check that field
// instead of relying on a failed call.
package card

import (
	"fmt"

	"github.com/bastiangx/jishoserve/pkg/dataset"
)

// Assembler materializes cards out of one dataset session.
type Assembler struct {
	session *dataset.Session
}

// New creates an assembler over an open session.
func New(session *dataset.Session) *Assembler {
	return &Assembler{session: session}
}

// UPlusID renders a character's canonical code-point identifier, the
// key the kanji table is indexed by.
func UPlusID(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
