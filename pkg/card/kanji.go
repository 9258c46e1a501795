package card

import (
	"encoding/json"
	"sort"

	"github.com/bastiangx/jishoserve/pkg/dataset"
)

const ErrKanjiNotFound = "kanji not found"

// KanjiCard is the assembled view of one kanji, keyed by its U+XXXX
// code-point identifier.
type KanjiCard struct {
	ID         string                  `json:"id"`
	Literal    string                  `json:"literal"`
	Strokes    *int                    `json:"strokes,omitempty"`
	Radical    json.RawMessage         `json:"radical,omitempty"`
	Readings   map[string][]string     `json:"readings"`
	Education  *dataset.KanjiEducation `json:"education,omitempty"`
	Misc       json.RawMessage         `json:"misc,omitempty"`
	Components []string                `json:"components"`
	MeaningsEN []string                `json:"meanings_en"`
	Error      string                  `json:"error,omitempty"`
}

// Kanji assembles the card for one character via direct table lookup,
// joined with the English meanings table.
func (a *Assembler) Kanji(r rune) (KanjiCard, error) {
	id := UPlusID(r)
	table, err := a.session.KanjiTable()
	if err != nil {
		return KanjiCard{}, err
	}
	entry, ok := table.Entries[id]
	if !ok {
		return KanjiCard{ID: id, Literal: string(r), Error: ErrKanjiNotFound}, nil
	}

	meanings, err := a.session.KanjiMeanings("en")
	if err != nil {
		return KanjiCard{}, err
	}

	readings := entry.Readings
	if readings == nil {
		readings = map[string][]string{}
	}
	return KanjiCard{
		ID:         id,
		Literal:    entry.Literal,
		Strokes:    entry.Strokes,
		Radical:    entry.Radical,
		Readings:   readings,
		Education:  entry.Education,
		Misc:       entry.Misc,
		Components: emptyIfNil(entry.Components),
		MeaningsEN: emptyIfNil(meanings[id]),
	}, nil
}

// KanjiListItem is one row of the school-order listing.
type KanjiListItem struct {
	OrderOverall int    `json:"order_overall"`
	Literal      string `json:"literal"`
	Section      string `json:"section,omitempty"`
	Grade        *int   `json:"grade,omitempty"`
}

// KanjiByOrder lists kanji ascending by their overall school order,
// starting at the 1-based start position and returning at most limit
// rows; a non-positive limit returns none. Entries without an order
// are excluded.
func (a *Assembler) KanjiByOrder(start, limit int) ([]KanjiListItem, error) {
	table, err := a.session.KanjiTable()
	if err != nil {
		return nil, err
	}

	var ordered []dataset.KanjiEntry
	for _, e := range table.Entries {
		if e.Education != nil && e.Education.OrderOverall != nil {
			ordered = append(ordered, e)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return *ordered[i].Education.OrderOverall < *ordered[j].Education.OrderOverall
	})

	if start < 1 {
		start = 1
	}
	lo := start - 1
	if lo > len(ordered) {
		lo = len(ordered)
	}
	// Slice semantics: limit bounds the window, so limit <= 0 is empty.
	hi := lo + limit
	if hi > len(ordered) {
		hi = len(ordered)
	}
	if hi < lo {
		hi = lo
	}

	out := make([]KanjiListItem, 0, hi-lo)
	for _, e := range ordered[lo:hi] {
		out = append(out, KanjiListItem{
			OrderOverall: *e.Education.OrderOverall,
			Literal:      e.Literal,
			Section:      e.Education.Section,
			Grade:        e.Education.Grade,
		})
	}
	return out, nil
}
