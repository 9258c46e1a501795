package card

import (
	"encoding/json"
	"sort"

	"github.com/bastiangx/jishoserve/pkg/dataset"
	"github.com/bastiangx/jishoserve/pkg/jptext"
)

// Errors carried inside cards when an id cannot be resolved. These are
// data-absence markers, not call failures.
const (
	ErrWordOutOfRange = "word id out of range"
	ErrWordNotInChunk = "word not found in chunk"
)

// Sense is one assembled sense: the canonical fields plus the merged
// per-language glosses. Gloss lists are always present, possibly empty.
type Sense struct {
	ID           int      `json:"id"`
	POS          []string `json:"pos"`
	Xref         []string `json:"xref"`
	Ant          []string `json:"ant"`
	GlossEN      []string `json:"gloss_en"`
	GlossIT      []string `json:"gloss_it"`
	ShortGlossIT string   `json:"short_gloss_it,omitempty"`
}

// WordCard is the assembled view of one dictionary word.
type WordCard struct {
	ID        int64            `json:"id"`
	Primary   dataset.WordForm `json:"primary"`
	Forms     json.RawMessage  `json:"forms,omitempty"`
	Priority  json.RawMessage  `json:"priority,omitempty"`
	Education json.RawMessage  `json:"education,omitempty"`
	Senses    []Sense          `json:"senses"`
	Kanji     []string         `json:"kanji,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Word assembles the card for one word id. The preferred gloss language
// controls whether the Italian augmentation is joined in; English is
// always attempted. Ids no chunk covers yield a marker card.
func (a *Assembler) Word(id int64, lang string) (WordCard, error) {
	ranges, err := a.session.WordChunks()
	if err != nil {
		return WordCard{}, err
	}
	rng, ok := dataset.FindRange(ranges, id)
	if !ok {
		return WordCard{ID: id, Error: ErrWordOutOfRange}, nil
	}

	core, err := a.session.WordChunk(rng.Path)
	if err != nil {
		return WordCard{}, err
	}
	entry, ok := core[id]
	if !ok {
		return WordCard{ID: id, Error: ErrWordNotInChunk}, nil
	}

	en, err := a.session.WordLangChunk("en", rng.Start, rng.End)
	if err != nil {
		return WordCard{}, err
	}
	var it map[int64]dataset.LangEntry
	if lang == "it" {
		if it, err = a.session.WordLangChunk("it", rng.Start, rng.End); err != nil {
			return WordCard{}, err
		}
	}

	enSenses := sensesByID(en[id])
	itSenses := sensesByID(it[id])

	senses := make([]Sense, 0, len(entry.Senses))
	for _, s := range entry.Senses {
		merged := Sense{
			ID:      s.ID,
			POS:     emptyIfNil(s.POS),
			Xref:    emptyIfNil(s.Xref),
			Ant:     emptyIfNil(s.Ant),
			GlossEN: emptyIfNil(enSenses[s.ID].Gloss),
			GlossIT: emptyIfNil(itSenses[s.ID].Gloss),
		}
		if itSense, ok := itSenses[s.ID]; ok {
			merged.ShortGlossIT = itSense.ShortGloss
		}
		senses = append(senses, merged)
	}

	return WordCard{
		ID:        id,
		Primary:   entry.Primary,
		Forms:     entry.Forms,
		Priority:  entry.Priority,
		Education: entry.Education,
		Senses:    senses,
		Kanji:     entry.Kanji,
	}, nil
}

func sensesByID(e dataset.LangEntry) map[int]dataset.WordSense {
	out := make(map[int]dataset.WordSense, len(e.Senses))
	for _, s := range e.Senses {
		out[s.ID] = s
	}
	return out
}

// LookupWord resolves a query through the exact-match lookup indices
// and assembles a card per matching id, ascending by id. Missing lookup
// files are a soft miss, never an error.
func (a *Assembler) LookupWord(query string, limit int, lang string) ([]WordCard, error) {
	idSet := make(map[int64]struct{})
	for _, q := range jptext.LookupVariants(query) {
		bucket := jptext.Classify(q)
		for _, mode := range []string{"surface", "reading"} {
			idx, err := a.session.LookupIndex(mode, string(bucket))
			if err != nil {
				return nil, err
			}
			for _, id := range idx[q] {
				idSet[id] = struct{}{}
			}
		}
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	cards := make([]WordCard, 0, len(ids))
	for _, id := range ids {
		c, err := a.Word(id, lang)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
