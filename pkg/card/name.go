package card

import (
	"encoding/json"

	"github.com/bastiangx/jishoserve/pkg/dataset"
)

const (
	ErrNameOutOfRange = "name id out of range"
	ErrNameNotInChunk = "name not found in chunk"
)

// NameCard is the assembled view of one proper-name entry. Names carry
// flat translation lists instead of sense-merged glosses.
type NameCard struct {
	ID             int64                 `json:"id"`
	Primary        dataset.WordForm      `json:"primary"`
	Forms          json.RawMessage       `json:"forms,omitempty"`
	Types          []string              `json:"types"`
	TranslationsEN []dataset.Translation `json:"translations_en"`
	Error          string                `json:"error,omitempty"`
}

// Name assembles the card for one name id from the chunk covering it
// plus the matching English augmentation chunk.
func (a *Assembler) Name(id int64) (NameCard, error) {
	meta, err := a.session.NamesMeta()
	if err != nil {
		return NameCard{}, err
	}

	var ref *dataset.NameChunkRef
	for i := range meta.Chunks {
		if meta.Chunks[i].StartID <= id && id <= meta.Chunks[i].EndID {
			ref = &meta.Chunks[i]
			break
		}
	}
	if ref == nil {
		return NameCard{ID: id, Error: ErrNameOutOfRange}, nil
	}

	core, err := a.session.NameChunk(ref.CoreFile)
	if err != nil {
		return NameCard{}, err
	}
	entry, ok := core[id]
	if !ok {
		return NameCard{ID: id, Error: ErrNameNotInChunk}, nil
	}

	en, err := a.session.NameLangChunk(ref.LangENFile)
	if err != nil {
		return NameCard{}, err
	}

	translations := en[id].Translations
	if translations == nil {
		translations = []dataset.Translation{}
	}
	return NameCard{
		ID:             id,
		Primary:        entry.Primary,
		Forms:          entry.Forms,
		Types:          emptyIfNil(entry.Types),
		TranslationsEN: translations,
	}, nil
}
