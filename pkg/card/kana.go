package card

import "github.com/bastiangx/jishoserve/pkg/dataset"

const ErrKanaNotFound = "kana not found"

// KanaCard is the assembled view of one kana symbol.
type KanaCard struct {
	Symbol string `json:"symbol"`
	Romaji string `json:"romaji,omitempty"`
	Type   string `json:"type,omitempty"`
	Row    string `json:"row,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Kana looks a symbol up in the kana table. The table is small, a
// linear scan is fine.
func (a *Assembler) Kana(symbol string) (KanaCard, error) {
	entries, err := a.session.KanaEntries()
	if err != nil {
		return KanaCard{}, err
	}
	for _, e := range entries {
		if e.Symbol == symbol {
			return fromKanaEntry(e), nil
		}
	}
	return KanaCard{Symbol: symbol, Error: ErrKanaNotFound}, nil
}

func fromKanaEntry(e dataset.KanaEntry) KanaCard {
	return KanaCard{
		Symbol: e.Symbol,
		Romaji: e.Romaji,
		Type:   e.Type,
		Row:    e.Row,
	}
}
