package dataset

import (
	"encoding/json"
	"strconv"
)

// Manifest maps (domain, mode) to the ordered shard base names serving
// that pair. Each base is tagged by the script bucket it serves via its
// name suffix; the last listed base is the catch-all fallback.
type Manifest struct {
	Domains map[string]map[string][]string `json:"domains"`
}

// Bases returns the shard base names for a (domain, mode) pair, nil when
// the manifest does not cover it.
func (m *Manifest) Bases(domain, mode string) []string {
	if m == nil {
		return nil
	}
	modes, ok := m.Domains[domain]
	if !ok {
		return nil
	}
	return modes[mode]
}

// RankInfo is one rank table entry. Ids absent from the table default to
// score 0, not common.
type RankInfo struct {
	Score  int  `json:"score"`
	Common bool `json:"common"`
}

// RankTable maps decimal word ids to rank info. A nil table is valid and
// answers every lookup with the zero RankInfo.
type RankTable map[string]RankInfo

// Lookup returns the rank info for an id, zero-valued when absent.
func (t RankTable) Lookup(id int64) RankInfo {
	if t == nil {
		return RankInfo{}
	}
	return t[strconv.FormatInt(id, 10)]
}

type shardMapFile struct {
	Map map[string][]int64 `json:"map"`
}

type shardKeysFile struct {
	Keys []string `json:"keys"`
}

// WordForm is the written/reading pair of a dictionary or name entry.
type WordForm struct {
	Written string `json:"written,omitempty"`
	Reading string `json:"reading,omitempty"`
}

// WordSense is one sense of a canonical word entry. Gloss and ShortGloss
// are only populated in per-language augmentation records.
type WordSense struct {
	ID         int      `json:"id"`
	POS        []string `json:"pos,omitempty"`
	Xref       []string `json:"xref,omitempty"`
	Ant        []string `json:"ant,omitempty"`
	Gloss      []string `json:"gloss,omitempty"`
	ShortGloss string   `json:"short_gloss,omitempty"`
}

// WordEntry is a canonical dictionary record. Forms, Priority and
// Education are carried through to cards without interpretation.
type WordEntry struct {
	ID        int64           `json:"id"`
	Primary   WordForm        `json:"primary"`
	Forms     json.RawMessage `json:"forms,omitempty"`
	Priority  json.RawMessage `json:"priority,omitempty"`
	Education json.RawMessage `json:"education,omitempty"`
	Senses    []WordSense     `json:"senses,omitempty"`
	Kanji     []string        `json:"kanji,omitempty"`
}

// LangEntry is a per-language augmentation record for one word id,
// parallel to the canonical senses.
type LangEntry struct {
	ID     int64       `json:"id"`
	Senses []WordSense `json:"senses,omitempty"`
}

type entriesFile struct {
	Entries []WordEntry `json:"entries"`
}

type langEntriesFile struct {
	Entries []LangEntry `json:"entries"`
}

// NameEntry is a canonical proper-name record.
type NameEntry struct {
	ID      int64           `json:"id"`
	Primary WordForm        `json:"primary"`
	Forms   json.RawMessage `json:"forms,omitempty"`
	Types   []string        `json:"types,omitempty"`
}

// Translation is one flat gloss group attached to a name.
type Translation struct {
	Type  []string `json:"type,omitempty"`
	Gloss []string `json:"gloss,omitempty"`
}

// NameLangEntry is the per-language augmentation for one name id.
type NameLangEntry struct {
	ID           int64         `json:"id"`
	Translations []Translation `json:"translations,omitempty"`
}

// NameChunkRef locates one names chunk pair and the contiguous id range
// it covers.
type NameChunkRef struct {
	StartID    int64  `json:"start_id"`
	EndID      int64  `json:"end_id"`
	CoreFile   string `json:"core_file"`
	LangENFile string `json:"lang_en_file"`
}

// NamesMeta is the names chunk directory.
type NamesMeta struct {
	Chunks []NameChunkRef `json:"chunks"`
}

// KanjiEducation carries the school-ordering fields of a kanji entry.
type KanjiEducation struct {
	OrderOverall *int   `json:"order_overall,omitempty"`
	Section      string `json:"section,omitempty"`
	Grade        *int   `json:"grade,omitempty"`
}

// KanjiEntry is one kanji record, keyed in the table by its U+XXXX id.
type KanjiEntry struct {
	Literal    string              `json:"literal"`
	Strokes    *int                `json:"strokes,omitempty"`
	Radical    json.RawMessage     `json:"radical,omitempty"`
	Readings   map[string][]string `json:"readings,omitempty"`
	Education  *KanjiEducation     `json:"education,omitempty"`
	Misc       json.RawMessage     `json:"misc,omitempty"`
	Components []string            `json:"components,omitempty"`
}

// KanjiTable is the single direct-lookup kanji table.
type KanjiTable struct {
	Entries map[string]KanjiEntry `json:"entries"`
}

type kanjiMeaningsFile struct {
	MeaningsByKanji map[string][]string `json:"meanings_by_kanji"`
}

// KanaEntry is one kana symbol record.
type KanaEntry struct {
	Symbol string `json:"symbol"`
	Romaji string `json:"romaji,omitempty"`
	Type   string `json:"type,omitempty"`
	Row    string `json:"row,omitempty"`
}

type kanaFile struct {
	Entries []KanaEntry `json:"entries"`
}

// CategoriesManifest fixes the display order of topical categories.
type CategoriesManifest struct {
	Categories []string `json:"categories"`
}

// CategoryMeta is the per-language title/description of a category.
type CategoryMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type categoryLangFile struct {
	Categories map[string]CategoryMeta `json:"categories"`
}

type wordToCategoryFile struct {
	Mapping map[string]string `json:"mapping"`
}

type commonIDsFile struct {
	IDs []int64 `json:"ids"`
}

// LookupIndex is an exact-match key to id-list map used by the lookup
// (as opposed to prefix search) path.
type LookupIndex map[string][]int64

type lookupFile struct {
	Map map[string][]int64 `json:"map"`
}

type itMetaFile struct {
	Files []string `json:"files"`
}
