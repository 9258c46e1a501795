package card

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/jishoserve/pkg/dataset"
)

func writeJSON(t *testing.T, root, rel string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func writeGz(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
}

func fixtureAssembler(t *testing.T) *Assembler {
	t.Helper()
	root := t.TempDir()

	writeJSON(t, root, "data/seed/core/words_1_100.json", map[string]any{
		"entries": []map[string]any{
			{
				"id":      5,
				"primary": map[string]string{"written": "タクシー", "reading": "たくしー"},
				"kanji":   []string{},
				"senses": []map[string]any{
					{"id": 1, "pos": []string{"n"}},
					{"id": 2, "pos": []string{"n"}},
				},
			},
		},
	})
	writeJSON(t, root, "data/seed/lang/en_words_1_100.json", map[string]any{
		"entries": []map[string]any{
			{"id": 5, "senses": []map[string]any{{"id": 1, "gloss": []string{"taxi", "cab"}}}},
		},
	})
	writeJSON(t, root, "data/lang/it_common/meta.json", map[string]any{
		"files": []string{"it_words_1_100.json"},
	})
	writeJSON(t, root, "data/lang/it_common/it_words_1_100.json", map[string]any{
		"entries": []map[string]any{
			{"id": 5, "senses": []map[string]any{{"id": 1, "gloss": []string{"tassì"}, "short_gloss": "tassì"}}},
		},
	})

	writeJSON(t, root, "data/lookup/index/lookup_reading_hiragana.json", map[string]any{
		"map": map[string][]int64{"たくしー": {5}},
	})
	writeJSON(t, root, "data/lookup/index/lookup_surface_katakana.json", map[string]any{
		"map": map[string][]int64{"タクシー": {5}},
	})

	writeJSON(t, root, "data/names/meta.json", map[string]any{
		"chunks": []map[string]any{
			{"start_id": 1000, "end_id": 1999, "core_file": "names_1000_1999.jsonl.gz", "lang_en_file": "en_names_1000_1999.jsonl.gz"},
		},
	})
	writeGz(t, root, "data/names/names_1000_1999.jsonl.gz",
		[]byte(`{"id": 1500, "primary": {"written": "田中", "reading": "たなか"}, "types": ["surname"]}`+"\n"))
	writeGz(t, root, "data/names/en_names_1000_1999.jsonl.gz",
		[]byte(`{"id": 1500, "translations": [{"type": ["surname"], "gloss": ["Tanaka"]}]}`+"\n"))

	writeJSON(t, root, "data/seed/core/kanji.json", map[string]any{
		"entries": map[string]any{
			"U+72F8": map[string]any{
				"literal":   "狸",
				"strokes":   10,
				"readings":  map[string][]string{"kun": {"たぬき"}},
				"education": map[string]any{"order_overall": 2, "section": "jhs"},
			},
			"U+4E00": map[string]any{
				"literal":   "一",
				"strokes":   1,
				"education": map[string]any{"order_overall": 1, "section": "es", "grade": 1},
			},
			"U+9FFF": map[string]any{
				"literal": "鿿",
			},
		},
	})
	writeJSON(t, root, "data/seed/lang/en_kanji_meanings.json", map[string]any{
		"meanings_by_kanji": map[string][]string{"U+72F8": {"raccoon dog"}},
	})
	writeJSON(t, root, "data/seed/core/kana.json", map[string]any{
		"entries": []map[string]any{
			{"symbol": "た", "romaji": "ta", "type": "hiragana", "row": "ta"},
		},
	})

	writeJSON(t, root, "data/categories/manifest.json", map[string]any{
		"categories": []string{"food", "misc"},
	})
	writeJSON(t, root, "data/categories/lang/en.json", map[string]any{
		"categories": map[string]any{
			"food": map[string]string{"title": "Food", "description": "Things to eat"},
		},
	})
	writeJSON(t, root, "data/categories/word_to_category.json", map[string]any{
		"mapping": map[string]string{"5": "food"},
	})
	writeJSON(t, root, "data/search/search/common_word_ids.json", map[string]any{
		"ids": []int64{5, 42},
	})

	session, err := dataset.Open(root, dataset.CacheConfig{})
	require.NoError(t, err)
	return New(session)
}

func TestWordSenseMerge(t *testing.T) {
	a := fixtureAssembler(t)
	c, err := a.Word(5, "it")
	require.NoError(t, err)
	require.Empty(t, c.Error)
	assert.Equal(t, "タクシー", c.Primary.Written)
	require.Len(t, c.Senses, 2)

	assert.Equal(t, []string{"taxi", "cab"}, c.Senses[0].GlossEN)
	assert.Equal(t, []string{"tassì"}, c.Senses[0].GlossIT)
	assert.Equal(t, "tassì", c.Senses[0].ShortGlossIT)

	// The second canonical sense has no augmentation in either language.
	assert.Equal(t, []string{}, c.Senses[1].GlossEN)
	assert.Equal(t, []string{}, c.Senses[1].GlossIT)
	assert.Empty(t, c.Senses[1].ShortGlossIT)
}

func TestWordEnglishOnly(t *testing.T) {
	a := fixtureAssembler(t)
	c, err := a.Word(5, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"taxi", "cab"}, c.Senses[0].GlossEN)
	assert.Equal(t, []string{}, c.Senses[0].GlossIT, "italian is skipped unless requested")
}

func TestWordMarkers(t *testing.T) {
	a := fixtureAssembler(t)

	c, err := a.Word(999999999, "en")
	require.NoError(t, err, "unknown ids are markers, not failures")
	assert.Equal(t, ErrWordOutOfRange, c.Error)
	assert.Equal(t, int64(999999999), c.ID)

	c, err = a.Word(50, "en")
	require.NoError(t, err)
	assert.Equal(t, ErrWordNotInChunk, c.Error)
}

func TestLookupWord(t *testing.T) {
	a := fixtureAssembler(t)

	// The katakana query fans out to both its raw and kana-folded forms,
	// so the surface and reading indices both contribute the same id.
	cards, err := a.LookupWord("タクシー", 10, "en")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, int64(5), cards[0].ID)

	cards, err = a.LookupWord("ありえない", 10, "en")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestName(t *testing.T) {
	a := fixtureAssembler(t)
	c, err := a.Name(1500)
	require.NoError(t, err)
	require.Empty(t, c.Error)
	assert.Equal(t, "田中", c.Primary.Written)
	assert.Equal(t, []string{"surname"}, c.Types)
	require.Len(t, c.TranslationsEN, 1)
	assert.Equal(t, []string{"Tanaka"}, c.TranslationsEN[0].Gloss)
}

func TestNameMarkers(t *testing.T) {
	a := fixtureAssembler(t)

	c, err := a.Name(5)
	require.NoError(t, err)
	assert.Equal(t, ErrNameOutOfRange, c.Error)

	c, err = a.Name(1600)
	require.NoError(t, err)
	assert.Equal(t, ErrNameNotInChunk, c.Error)
}

func TestKanji(t *testing.T) {
	a := fixtureAssembler(t)
	c, err := a.Kanji('狸')
	require.NoError(t, err)
	require.Empty(t, c.Error)
	assert.Equal(t, "U+72F8", c.ID)
	assert.Equal(t, "狸", c.Literal)
	assert.Equal(t, []string{"raccoon dog"}, c.MeaningsEN)
	assert.Equal(t, []string{"たぬき"}, c.Readings["kun"])
}

func TestKanjiNotFound(t *testing.T) {
	a := fixtureAssembler(t)
	c, err := a.Kanji('あ')
	require.NoError(t, err)
	assert.Equal(t, ErrKanjiNotFound, c.Error)
	assert.Equal(t, "U+3042", c.ID)
	assert.Equal(t, "あ", c.Literal)
}

func TestKanjiByOrder(t *testing.T) {
	a := fixtureAssembler(t)

	all, err := a.KanjiByOrder(1, 10)
	require.NoError(t, err)
	require.Len(t, all, 2, "kanji without an order are excluded")
	assert.Equal(t, "一", all[0].Literal)
	assert.Equal(t, "狸", all[1].Literal)

	page, err := a.KanjiByOrder(2, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 2, page[0].OrderOverall)

	none, err := a.KanjiByOrder(1, 0)
	require.NoError(t, err)
	assert.Empty(t, none, "a zero limit selects an empty window")

	past, err := a.KanjiByOrder(10, 5)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestKana(t *testing.T) {
	a := fixtureAssembler(t)

	c, err := a.Kana("た")
	require.NoError(t, err)
	require.Empty(t, c.Error)
	assert.Equal(t, "ta", c.Romaji)

	c, err = a.Kana("ぱ")
	require.NoError(t, err)
	assert.Equal(t, ErrKanaNotFound, c.Error)
}

func TestCategoryList(t *testing.T) {
	a := fixtureAssembler(t)
	cats, err := a.CategoryList("en")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Food", cats[0].Title)
	assert.Equal(t, "Things to eat", cats[0].Description)
	assert.Equal(t, "misc", cats[1].Title, "untitled categories fall back to their id")
}

func TestCategoryShow(t *testing.T) {
	a := fixtureAssembler(t)

	food, err := a.CategoryShow("food", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, food.Count)
	assert.Equal(t, []int64{5}, food.WordIDs)

	misc, err := a.CategoryShow("misc", 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, misc.WordIDs, "unmapped common ids land in misc")

	unknown, err := a.CategoryShow("verbs", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, unknown.Count)
	assert.Equal(t, []int64{}, unknown.WordIDs)
}
