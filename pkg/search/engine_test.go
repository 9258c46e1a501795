package search

import (
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

func writeShard(t *testing.T, root, base string, keys []string, idMap map[string][]int64) {
	t.Helper()
	writeJSON(t, root, "data/search/search/"+base+"_keys.json", map[string]any{"keys": keys})
	writeJSON(t, root, "data/search/search/"+base+".json", map[string]any{"map": idMap})
}

// fixtureEngine builds an engine over a small two-domain index:
// words carry rank data, names do not.
func fixtureEngine(t *testing.T) *Engine {
	t.Helper()
	root := t.TempDir()

	writeJSON(t, root, "data/search/search/manifest.json", map[string]any{
		"domains": map[string]any{
			"words": map[string]any{
				"surface": []string{"words_surface_hiragana"},
				"reading": []string{"words_reading_hiragana"},
			},
			"names": map[string]any{
				"surface": []string{"names_surface_hiragana"},
				"reading": []string{"names_reading_hiragana"},
			},
		},
	})

	writeShard(t, root, "words_surface_hiragana",
		[]string{"あか", "あかい", "かあ", "かい", "かう", "かえ", "かお", "たくし", "たくしー"},
		map[string][]int64{
			"あか":   {11},
			"あかい":  {12},
			"かあ":   {21},
			"かい":   {22},
			"かう":   {23},
			"かえ":   {24},
			"かお":   {25},
			"たくし":  {1},
			"たくしー": {5},
		})
	writeShard(t, root, "words_reading_hiragana",
		[]string{"たくしー"},
		map[string][]int64{"たくしー": {5}})
	writeShard(t, root, "names_surface_hiragana",
		[]string{"たくしー", "たなか"},
		map[string][]int64{"たくしー": {5}, "たなか": {1500}})
	writeShard(t, root, "names_reading_hiragana",
		[]string{"たなか"},
		map[string][]int64{"たなか": {1500}})

	// The rank table is the flat id -> info map the dataset ships.
	writeJSON(t, root, "data/seed/index/word_rank.json", map[string]any{
		"5":  map[string]any{"score": 10, "common": true},
		"11": map[string]any{"score": 10, "common": true},
		"12": map[string]any{"score": 50, "common": false},
	})

	session, err := dataset.Open(root, dataset.CacheConfig{})
	require.NoError(t, err)
	return New(session)
}

func hitIDs(hits []Hit) []int64 {
	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	return ids
}

func TestSearchPrefix(t *testing.T) {
	e := fixtureEngine(t)
	hits, err := e.Search(DomainWords, ModeSurface, "たくし", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// The exact match outranks the longer key despite its rank score.
	assert.Equal(t, int64(1), hits[0].ID)
	assert.True(t, hits[0].Exact)
	assert.Equal(t, "たくし", hits[0].MatchedKey)
	assert.Equal(t, int64(5), hits[1].ID)
	assert.False(t, hits[1].Exact)
}

func TestSearchKanaFolding(t *testing.T) {
	e := fixtureEngine(t)
	hits, err := e.Search(DomainWords, ModeSurface, "タクシー", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(5), hits[0].ID)
	assert.True(t, hits[0].Exact, "folded variant matches the hiragana key exactly")
	assert.Equal(t, "たくしー", hits[0].MatchedKey)
	assert.Equal(t, 4, hits[0].KeyLen)
}

func TestSearchCommonFirst(t *testing.T) {
	e := fixtureEngine(t)

	opts := DefaultOptions()
	opts.CommonFirst = true
	hits, err := e.Search(DomainWords, ModeSurface, "あ", opts)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, []int64{11, 12}, hitIDs(hits), "common entry wins over higher score")
	assert.True(t, hits[0].Common)

	opts.CommonFirst = false
	hits, err = e.Search(DomainWords, ModeSurface, "あ", opts)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, []int64{12, 11}, hitIDs(hits), "score decides when commonness is ignored")
	assert.False(t, hits[1].Common, "common flag is only reported when it ranked")
}

func TestSearchMaxKeysCap(t *testing.T) {
	e := fixtureEngine(t)
	opts := DefaultOptions()
	opts.MaxKeys = 2
	hits, err := e.Search(DomainWords, ModeSurface, "か", opts)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{21, 22}, hitIDs(hits), "scan stops after the first keys in code-point order")
}

func TestSearchLimit(t *testing.T) {
	e := fixtureEngine(t)
	opts := DefaultOptions()
	opts.Limit = 3
	hits, err := e.Search(DomainWords, ModeSurface, "か", opts)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestSearchEmptyQuery(t *testing.T) {
	e := fixtureEngine(t)
	hits, err := e.Search(DomainWords, ModeSurface, "", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchUnknownPair(t *testing.T) {
	e := fixtureEngine(t)
	_, err := e.Search("kanji", ModeSurface, "あ", DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shards configured")
}

func TestMergeSearchSurfaceWinsTies(t *testing.T) {
	e := fixtureEngine(t)
	hits, err := e.MergeSearch(DomainWords, ModeAuto, "たくしー", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hits, 1, "the same word id from both modes collapses to one hit")
	assert.Equal(t, int64(5), hits[0].ID)
	assert.Equal(t, ModeSurface, hits[0].Mode)
}

func TestMergeSearchDomainsStayDistinct(t *testing.T) {
	e := fixtureEngine(t)
	hits, err := e.MergeSearch(DomainAll, ModeSurface, "たくしー", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, DomainWords, hits[0].Domain, "ranked words hit sorts above the unranked name")
	assert.Equal(t, DomainNames, hits[1].Domain)
	assert.Equal(t, hits[0].ID, hits[1].ID)
}

func TestMergeSearchSelectors(t *testing.T) {
	e := fixtureEngine(t)

	_, err := e.MergeSearch("verbs", ModeAuto, "あ", DefaultOptions())
	assert.Error(t, err)

	_, err = e.MergeSearch(DomainAll, "fuzzy", "あ", DefaultOptions())
	assert.Error(t, err)
}

func TestMergeSearchLimit(t *testing.T) {
	e := fixtureEngine(t)
	opts := DefaultOptions()
	opts.Limit = 1
	hits, err := e.MergeSearch(DomainAll, ModeSurface, "たくしー", opts)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}
