package dataset

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func writeJSON(t *testing.T, root, rel string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	writeFile(t, root, rel, data)
}

func writeGzJSON(t *testing.T, root, rel string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	writeGz(t, root, rel, data)
}

func writeGz(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestStorageReadsPlainJSON(t *testing.T) {
	root := t.TempDir()
	writeJSON(t, root, "data/thing.json", map[string]int{"n": 7})

	store := NewDirStorage(root)
	var got map[string]int
	require.NoError(t, store.ReadJSON("data/thing.json", &got))
	assert.Equal(t, 7, got["n"])
}

func TestStorageResolvesGzVariant(t *testing.T) {
	root := t.TempDir()
	writeGzJSON(t, root, "data/thing.json.gz", map[string]int{"n": 9})

	store := NewDirStorage(root)

	// Callers address the logical name; the compressed encoding is
	// found transparently.
	var got map[string]int
	require.NoError(t, store.ReadJSON("data/thing.json", &got))
	assert.Equal(t, 9, got["n"])

	assert.True(t, store.Exists("data/thing.json"))
	assert.True(t, store.Exists("data/thing.json.gz"))
}

func TestStorageResolvesPlainWhenGzRequested(t *testing.T) {
	root := t.TempDir()
	writeJSON(t, root, "data/thing.json", map[string]int{"n": 3})

	store := NewDirStorage(root)
	var got map[string]int
	require.NoError(t, store.ReadJSON("data/thing.json.gz", &got))
	assert.Equal(t, 3, got["n"])
}

func TestStorageMissingResource(t *testing.T) {
	store := NewDirStorage(t.TempDir())
	var v any
	err := store.ReadJSON("nope.json", &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, store.Exists("nope.json"))
}

func TestStorageMalformedJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad.json", []byte("{not json"))

	store := NewDirStorage(root)
	var v any
	assert.Error(t, store.ReadJSON("bad.json", &v))
}

func TestStorageReadJSONLines(t *testing.T) {
	root := t.TempDir()
	writeGz(t, root, "data/chunk.jsonl.gz", []byte("{\"id\": 1}\n\n{\"id\": 2}\n"))

	store := NewDirStorage(root)
	var ids []int64
	err := store.ReadJSONLines("data/chunk.jsonl.gz", func(raw []byte) error {
		var e struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		ids = append(ids, e.ID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestStorageList(t *testing.T) {
	root := t.TempDir()
	writeJSON(t, root, "data/seed/core/words_1_10.json", map[string]any{})
	writeJSON(t, root, "data/seed/core/kanji.json", map[string]any{})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data/seed/core/sub"), 0o755))

	store := NewDirStorage(root)
	names, err := store.List("data/seed/core")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"words_1_10.json", "kanji.json"}, names)
}
