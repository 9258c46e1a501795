// Package dataset loads and caches the read-only dictionary dataset:
// search shards, rank tables, chunked entry files and their per-language
// augmentations. All mutable state lives in bounded per-loader caches
// owned by a Session, so independent sessions never share anything.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Dataset tree layout. Callers address logical paths; compressed
// variants are resolved by the Storage layer.
const (
	searchDir     = "data/search/search"
	manifestPath  = searchDir + "/manifest.json"
	commonIDsPath = searchDir + "/common_word_ids.json"
	rankPath      = "data/seed/index/word_rank.json"
	coreDir       = "data/seed/core"
	langDir       = "data/seed/lang"
	kanjiPath     = coreDir + "/kanji.json"
	kanaPath      = coreDir + "/kana.json"
	namesDir      = "data/names"
	namesMetaPath = namesDir + "/meta.json"
	categoriesDir = "data/categories"
	lookupDir     = "data/lookup/index"
	itCommonDir   = "data/lang/it_common"
)

// commonTopN bounds the common-word id list used by the category index.
const commonTopN = 2000

// CacheConfig sets the per-loader LRU capacities. Shard caches hold the
// large key/id maps and are evicted more eagerly than the small
// manifest-like resources, which are memoized for the session lifetime.
type CacheConfig struct {
	Shards        int
	WordChunks    int
	LangChunks    int
	NameChunks    int
	Lookups       int
	KanjiMeanings int
	CategoryLangs int
}

// DefaultCacheConfig mirrors the capacities the dataset was tuned for.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Shards:        32,
		WordChunks:    4,
		LangChunks:    4,
		NameChunks:    6,
		Lookups:       8,
		KanjiMeanings: 2,
		CategoryLangs: 4,
	}
}

func (c CacheConfig) normalized() CacheConfig {
	def := DefaultCacheConfig()
	pick := func(v, d int) int {
		if v <= 0 {
			return d
		}
		return v
	}
	return CacheConfig{
		Shards:        pick(c.Shards, def.Shards),
		WordChunks:    pick(c.WordChunks, def.WordChunks),
		LangChunks:    pick(c.LangChunks, def.LangChunks),
		NameChunks:    pick(c.NameChunks, def.NameChunks),
		Lookups:       pick(c.Lookups, def.Lookups),
		KanjiMeanings: pick(c.KanjiMeanings, def.KanjiMeanings),
		CategoryLangs: pick(c.CategoryLangs, def.CategoryLangs),
	}
}

// memo is a fill-once cache slot for resources loaded at most once per
// session. Errors stick: a corrupt file stays corrupt for the lifetime
// of the snapshot.
type memo[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (m *memo[T]) get(fill func() (T, error)) (T, error) {
	m.once.Do(func() { m.v, m.err = fill() })
	return m.v, m.err
}

// Session is one opened dataset snapshot. It owns every cache, holds no
// other mutable state, and never writes to the tree. The LRU caches are
// safe for concurrent readers.
type Session struct {
	store Storage

	shards        *lru.Cache[string, *Shard]
	wordChunks    *lru.Cache[string, map[int64]WordEntry]
	langChunks    *lru.Cache[string, map[int64]LangEntry]
	nameChunks    *lru.Cache[string, map[int64]NameEntry]
	nameLangs     *lru.Cache[string, map[int64]NameLangEntry]
	lookups       *lru.Cache[string, LookupIndex]
	kanjiMeanings *lru.Cache[string, map[string][]string]
	catLangs      *lru.Cache[string, map[string]CategoryMeta]

	manifest    memo[*Manifest]
	rank        memo[RankTable]
	wordRanges  memo[[]ChunkRange]
	itRanges    memo[[]ChunkRange]
	kanji       memo[*KanjiTable]
	kana        memo[[]KanaEntry]
	namesMeta   memo[*NamesMeta]
	catManifest memo[*CategoriesManifest]
	wordToCat   memo[map[string]string]
	commonIDs   memo[[]int64]
	catIndex    memo[map[string][]int64]
}

// Open creates a session over the dataset rooted at the given directory.
func Open(root string, cfg CacheConfig) (*Session, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dataset root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root %s is not a directory", root)
	}
	return NewSession(NewDirStorage(root), cfg), nil
}

// NewSession creates a session over an arbitrary Storage. Tests use this
// to run against fixture trees.
func NewSession(store Storage, cfg CacheConfig) *Session {
	cfg = cfg.normalized()
	shards, _ := lru.New[string, *Shard](cfg.Shards)
	wordChunks, _ := lru.New[string, map[int64]WordEntry](cfg.WordChunks)
	langChunks, _ := lru.New[string, map[int64]LangEntry](cfg.LangChunks)
	nameChunks, _ := lru.New[string, map[int64]NameEntry](cfg.NameChunks)
	nameLangs, _ := lru.New[string, map[int64]NameLangEntry](cfg.NameChunks)
	lookups, _ := lru.New[string, LookupIndex](cfg.Lookups)
	kanjiMeanings, _ := lru.New[string, map[string][]string](cfg.KanjiMeanings)
	catLangs, _ := lru.New[string, map[string]CategoryMeta](cfg.CategoryLangs)

	return &Session{
		store:         store,
		shards:        shards,
		wordChunks:    wordChunks,
		langChunks:    langChunks,
		nameChunks:    nameChunks,
		nameLangs:     nameLangs,
		lookups:       lookups,
		kanjiMeanings: kanjiMeanings,
		catLangs:      catLangs,
	}
}

// Manifest loads the search manifest, cached for the session lifetime.
func (s *Session) Manifest() (*Manifest, error) {
	return s.manifest.get(func() (*Manifest, error) {
		var m Manifest
		if err := s.store.ReadJSON(manifestPath, &m); err != nil {
			return nil, fmt.Errorf("loading search manifest: %w", err)
		}
		return &m, nil
	})
}

// Shard loads one index shard by base name, validating the key order.
func (s *Session) Shard(base string) (*Shard, error) {
	if sh, ok := s.shards.Get(base); ok {
		return sh, nil
	}
	var mp shardMapFile
	if err := s.store.ReadJSON(searchDir+"/"+base+".json", &mp); err != nil {
		return nil, fmt.Errorf("loading shard %s: %w", base, err)
	}
	var keys shardKeysFile
	if err := s.store.ReadJSON(searchDir+"/"+base+"_keys.json", &keys); err != nil {
		return nil, fmt.Errorf("loading shard keys %s: %w", base, err)
	}
	sh, err := newShard(base, keys.Keys, mp.Map)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded shard %s (%d keys)", base, len(sh.Keys))
	s.shards.Add(base, sh)
	return sh, nil
}

// WordRank loads the words rank table. A missing table is not an error;
// the nil table ranks everything at zero. The file is a flat id to info
// map; builds that wrap it in a single "rank" object are also accepted.
// Ids are decimal strings, so the wrapper key is unambiguous.
func (s *Session) WordRank() (RankTable, error) {
	return s.rank.get(func() (RankTable, error) {
		if !s.store.Exists(rankPath) {
			return nil, nil
		}
		var raw map[string]json.RawMessage
		if err := s.store.ReadJSON(rankPath, &raw); err != nil {
			return nil, fmt.Errorf("loading word rank table: %w", err)
		}
		if inner, ok := raw["rank"]; ok && len(raw) == 1 {
			var m map[string]RankInfo
			if err := json.Unmarshal(inner, &m); err != nil {
				return nil, fmt.Errorf("loading word rank table: %w", err)
			}
			return RankTable(m), nil
		}
		table := make(RankTable, len(raw))
		for id, msg := range raw {
			var info RankInfo
			if err := json.Unmarshal(msg, &info); err != nil {
				return nil, fmt.Errorf("loading word rank entry %s: %w", id, err)
			}
			table[id] = info
		}
		return table, nil
	})
}

// KanjiTable loads the direct-lookup kanji table.
func (s *Session) KanjiTable() (*KanjiTable, error) {
	return s.kanji.get(func() (*KanjiTable, error) {
		var t KanjiTable
		if err := s.store.ReadJSON(kanjiPath, &t); err != nil {
			return nil, fmt.Errorf("loading kanji table: %w", err)
		}
		return &t, nil
	})
}

// KanjiMeanings loads the per-language kanji meaning map. Missing
// language files degrade to an empty map.
func (s *Session) KanjiMeanings(lang string) (map[string][]string, error) {
	if m, ok := s.kanjiMeanings.Get(lang); ok {
		return m, nil
	}
	rel := langDir + "/" + lang + "_kanji_meanings.json"
	meanings := map[string][]string{}
	if s.store.Exists(rel) {
		var f kanjiMeaningsFile
		if err := s.store.ReadJSON(rel, &f); err != nil {
			return nil, fmt.Errorf("loading %s kanji meanings: %w", lang, err)
		}
		if f.MeaningsByKanji != nil {
			meanings = f.MeaningsByKanji
		}
	}
	s.kanjiMeanings.Add(lang, meanings)
	return meanings, nil
}

// KanaEntries loads the kana table.
func (s *Session) KanaEntries() ([]KanaEntry, error) {
	return s.kana.get(func() ([]KanaEntry, error) {
		var f kanaFile
		if err := s.store.ReadJSON(kanaPath, &f); err != nil {
			return nil, fmt.Errorf("loading kana table: %w", err)
		}
		return f.Entries, nil
	})
}

// NamesMeta loads the names chunk directory.
func (s *Session) NamesMeta() (*NamesMeta, error) {
	return s.namesMeta.get(func() (*NamesMeta, error) {
		var m NamesMeta
		if err := s.store.ReadJSON(namesMetaPath, &m); err != nil {
			return nil, fmt.Errorf("loading names meta: %w", err)
		}
		return &m, nil
	})
}

// NameChunk loads one canonical names chunk (line-delimited JSON).
func (s *Session) NameChunk(coreFile string) (map[int64]NameEntry, error) {
	if m, ok := s.nameChunks.Get(coreFile); ok {
		return m, nil
	}
	entries := make(map[int64]NameEntry)
	err := s.store.ReadJSONLines(namesDir+"/"+coreFile, func(raw []byte) error {
		var e NameEntry
		if err := unmarshalStrictID(raw, &e, &e.ID); err != nil {
			return err
		}
		entries[e.ID] = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading names chunk %s: %w", coreFile, err)
	}
	s.nameChunks.Add(coreFile, entries)
	return entries, nil
}

// NameLangChunk loads one per-language names chunk.
func (s *Session) NameLangChunk(langFile string) (map[int64]NameLangEntry, error) {
	if m, ok := s.nameLangs.Get(langFile); ok {
		return m, nil
	}
	entries := make(map[int64]NameLangEntry)
	err := s.store.ReadJSONLines(namesDir+"/"+langFile, func(raw []byte) error {
		var e NameLangEntry
		if err := unmarshalStrictID(raw, &e, &e.ID); err != nil {
			return err
		}
		entries[e.ID] = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading names lang chunk %s: %w", langFile, err)
	}
	s.nameLangs.Add(langFile, entries)
	return entries, nil
}

// LookupIndex loads the exact-match index for one (mode, bucket) pair.
// A missing index file is a soft miss and returns nil.
func (s *Session) LookupIndex(mode, bucket string) (LookupIndex, error) {
	key := mode + ":" + bucket
	if idx, ok := s.lookups.Get(key); ok {
		return idx, nil
	}
	rel := lookupDir + "/lookup_" + mode + "_" + bucket + ".json"
	if !s.store.Exists(rel) {
		return nil, nil
	}
	var f lookupFile
	if err := s.store.ReadJSON(rel, &f); err != nil {
		return nil, fmt.Errorf("loading lookup index %s/%s: %w", mode, bucket, err)
	}
	idx := LookupIndex(f.Map)
	s.lookups.Add(key, idx)
	return idx, nil
}

// CategoriesManifest loads the category ordering.
func (s *Session) CategoriesManifest() (*CategoriesManifest, error) {
	return s.catManifest.get(func() (*CategoriesManifest, error) {
		var m CategoriesManifest
		if err := s.store.ReadJSON(categoriesDir+"/manifest.json", &m); err != nil {
			return nil, fmt.Errorf("loading categories manifest: %w", err)
		}
		return &m, nil
	})
}

// CategoryLang loads the per-language category titles. Missing language
// files degrade to an empty map.
func (s *Session) CategoryLang(lang string) (map[string]CategoryMeta, error) {
	if m, ok := s.catLangs.Get(lang); ok {
		return m, nil
	}
	rel := categoriesDir + "/lang/" + lang + ".json"
	meta := map[string]CategoryMeta{}
	if s.store.Exists(rel) {
		var f categoryLangFile
		if err := s.store.ReadJSON(rel, &f); err != nil {
			return nil, fmt.Errorf("loading %s category titles: %w", lang, err)
		}
		if f.Categories != nil {
			meta = f.Categories
		}
	}
	s.catLangs.Add(lang, meta)
	return meta, nil
}

// WordToCategory loads the word id to category id mapping.
func (s *Session) WordToCategory() (map[string]string, error) {
	return s.wordToCat.get(func() (map[string]string, error) {
		var f wordToCategoryFile
		if err := s.store.ReadJSON(categoriesDir+"/word_to_category.json", &f); err != nil {
			return nil, fmt.Errorf("loading word to category mapping: %w", err)
		}
		return f.Mapping, nil
	})
}

// CommonWordIDs loads the ordered common-word id list, capped to the
// top entries the category index is scoped to.
func (s *Session) CommonWordIDs() ([]int64, error) {
	return s.commonIDs.get(func() ([]int64, error) {
		var f commonIDsFile
		if err := s.store.ReadJSON(commonIDsPath, &f); err != nil {
			return nil, fmt.Errorf("loading common word ids: %w", err)
		}
		ids := f.IDs
		if len(ids) > commonTopN {
			ids = ids[:commonTopN]
		}
		return ids, nil
	})
}

// CategoryIndex builds the category to word-id index from the common
// id list and the word to category mapping. Unmapped ids land in the
// "misc" category.
func (s *Session) CategoryIndex() (map[string][]int64, error) {
	return s.catIndex.get(func() (map[string][]int64, error) {
		top, err := s.CommonWordIDs()
		if err != nil {
			return nil, err
		}
		mapping, err := s.WordToCategory()
		if err != nil {
			return nil, err
		}
		out := make(map[string][]int64)
		for _, wid := range top {
			cid, ok := mapping[formatID(wid)]
			if !ok || cid == "" {
				cid = "misc"
			}
			out[cid] = append(out[cid], wid)
		}
		return out, nil
	})
}
