package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
)

// Chunk file names carry the id range they cover, e.g.
// words_1000000_1220670.json.gz.
var (
	wordChunkRE = regexp.MustCompile(`^words_(\d+)_(\d+)\.json(\.gz)?$`)
	itChunkRE   = regexp.MustCompile(`^it_words_(\d+)_(\d+)\.json(\.gz)?$`)
)

// ChunkRange locates one entry chunk and the contiguous id range it
// covers. Ranges within a domain are non-overlapping.
type ChunkRange struct {
	Start int64
	End   int64
	Path  string
}

func parseChunkRange(re *regexp.Regexp, name string) (int64, int64, bool) {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// FindRange resolves which chunk covers an id. Ranges are sorted by
// start, so a binary search on the range end suffices.
func FindRange(ranges []ChunkRange, id int64) (ChunkRange, bool) {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End >= id })
	if i < len(ranges) && ranges[i].Start <= id {
		return ranges[i], true
	}
	return ChunkRange{}, false
}

// WordChunks lists the canonical word chunk files, sorted by range
// start. The listing is cached for the session lifetime.
func (s *Session) WordChunks() ([]ChunkRange, error) {
	return s.wordRanges.get(func() ([]ChunkRange, error) {
		names, err := s.store.List(coreDir)
		if err != nil {
			return nil, fmt.Errorf("listing word chunks: %w", err)
		}
		var ranges []ChunkRange
		for _, name := range names {
			if start, end, ok := parseChunkRange(wordChunkRE, name); ok {
				ranges = append(ranges, ChunkRange{Start: start, End: end, Path: coreDir + "/" + name})
			}
		}
		sort.Slice(ranges, func(i, j int) bool {
			if ranges[i].Start != ranges[j].Start {
				return ranges[i].Start < ranges[j].Start
			}
			return ranges[i].End < ranges[j].End
		})
		log.Debugf("found %d word chunks", len(ranges))
		return ranges, nil
	})
}

// itChunks lists the Italian common-word chunk files referenced by the
// it_common meta file. A missing meta file means no Italian data.
func (s *Session) itChunks() ([]ChunkRange, error) {
	return s.itRanges.get(func() ([]ChunkRange, error) {
		metaRel := itCommonDir + "/meta.json"
		if !s.store.Exists(metaRel) {
			return nil, nil
		}
		var meta itMetaFile
		if err := s.store.ReadJSON(metaRel, &meta); err != nil {
			return nil, fmt.Errorf("loading it_common meta: %w", err)
		}
		var ranges []ChunkRange
		for _, rel := range meta.Files {
			if start, end, ok := parseChunkRange(itChunkRE, path.Base(rel)); ok {
				ranges = append(ranges, ChunkRange{Start: start, End: end, Path: itCommonDir + "/" + rel})
			}
		}
		sort.Slice(ranges, func(i, j int) bool {
			if ranges[i].Start != ranges[j].Start {
				return ranges[i].Start < ranges[j].Start
			}
			return ranges[i].End < ranges[j].End
		})
		return ranges, nil
	})
}

// WordChunk loads one canonical word chunk keyed by id.
func (s *Session) WordChunk(chunkPath string) (map[int64]WordEntry, error) {
	if m, ok := s.wordChunks.Get(chunkPath); ok {
		return m, nil
	}
	var f entriesFile
	if err := s.store.ReadJSON(chunkPath, &f); err != nil {
		return nil, fmt.Errorf("loading word chunk %s: %w", chunkPath, err)
	}
	entries := make(map[int64]WordEntry, len(f.Entries))
	for _, e := range f.Entries {
		entries[e.ID] = e
	}
	s.wordChunks.Add(chunkPath, entries)
	return entries, nil
}

// WordLangChunk loads the per-language augmentation entries covering a
// word chunk's id range. English chunks mirror the canonical ranges
// one-to-one; Italian data is aggregated from whichever it_common
// chunks overlap the range. Absent files degrade to an empty map.
func (s *Session) WordLangChunk(lang string, start, end int64) (map[int64]LangEntry, error) {
	key := fmt.Sprintf("%s:%d:%d", lang, start, end)
	if m, ok := s.langChunks.Get(key); ok {
		return m, nil
	}

	entries := make(map[int64]LangEntry)
	switch lang {
	case "en":
		rel := fmt.Sprintf("%s/en_words_%d_%d.json", langDir, start, end)
		if s.store.Exists(rel) {
			var f langEntriesFile
			if err := s.store.ReadJSON(rel, &f); err != nil {
				return nil, fmt.Errorf("loading en lang chunk %d-%d: %w", start, end, err)
			}
			for _, e := range f.Entries {
				entries[e.ID] = e
			}
		}
	case "it":
		ranges, err := s.itChunks()
		if err != nil {
			return nil, err
		}
		for _, r := range ranges {
			if r.End < start || r.Start > end {
				continue
			}
			var f langEntriesFile
			if err := s.store.ReadJSON(r.Path, &f); err != nil {
				return nil, fmt.Errorf("loading it lang chunk %s: %w", r.Path, err)
			}
			for _, e := range f.Entries {
				entries[e.ID] = e
			}
		}
	default:
		return nil, fmt.Errorf("unsupported language %q", lang)
	}

	s.langChunks.Add(key, entries)
	return entries, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func unmarshalStrictID(raw []byte, v any, id *int64) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("entry missing id")
	}
	return nil
}
