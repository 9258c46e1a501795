package dataset

import "fmt"

// Problem is one structural defect found in the dataset tree.
type Problem struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Verify runs read-only structural checks over the dataset: the search
// manifest and every shard it references, the names chunk directory,
// the categories tree, and the core tables. It reports problems rather
// than failing on the first one.
func (s *Session) Verify() []Problem {
	var problems []Problem
	add := func(code, path, message string) {
		problems = append(problems, Problem{Code: code, Path: path, Message: message})
	}

	man, err := s.Manifest()
	if err != nil {
		add("search.manifest", manifestPath, err.Error())
	} else {
		for domain, modes := range man.Domains {
			for mode, bases := range modes {
				if len(bases) == 0 {
					add("search.empty_modes", manifestPath, fmt.Sprintf("no shards for %s/%s", domain, mode))
					continue
				}
				for _, base := range bases {
					for _, rel := range []string{searchDir + "/" + base + ".json", searchDir + "/" + base + "_keys.json"} {
						if !s.store.Exists(rel) {
							add("search.shard_missing", rel, "referenced shard file missing (.json or .json.gz)")
						}
					}
				}
			}
		}
	}

	meta, err := s.NamesMeta()
	switch {
	case err != nil:
		add("names.meta", namesMetaPath, err.Error())
	case len(meta.Chunks) == 0:
		add("names.meta_chunks", namesMetaPath, "meta.chunks missing/empty")
	default:
		for i, ch := range meta.Chunks {
			if ch.CoreFile == "" || ch.LangENFile == "" || ch.EndID < ch.StartID {
				add("names.chunk_invalid", namesMetaPath, fmt.Sprintf("chunk %d has invalid fields", i))
				continue
			}
			if !s.store.Exists(namesDir + "/" + ch.CoreFile) {
				add("names.core_missing", namesDir+"/"+ch.CoreFile, "core chunk missing")
			}
			if !s.store.Exists(namesDir + "/" + ch.LangENFile) {
				add("names.en_missing", namesDir+"/"+ch.LangENFile, "lang/en chunk missing")
			}
		}
	}

	if _, err := s.CategoriesManifest(); err != nil {
		add("categories.manifest", categoriesDir+"/manifest.json", err.Error())
	}
	if !s.store.Exists(categoriesDir + "/word_to_category.json") {
		add("categories.word_to_category_missing", categoriesDir+"/word_to_category.json", "missing word_to_category.json(.gz)")
	}

	if !s.store.Exists(kanjiPath) {
		add("core.kanji_missing", kanjiPath, "missing kanji table")
	}
	if !s.store.Exists(kanaPath) {
		add("core.kana_missing", kanaPath, "missing kana table")
	}

	if ranges, err := s.WordChunks(); err != nil {
		add("core.word_chunks", coreDir, err.Error())
	} else {
		for i := 1; i < len(ranges); i++ {
			if ranges[i].Start <= ranges[i-1].End {
				add("core.chunk_overlap", ranges[i].Path, "chunk range overlaps the previous one")
			}
		}
	}

	return problems
}
