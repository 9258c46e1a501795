// Package search is the prefix search engine: it fans a query's
// normalized variants across the right index shards, scores every
// candidate id with an explicit ranking key, and merges results across
// domains and modes into one deduplicated, ranked list.
package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/jishoserve/pkg/dataset"
	"github.com/bastiangx/jishoserve/pkg/jptext"
)

// Domain and mode selectors accepted by the engine. DomainAll and
// ModeAuto expand to the concrete ones.
const (
	DomainWords = "words"
	DomainNames = "names"
	DomainAll   = "all"

	ModeSurface = "surface"
	ModeReading = "reading"
	ModeAuto    = "auto"
)

// Options are the caller-supplied search knobs. MaxKeys caps how many
// matched keys a single variant scan may collect; it bounds worst-case
// work for short prefixes and is a silent truncation, not an error.
type Options struct {
	Limit       int
	MaxKeys     int
	CommonFirst bool
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{Limit: 20, MaxKeys: 250}
}

// Hit is one scored search result. Common reflects the common flag only
// when the search ran with CommonFirst, matching how it feeds ranking.
type Hit struct {
	ID         int64  `json:"id"`
	MatchedKey string `json:"matched_key"`
	Score      int    `json:"score"`
	Common     bool   `json:"common"`
	Exact      bool   `json:"exact"`
	KeyLen     int    `json:"key_len"`
	Domain     string `json:"domain,omitempty"`
	Mode       string `json:"mode,omitempty"`
}

// Engine runs prefix searches against one dataset session.
type Engine struct {
	session *dataset.Session
}

// New creates an engine over an open session.
func New(session *dataset.Session) *Engine {
	return &Engine{session: session}
}

// pickBase selects the shard whose name suffix matches the query's
// bucket, falling back to the last listed shard.
func pickBase(bases []string, bucket jptext.Bucket) string {
	for _, b := range bases {
		if strings.HasSuffix(b, string(bucket)) {
			return b
		}
	}
	return bases[len(bases)-1]
}

// Search runs a prefix search for one (domain, mode) pair and returns
// hits ranked by the per-shard key (exact, common, score, key length).
// A (domain, mode) pair absent from the manifest is a configuration
// error.
func (e *Engine) Search(domain, mode, query string, opts Options) ([]Hit, error) {
	man, err := e.session.Manifest()
	if err != nil {
		return nil, err
	}
	bases := man.Bases(domain, mode)
	if len(bases) == 0 {
		return nil, fmt.Errorf("no shards configured for %s/%s", domain, mode)
	}

	// Rank data only exists for the words domain; everything else
	// scores zero.
	var rank dataset.RankTable
	if domain == DomainWords {
		rank, err = e.session.WordRank()
		if err != nil {
			return nil, err
		}
	}

	variants := jptext.SearchVariants(query)
	log.Debugf("search %s/%s %q -> %d variants", domain, mode, query, len(variants))

	best := make(map[int64]rankKey)
	for _, qn := range variants {
		bucket := jptext.Classify(qn)
		shard, err := e.session.Shard(pickBase(bases, bucket))
		if err != nil {
			return nil, err
		}

		type pair struct {
			key string
			id  int64
		}
		seen := make(map[pair]struct{})
		for _, k := range shard.ScanPrefix(qn, opts.MaxKeys) {
			for _, id := range shard.IDs(k) {
				p := pair{key: k, id: id}
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}

				info := rank.Lookup(id)
				t := rankKey{
					exact:     btoi(k == qn),
					common:    btoi(opts.CommonFirst && info.Common),
					score:     info.Score,
					negKeyLen: -utf8.RuneCountInString(k),
					key:       k,
					id:        id,
				}
				if prev, ok := best[id]; !ok || prev.less(t) {
					best[id] = t
				}
			}
		}
	}

	ranked := sortedKeys(best)
	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	hits := make([]Hit, 0, len(ranked))
	for _, t := range ranked {
		hits = append(hits, Hit{
			ID:         t.id,
			MatchedKey: t.key,
			Score:      t.score,
			Common:     t.common != 0,
			Exact:      t.exact != 0,
			KeyLen:     -t.negKeyLen,
			Domain:     domain,
			Mode:       mode,
		})
	}
	return hits, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
