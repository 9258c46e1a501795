package dataset

import (
	"errors"
	"fmt"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Shard is one loaded index unit: the sorted key sequence, the key to
// id-list map, and a patricia trie over the keys for prefix scans. The
// key order is the search invariant and is validated at load time.
type Shard struct {
	Base  string
	Keys  []string
	IDMap map[string][]int64

	trie *patricia.Trie
}

func newShard(base string, keys []string, idMap map[string][]int64) (*Shard, error) {
	trie := patricia.NewTrie()
	for i, k := range keys {
		if i > 0 && keys[i-1] >= k {
			return nil, fmt.Errorf("shard %s: keys not strictly sorted at %q", base, k)
		}
		// Sorted insertion keeps subtree visits in code-point order.
		trie.Insert(patricia.Prefix(k), idMap[k])
	}
	return &Shard{Base: base, Keys: keys, IDMap: idMap, trie: trie}, nil
}

var errScanCap = errors.New("scan cap reached")

// ScanPrefix collects the keys sharing the given prefix in code-point
// order, stopping after maxKeys even if more match. maxKeys <= 0 means
// no cap.
func (s *Shard) ScanPrefix(prefix string, maxKeys int) []string {
	var out []string
	err := s.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		if maxKeys > 0 && len(out) >= maxKeys {
			return errScanCap
		}
		return nil
	})
	if err != nil && !errors.Is(err, errScanCap) {
		// The visitor only ever returns the cap sentinel.
		return out
	}
	return out
}

// IDs returns the entry ids listed under a key, nil when the key only
// exists in the key sequence.
func (s *Shard) IDs(key string) []int64 {
	return s.IDMap[key]
}
