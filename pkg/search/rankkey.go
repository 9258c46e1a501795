package search

import "sort"

// rankKey is the per-shard tie-break tuple. Field order is tie-break
// priority; the matched key and id close the order so ranking is fully
// deterministic.
type rankKey struct {
	exact     int
	common    int
	score     int
	negKeyLen int
	key       string
	id        int64
}

// less is the total order over rank keys, lexicographic by field.
func (k rankKey) less(o rankKey) bool {
	if k.exact != o.exact {
		return k.exact < o.exact
	}
	if k.common != o.common {
		return k.common < o.common
	}
	if k.score != o.score {
		return k.score < o.score
	}
	if k.negKeyLen != o.negKeyLen {
		return k.negKeyLen < o.negKeyLen
	}
	if k.key != o.key {
		return k.key < o.key
	}
	return k.id < o.id
}

// sortedKeys flattens the best-per-id map in descending rank order.
func sortedKeys(best map[int64]rankKey) []rankKey {
	out := make([]rankKey, 0, len(best))
	for _, t := range best {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].less(out[i]) })
	return out
}

// mergeKey is the merge-level tuple: once mode is folded in, a surface
// match beats a reading match for the same id ahead of key length.
type mergeKey struct {
	exact     int
	common    int
	score     int
	surface   int
	negKeyLen int
}

func (k mergeKey) less(o mergeKey) bool {
	if k.exact != o.exact {
		return k.exact < o.exact
	}
	if k.common != o.common {
		return k.common < o.common
	}
	if k.score != o.score {
		return k.score < o.score
	}
	if k.surface != o.surface {
		return k.surface < o.surface
	}
	return k.negKeyLen < o.negKeyLen
}
