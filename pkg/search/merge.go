package search

import (
	"fmt"
	"sort"
)

// expandDomain resolves a domain selector to concrete domains.
func expandDomain(domain string) ([]string, error) {
	switch domain {
	case DomainAll:
		return []string{DomainWords, DomainNames}, nil
	case DomainWords, DomainNames:
		return []string{domain}, nil
	default:
		return nil, fmt.Errorf("unknown domain %q", domain)
	}
}

// expandMode resolves a mode selector to concrete modes.
func expandMode(mode string) ([]string, error) {
	switch mode {
	case ModeAuto:
		return []string{ModeSurface, ModeReading}, nil
	case ModeSurface, ModeReading:
		return []string{mode}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// MergeSearch fans a query out across the requested domains and modes,
// deduplicates by (domain, id) keeping the best merge tuple, and
// returns one ranked list truncated to the limit. The same numeric id
// in different domains stays a distinct result.
func (e *Engine) MergeSearch(domain, mode, query string, opts Options) ([]Hit, error) {
	domains, err := expandDomain(domain)
	if err != nil {
		return nil, err
	}
	modes, err := expandMode(mode)
	if err != nil {
		return nil, err
	}

	var gathered []Hit
	for _, d := range domains {
		for _, m := range modes {
			hits, err := e.Search(d, m, query, opts)
			if err != nil {
				return nil, err
			}
			gathered = append(gathered, hits...)
		}
	}

	type domainID struct {
		domain string
		id     int64
	}
	best := make(map[domainID]mergeKey)
	keep := make(map[domainID]Hit)
	var order []domainID

	for _, h := range gathered {
		key := domainID{domain: h.Domain, id: h.ID}
		t := mergeKey{
			exact:     btoi(h.Exact),
			common:    btoi(opts.CommonFirst && h.Common),
			score:     h.Score,
			surface:   btoi(h.Mode == ModeSurface),
			negKeyLen: -h.KeyLen,
		}
		prev, ok := best[key]
		if !ok {
			order = append(order, key)
		}
		if !ok || prev.less(t) {
			best[key] = t
			keep[key] = h
		}
	}

	final := make([]Hit, 0, len(order))
	for _, key := range order {
		final = append(final, keep[key])
	}
	sort.SliceStable(final, func(i, j int) bool {
		return best[domainID{final[j].Domain, final[j].ID}].less(best[domainID{final[i].Domain, final[i].ID}])
	})

	if opts.Limit > 0 && len(final) > opts.Limit {
		final = final[:opts.Limit]
	}
	return final, nil
}
