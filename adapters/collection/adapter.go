// Package collection implements the data-provider hooks over a fully
// materialized in-memory slice. Sorting and pagination run locally: the
// sort engine's comparator orders a copy of the sequence (the backing
// slice is never mutated) and the pagination window is applied as a plain
// slice expression.
package collection

import (
	"context"
	"sort"

	"github.com/preslavrachev/datagrid/core"
)

// Provider is a collection-backed data provider
type Provider struct {
	*core.BaseProvider
	records []any

	// original backing-slice position of each record on the last page
	// fetched, the default key fallback for this adapter
	pageIndexes []int
}

// New creates a provider over the given records. The slice is held as-is;
// callers must not mutate it while the provider is in use.
func New(records []any) *Provider {
	p := &Provider{records: records}
	p.BaseProvider = core.NewBaseProvider(p)
	return p
}

// FetchTotalCount returns the length of the backing slice
func (p *Provider) FetchTotalCount(ctx context.Context) (int, error) {
	return len(p.records), nil
}

// FetchPage sorts and slices the backing sequence. Sorting is stable, so
// records the comparator considers equal keep their original relative
// order; with pagination disabled the whole sorted sequence is returned.
func (p *Provider) FetchPage(ctx context.Context) ([]any, error) {
	indexes := make([]int, len(p.records))
	for i := range indexes {
		indexes[i] = i
	}

	if orders := p.Sort().Orders(); len(orders) > 0 {
		cmp := p.Sort().Comparator()
		sort.SliceStable(indexes, func(i, j int) bool {
			return cmp(p.records[indexes[i]], p.records[indexes[j]]) < 0
		})
	}

	pagination := p.Pagination()
	if pagination.Enabled() {
		offset := pagination.Offset()
		limit := pagination.Limit()
		if offset > len(indexes) {
			offset = len(indexes)
		}
		end := offset + limit
		if limit == core.Unbounded || end > len(indexes) {
			end = len(indexes)
		}
		indexes = indexes[offset:end]
	}

	page := make([]any, len(indexes))
	for i, idx := range indexes {
		page[i] = p.records[idx]
	}
	p.pageIndexes = indexes
	return page, nil
}

// FetchKeys extracts one key per record. Without an explicit policy each
// record is keyed by its original position in the backing slice, not its
// position on the page.
func (p *Provider) FetchKeys(records []any) ([]any, error) {
	policy := p.KeyPolicy()
	if policy == nil {
		keys := make([]any, len(records))
		for i := range records {
			if i < len(p.pageIndexes) {
				keys[i] = p.pageIndexes[i]
			} else {
				keys[i] = i
			}
		}
		return keys, nil
	}
	return core.ExtractKeys(records, policy)
}
