package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Fetcher is the extension point every concrete adapter implements: one
// hook per cacheable concern. The provider core depends only on this
// interface, never on a concrete adapter.
type Fetcher interface {
	// FetchPage materializes the current page, applying the provider's
	// pagination window and sort order against the backing store
	FetchPage(ctx context.Context) ([]any, error)

	// FetchKeys produces one identity value per record of the page just
	// fetched, in the same order
	FetchKeys(records []any) ([]any, error)

	// FetchTotalCount counts every record behind the provider, ignoring
	// pagination
	FetchTotalCount(ctx context.Context) (int, error)
}

// DataProvider is the surface a grid widget consumes
type DataProvider interface {
	GetRecords(ctx context.Context) ([]any, error)
	GetKeys(ctx context.Context) ([]any, error)
	GetCount(ctx context.Context) (int, error)
	GetTotalCount(ctx context.Context) (int, error)
	Refresh()
	Sort() *Sort
	Pagination() *Pagination
}

// BaseProvider owns the lazy-materialization cache and orchestrates the
// sort, pagination and key-extraction machinery through a Fetcher. It is
// embedded by the concrete adapters.
//
// A BaseProvider is not safe for concurrent use: each instance belongs to
// one logical request. Every operation either answers from cache or runs
// the fetch hooks inline; there is no background work and no internal
// locking.
type BaseProvider struct {
	id         string
	fetcher    Fetcher
	sort       *Sort
	pagination *Pagination
	keyPolicy  KeyPolicy

	records []any
	keys    []any
	loaded  bool
}

// NewBaseProvider creates a provider core driven by the given fetcher,
// with an auto-generated ID, an empty sort and default pagination
func NewBaseProvider(fetcher Fetcher) *BaseProvider {
	return &BaseProvider{
		id:         uuid.NewString(),
		fetcher:    fetcher,
		sort:       NewSort(),
		pagination: NewPagination(),
	}
}

// WithID overrides the auto-generated provider ID
func (p *BaseProvider) WithID(id string) *BaseProvider {
	p.id = id
	return p
}

// WithSort replaces the sort engine
func (p *BaseProvider) WithSort(sort *Sort) *BaseProvider {
	p.sort = sort
	return p
}

// WithPagination replaces the pagination engine
func (p *BaseProvider) WithPagination(pagination *Pagination) *BaseProvider {
	p.pagination = pagination
	return p
}

// WithKeyPolicy sets how per-record keys are produced. Adapters fall back
// to their documented default when no policy is set.
func (p *BaseProvider) WithKeyPolicy(policy KeyPolicy) *BaseProvider {
	p.keyPolicy = policy
	return p
}

// ID returns the provider's identifier, used by widgets to namespace
// rendered element IDs
func (p *BaseProvider) ID() string {
	return p.id
}

// Sort returns the active sort engine
func (p *BaseProvider) Sort() *Sort {
	return p.sort
}

// Pagination returns the active pagination engine
func (p *BaseProvider) Pagination() *Pagination {
	return p.pagination
}

// KeyPolicy returns the configured key policy, nil when none is set
func (p *BaseProvider) KeyPolicy() KeyPolicy {
	return p.keyPolicy
}

// GetRecords returns the records of the current page, materializing the
// cache on first access
func (p *BaseProvider) GetRecords(ctx context.Context) ([]any, error) {
	if err := p.prepare(ctx); err != nil {
		return nil, err
	}
	return p.records, nil
}

// GetKeys returns one key per record of the current page, in record order
func (p *BaseProvider) GetKeys(ctx context.Context) ([]any, error) {
	if err := p.prepare(ctx); err != nil {
		return nil, err
	}
	return p.keys, nil
}

// GetCount returns the number of records on the current page
func (p *BaseProvider) GetCount(ctx context.Context) (int, error) {
	records, err := p.GetRecords(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// GetTotalCount returns the total number of records behind the provider.
// It is lazy and independent of page preparation: widgets often need the
// total (for page links) without materializing a page.
func (p *BaseProvider) GetTotalCount(ctx context.Context) (int, error) {
	if p.pagination.HasTotalCount() {
		return p.pagination.TotalCount(), nil
	}
	if p.fetcher == nil {
		return 0, fmt.Errorf("fetch total count: %w", ErrInvalidConfiguration)
	}
	total, err := p.fetcher.FetchTotalCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch total count: %w", err)
	}
	p.pagination.SetTotalCount(total)
	return total, nil
}

// Refresh clears every cached field. The next access re-runs all three
// fetch hooks against the adapter.
func (p *BaseProvider) Refresh() {
	p.records = nil
	p.keys = nil
	p.loaded = false
	p.pagination.Reset()
}

// prepare materializes the cache: total count first (feeding the
// pagination engine), then the page, then the keys. The cache is committed
// all-or-nothing; any hook error leaves it empty so the caller can retry
// the whole operation after fixing the cause.
func (p *BaseProvider) prepare(ctx context.Context) error {
	if p.loaded {
		return nil
	}
	if p.fetcher == nil {
		return fmt.Errorf("prepare: %w", ErrInvalidConfiguration)
	}

	total, err := p.GetTotalCount(ctx)
	if err != nil {
		return err
	}

	var records []any
	if total == 0 {
		// No round trip for an empty result set. Skipping the page hook
		// also matters for stores that treat a limit on a zero-count page
		// as unbounded.
		records = []any{}
	} else {
		records, err = p.fetcher.FetchPage(ctx)
		if err != nil {
			return fmt.Errorf("fetch page: %w", err)
		}
	}

	keys, err := p.fetcher.FetchKeys(records)
	if err != nil {
		return fmt.Errorf("fetch keys: %w", err)
	}

	p.records = records
	p.keys = keys
	p.loaded = true
	return nil
}
