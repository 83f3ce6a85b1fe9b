// Package query implements the data-provider hooks against a lazy,
// cloneable query object, such as the SQL query in adapters/sql. The
// provider never executes the query it was configured with directly:
// every probe runs against a clone, so a total-count probe and a
// page-fetch probe can never leak limit, offset or order state into each
// other.
package query

import (
	"context"
	"fmt"

	"github.com/preslavrachev/datagrid/core"
)

// Query is the collaborator contract a backing store must satisfy.
// Clone must return an independent copy sharing no mutable sub-state with
// the original.
type Query interface {
	Clone() Query

	// Limit caps the result set; core.Unbounded removes the cap
	Limit(n int)

	// Offset skips leading records; core.Unbounded removes the skip
	Offset(n int)

	// OrderBy installs the sort spec; nil clears any ordering
	OrderBy(orders []core.SortField)

	Count(ctx context.Context) (int, error)
	All(ctx context.Context) ([]any, error)
}

// PrimaryKeyed is optionally implemented by queries whose backing store
// declares primary-key fields. It drives the default key policy.
type PrimaryKeyed interface {
	PrimaryKeyFields() []string
}

// AttributeNamer is optionally implemented by queries that can enumerate
// the attribute names of their records. It auto-populates the sortable
// column set when none was configured.
type AttributeNamer interface {
	AttributeNames() []string
}

// Provider is a query-backed data provider
type Provider struct {
	*core.BaseProvider
	query Query
}

// New creates a provider over the given query. When the query can
// enumerate its attribute names they become the sortable column set, so a
// widget gets clickable headers without any sort configuration.
func New(q Query) *Provider {
	p := &Provider{query: q}
	p.BaseProvider = core.NewBaseProvider(p)
	if namer, ok := q.(AttributeNamer); ok {
		p.Sort().WithColumns(namer.AttributeNames()...)
	}
	return p
}

// Query returns the underlying query object
func (p *Provider) Query() Query {
	return p.query
}

// FetchTotalCount counts every record behind the query. The probe runs on
// a clone with limit, offset and order stripped, leaving the paging query
// untouched.
func (p *Provider) FetchTotalCount(ctx context.Context) (int, error) {
	if p.query == nil {
		return 0, fmt.Errorf("%w: query is nil", core.ErrInvalidConfiguration)
	}
	q := p.query.Clone()
	q.Limit(core.Unbounded)
	q.Offset(core.Unbounded)
	q.OrderBy(nil)
	return q.Count(ctx)
}

// FetchPage materializes the current page on a clone of the query with
// the pagination window and normalized sort order applied
func (p *Provider) FetchPage(ctx context.Context) ([]any, error) {
	if p.query == nil {
		return nil, fmt.Errorf("%w: query is nil", core.ErrInvalidConfiguration)
	}

	q := p.query.Clone()

	if pagination := p.Pagination(); pagination.Enabled() {
		q.Limit(pagination.Limit())
		q.Offset(pagination.Offset())
	}

	if orders := p.sortOrders(); len(orders) > 0 {
		q.OrderBy(orders)
	}

	return q.All(ctx)
}

// FetchKeys extracts one key per record. Without an explicit policy the
// backing store's declared primary key applies: a single field yields
// scalar keys, several yield composite field-to-value maps. A store that
// declares no primary key falls back to the record's position on the
// current page.
func (p *Provider) FetchKeys(records []any) ([]any, error) {
	policy := p.KeyPolicy()
	if policy == nil {
		policy = p.defaultKeyPolicy()
	}
	if policy == nil {
		keys := make([]any, len(records))
		for i := range records {
			keys[i] = i
		}
		return keys, nil
	}
	return core.ExtractKeys(records, policy)
}

func (p *Provider) defaultKeyPolicy() core.KeyPolicy {
	pk, ok := p.query.(PrimaryKeyed)
	if !ok {
		return nil
	}
	fields := pk.PrimaryKeyFields()
	switch len(fields) {
	case 0:
		return nil
	case 1:
		return core.SingleField(fields[0])
	default:
		return core.CompositeFields(fields)
	}
}

// sortOrders returns the active sort spec, seeding the sortable column
// set from the query's attribute names when none was configured
func (p *Provider) sortOrders() []core.SortField {
	sort := p.Sort()
	if !sort.HasColumns() {
		if namer, ok := p.query.(AttributeNamer); ok {
			sort.WithColumns(namer.AttributeNames()...)
		}
	}
	return sort.Orders()
}
