// Package ui contains the glue a grid widget needs between HTTP requests
// and a data provider: parsing sort and pagination parameters out of a
// request, and building the sort-header and page links back from the
// provider's active state.
package ui

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/preslavrachev/datagrid/core"
)

// GridURLBuilder provides a fluent interface for building grid URLs
type GridURLBuilder struct {
	basePath string
	params   url.Values
}

// NewGridURL creates a new URL builder rooted at the given path
func NewGridURL(basePath string) *GridURLBuilder {
	return &GridURLBuilder{
		basePath: basePath,
		params:   make(url.Values),
	}
}

// PreserveFromRequest copies all query parameters from the current request
// so filters survive sort and page navigation
func (b *GridURLBuilder) PreserveFromRequest(r *http.Request) *GridURLBuilder {
	for k, v := range r.URL.Query() {
		b.params[k] = v
	}
	return b
}

// WithSort sets sorting parameters
func (b *GridURLBuilder) WithSort(field string, direction core.SortDirection) *GridURLBuilder {
	if field != "" {
		b.params.Set("sort", field)
		b.params.Set("direction", direction.String())
	}
	return b
}

// WithPage sets the page parameter
func (b *GridURLBuilder) WithPage(page int) *GridURLBuilder {
	b.params.Set("page", strconv.Itoa(page))
	return b
}

// WithPageSize sets the per-page parameter
func (b *GridURLBuilder) WithPageSize(size int) *GridURLBuilder {
	b.params.Set("per_page", strconv.Itoa(size))
	return b
}

// WithParam sets an arbitrary parameter
func (b *GridURLBuilder) WithParam(key, value string) *GridURLBuilder {
	if key != "" {
		b.params.Set(key, value)
	}
	return b
}

// RemoveParam removes a parameter
func (b *GridURLBuilder) RemoveParam(key string) *GridURLBuilder {
	b.params.Del(key)
	return b
}

// Build constructs the final URL string
func (b *GridURLBuilder) Build() string {
	if len(b.params) == 0 {
		return b.basePath
	}
	return b.basePath + "?" + b.params.Encode()
}

// SortLink builds the URL a column header should point at: clicking an
// active column flips its direction, clicking an inactive one sorts by it
// ascending. Sorting resets to the first page.
func SortLink(basePath string, r *http.Request, sort *core.Sort, column string) string {
	toggled := sort.Toggle(column)[0]
	return NewGridURL(basePath).
		PreserveFromRequest(r).
		WithSort(toggled.Field, toggled.Direction).
		WithPage(1).
		Build()
}

// PageLink builds the URL for a numbered page, preserving the active sort
func PageLink(basePath string, r *http.Request, page int) string {
	return NewGridURL(basePath).
		PreserveFromRequest(r).
		WithPage(page).
		Build()
}

// ParseSort extracts the requested sort spec from a request. An empty or
// absent sort parameter yields nil, leaving the provider on its default
// order.
func ParseSort(r *http.Request) []core.SortField {
	field := r.URL.Query().Get("sort")
	if field == "" {
		return nil
	}

	direction := core.SortDirection(r.URL.Query().Get("direction"))
	if !direction.IsValid() {
		direction = core.SortAsc
	}

	return []core.SortField{{Field: field, Direction: direction}}
}

// ParsePagination extracts page and page size from a request and applies
// them to a fresh pagination engine
func ParsePagination(r *http.Request) *core.Pagination {
	pagination := core.NewPagination()

	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			pagination.WithPageSize(size)
		}
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			pagination.WithPage(page)
		}
	}

	return pagination
}
