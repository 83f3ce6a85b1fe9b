package core

import (
	"os"
	"strconv"
)

// Constants for pagination
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Unbounded is the limit/offset sentinel meaning "no bound". It is used
// internally when a total-count probe temporarily disables paging on a
// cloned query; it is not part of the general provider contract.
const Unbounded = -1

// Pagination derives offset, limit and page count from a requested page
// and page size, and caches the total record count once an adapter has
// reported it. A page size of 0 disables pagination entirely: every record
// is returned regardless of the current page.
type Pagination struct {
	PageSize    int `json:"page_size"`
	MaxPageSize int `json:"max_page_size"`

	currentPage int
	total       int
	totalLoaded bool
}

// NewPagination creates a Pagination on page 1 with the default page size
func NewPagination() *Pagination {
	return &Pagination{
		PageSize:    getPageSizeFromEnv(),
		MaxPageSize: MaxPageSize,
		currentPage: 1,
	}
}

// WithPageSize sets the page size, clamped to MaxPageSize. Zero disables
// pagination; negative values fall back to the default.
func (p *Pagination) WithPageSize(size int) *Pagination {
	if size < 0 {
		size = getPageSizeFromEnv()
	}
	if size > p.MaxPageSize {
		size = p.MaxPageSize
	}
	p.PageSize = size
	return p
}

// WithPage sets the current page (1-indexed)
func (p *Pagination) WithPage(page int) *Pagination {
	if page < 1 {
		page = 1
	}
	p.currentPage = page
	return p
}

// CurrentPage returns the current page number (1-indexed)
func (p *Pagination) CurrentPage() int {
	return p.currentPage
}

// Enabled reports whether pagination is active at all
func (p *Pagination) Enabled() bool {
	return p.PageSize > 0
}

// SetTotalCount caches the total record count reported by an adapter
func (p *Pagination) SetTotalCount(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.totalLoaded = true
}

// TotalCount returns the cached total record count, 0 when none has been
// set yet. Use HasTotalCount to distinguish the two.
func (p *Pagination) TotalCount() int {
	return p.total
}

// HasTotalCount reports whether a total count has been cached
func (p *Pagination) HasTotalCount() bool {
	return p.totalLoaded
}

// Reset clears the cached total count
func (p *Pagination) Reset() {
	p.total = 0
	p.totalLoaded = false
}

// Offset returns the number of records preceding the current page. Once a
// total count is known the offset is clamped so it never exceeds it.
func (p *Pagination) Offset() int {
	if !p.Enabled() {
		return 0
	}
	offset := (p.currentPage - 1) * p.PageSize
	if p.totalLoaded && offset > p.total {
		offset = p.total
	}
	return offset
}

// Limit returns the record count of the current page: the page size,
// shrunk on the last page once the total count is known, and Unbounded
// when pagination is disabled
func (p *Pagination) Limit() int {
	if !p.Enabled() {
		return Unbounded
	}
	if !p.totalLoaded {
		return p.PageSize
	}
	remaining := p.total - p.Offset()
	if remaining <= 0 {
		return 0
	}
	if remaining < p.PageSize {
		return remaining
	}
	return p.PageSize
}

// PageCount returns the number of pages needed for the cached total, 0
// when pagination is disabled
func (p *Pagination) PageCount() int {
	if !p.Enabled() {
		return 0
	}
	return (p.total + p.PageSize - 1) / p.PageSize
}

// HasNextPage reports whether a page follows the current one
func (p *Pagination) HasNextPage() bool {
	return p.Enabled() && p.currentPage < p.PageCount()
}

// HasPrevPage reports whether a page precedes the current one
func (p *Pagination) HasPrevPage() bool {
	return p.Enabled() && p.currentPage > 1
}

// getPageSizeFromEnv gets page size from environment variable or default
func getPageSizeFromEnv() int {
	if envSize := os.Getenv("DATAGRID_PAGE_SIZE"); envSize != "" {
		if size, err := strconv.Atoi(envSize); err == nil && size > 0 && size <= MaxPageSize {
			return size
		}
	}
	return DefaultPageSize
}
