package ui

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/preslavrachev/datagrid/core"
)

func TestGridURLBuilder(t *testing.T) {
	url := NewGridURL("/grid/users").
		WithSort("name", core.SortDesc).
		WithPage(2).
		Build()

	want := "/grid/users?direction=desc&page=2&sort=name"
	if url != want {
		t.Errorf("Expected '%s', got '%s'", want, url)
	}
}

func TestGridURLBuilderNoParams(t *testing.T) {
	if url := NewGridURL("/grid/users").Build(); url != "/grid/users" {
		t.Errorf("Expected bare base path, got '%s'", url)
	}
}

func TestGridURLPreservesRequestParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users?role=admin&page=3", nil)

	url := NewGridURL("/grid/users").
		PreserveFromRequest(r).
		WithPage(1).
		Build()

	want := "/grid/users?page=1&role=admin"
	if url != want {
		t.Errorf("Expected '%s', got '%s'", want, url)
	}
}

func TestSortLinkTogglesActiveColumn(t *testing.T) {
	sort := core.NewSort("name", "age")
	if err := sort.Normalize([]core.SortField{{Field: "name", Direction: core.SortAsc}}); err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	r := httptest.NewRequest("GET", "/grid/users?page=3", nil)

	url := SortLink("/grid/users", r, sort, "name")
	want := "/grid/users?direction=desc&page=1&sort=name"
	if url != want {
		t.Errorf("Expected '%s', got '%s'", want, url)
	}

	// Inactive column starts ascending
	url = SortLink("/grid/users", r, sort, "age")
	want = "/grid/users?direction=asc&page=1&sort=age"
	if url != want {
		t.Errorf("Expected '%s', got '%s'", want, url)
	}
}

func TestPageLinkPreservesSort(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users?direction=desc&sort=name", nil)

	url := PageLink("/grid/users", r, 4)
	want := "/grid/users?direction=desc&page=4&sort=name"
	if url != want {
		t.Errorf("Expected '%s', got '%s'", want, url)
	}
}

func TestParseSort(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users?sort=name&direction=desc", nil)

	orders := ParseSort(r)
	want := []core.SortField{{Field: "name", Direction: core.SortDesc}}
	if !reflect.DeepEqual(orders, want) {
		t.Errorf("Expected %v, got %v", want, orders)
	}
}

func TestParseSortDefaultsDirection(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users?sort=name&direction=bogus", nil)

	orders := ParseSort(r)
	if orders[0].Direction != core.SortAsc {
		t.Errorf("Invalid direction should default to asc, got %s", orders[0].Direction)
	}
}

func TestParseSortAbsent(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users", nil)

	if orders := ParseSort(r); orders != nil {
		t.Errorf("Expected nil for absent sort parameter, got %v", orders)
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users?page=3&per_page=25", nil)

	p := ParsePagination(r)
	if p.CurrentPage() != 3 {
		t.Errorf("Expected page 3, got %d", p.CurrentPage())
	}
	if p.PageSize != 25 {
		t.Errorf("Expected page size 25, got %d", p.PageSize)
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users", nil)

	p := ParsePagination(r)
	if p.CurrentPage() != 1 {
		t.Errorf("Expected page 1 by default, got %d", p.CurrentPage())
	}
	if p.PageSize != core.DefaultPageSize {
		t.Errorf("Expected default page size, got %d", p.PageSize)
	}
}

func TestParsePaginationClampsBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/grid/users?page=-2&per_page=100000", nil)

	p := ParsePagination(r)
	if p.CurrentPage() != 1 {
		t.Errorf("Negative page should clamp to 1, got %d", p.CurrentPage())
	}
	if p.PageSize != core.MaxPageSize {
		t.Errorf("Oversized per_page should clamp to %d, got %d", core.MaxPageSize, p.PageSize)
	}
}
