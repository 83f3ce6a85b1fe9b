package collection

import (
	"context"
	"reflect"
	"testing"

	"github.com/preslavrachev/datagrid/core"
)

func numberedRecords(n int) []any {
	records := make([]any, n)
	for i := 0; i < n; i++ {
		records[i] = map[string]any{"id": i + 1}
	}
	return records
}

func TestCollectionEndToEndPagination(t *testing.T) {
	p := New(numberedRecords(25))
	p.Pagination().WithPageSize(10).WithPage(3)
	ctx := context.Background()

	total, err := p.GetTotalCount(ctx)
	if err != nil {
		t.Fatalf("GetTotalCount returned error: %v", err)
	}
	if total != 25 {
		t.Errorf("Expected total 25, got %d", total)
	}

	count, err := p.GetCount(ctx)
	if err != nil {
		t.Fatalf("GetCount returned error: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 records on page 3, got %d", count)
	}

	if got := p.Pagination().Offset(); got != 20 {
		t.Errorf("Expected offset 20, got %d", got)
	}
	if got := p.Pagination().Limit(); got != 5 {
		t.Errorf("Expected limit 5, got %d", got)
	}

	records, err := p.GetRecords(ctx)
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}
	if first, _ := core.FieldValue(records[0], "id"); first != 21 {
		t.Errorf("Expected page 3 to start at id 21, got %v", first)
	}
}

func TestCollectionDisabledPaginationReturnsAll(t *testing.T) {
	p := New(numberedRecords(25))
	p.Pagination().WithPageSize(0).WithPage(4)
	ctx := context.Background()

	records, err := p.GetRecords(ctx)
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}
	if len(records) != 25 {
		t.Errorf("Disabled pagination should return every record, got %d", len(records))
	}
}

func TestCollectionMultiColumnSortStability(t *testing.T) {
	records := []any{
		map[string]any{"a": 1, "b": 2},
		map[string]any{"a": 1, "b": 1},
	}

	p := New(records)
	p.WithSort(core.NewSort("a", "b"))
	if err := p.Sort().Normalize([]core.SortField{
		{Field: "a", Direction: core.SortAsc},
		{Field: "b", Direction: core.SortAsc},
	}); err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	sorted, err := p.GetRecords(context.Background())
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}

	want := []any{
		map[string]any{"a": 1, "b": 1},
		map[string]any{"a": 1, "b": 2},
	}
	if !reflect.DeepEqual(sorted, want) {
		t.Errorf("Expected ties on 'a' broken by 'b', got %v", sorted)
	}
}

func TestCollectionSortPreservesTies(t *testing.T) {
	records := []any{
		map[string]any{"group": "x", "name": "first"},
		map[string]any{"group": "x", "name": "second"},
		map[string]any{"group": "a", "name": "third"},
	}

	p := New(records)
	p.WithSort(core.NewSort("group"))
	if err := p.Sort().Normalize([]core.SortField{{Field: "group", Direction: core.SortAsc}}); err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	sorted, err := p.GetRecords(context.Background())
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}

	// "third" moves first; the tied "x" records keep their relative order
	names := make([]any, len(sorted))
	for i, r := range sorted {
		names[i], _ = core.FieldValue(r, "name")
	}
	if !reflect.DeepEqual(names, []any{"third", "first", "second"}) {
		t.Errorf("Stable sort violated, got order %v", names)
	}
}

func TestCollectionDoesNotMutateBackingSlice(t *testing.T) {
	records := []any{
		map[string]any{"id": 3},
		map[string]any{"id": 1},
		map[string]any{"id": 2},
	}

	p := New(records)
	p.WithSort(core.NewSort("id"))
	if err := p.Sort().Normalize([]core.SortField{{Field: "id", Direction: core.SortAsc}}); err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if _, err := p.GetRecords(context.Background()); err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}

	ids := make([]any, len(records))
	for i, r := range records {
		ids[i], _ = core.FieldValue(r, "id")
	}
	if !reflect.DeepEqual(ids, []any{3, 1, 2}) {
		t.Errorf("Backing slice was mutated: %v", ids)
	}
}

func TestCollectionDefaultKeysAreOriginalPositions(t *testing.T) {
	records := []any{
		map[string]any{"id": 3},
		map[string]any{"id": 1},
		map[string]any{"id": 2},
	}

	p := New(records)
	p.WithSort(core.NewSort("id"))
	if err := p.Sort().Normalize([]core.SortField{{Field: "id", Direction: core.SortAsc}}); err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	keys, err := p.GetKeys(context.Background())
	if err != nil {
		t.Fatalf("GetKeys returned error: %v", err)
	}

	// Sorted page is id 1,2,3 which sat at positions 1,2,0 in the
	// backing slice
	if !reflect.DeepEqual(keys, []any{1, 2, 0}) {
		t.Errorf("Expected original backing positions [1 2 0], got %v", keys)
	}
}

func TestCollectionExplicitKeyPolicy(t *testing.T) {
	records := []any{
		map[string]any{"id1": 1, "id2": "x"},
		map[string]any{"id1": 2, "id2": "y"},
	}

	p := New(records)
	p.WithKeyPolicy(core.CompositeFields{"id1", "id2"})

	keys, err := p.GetKeys(context.Background())
	if err != nil {
		t.Fatalf("GetKeys returned error: %v", err)
	}

	want := []any{
		map[string]any{"id1": 1, "id2": "x"},
		map[string]any{"id1": 2, "id2": "y"},
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Expected composite keys %v, got %v", want, keys)
	}
}

func TestCollectionEmpty(t *testing.T) {
	p := New(nil)
	ctx := context.Background()

	records, err := p.GetRecords(ctx)
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}

	keys, err := p.GetKeys(ctx)
	if err != nil {
		t.Fatalf("GetKeys returned error: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Expected no keys, got %d", len(keys))
	}

	total, err := p.GetTotalCount(ctx)
	if err != nil {
		t.Fatalf("GetTotalCount returned error: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected total 0, got %d", total)
	}
}

func TestCollectionPageBeyondEnd(t *testing.T) {
	p := New(numberedRecords(5))
	p.Pagination().WithPageSize(10).WithPage(3)

	records, err := p.GetRecords(context.Background())
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Page past the end should be empty, got %d records", len(records))
	}
}

func TestCollectionRefresh(t *testing.T) {
	p := New(numberedRecords(3))
	ctx := context.Background()

	first, err := p.GetRecords(ctx)
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}

	p.Refresh()

	second, err := p.GetRecords(ctx)
	if err != nil {
		t.Fatalf("GetRecords returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Unchanged data should yield the same page after Refresh")
	}
}
