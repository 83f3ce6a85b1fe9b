package core

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// SortDirection represents the sort order
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// String returns a string representation of the sort direction
func (sd SortDirection) String() string {
	return string(sd)
}

// IsValid checks if the sort direction is valid
func (sd SortDirection) IsValid() bool {
	return sd == SortAsc || sd == SortDesc
}

// Opposite returns the opposite sort direction
func (sd SortDirection) Opposite() SortDirection {
	if sd == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// SortField represents a single column-direction pair. A slice of SortField
// forms the active sort spec: the first entry is the primary sort key and
// each following entry breaks ties left by the previous ones.
type SortField struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Sort normalizes requested sort columns against a configured set of
// sortable columns and exposes the resulting spec to consumers (ORDER BY
// builders and the in-memory comparator alike).
type Sort struct {
	Strict bool // reject unknown columns instead of dropping them

	columns       []string
	labels        map[string]string
	orders        []SortField
	defaultOrders []SortField
}

// NewSort creates a Sort restricted to the given sortable columns.
// With no columns configured, lax normalization drops every requested
// column and strict normalization rejects any request.
func NewSort(columns ...string) *Sort {
	return &Sort{
		columns: columns,
		labels:  make(map[string]string),
	}
}

// WithStrict enables or disables strict column validation
func (s *Sort) WithStrict(strict bool) *Sort {
	s.Strict = strict
	return s
}

// WithLabel sets a human-readable label for a column
func (s *Sort) WithLabel(column, label string) *Sort {
	s.labels[column] = label
	return s
}

// WithDefaultOrder sets the spec used when nothing has been requested
func (s *Sort) WithDefaultOrder(orders ...SortField) *Sort {
	s.defaultOrders = orders
	return s
}

// WithColumns replaces the sortable column set. Used by adapters that can
// discover attribute names from their backing store.
func (s *Sort) WithColumns(columns ...string) *Sort {
	s.columns = columns
	return s
}

// Columns returns the configured sortable columns
func (s *Sort) Columns() []string {
	return s.columns
}

// HasColumns reports whether any sortable columns have been configured
func (s *Sort) HasColumns() bool {
	return len(s.columns) > 0
}

// Label returns the configured label for a column, falling back to a
// humanized version of the column name
func (s *Sort) Label(column string) string {
	if label, ok := s.labels[column]; ok {
		return label
	}
	return humanizeColumn(column)
}

// Normalize validates the requested sort fields against the sortable
// columns and installs the result as the active spec. Unknown columns are
// dropped unless Strict is set, in which case normalization fails before
// the data source is ever touched. Duplicate columns keep their first
// occurrence; insertion order defines tie-break precedence.
func (s *Sort) Normalize(requested []SortField) error {
	normalized := make([]SortField, 0, len(requested))
	seen := make(map[string]bool, len(requested))

	for _, sf := range requested {
		if seen[sf.Field] {
			continue
		}
		if !s.isSortable(sf.Field) {
			if s.Strict {
				return fmt.Errorf("%w: %s", ErrInvalidSortColumn, sf.Field)
			}
			continue
		}
		direction := sf.Direction
		if !direction.IsValid() {
			direction = SortAsc
		}
		normalized = append(normalized, SortField{Field: sf.Field, Direction: direction})
		seen[sf.Field] = true
	}

	s.orders = normalized
	return nil
}

// Orders returns the active normalized spec, falling back to the
// configured default order when nothing has been requested
func (s *Sort) Orders() []SortField {
	if len(s.orders) == 0 {
		return s.defaultOrders
	}
	return s.orders
}

// Direction returns the active direction for a column and whether the
// column participates in the current spec at all
func (s *Sort) Direction(column string) (SortDirection, bool) {
	for _, sf := range s.Orders() {
		if sf.Field == column {
			return sf.Direction, true
		}
	}
	return "", false
}

// Toggle returns the spec a widget should request when the user clicks the
// header of the given column: an active column flips its direction and
// becomes the primary key, an inactive one starts ascending
func (s *Sort) Toggle(column string) []SortField {
	direction := SortAsc
	if current, ok := s.Direction(column); ok {
		direction = current.Opposite()
	}
	return []SortField{{Field: column, Direction: direction}}
}

// Comparator builds a multi-key comparator over the active spec: the first
// column is compared first, ties fall through to the next column, and a
// zero result for all columns leaves ordering to the caller's stable sort.
func (s *Sort) Comparator() func(a, b any) int {
	orders := s.Orders()
	return func(a, b any) int {
		for _, sf := range orders {
			av, _ := FieldValue(a, sf.Field)
			bv, _ := FieldValue(b, sf.Field)
			result := compareValues(av, bv)
			if sf.Direction == SortDesc {
				result = -result
			}
			if result != 0 {
				return result
			}
		}
		return 0
	}
}

func (s *Sort) isSortable(column string) bool {
	for _, c := range s.columns {
		if c == column {
			return true
		}
	}
	return false
}

// humanizeColumn converts a column name like "created_at" or "CreatedAt"
// into "Created At"
func humanizeColumn(column string) string {
	words := strings.Fields(strings.ReplaceAll(strcase.ToSnake(column), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
