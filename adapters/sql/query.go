// Package sql provides a cloneable SELECT query over database/sql that
// satisfies the query.Query collaborator contract, so any table reachable
// through a *sql.DB can back a grid provider.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iancoleman/strcase"

	"github.com/preslavrachev/datagrid/adapters/query"
	"github.com/preslavrachev/datagrid/core"
)

// condition is a single equality filter in the WHERE clause. Conditions
// are kept as an ordered slice so the generated SQL is deterministic.
type condition struct {
	column string
	value  any
}

// Query builds and executes SELECT statements against one table. Rows are
// scanned into map[string]any records keyed by column name.
//
// Limit, Offset and OrderBy mutate the query in place; Clone produces an
// independent copy, which is how the provider keeps its count probe and
// page probe from stepping on each other.
type Query struct {
	db          *sql.DB
	table       string
	conditions  []condition
	orders      []core.SortField
	limit       int
	offset      int
	primaryKeys []string
	columns     []string
	logger      *Logger
}

// New creates a query over the given table with no filters, no ordering
// and no pagination window
func New(db *sql.DB, table string) *Query {
	return &Query{
		db:     db,
		table:  table,
		limit:  core.Unbounded,
		offset: core.Unbounded,
		logger: NewLogger(false),
	}
}

// WithDebug enables SQL debug logging
func (q *Query) WithDebug(enabled bool) *Query {
	q.logger.SetEnabled(enabled)
	return q
}

// Where adds an equality filter. The field name is resolved to a column
// name via snake_case conversion unless it already is one.
func (q *Query) Where(field string, value any) *Query {
	q.conditions = append(q.conditions, condition{column: columnName(field), value: value})
	return q
}

// WithPrimaryKey declares the table's primary-key fields, driving the
// provider's default key policy
func (q *Query) WithPrimaryKey(fields ...string) *Query {
	q.primaryKeys = fields
	return q
}

// WithColumns declares the attribute names of the records this query
// yields; the provider uses them as the sortable column set
func (q *Query) WithColumns(columns ...string) *Query {
	q.columns = columns
	return q
}

// Clone returns an independent copy of the query. The copies share the
// database handle and logger but no mutable builder state.
func (q *Query) Clone() query.Query {
	clone := *q
	clone.conditions = make([]condition, len(q.conditions))
	copy(clone.conditions, q.conditions)
	clone.orders = make([]core.SortField, len(q.orders))
	copy(clone.orders, q.orders)
	clone.primaryKeys = append([]string(nil), q.primaryKeys...)
	clone.columns = append([]string(nil), q.columns...)
	return &clone
}

// Limit caps the result set; core.Unbounded removes the cap
func (q *Query) Limit(n int) {
	q.limit = n
}

// Offset skips leading records; core.Unbounded removes the skip
func (q *Query) Offset(n int) {
	q.offset = n
}

// OrderBy installs the sort spec; nil clears any ordering
func (q *Query) OrderBy(orders []core.SortField) {
	q.orders = orders
}

// PrimaryKeyFields returns the declared primary-key fields
func (q *Query) PrimaryKeyFields() []string {
	return q.primaryKeys
}

// AttributeNames returns the declared record attribute names
func (q *Query) AttributeNames() []string {
	return q.columns
}

// Count executes a COUNT(*) over the filtered table, ignoring any limit,
// offset and ordering
func (q *Query) Count(ctx context.Context) (int, error) {
	if q.db == nil || q.table == "" {
		return 0, fmt.Errorf("%w: query has no database or table", core.ErrInvalidConfiguration)
	}

	queryStr := fmt.Sprintf("SELECT COUNT(*) FROM %s", q.table)
	whereClause, args := q.buildWhere()
	queryStr += whereClause

	var count int
	start := time.Now()
	err := q.db.QueryRowContext(ctx, queryStr, args...).Scan(&count)
	duration := time.Since(start)
	if err != nil {
		q.logger.LogError(queryStr, args, duration, err)
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	q.logger.LogQuery(queryStr, args, duration, 1)

	return count, nil
}

// All executes the SELECT and scans every row into a map record
func (q *Query) All(ctx context.Context) ([]any, error) {
	if q.db == nil || q.table == "" {
		return nil, fmt.Errorf("%w: query has no database or table", core.ErrInvalidConfiguration)
	}

	queryStr := fmt.Sprintf("SELECT * FROM %s", q.table)
	whereClause, args := q.buildWhere()
	queryStr += whereClause

	if len(q.orders) > 0 {
		var orderClauses []string
		for _, sf := range q.orders {
			direction := "ASC"
			if sf.Direction == core.SortDesc {
				direction = "DESC"
			}
			orderClauses = append(orderClauses, fmt.Sprintf("%s %s", columnName(sf.Field), direction))
		}
		queryStr += " ORDER BY " + strings.Join(orderClauses, ", ")
	}

	if q.limit != core.Unbounded {
		queryStr += fmt.Sprintf(" LIMIT %d", q.limit)
		if q.offset != core.Unbounded && q.offset > 0 {
			queryStr += fmt.Sprintf(" OFFSET %d", q.offset)
		}
	}

	start := time.Now()
	rows, err := q.db.QueryContext(ctx, queryStr, args...)
	if err != nil {
		q.logger.LogError(queryStr, args, time.Since(start), err)
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	q.logger.LogQuery(queryStr, args, time.Since(start), len(records))

	return records, nil
}

// buildWhere renders the WHERE clause and its arguments
func (q *Query) buildWhere() (string, []any) {
	if len(q.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(q.conditions))
	args := make([]any, 0, len(q.conditions))
	for _, c := range q.conditions {
		clauses = append(clauses, fmt.Sprintf("%s = ?", c.column))
		args = append(args, c.value)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanRecords scans every row into a map[string]any keyed by column name
func scanRecords(rows *sql.Rows) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []any
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(map[string]any, len(columns))
		for i, column := range columns {
			value := values[i]
			// Drivers commonly hand text columns back as []byte
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			record[column] = value
		}
		records = append(records, any(record))
	}

	return records, nil
}

// columnName resolves a field name to a database column name via
// snake_case conversion
func columnName(field string) string {
	return strcase.ToSnake(field)
}
