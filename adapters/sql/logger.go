package sql

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Logger provides toggleable SQL debug logging for the query builder
type Logger struct {
	enabled bool
	mu      sync.RWMutex
}

// NewLogger creates a new SQL logger
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
	}
}

// IsEnabled returns whether SQL logging is enabled
func (l *Logger) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// SetEnabled enables or disables SQL logging
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// LogQuery logs a query with execution time and row count
func (l *Logger) LogQuery(query string, args []any, duration time.Duration, rowCount int) {
	if !l.IsEnabled() {
		return
	}

	log.Printf("[SQL] [%.2fms] [rows:%d] %s %s",
		float64(duration.Nanoseconds())/1e6,
		rowCount,
		l.formatQuery(query),
		l.formatArgs(args))
}

// LogError logs a query that resulted in an error
func (l *Logger) LogError(query string, args []any, duration time.Duration, err error) {
	if !l.IsEnabled() {
		return
	}

	log.Printf("[SQL] [%.2fms] [ERROR] %s %s - %v",
		float64(duration.Nanoseconds())/1e6,
		l.formatQuery(query),
		l.formatArgs(args),
		err)
}

// formatQuery cleans up the SQL query for better readability
func (l *Logger) formatQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.ReplaceAll(query, "\n", " ")
	query = strings.ReplaceAll(query, "\t", " ")

	// Collapse multiple spaces into single spaces
	for strings.Contains(query, "  ") {
		query = strings.ReplaceAll(query, "  ", " ")
	}

	return query
}

// formatArgs formats the query arguments for logging
func (l *Logger) formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			formatted = append(formatted, fmt.Sprintf("%q", v))
		case nil:
			formatted = append(formatted, "NULL")
		default:
			formatted = append(formatted, fmt.Sprintf("%v", v))
		}
	}

	return "[" + strings.Join(formatted, ", ") + "]"
}
