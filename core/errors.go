package core

import "errors"

var (
	// ErrInvalidConfiguration indicates a required collaborator (such as
	// the backing query object) is missing or malformed
	ErrInvalidConfiguration = errors.New("invalid provider configuration")

	// ErrInvalidSortColumn indicates a requested sort column is not in the
	// sortable set under strict validation
	ErrInvalidSortColumn = errors.New("invalid sort column")

	// ErrMissingField indicates key extraction referenced a field that is
	// absent on a record
	ErrMissingField = errors.New("missing key field")
)
