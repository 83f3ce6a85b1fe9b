package core

import "fmt"

// KeyPolicy decides how a stable identity value is produced for each
// record on a page. Exactly one of the concrete policies below applies per
// provider; when none is configured the fallback is adapter-specific (see
// the adapter packages).
type KeyPolicy interface {
	keyPolicy()
}

// SingleField extracts the named field of each record as its key
type SingleField string

// CompositeFields extracts the named fields of each record into a
// field-to-value map, for backing stores with a multi-column identity
type CompositeFields []string

// CustomExtractor produces a key per record via a caller-supplied
// function. Errors returned by the function propagate unmodified.
type CustomExtractor func(record any) (any, error)

func (SingleField) keyPolicy()     {}
func (CompositeFields) keyPolicy() {}
func (CustomExtractor) keyPolicy() {}

// ExtractKeys produces one key per record, in record order. A field named
// by SingleField or CompositeFields that is absent on a record fails with
// ErrMissingField; no default is ever substituted because silently
// corrupted identities are worse than a visible failure.
func ExtractKeys(records []any, policy KeyPolicy) ([]any, error) {
	keys := make([]any, 0, len(records))

	switch p := policy.(type) {
	case SingleField:
		for i, record := range records {
			value, ok := FieldValue(record, string(p))
			if !ok {
				return nil, fmt.Errorf("%w: %s on record %d", ErrMissingField, string(p), i)
			}
			keys = append(keys, value)
		}

	case CompositeFields:
		for i, record := range records {
			key := make(map[string]any, len(p))
			for _, field := range p {
				value, ok := FieldValue(record, field)
				if !ok {
					return nil, fmt.Errorf("%w: %s on record %d", ErrMissingField, field, i)
				}
				key[field] = value
			}
			keys = append(keys, key)
		}

	case CustomExtractor:
		for _, record := range records {
			key, err := p(record)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}

	default:
		return nil, fmt.Errorf("%w: no key policy configured", ErrInvalidConfiguration)
	}

	return keys, nil
}
