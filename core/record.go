package core

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Records are opaque to the provider layer: the only interpretation ever
// applied to one is a named-field lookup. Both map records
// (map[string]any, the shape SQL rows are scanned into) and struct records
// are supported.

// FieldValue looks up a named field on a record. The second return value
// reports whether the field exists at all, so callers can tell a missing
// field from a legitimately nil value.
func FieldValue(record any, name string) (any, bool) {
	if record == nil {
		return nil, false
	}

	if m, ok := record.(map[string]any); ok {
		value, exists := m[name]
		return value, exists
	}

	val := reflect.ValueOf(record)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, false
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, false
	}

	field := val.FieldByName(name)
	if !field.IsValid() {
		return nil, false
	}

	return field.Interface(), true
}

// compareValues orders two scalar field values: negative if a < b, zero if
// equal, positive if a > b. Nil sorts before everything; mismatched or
// unordered types fall back to comparing their string forms.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}

	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)

	switch {
	case isIntKind(av) && isIntKind(bv):
		return compareOrdered(av.Int(), bv.Int())
	case isUintKind(av) && isUintKind(bv):
		return compareOrdered(av.Uint(), bv.Uint())
	case isFloatKind(av) && isFloatKind(bv):
		return compareOrdered(av.Float(), bv.Float())
	case isIntKind(av) && isFloatKind(bv):
		return compareOrdered(float64(av.Int()), bv.Float())
	case isFloatKind(av) && isIntKind(bv):
		return compareOrdered(av.Float(), float64(bv.Int()))
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return strings.Compare(av.String(), bv.String())
	case av.Kind() == reflect.Bool && bv.Kind() == reflect.Bool:
		ab, bb := av.Bool(), bv.Bool()
		if ab == bb {
			return 0
		}
		if !ab {
			return -1
		}
		return 1
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func compareOrdered[T int64 | uint64 | float64](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func isIntKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatKind(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}
