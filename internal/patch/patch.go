// Package patch provides a tri-state JSON field for partial updates.
//
// A PUT body distinguishes three cases per field: the key is absent (keep the
// stored value), the key is null (clear a nullable column), or the key carries
// a value (replace). Plain struct binding collapses the first two, so update
// request structs use Field[T] instead.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a JSON value that remembers whether it appeared in the request.
// The zero value means "absent".
type Field[T any] struct {
	Present bool // key appeared in the request body
	Valid   bool // value was non-null
	Value   T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Set builds a present, non-null field. Used by tests and internal callers.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Valid: true, Value: v}
}

// Null builds a present, explicitly-null field.
func Null[T any]() Field[T] {
	return Field[T]{Present: true}
}

// Ptr returns the field as a nullable pointer: nil when null, &Value when set.
// Only meaningful for present fields.
func (f Field[T]) Ptr() *T {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
