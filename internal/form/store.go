package form

import (
	"fmt"
	"maps"

	"taxportal/pkg/platform/sentinel"
)

// ErrUnknownField is returned when a value targets a field the form does not carry.
var ErrUnknownField = fmt.Errorf("unknown field: %w", sentinel.ErrInvalidInput)

// Values is a snapshot of field values keyed by field id. Missing keys read
// as empty.
type Values map[FieldID]string

// Get returns the value for id, or "" when absent.
func (v Values) Get(id FieldID) string {
	return v[id]
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	return maps.Clone(v)
}

// Store owns the current values of every known field. Fields exist for the
// lifetime of the store and are only ever updated.
//
// Store is not safe for concurrent use; the assistant session serializes all
// access through its event loop.
type Store struct {
	values Values
}

// NewStore returns a store with every known field set to "".
func NewStore() *Store {
	values := make(Values, len(KnownFields))
	for _, id := range KnownFields {
		values[id] = ""
	}
	return &Store{values: values}
}

// Get returns the current value of id.
func (s *Store) Get(id FieldID) string {
	return s.values[id]
}

// Set updates a single field.
func (s *Store) Set(id FieldID, value string) error {
	if !IsKnown(id) {
		return fmt.Errorf("set %q: %w", id, ErrUnknownField)
	}
	s.values[id] = value
	return nil
}

// Apply overwrites every field present in values. Either all fields are
// applied or, if any key is unknown, none are.
func (s *Store) Apply(values Values) error {
	for id := range values {
		if !IsKnown(id) {
			return fmt.Errorf("apply %q: %w", id, ErrUnknownField)
		}
	}
	maps.Copy(s.values, values)
	return nil
}

// Snapshot returns a copy of the current values.
func (s *Store) Snapshot() Values {
	return s.values.Clone()
}
