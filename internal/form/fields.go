// Package form models the tax filing form: the registry of required fields
// with their display labels, and the owned store of current field values.
package form

import (
	"errors"
	"fmt"
	"slices"
)

// FieldID is the stable key of a form field.
type FieldID string

const (
	FullName        FieldID = "fullName"
	TaxID           FieldID = "taxId"
	TransactionType FieldID = "transactionType"
	Amount          FieldID = "amount"
	Notes           FieldID = "notes"
)

// KnownFields lists every field the form carries, required or not.
var KnownFields = []FieldID{FullName, TaxID, TransactionType, Amount, Notes}

// IsKnown reports whether id names a field of the form.
func IsKnown(id FieldID) bool {
	return slices.Contains(KnownFields, id)
}

// Field pairs a field identifier with the label shown to the taxpayer.
type Field struct {
	ID    FieldID
	Label string
}

// ErrInvalidRegistry is returned when a registry declaration is malformed.
var ErrInvalidRegistry = errors.New("invalid field registry")

// Registry declares the required fields in display order. It is immutable
// once built.
type Registry struct {
	fields []Field
}

// NewRegistry builds a registry from an ordered list of required fields.
func NewRegistry(fields ...Field) (*Registry, error) {
	seen := make(map[FieldID]struct{}, len(fields))
	for _, f := range fields {
		if f.ID == "" || f.Label == "" {
			return nil, fmt.Errorf("field %q has empty id or label: %w", f.ID, ErrInvalidRegistry)
		}
		if _, dup := seen[f.ID]; dup {
			return nil, fmt.Errorf("field %q declared twice: %w", f.ID, ErrInvalidRegistry)
		}
		seen[f.ID] = struct{}{}
	}
	return &Registry{fields: slices.Clone(fields)}, nil
}

// DefaultRegistry returns the required fields of the filing form.
func DefaultRegistry() *Registry {
	return &Registry{fields: []Field{
		{ID: FullName, Label: "Taxpayer full name"},
		{ID: TaxID, Label: "Tax ID"},
		{ID: TransactionType, Label: "Transaction type"},
		{ID: Amount, Label: "Transaction amount (EGP)"},
	}}
}

// RequiredFields returns the required fields in registry order.
func (r *Registry) RequiredFields() []Field {
	return slices.Clone(r.fields)
}

// Label returns the display label of a required field.
func (r *Registry) Label(id FieldID) (string, bool) {
	for _, f := range r.fields {
		if f.ID == id {
			return f.Label, true
		}
	}
	return "", false
}
