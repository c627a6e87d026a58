// Package validation computes which required form fields are still empty.
package validation

import (
	"strings"

	"taxportal/internal/form"
)

// Result lists the missing required fields in registry order.
type Result struct {
	Missing []form.Field
}

// Complete reports whether every required field has a value.
func (r Result) Complete() bool { return len(r.Missing) == 0 }

// Labels returns the display labels of the missing fields, in registry order.
func (r Result) Labels() []string {
	labels := make([]string, 0, len(r.Missing))
	for _, f := range r.Missing {
		labels = append(labels, f.Label)
	}
	return labels
}

// Validate walks the registry in order and collects every required field
// whose trimmed value is empty.
func Validate(values form.Values, registry *form.Registry) Result {
	var result Result
	for _, field := range registry.RequiredFields() {
		if strings.TrimSpace(values.Get(field.ID)) == "" {
			result.Missing = append(result.Missing, field)
		}
	}
	return result
}
