package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaxID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", "123-456-789", false},
		{"all zeros", "000-000-000", false},
		{"wrong grouping", "12-34-56", true},
		{"no hyphens", "123456789", true},
		{"extra group", "123-456-789-000", true},
		{"letters", "12a-456-789", true},
		{"surrounding space is not trimmed", " 123-456-789", true},
		{"trailing newline", "123-456-789\n", true},
		{"arabic-indic digits", "١٢٣-٤٥٦-٧٨٩", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseTaxID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTaxID)
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestMustTaxID_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustTaxID("12-34-56") })
	assert.NotPanics(t, func() { MustTaxID("999-999-999") })
}
