package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taxportal/internal/form"
)

func TestValidate(t *testing.T) {
	reg := form.DefaultRegistry()
	complete := form.Values{
		form.FullName:        "Sara Hassan",
		form.TaxID:           "123-456-789",
		form.TransactionType: "commercial",
		form.Amount:          "5000",
	}

	tests := []struct {
		name   string
		values form.Values
		want   []string
	}{
		{
			name:   "all required present",
			values: complete,
			want:   []string{},
		},
		{
			name:   "nil values report every required field",
			values: nil,
			want:   []string{"Taxpayer full name", "Tax ID", "Transaction type", "Transaction amount (EGP)"},
		},
		{
			name: "whitespace counts as empty",
			values: form.Values{
				form.FullName:        "  ",
				form.TaxID:           "123-456-789",
				form.TransactionType: "\t",
				form.Amount:          "1",
			},
			want: []string{"Taxpayer full name", "Transaction type"},
		},
		{
			name: "order follows registry, not input",
			values: form.Values{
				form.TransactionType: "commercial",
				form.FullName:        "Sara",
			},
			want: []string{"Tax ID", "Transaction amount (EGP)"},
		},
		{
			name: "optional notes never reported",
			values: form.Values{
				form.FullName:        "Sara",
				form.TaxID:           "123-456-789",
				form.TransactionType: "commercial",
				form.Amount:          "10",
				form.Notes:           "",
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.values, reg)
			assert.Equal(t, tt.want, result.Labels())
			assert.Equal(t, len(tt.want) == 0, result.Complete())
		})
	}
}

func TestValidate_CustomRegistry(t *testing.T) {
	reg, err := form.NewRegistry(form.Field{ID: form.Notes, Label: "Notes"})
	assert.NoError(t, err)

	result := Validate(form.Values{form.FullName: ""}, reg)
	assert.Equal(t, []string{"Notes"}, result.Labels())
	assert.Equal(t, form.Notes, result.Missing[0].ID)
}
