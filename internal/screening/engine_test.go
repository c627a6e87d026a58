package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreen(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name       string
		inputName  string
		inputID    string
		wantFlag   bool
		wantReason ReasonCode
	}{
		{"no input is clear", "", "", false, ""},
		{"whitespace only is clear", "   ", "\t", false, ""},
		{"unrelated identity is clear", "Sara Hassan", "123-456-789", false, ""},
		{"exact display name", "Blacklisted Entity", "", true, ReasonMoneyLaundering},
		{"partial display name", "Entity", "", true, ReasonMoneyLaundering},
		{"name containing display name", "The Blacklisted Entity Ltd", "", true, ReasonMoneyLaundering},
		{"name is trimmed before matching", "  Blacklisted Entity  ", "", true, ReasonMoneyLaundering},
		{"matching is case sensitive", "blacklisted entity", "", false, ""},
		{"registered identifier", "", "999-999-999", true, ReasonMoneyLaundering},
		{"identifier is trimmed", "", " 000-000-000 ", true, ReasonRepeatedTaxEvasion},
		{"identifier needs exact equality", "", "999-999-99", false, ""},
		{"arabic partial name", "علي", "", true, ReasonRepeatedTaxEvasion},
		{"identifier match with clean name", "Sara Hassan", "111-222-333", true, ReasonInternationalBanList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Screen(reg, tt.inputName, tt.inputID)
			assert.Equal(t, tt.wantFlag, result.IsFlagged())
			assert.Equal(t, tt.wantReason, result.Reason())
		})
	}
}

func TestScreen_FirstMatchInRegistryOrderWins(t *testing.T) {
	reg, err := NewRegistry([]Record{
		{DisplayName: "Alpha Trading", IdentifierCode: "100-000-001", Reason: ReasonRepeatedTaxEvasion},
		{DisplayName: "Beta Holdings", IdentifierCode: "200-000-002", Reason: ReasonMoneyLaundering},
	})
	require.NoError(t, err)

	// name hits the second record, identifier hits the first
	result := Screen(reg, "Beta", "100-000-001")
	rec, ok := result.Record()
	require.True(t, ok)
	assert.Equal(t, "Alpha Trading", rec.DisplayName)
	assert.Equal(t, ReasonRepeatedTaxEvasion, result.Reason())
}

func TestScreen_NilRegistryIsClear(t *testing.T) {
	assert.False(t, Screen(nil, "Blacklisted Entity", "999-999-999").IsFlagged())
}

func TestScreen_Deterministic(t *testing.T) {
	reg := DefaultRegistry()
	first := Screen(reg, "Entity", "")
	for range 10 {
		assert.Equal(t, first, Screen(reg, "Entity", ""))
	}
}
