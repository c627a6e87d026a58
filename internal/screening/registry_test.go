package screening

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	records := reg.Records()

	require.Len(t, records, 3)
	assert.Equal(t, "Blacklisted Entity", records[0].DisplayName)
	assert.Equal(t, "999-999-999", records[0].IdentifierCode)
	assert.Equal(t, ReasonMoneyLaundering, records[0].Reason)
	assert.Equal(t, "111-222-333", records[2].IdentifierCode)

	records[0].DisplayName = "mutated"
	assert.Equal(t, "Blacklisted Entity", reg.Records()[0].DisplayName)
}

func TestLoadRegistry(t *testing.T) {
	t.Run("parses records in order", func(t *testing.T) {
		doc := `
records:
  - display_name: First
    identifier_code: "123-123-123"
    reason: money_laundering
  - display_name: Second
    identifier_code: "321-321-321"
    reason: repeated_tax_evasion
`
		reg, err := LoadRegistry(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())
		assert.Equal(t, "First", reg.Records()[0].DisplayName)
	})

	t.Run("rejects malformed identifier", func(t *testing.T) {
		doc := `
records:
  - display_name: Broken
    identifier_code: "12-34-56"
    reason: money_laundering
`
		_, err := LoadRegistry(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("rejects unknown reason", func(t *testing.T) {
		doc := `
records:
  - display_name: Broken
    identifier_code: "123-456-789"
    reason: jaywalking
`
		_, err := LoadRegistry(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		doc := `
records:
  - display_name: Broken
    identifier_code: "123-456-789"
    reason: money_laundering
    score: 3
`
		_, err := LoadRegistry(strings.NewReader(doc))
		assert.Error(t, err)
	})
}

func TestReasonCode_Text(t *testing.T) {
	assert.Equal(t, "money laundering", ReasonMoneyLaundering.Text())
	assert.Equal(t, "custom", ReasonCode("custom").Text())
	assert.False(t, ReasonCode("custom").IsValid())
}
