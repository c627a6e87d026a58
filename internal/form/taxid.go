package form

import (
	"errors"
	"regexp"
)

// TaxIdentifier is a validated tax identifier.
//
// Invariants:
//   - Exactly three digits, hyphen, three digits, hyphen, three digits
type TaxIdentifier struct {
	value string
}

var taxIDPattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{3}$`)

// ErrInvalidTaxID indicates the identifier does not follow NNN-NNN-NNN.
var ErrInvalidTaxID = errors.New("invalid tax id: must be formatted as 000-000-000")

// ParseTaxID validates value against the NNN-NNN-NNN pattern. The value is
// matched as given; callers trim it first.
func ParseTaxID(value string) (TaxIdentifier, error) {
	if !taxIDPattern.MatchString(value) {
		return TaxIdentifier{}, ErrInvalidTaxID
	}
	return TaxIdentifier{value: value}, nil
}

// MustTaxID creates a TaxIdentifier, panicking if invalid.
// Use only in tests or for embedded data known to be valid.
func MustTaxID(value string) TaxIdentifier {
	id, err := ParseTaxID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (t TaxIdentifier) String() string { return t.value }

// IsZero returns true for the zero value.
func (t TaxIdentifier) IsZero() bool { return t.value == "" }
