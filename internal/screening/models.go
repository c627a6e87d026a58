package screening

// ReasonCode explains why a record is on the watch-list.
type ReasonCode string

const (
	ReasonMoneyLaundering      ReasonCode = "money_laundering"
	ReasonRepeatedTaxEvasion   ReasonCode = "repeated_tax_evasion"
	ReasonInternationalBanList ReasonCode = "international_ban_list"
)

var reasonText = map[ReasonCode]string{
	ReasonMoneyLaundering:      "money laundering",
	ReasonRepeatedTaxEvasion:   "repeated tax evasion",
	ReasonInternationalBanList: "international ban list",
}

// IsValid reports whether the code is one the assistant knows how to describe.
func (r ReasonCode) IsValid() bool {
	_, ok := reasonText[r]
	return ok
}

// Text returns the human description shown in the alert banner. Unknown codes
// render as the raw code.
func (r ReasonCode) Text() string {
	if text, ok := reasonText[r]; ok {
		return text
	}
	return string(r)
}

// Record is one watch-listed identity.
type Record struct {
	DisplayName    string     `yaml:"display_name"`
	IdentifierCode string     `yaml:"identifier_code"`
	Reason         ReasonCode `yaml:"reason"`
}

// Result is the outcome of screening: either clear, or flagged with the
// first matching record.
type Result struct {
	flagged bool
	record  Record
}

// Clear is the result when no record matches.
func Clear() Result { return Result{} }

// Flagged builds a result for a matched record.
func Flagged(record Record) Result { return Result{flagged: true, record: record} }

// IsFlagged reports whether a record matched.
func (r Result) IsFlagged() bool { return r.flagged }

// Reason returns the matched record's reason code, or "" when clear.
func (r Result) Reason() ReasonCode { return r.record.Reason }

// Record returns the matched record and whether there was one.
func (r Result) Record() (Record, bool) { return r.record, r.flagged }
