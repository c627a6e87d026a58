// Package assistant resolves the filing assistant's state from the current
// form values: flagged by the watch-list, incomplete, or clean.
package assistant

import (
	"slices"

	"taxportal/internal/screening"
)

// Kind discriminates the assistant state.
type Kind string

const (
	KindFlagged    Kind = "flagged"
	KindIncomplete Kind = "incomplete"
	KindClean      Kind = "clean"
)

// State is the resolved assistant state.
//
// Invariants:
//   - KindFlagged carries a Reason and nothing else
//   - KindIncomplete carries a non-empty Missing list and a Quote
//   - KindClean carries nothing
type State struct {
	Kind    Kind
	Reason  screening.ReasonCode
	Missing []string
	Quote   string
}

func Flagged(reason screening.ReasonCode) State {
	return State{Kind: KindFlagged, Reason: reason}
}

func Incomplete(missing []string, quote string) State {
	return State{Kind: KindIncomplete, Missing: slices.Clone(missing), Quote: quote}
}

func Clean() State {
	return State{Kind: KindClean}
}

// SameClassification compares two states ignoring the advisory quote, which
// is re-sampled on every resolution.
func (s State) SameClassification(other State) bool {
	return s.Kind == other.Kind &&
		s.Reason == other.Reason &&
		slices.Equal(s.Missing, other.Missing)
}
