package assistant

import "fmt"

// Messages shown around the simulated document import.
const (
	ImportPendingMessage  = "Ustaz Bayoumi is reviewing the attached template and matching it against the official data... one moment."
	ImportCompletedNotice = "The data was extracted from the file successfully. Ustaz Bayoumi matched it against the official form."
)

// View is the rendered form of a State for the presentation layer.
type View struct {
	Message       string
	MissingLabels []string
	Alert         string
	AlertVisible  bool
}

// Render turns a state into the status message, the ordered missing-field
// list and the alert banner. The banner is visible only for flagged states.
func Render(state State) View {
	switch state.Kind {
	case KindFlagged:
		return View{
			Message:       "Hold on! There is a security problem here...",
			MissingLabels: []string{},
			Alert: fmt.Sprintf(
				"Warning from Ustaz Bayoumi: this data looks suspicious (%s). You must contact the Tax Authority in person immediately.",
				state.Reason.Text(),
			),
			AlertVisible: true,
		}
	case KindIncomplete:
		return View{
			Message:       fmt.Sprintf("Ustaz Bayoumi says: \"%s\"\n\nA few things are still missing before we can continue:", state.Quote),
			MissingLabels: append([]string{}, state.Missing...),
		}
	default:
		return View{
			Message:       "Splendid! The data is correct and matches the form. Go ahead and submit.",
			MissingLabels: []string{},
		}
	}
}
