package httptransport

import (
	"time"

	"taxportal/internal/assistant"
	"taxportal/internal/importer"
	"taxportal/internal/session"
	"taxportal/internal/submission"
	"taxportal/pkg/platform/audit"
)

// SessionResponse is the rendered assistant state for the page.
type SessionResponse struct {
	SessionID     string            `json:"session_id"`
	Seq           uint64            `json:"seq"`
	State         string            `json:"state"`
	Reason        string            `json:"reason,omitempty"`
	Message       string            `json:"message"`
	MissingLabels []string          `json:"missing_labels"`
	Alert         string            `json:"alert,omitempty"`
	AlertVisible  bool              `json:"alert_visible"`
	Notice        string            `json:"notice,omitempty"`
	Values        map[string]string `json:"values"`
	Document      string            `json:"document"`
	Import        ImportStatus      `json:"import"`
}

// ImportStatus tells the page whether to enable the import trigger.
type ImportStatus struct {
	Status   string `json:"status"`
	JobID    string `json:"job_id,omitempty"`
	CanStart bool   `json:"can_start"`
}

// FromSnapshot renders a session snapshot. While an import is pending the
// status message is replaced by the pending notice.
func FromSnapshot(snap session.Snapshot) *SessionResponse {
	view := assistant.Render(snap.State)
	message := view.Message
	if snap.ImportPending() {
		message = assistant.ImportPendingMessage
	}

	values := make(map[string]string, len(snap.Values))
	for field, value := range snap.Values {
		values[string(field)] = value
	}

	resp := &SessionResponse{
		SessionID:     snap.SessionID.String(),
		Seq:           snap.Seq,
		State:         string(snap.State.Kind),
		Reason:        string(snap.State.Reason),
		Message:       message,
		MissingLabels: view.MissingLabels,
		Alert:         view.Alert,
		AlertVisible:  view.AlertVisible,
		Notice:        snap.Notice,
		Values:        values,
		Document:      snap.Document,
		Import: ImportStatus{
			Status:   string(snap.Import),
			CanStart: snap.CanImport(),
		},
	}
	if snap.Job != nil {
		resp.Import.JobID = snap.Job.ID.String()
	}
	return resp
}

// ImportJobResponse acknowledges a started import.
type ImportJobResponse struct {
	JobID     string    `json:"job_id"`
	Document  string    `json:"document"`
	StartedAt time.Time `json:"started_at"`
	Message   string    `json:"message"`
}

func FromJob(job importer.Job) *ImportJobResponse {
	return &ImportJobResponse{
		JobID:     job.ID.String(),
		Document:  job.Document,
		StartedAt: job.StartedAt,
		Message:   assistant.ImportPendingMessage,
	}
}

type CancelImportResponse struct {
	Cancelled bool `json:"cancelled"`
}

// SubmissionResponse carries the gate decision and its user-facing notice.
type SubmissionResponse struct {
	Outcome  string `json:"outcome"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Notice   string `json:"notice"`
}

func FromDecision(d submission.Decision) *SubmissionResponse {
	return &SubmissionResponse{
		Outcome:  string(d.Outcome),
		Accepted: d.Accepted(),
		Reason:   string(d.Reason),
		Notice:   d.Notice(),
	}
}

// AuditEventResponse is one entry of a session's audit trail. The tax ID
// hash stays server side.
type AuditEventResponse struct {
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type AuditTrailResponse struct {
	Events []AuditEventResponse `json:"events"`
}

func FromAuditEvents(events []audit.Event) *AuditTrailResponse {
	resp := &AuditTrailResponse{Events: make([]AuditEventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, AuditEventResponse{
			Action:    e.Action,
			Category:  string(e.Category),
			Decision:  e.Decision,
			Reason:    e.Reason,
			RequestID: e.RequestID,
			Timestamp: e.Timestamp,
		})
	}
	return resp
}
