package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	id "taxportal/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers accepted filings.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers watch-list hits and rejected submissions.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine session activity such as imports.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the assistant to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	SessionID id.SessionID
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// SubjectIDHash is a SHA-256 hash of the entered tax identifier. The raw
	// identifier never reaches the audit trail.
	SubjectIDHash string
}

type AuditEvent string

const (
	EventSessionOpened AuditEvent = "session_opened"

	EventScreeningFlagged AuditEvent = "screening_flagged"

	EventImportStarted   AuditEvent = "import_started"
	EventImportCompleted AuditEvent = "import_completed"
	EventImportCancelled AuditEvent = "import_cancelled"

	EventSubmissionAccepted AuditEvent = "submission_accepted"
	EventSubmissionRejected AuditEvent = "submission_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventSubmissionAccepted: CategoryCompliance,

	EventScreeningFlagged:   CategorySecurity,
	EventSubmissionRejected: CategorySecurity,

	EventSessionOpened:   CategoryOperations,
	EventImportStarted:   CategoryOperations,
	EventImportCompleted: CategoryOperations,
	EventImportCancelled: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// NewEvent builds an Event with its category filled in from the action.
func NewEvent(sessionID id.SessionID, action AuditEvent) Event {
	return Event{
		Category:  action.Category(),
		SessionID: sessionID,
		Action:    string(action),
	}
}

// HashSubjectID returns the hex SHA-256 of a subject identifier, or "" for an
// empty identifier.
func HashSubjectID(subject string) string {
	if subject == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(subject))
	return hex.EncodeToString(sum[:])
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, sessionID id.SessionID) ([]Event, error)
}

// Emitter is the write side consumed by the assistant packages.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Reader is the read side behind the session audit route.
type Reader interface {
	List(ctx context.Context, sessionID id.SessionID) ([]Event, error)
}
