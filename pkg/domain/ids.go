// Package domain holds typed identifiers shared across the assistant packages.
//
// Typed IDs keep a session ID from being passed where an import job ID is
// expected. Parsing happens once at the transport boundary.
package domain

import (
	"fmt"

	"github.com/google/uuid"

	"taxportal/pkg/platform/sentinel"
)

// ErrInvalidID is returned for empty, malformed or nil UUID input.
var ErrInvalidID = fmt.Errorf("invalid id: %w", sentinel.ErrInvalidInput)

// SessionID identifies one form-filling session.
type SessionID uuid.UUID

// ImportJobID identifies one simulated document import.
type ImportJobID uuid.UUID

// NewSessionID returns a random SessionID.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewImportJobID returns a random ImportJobID.
func NewImportJobID() ImportJobID { return ImportJobID(uuid.New()) }

func (id SessionID) String() string   { return uuid.UUID(id).String() }
func (id ImportJobID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is the zero UUID.
func (id SessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the id is the zero UUID.
func (id ImportJobID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseSessionID parses a SessionID from its string form.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session id")
	return SessionID(u), err
}

// ParseImportJobID parses an ImportJobID from its string form.
func ParseImportJobID(s string) (ImportJobID, error) {
	u, err := parseUUID(s, "import job id")
	return ImportJobID(u), err
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("%s required: %w", kind, ErrInvalidID)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", kind, s, ErrInvalidID)
	}
	if u == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s cannot be nil: %w", kind, ErrInvalidID)
	}
	return u, nil
}
