package sentinel

import "errors"

// Sentinel errors for state facts. Domain packages wrap these so the transport
// layer can translate them without knowing every package-specific error:
// - ErrNotFound: session or field does not exist
// - ErrConflict: operation collides with work already in flight (pending import)
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: the owning event loop has stopped
// - ErrInvalidInput: malformed identifiers or unknown field names
//
// User-facing advisory outcomes (rejected submissions) are results, not errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidInput = errors.New("invalid input")
)
