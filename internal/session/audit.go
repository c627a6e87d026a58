package session

import (
	"context"
	"slices"

	"taxportal/pkg/attrs"
	"taxportal/pkg/platform/audit"
	"taxportal/pkg/requestcontext"
)

// logAudit logs an audit-relevant action and forwards it to the audit
// trail when one is configured. attributes are slog-style key/value pairs.
func (s *Session) logAudit(ctx context.Context, action audit.AuditEvent, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	args := slices.Concat([]any{
		"session_id", s.id.String(),
		"request_id", requestID,
	}, attributes)
	s.logger.InfoContext(ctx, string(action), args...)

	if s.auditor == nil {
		return
	}
	event := audit.NewEvent(s.id, action)
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestID
	event.Decision = attrs.ExtractString(attributes, "decision")
	event.Reason = attrs.ExtractString(attributes, "reason")
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"session_id", s.id.String(),
			"action", string(action),
			"error", err,
		)
	}
}
