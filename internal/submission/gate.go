// Package submission implements the authoritative check run when the form is
// submitted. It re-evaluates the current values itself and never trusts the
// live assistant state.
package submission

import (
	"context"
	"log/slog"
	"strings"

	"taxportal/internal/form"
	"taxportal/internal/platform/metrics"
	"taxportal/internal/screening"
	id "taxportal/pkg/domain"
	"taxportal/pkg/platform/audit"
)

type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeRejectedFormat Outcome = "rejected_format"
	OutcomeRejectedFraud  Outcome = "rejected_fraud"
)

// Decision is the gate's verdict. Reason is set only for OutcomeRejectedFraud.
type Decision struct {
	Outcome Outcome
	Reason  screening.ReasonCode
}

// Accepted reports whether the filing may proceed to the success view.
func (d Decision) Accepted() bool { return d.Outcome == OutcomeAccepted }

// Notice is the user-facing message for a rejected decision, or the
// confirmation for an accepted one.
func (d Decision) Notice() string {
	switch d.Outcome {
	case OutcomeRejectedFormat:
		return "Sorry, the tax ID must be formatted as 000-000-000. Please double-check the number."
	case OutcomeRejectedFraud:
		return "This transaction cannot be completed online due to security restrictions. Please visit a Tax Authority branch."
	default:
		return "Your filing was submitted successfully."
	}
}

// Evaluate applies the gate rules in order:
//  1. Tax ID format (hard reject, checked before screening)
//  2. Fresh watch-list screening
//  3. Accept
func Evaluate(registry *screening.Registry, values form.Values) Decision {
	taxID := strings.TrimSpace(values.Get(form.TaxID))
	if _, err := form.ParseTaxID(taxID); err != nil {
		return Decision{Outcome: OutcomeRejectedFormat}
	}

	result := screening.Screen(registry, values.Get(form.FullName), taxID)
	if result.IsFlagged() {
		return Decision{Outcome: OutcomeRejectedFraud, Reason: result.Reason()}
	}
	return Decision{Outcome: OutcomeAccepted}
}

// Gate wraps Evaluate with logging, metrics and the audit trail.
type Gate struct {
	registry *screening.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditor  audit.Emitter
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

func WithAuditor(emitter audit.Emitter) Option {
	return func(g *Gate) {
		g.auditor = emitter
	}
}

func NewGate(registry *screening.Registry, opts ...Option) *Gate {
	g := &Gate{
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit evaluates values and records the decision. Audit failures are
// logged and do not change the decision.
func (g *Gate) Submit(ctx context.Context, sessionID id.SessionID, values form.Values) Decision {
	decision := Evaluate(g.registry, values)
	g.metrics.IncrementSubmission(string(decision.Outcome))

	level := slog.LevelInfo
	if !decision.Accepted() {
		level = slog.LevelWarn
	}
	g.logger.Log(ctx, level, "submission evaluated",
		"session_id", sessionID.String(),
		"outcome", string(decision.Outcome),
		"reason", string(decision.Reason),
	)

	if g.auditor == nil {
		return decision
	}
	action := audit.EventSubmissionAccepted
	if !decision.Accepted() {
		action = audit.EventSubmissionRejected
	}
	event := audit.NewEvent(sessionID, action)
	event.Decision = string(decision.Outcome)
	event.Reason = string(decision.Reason)
	event.SubjectIDHash = audit.HashSubjectID(strings.TrimSpace(values.Get(form.TaxID)))
	if err := g.auditor.Emit(ctx, event); err != nil {
		g.logger.ErrorContext(ctx, "failed to emit submission audit event",
			"session_id", sessionID.String(),
			"error", err,
		)
	}
	return decision
}
