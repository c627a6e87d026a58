package assistant

import (
	"fmt"
	"log/slog"

	"taxportal/internal/form"
	"taxportal/internal/platform/metrics"
	"taxportal/internal/screening"
	"taxportal/internal/validation"
)

// Resolver maps field values to an assistant state.
type Resolver struct {
	fraud   *screening.Registry
	fields  *form.Registry
	quotes  QuoteSource
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func NewResolver(
	fraud *screening.Registry,
	fields *form.Registry,
	quotes QuoteSource,
	opts ...Option,
) (*Resolver, error) {
	if fraud == nil {
		return nil, fmt.Errorf("fraud registry is required")
	}
	if fields == nil {
		return nil, fmt.Errorf("field registry is required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("quote source is required")
	}

	r := &Resolver{
		fraud:  fraud,
		fields: fields,
		quotes: quotes,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Fields returns the field registry the resolver validates against.
func (r *Resolver) Fields() *form.Registry { return r.fields }

// Resolve screens the identity fields, validates all required fields, and
// applies precedence. The classification is a pure function of values; only
// the quote of an incomplete state varies between calls.
func (r *Resolver) Resolve(values form.Values) State {
	screened := screening.Screen(r.fraud, values.Get(form.FullName), values.Get(form.TaxID))
	validated := validation.Validate(values, r.fields)
	state := decide(screened, validated, r.quotes)

	r.metrics.IncrementResolution(string(state.Kind))
	if screened.IsFlagged() {
		r.metrics.IncrementScreeningHit(string(screened.Reason()))
	}
	r.logger.Debug("assistant state resolved",
		"state", string(state.Kind),
		"reason", string(state.Reason),
		"missing", len(validated.Missing),
	)
	return state
}

// decide applies the precedence rules:
//  1. Watch-list match (dominates missing fields)
//  2. Missing required fields
//  3. Clean
func decide(screened screening.Result, validated validation.Result, quotes QuoteSource) State {
	if screened.IsFlagged() {
		return Flagged(screened.Reason())
	}
	if !validated.Complete() {
		return Incomplete(validated.Labels(), quotes.Pick())
	}
	return Clean()
}
