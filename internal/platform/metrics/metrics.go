package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the filing assistant.
type Metrics struct {
	// Resolutions by resulting state kind
	Resolutions *prometheus.CounterVec

	// Watch-list hits by reason code
	ScreeningHits *prometheus.CounterVec

	// Import lifecycle transitions: started, completed, cancelled, rejected
	Imports *prometheus.CounterVec

	// Time from import start to completion
	ImportDuration prometheus.Histogram

	// Submission gate outcomes
	Submissions *prometheus.CounterVec

	// Sessions with a running event loop
	ActiveSessions prometheus.Gauge
}

// New creates and registers all metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers all metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxportal_assistant_resolutions_total",
			Help: "Total assistant state resolutions by resulting state",
		}, []string{"state"}),

		ScreeningHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxportal_screening_hits_total",
			Help: "Total watch-list matches by reason code",
		}, []string{"reason"}),

		Imports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxportal_imports_total",
			Help: "Document import transitions by outcome",
		}, []string{"outcome"}),

		ImportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "taxportal_import_duration_seconds",
			Help:    "Duration between starting and completing a document import",
			Buckets: []float64{0.5, 1, 1.5, 2, 3, 5},
		}),

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxportal_submissions_total",
			Help: "Submission gate decisions by outcome",
		}, []string{"outcome"}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "taxportal_active_sessions",
			Help: "Number of sessions with a running event loop",
		}),
	}
}

// IncrementResolution records one resolution ending in state.
func (m *Metrics) IncrementResolution(state string) {
	if m != nil {
		m.Resolutions.WithLabelValues(state).Inc()
	}
}

// IncrementScreeningHit records a watch-list match.
func (m *Metrics) IncrementScreeningHit(reason string) {
	if m != nil {
		m.ScreeningHits.WithLabelValues(reason).Inc()
	}
}

// IncrementImport records an import transition.
func (m *Metrics) IncrementImport(outcome string) {
	if m != nil {
		m.Imports.WithLabelValues(outcome).Inc()
	}
}

// ObserveImportDuration records how long an import stayed pending.
func (m *Metrics) ObserveImportDuration(d time.Duration) {
	if m != nil {
		m.ImportDuration.Observe(d.Seconds())
	}
}

// IncrementSubmission records a submission gate decision.
func (m *Metrics) IncrementSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

// SessionStarted and SessionStopped track running event loops.
func (m *Metrics) SessionStarted() {
	if m != nil {
		m.ActiveSessions.Inc()
	}
}

func (m *Metrics) SessionStopped() {
	if m != nil {
		m.ActiveSessions.Dec()
	}
}
