// Package importer simulates automated extraction of form data from an
// uploaded document: after a fixed delay it produces a canonical field set.
//
// The simulator is a two-state machine (idle, pending). Completion is a
// scheduled callback, never a blocking wait, and can be cancelled.
package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"taxportal/internal/form"
	"taxportal/internal/platform/metrics"
	id "taxportal/pkg/domain"
	"taxportal/pkg/platform/sentinel"
)

// DefaultDelay is how long a simulated extraction stays pending.
const DefaultDelay = 1500 * time.Millisecond

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
)

var (
	// ErrBusy is returned when an import is started while one is pending.
	ErrBusy = fmt.Errorf("import already pending: %w", sentinel.ErrConflict)

	// ErrNoDocument is returned when no document has been selected.
	ErrNoDocument = fmt.Errorf("no document selected: %w", sentinel.ErrInvalidState)

	errNilCompletion = errors.New("completion callback is required")
)

// Job is an in-flight simulated extraction.
type Job struct {
	ID        id.ImportJobID
	Document  string
	StartedAt time.Time
}

// Extraction is what a completed job hands back.
type Extraction struct {
	Job    Job
	Values form.Values
}

type pendingImport struct {
	job   Job
	timer Timer
}

// Simulator owns at most one pending import.
type Simulator struct {
	mu        sync.Mutex
	pending   *pendingImport
	delay     time.Duration
	scheduler Scheduler
	now       func() time.Time
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Simulator)

// WithDelay overrides DefaultDelay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.delay = d
		}
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(s *Simulator) {
		s.scheduler = scheduler
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Simulator) {
		s.metrics = m
	}
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		delay:     DefaultDelay,
		scheduler: RealScheduler{},
		now:       time.Now,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay returns the configured pending duration.
func (s *Simulator) Delay() time.Duration { return s.delay }

// Start moves the simulator from idle to pending and schedules a single
// completion. onComplete runs on the scheduler's goroutine after the
// simulator is idle again; it is never called for a cancelled job.
func (s *Simulator) Start(document string, onComplete func(Extraction)) (Job, error) {
	if onComplete == nil {
		return Job{}, errNilCompletion
	}
	document = strings.TrimSpace(document)
	if document == "" {
		return Job{}, ErrNoDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.metrics.IncrementImport("rejected")
		s.logger.Warn("import rejected while pending",
			"job_id", s.pending.job.ID.String(),
		)
		return Job{}, ErrBusy
	}

	job := Job{
		ID:        id.NewImportJobID(),
		Document:  document,
		StartedAt: s.now(),
	}
	p := &pendingImport{job: job}
	s.pending = p
	p.timer = s.scheduler.AfterFunc(s.delay, func() {
		s.complete(p, onComplete)
	})

	s.metrics.IncrementImport("started")
	s.logger.Info("import started",
		"job_id", job.ID.String(),
		"document", job.Document,
		"delay_ms", s.delay.Milliseconds(),
	)
	return job, nil
}

func (s *Simulator) complete(p *pendingImport, onComplete func(Extraction)) {
	s.mu.Lock()
	if s.pending != p {
		// cancelled before the callback acquired the lock
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	elapsed := s.now().Sub(p.job.StartedAt)
	s.metrics.IncrementImport("completed")
	s.metrics.ObserveImportDuration(elapsed)
	s.logger.Info("import completed",
		"job_id", p.job.ID.String(),
		"duration_ms", elapsed.Milliseconds(),
	)

	onComplete(Extraction{Job: p.job, Values: CanonicalValues()})
}

// Cancel drops the pending import, if any. It reports whether a job was
// cancelled.
func (s *Simulator) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	s.pending.timer.Stop()
	s.metrics.IncrementImport("cancelled")
	s.logger.Info("import cancelled", "job_id", s.pending.job.ID.String())
	s.pending = nil
	return true
}

// Status reports idle or pending.
func (s *Simulator) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return StatusPending
	}
	return StatusIdle
}

// Pending returns the in-flight job, if any.
func (s *Simulator) Pending() (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Job{}, false
	}
	return s.pending.job, true
}
