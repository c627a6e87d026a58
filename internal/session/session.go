// Package session serializes everything that happens to one filing form:
// field edits, document selection, imports and submission all run as events
// on a single loop, and every mutation is followed by exactly one assistant
// resolution.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"taxportal/internal/assistant"
	"taxportal/internal/form"
	"taxportal/internal/importer"
	"taxportal/internal/platform/metrics"
	"taxportal/internal/submission"
	id "taxportal/pkg/domain"
	"taxportal/pkg/platform/audit"
	"taxportal/pkg/platform/sentinel"
)

const tracerName = "taxportal/internal/session"

var (
	// ErrSessionClosed is returned for operations on a session whose loop has
	// stopped.
	ErrSessionClosed = fmt.Errorf("session closed: %w", sentinel.ErrUnavailable)

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("session loop already running")
)

// Cause names the event that led to a resolution.
type Cause string

const (
	CauseOpened           Cause = "opened"
	CauseFieldChanged     Cause = "field_changed"
	CauseDocumentSelected Cause = "document_selected"
	CauseImportCompleted  Cause = "import_completed"
)

// Snapshot is a consistent view of a session taken on its loop.
type Snapshot struct {
	SessionID id.SessionID
	Seq       uint64
	State     assistant.State
	Values    form.Values
	Document  string
	Import    importer.Status
	// Job is set while an import is pending.
	Job *importer.Job
	// Notice carries the import completion message until the next edit.
	Notice string
}

// ImportPending reports whether the import trigger should be disabled.
func (s Snapshot) ImportPending() bool {
	return s.Import == importer.StatusPending
}

// CanImport reports whether a document is selected and no import is running.
func (s Snapshot) CanImport() bool {
	return s.Document != "" && !s.ImportPending()
}

// Update is delivered to observers after every resolution.
type Update struct {
	Snapshot
	Cause Cause
}

// Observer receives updates on the session loop. Implementations must not
// call back into the session synchronously.
type Observer interface {
	StateChanged(Update)
}

type ObserverFunc func(Update)

func (f ObserverFunc) StateChanged(u Update) { f(u) }

type event struct {
	ctx  context.Context
	name string
	fn   func(ctx context.Context)
	done chan struct{}
}

// Session owns a form store, an import simulator and the last resolved
// assistant state. All access goes through Run's loop.
type Session struct {
	id       id.SessionID
	resolver *assistant.Resolver
	importer *importer.Simulator
	gate     *submission.Gate

	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditor   audit.Emitter
	tracer    trace.Tracer
	observers []Observer

	idleTimeout time.Duration

	// loop-owned
	store    *form.Store
	document string
	state    assistant.State
	seq      uint64
	notice   string
	// importing is set from a successful start until the loop applies or
	// cancels that job. The simulator goes idle before its completion
	// reaches the loop, so pending status is read from here.
	importing *importer.Job

	events    chan event
	quit      chan struct{}
	done      chan struct{}
	running   atomic.Bool
	closeOnce sync.Once
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

func WithAuditor(emitter audit.Emitter) Option {
	return func(s *Session) {
		s.auditor = emitter
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) {
		s.tracer = tracer
	}
}

func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

// WithIdleTimeout stops the loop after d without events. Zero disables it.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.idleTimeout = d
	}
}

func WithSessionID(sessionID id.SessionID) Option {
	return func(s *Session) {
		s.id = sessionID
	}
}

func NewSession(
	resolver *assistant.Resolver,
	simulator *importer.Simulator,
	gate *submission.Gate,
	opts ...Option,
) (*Session, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if simulator == nil {
		return nil, fmt.Errorf("import simulator is required")
	}
	if gate == nil {
		return nil, fmt.Errorf("submission gate is required")
	}

	s := &Session{
		resolver: resolver,
		importer: simulator,
		gate:     gate,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
		store:    form.NewStore(),
		events:   make(chan event),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id.IsNil() {
		s.id = id.NewSessionID()
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() id.SessionID { return s.id }

// Done is closed once the loop has stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

// Run resolves the initial state and then handles events until ctx ends,
// Close is called or the idle timeout passes. Any pending import is
// cancelled on the way out.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.metrics.SessionStarted()
	defer func() {
		if s.importer.Cancel() {
			s.logger.InfoContext(ctx, "pending import dropped on session stop",
				"session_id", s.id.String(),
			)
		}
		close(s.done)
		s.metrics.SessionStopped()
	}()

	s.handle(ctx, event{name: "open", fn: func(ctx context.Context) {
		s.resolve(ctx, CauseOpened)
	}})

	var idle <-chan time.Time
	var timer *time.Timer
	if s.idleTimeout > 0 {
		timer = time.NewTimer(s.idleTimeout)
		defer timer.Stop()
		idle = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.quit:
			return nil
		case <-idle:
			s.logger.InfoContext(ctx, "session expired",
				"session_id", s.id.String(),
				"idle_timeout", s.idleTimeout.String(),
			)
			return nil
		case ev := <-s.events:
			s.handle(ctx, ev)
			if timer != nil {
				timer.Reset(s.idleTimeout)
			}
		}
	}
}

// Close stops the loop. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
}

func (s *Session) handle(loopCtx context.Context, ev event) {
	ctx := ev.ctx
	if ctx == nil {
		ctx = loopCtx
	}
	ctx, span := s.tracer.Start(ctx, "session."+ev.name,
		trace.WithAttributes(attribute.String("session.id", s.id.String())),
	)
	ev.fn(ctx)
	span.End()
	if ev.done != nil {
		close(ev.done)
	}
}

// do runs fn on the loop and waits for it to finish.
func (s *Session) do(ctx context.Context, name string, fn func(ctx context.Context)) error {
	ev := event{ctx: ctx, name: name, fn: fn, done: make(chan struct{})}
	select {
	case s.events <- ev:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-ev.done
	return nil
}

// SetField writes one field and resolves. Unknown fields are rejected
// without a resolution.
func (s *Session) SetField(ctx context.Context, field form.FieldID, value string) (Snapshot, error) {
	var snap Snapshot
	var setErr error
	err := s.do(ctx, "set_field", func(ctx context.Context) {
		if setErr = s.store.Set(field, value); setErr != nil {
			return
		}
		s.notice = ""
		s.resolve(ctx, CauseFieldChanged)
		snap = s.snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	if setErr != nil {
		return Snapshot{}, setErr
	}
	return snap, nil
}

// SelectDocument records the chosen file name and resolves. An empty name
// clears the selection and disables the import trigger.
func (s *Session) SelectDocument(ctx context.Context, name string) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, "select_document", func(ctx context.Context) {
		s.document = strings.TrimSpace(name)
		s.notice = ""
		s.resolve(ctx, CauseDocumentSelected)
		snap = s.snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// StartImport begins a simulated extraction of the selected document. It
// returns importer.ErrBusy while another import is pending and
// importer.ErrNoDocument when nothing is selected. Starting an import does
// not resolve; its completion does.
func (s *Session) StartImport(ctx context.Context) (importer.Job, error) {
	var job importer.Job
	var startErr error
	err := s.do(ctx, "start_import", func(ctx context.Context) {
		job, startErr = s.startImport(ctx)
	})
	if err != nil {
		return importer.Job{}, err
	}
	if startErr != nil {
		return importer.Job{}, fmt.Errorf("start import: %w", startErr)
	}
	return job, nil
}

func (s *Session) startImport(ctx context.Context) (importer.Job, error) {
	if s.importing != nil {
		return importer.Job{}, importer.ErrBusy
	}
	job, err := s.importer.Start(s.document, s.postImport)
	if err != nil {
		return importer.Job{}, err
	}
	s.importing = &job
	s.notice = ""
	s.logAudit(ctx, audit.EventImportStarted, "job_id", job.ID.String(), "document", job.Document)
	return job, nil
}

// CancelImport drops a pending import. It reports whether one was pending.
func (s *Session) CancelImport(ctx context.Context) (bool, error) {
	var cancelled bool
	err := s.do(ctx, "cancel_import", func(ctx context.Context) {
		cancelled = s.cancelImport(ctx)
	})
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

// cancelImport also covers a job whose completion is already queued for
// the loop: clearing importing makes applyImport drop it.
func (s *Session) cancelImport(ctx context.Context) bool {
	if s.importing == nil {
		return false
	}
	job := *s.importing
	s.importing = nil
	s.importer.Cancel()
	s.logAudit(ctx, audit.EventImportCancelled, "job_id", job.ID.String())
	return true
}

// Submit runs the submission gate against the current values.
func (s *Session) Submit(ctx context.Context) (submission.Decision, error) {
	var decision submission.Decision
	err := s.do(ctx, "submit", func(ctx context.Context) {
		decision = s.gate.Submit(ctx, s.id, s.store.Snapshot())
	})
	if err != nil {
		return submission.Decision{}, err
	}
	return decision, nil
}

// Snapshot returns the current session view.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, "snapshot", func(context.Context) {
		snap = s.snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// postImport is the simulator's completion callback. It runs on the
// scheduler's goroutine and only hands the extraction to the loop.
func (s *Session) postImport(extraction importer.Extraction) {
	ev := event{name: "import_completed", fn: func(ctx context.Context) {
		s.applyImport(ctx, extraction)
	}}
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// applyImport overwrites the extracted fields. Edits made while the import
// was pending are lost.
func (s *Session) applyImport(ctx context.Context, extraction importer.Extraction) {
	if s.importing == nil || s.importing.ID != extraction.Job.ID {
		s.logger.InfoContext(ctx, "dropped completion of cancelled import",
			"session_id", s.id.String(),
			"job_id", extraction.Job.ID.String(),
		)
		return
	}
	s.importing = nil

	if err := s.store.Apply(extraction.Values); err != nil {
		s.logger.ErrorContext(ctx, "failed to apply extracted values",
			"session_id", s.id.String(),
			"job_id", extraction.Job.ID.String(),
			"error", err,
		)
		return
	}
	s.notice = assistant.ImportCompletedNotice
	s.logAudit(ctx, audit.EventImportCompleted, "job_id", extraction.Job.ID.String())
	s.resolve(ctx, CauseImportCompleted)
}

func (s *Session) resolve(ctx context.Context, cause Cause) {
	previous := s.state
	s.state = s.resolver.Resolve(s.store.Snapshot())
	s.seq++

	if s.state.Kind == assistant.KindFlagged && !previous.SameClassification(s.state) {
		s.logAudit(ctx, audit.EventScreeningFlagged, "reason", string(s.state.Reason))
	}

	update := Update{Snapshot: s.snapshot(), Cause: cause}
	for _, o := range s.observers {
		o.StateChanged(update)
	}
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.id,
		Seq:       s.seq,
		State:     s.state,
		Values:    s.store.Snapshot(),
		Document:  s.document,
		Import:    importer.StatusIdle,
		Notice:    s.notice,
	}
	if s.importing != nil {
		job := *s.importing
		snap.Import = importer.StatusPending
		snap.Job = &job
	}
	return snap
}
