package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"taxportal/internal/assistant"
	"taxportal/internal/form"
	"taxportal/internal/importer"
	"taxportal/internal/platform/metrics"
	"taxportal/internal/submission"
	id "taxportal/pkg/domain"
	"taxportal/pkg/platform/audit"
	"taxportal/pkg/platform/sentinel"
	"taxportal/pkg/requestcontext"
)

var (
	// ErrNotFound is returned for unknown or already closed sessions.
	ErrNotFound = fmt.Errorf("session not found: %w", sentinel.ErrNotFound)

	// ErrTooManySessions is returned by Open once the session cap is reached.
	ErrTooManySessions = fmt.Errorf("too many open sessions: %w", sentinel.ErrUnavailable)
)

// SimulatorFactory builds the import simulator for a new session. Each
// session owns its own simulator.
type SimulatorFactory func() *importer.Simulator

// Manager keeps one running Session per open form.
type Manager struct {
	resolver     *assistant.Resolver
	gate         *submission.Gate
	newSimulator SimulatorFactory

	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor  audit.Emitter
	auditLog audit.Reader
	tracer   trace.Tracer

	idleTimeout time.Duration
	maxSessions int

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	// mu guards sessions and closed; wg.Add happens under it so Shutdown
	// never waits concurrently with a new Add.
	mu       sync.RWMutex
	sessions map[id.SessionID]*Session
	closed   bool
}

type ManagerOption func(*Manager)

func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithManagerMetrics(mt *metrics.Metrics) ManagerOption {
	return func(m *Manager) {
		m.metrics = mt
	}
}

func WithManagerAuditor(emitter audit.Emitter) ManagerOption {
	return func(m *Manager) {
		m.auditor = emitter
	}
}

// WithManagerAuditLog sets where Audit reads session events from.
func WithManagerAuditLog(r audit.Reader) ManagerOption {
	return func(m *Manager) {
		m.auditLog = r
	}
}

// WithManagerIdleTimeout closes sessions that see no activity for d.
func WithManagerIdleTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.idleTimeout = d
	}
}

// WithMaxSessions caps the number of concurrently open sessions. Zero means
// no cap.
func WithMaxSessions(n int) ManagerOption {
	return func(m *Manager) {
		m.maxSessions = n
	}
}

func WithManagerTracer(tracer trace.Tracer) ManagerOption {
	return func(m *Manager) {
		m.tracer = tracer
	}
}

func WithSimulatorFactory(f SimulatorFactory) ManagerOption {
	return func(m *Manager) {
		m.newSimulator = f
	}
}

func NewManager(resolver *assistant.Resolver, gate *submission.Gate, opts ...ManagerOption) (*Manager, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if gate == nil {
		return nil, fmt.Errorf("submission gate is required")
	}

	m := &Manager{
		resolver: resolver,
		gate:     gate,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
		sessions: make(map[id.SessionID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.newSimulator == nil {
		m.newSimulator = func() *importer.Simulator {
			return importer.New(
				importer.WithLogger(m.logger),
				importer.WithMetrics(m.metrics),
			)
		}
	}
	m.base, m.stop = context.WithCancel(context.Background())
	return m, nil
}

// Open starts a new session and returns its initial state.
func (m *Manager) Open(ctx context.Context) (Snapshot, error) {
	s, err := NewSession(m.resolver, m.newSimulator(), m.gate,
		WithLogger(m.logger),
		WithMetrics(m.metrics),
		WithAuditor(m.auditor),
		WithTracer(m.tracer),
		WithIdleTimeout(m.idleTimeout),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open session: %w", err)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Snapshot{}, fmt.Errorf("open session: %w", sentinel.ErrUnavailable)
	}
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.mu.Unlock()
		m.logger.WarnContext(ctx, "session cap reached", "max_sessions", m.maxSessions)
		return Snapshot{}, ErrTooManySessions
	}
	m.sessions[s.ID()] = s
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		if err := s.Run(m.base); err != nil && m.base.Err() == nil {
			m.logger.Error("session loop stopped", "session_id", s.ID().String(), "error", err)
		}
		m.remove(s.ID())
	}()

	s.logAudit(ctx, audit.EventSessionOpened,
		"client_ip", requestcontext.ClientIP(ctx),
		"user_agent", requestcontext.UserAgent(ctx),
	)
	return s.Snapshot(ctx)
}

// Get returns the running session with sessionID.
func (m *Manager) Get(sessionID id.SessionID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) remove(sessionID id.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Snapshot(ctx context.Context, sessionID id.SessionID) (Snapshot, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(ctx)
}

func (m *Manager) SetField(ctx context.Context, sessionID id.SessionID, field form.FieldID, value string) (Snapshot, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return s.SetField(ctx, field, value)
}

func (m *Manager) SelectDocument(ctx context.Context, sessionID id.SessionID, name string) (Snapshot, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return s.SelectDocument(ctx, name)
}

func (m *Manager) StartImport(ctx context.Context, sessionID id.SessionID) (importer.Job, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return importer.Job{}, err
	}
	return s.StartImport(ctx)
}

func (m *Manager) CancelImport(ctx context.Context, sessionID id.SessionID) (bool, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return false, err
	}
	return s.CancelImport(ctx)
}

func (m *Manager) Submit(ctx context.Context, sessionID id.SessionID) (submission.Decision, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return submission.Decision{}, err
	}
	return s.Submit(ctx)
}

// Audit returns the audit trail of an open session.
func (m *Manager) Audit(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	if _, err := m.Get(sessionID); err != nil {
		return nil, err
	}
	if m.auditLog == nil {
		return []audit.Event{}, nil
	}
	events, err := m.auditLog.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}

// Close stops a session and waits for its loop to exit.
func (m *Manager) Close(ctx context.Context, sessionID id.SessionID) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	s.Close()
	select {
	case <-s.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	m.remove(sessionID)
	return nil
}

// Shutdown stops every session and waits for their loops, bounded by ctx.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.stop()
	stopped := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown sessions: %w", ctx.Err())
	}
}
