package memory

import (
	"context"
	"sync"

	id "taxportal/pkg/domain"
	audit "taxportal/pkg/platform/audit"
)

// InMemoryStore keeps audit events in process memory. With a capacity set,
// the oldest events are evicted once the store holds more than capacity.
type InMemoryStore struct {
	mu       sync.RWMutex
	capacity int
	events   map[id.SessionID][]audit.Event
	order    []audit.Event
}

type Option func(*InMemoryStore)

// WithCapacity bounds the number of retained events. Zero keeps everything.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{events: make(map[id.SessionID][]audit.Event)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.SessionID][]audit.Event)
	s.order = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.SessionID] = append(s.events[event.SessionID], event)
	s.order = append(s.order, event)
	for s.capacity > 0 && len(s.order) > s.capacity {
		s.evictOldest()
	}
	return nil
}

// evictOldest drops the first event in append order. It is also the first
// event of its session, since both slices grow in the same order.
func (s *InMemoryStore) evictOldest() {
	oldest := s.order[0]
	s.order[0] = audit.Event{}
	s.order = s.order[1:]

	bySession := s.events[oldest.SessionID]
	if len(bySession) <= 1 {
		delete(s.events, oldest.SessionID)
		return
	}
	bySession[0] = audit.Event{}
	s.events[oldest.SessionID] = bySession[1:]
}

func (s *InMemoryStore) ListBySession(_ context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[sessionID]...), nil
}

// ListRecent returns up to limit events across all sessions in append order,
// most recent last. A non-positive limit returns nothing.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		return []audit.Event{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := max(len(s.order)-limit, 0)
	return append([]audit.Event{}, s.order[start:]...), nil
}

// Len returns the number of retained events.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
