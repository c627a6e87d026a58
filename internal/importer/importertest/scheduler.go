// Package importertest provides a manually driven Scheduler for tests that
// need to fast-forward the import delay deterministically.
package importertest

import (
	"slices"
	"sync"
	"time"

	"taxportal/internal/importer"
)

// ManualScheduler fires callbacks only when Advance moves its clock past
// their deadline. Callbacks run on the goroutine calling Advance.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	s        *ManualScheduler
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

// NewManualScheduler starts the clock at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's clock, suitable for importer.WithClock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) importer.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, deadline: s.now.Add(d), f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every due callback in
// deadline order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && !t.deadline.After(s.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *manualTimer) int {
		return a.deadline.Compare(b.deadline)
	})
	for _, t := range due {
		t.f()
	}
}

// Scheduled returns the number of timers that have neither fired nor been
// stopped.
func (s *ManualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
