package schedule

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs a function after a delay and allows the caller to cancel
// it before it fires. It replaces ad-hoc timer-and-cleanup closures so that
// debounced work can be driven by a virtual clock in tests.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// Handle refers to one scheduled call.
type Handle interface {
	// Stop cancels the call if it has not fired yet and reports whether
	// the cancellation took effect.
	Stop() bool
}

// TimerScheduler schedules on real wall-clock timers.
type TimerScheduler struct{}

// NewTimerScheduler returns the production scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	return timerHandle{timer: time.AfterFunc(delay, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Stop() bool {
	return h.timer.Stop()
}

// ManualScheduler is a deterministic scheduler for tests. Scheduled calls
// fire only when Advance moves the virtual clock past their deadline.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	nextID  int
	pending []*manualEntry
}

type manualEntry struct {
	id       int
	deadline time.Time
	fn       func()
	stopped  bool
	owner    *ManualScheduler
}

// NewManualScheduler returns a scheduler with the virtual clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry := &manualEntry{
		id:       s.nextID,
		deadline: s.now.Add(delay),
		fn:       fn,
		owner:    s,
	}
	s.pending = append(s.pending, entry)
	return entry
}

// Advance moves the virtual clock forward and fires every pending call
// whose deadline has passed, in deadline order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now

	var due []*manualEntry
	var remaining []*manualEntry
	for _, entry := range s.pending {
		if entry.stopped {
			continue
		}
		if !entry.deadline.After(now) {
			due = append(due, entry)
		} else {
			remaining = append(remaining, entry)
		}
	}
	s.pending = remaining
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	s.mu.Unlock()

	for _, entry := range due {
		entry.fn()
	}
}

// Pending returns the number of scheduled calls that have not fired.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, entry := range s.pending {
		if !entry.stopped {
			count++
		}
	}
	return count
}

func (e *manualEntry) Stop() bool {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()
	if e.stopped {
		return false
	}
	for _, pending := range e.owner.pending {
		if pending.id == e.id {
			e.stopped = true
			return true
		}
	}
	return false
}
