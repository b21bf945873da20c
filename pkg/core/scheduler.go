package core

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period between the last mutation and the
// snapshot write.
const DefaultDebounce = 400 * time.Millisecond

// Scheduler owns a single cancelable deferred action. Scheduling again before
// the timer fires replaces the pending action and restarts the window
// (debounce, not throttle).
type Scheduler interface {
	// Schedule arms the timer with fn, canceling any pending action.
	Schedule(fn func())

	// Cancel disarms the pending action without firing it.
	// Returns whether an action was pending.
	Cancel() bool

	// Pending reports whether an action is currently armed.
	Pending() bool

	// Stop cancels any pending action and rejects further scheduling.
	Stop()
}

// TimerScheduler implements Scheduler with a wall-clock timer.
type TimerScheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool
}

// NewTimerScheduler creates a scheduler firing after the given quiet period.
// A non-positive delay falls back to DefaultDebounce.
func NewTimerScheduler(delay time.Duration) *TimerScheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &TimerScheduler{delay: delay}
}

// Schedule arms fn, replacing any previously armed action.
func (s *TimerScheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.pending = true
	s.timer = time.AfterFunc(s.delay, func() {
		// Clear pending before running fn so that fn itself can ask
		// Pending() whether a newer action was armed in the meantime.
		s.mu.Lock()
		if s.gen == gen {
			s.pending = false
			s.timer = nil
		}
		stale := s.gen != gen
		s.mu.Unlock()

		if !stale {
			fn()
		}
	})
}

// Cancel disarms the pending action without firing.
func (s *TimerScheduler) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasPending := s.pending
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++ // invalidates a timer goroutine that already fired but has not run fn yet
	s.pending = false
	return wasPending
}

// Pending reports whether an action is armed.
func (s *TimerScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Stop is terminal teardown: pending work is dropped, not flushed.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.pending = false
	s.stopped = true
}
