package decorate

import (
	"sync"
	"time"
)

// DefaultDelay is the debounce delay applied to document-change scans.
const DefaultDelay = 500 * time.Millisecond

// Scheduler runs a scan either immediately or after a quiet period. A pending
// debounced scan is cancelled whenever a newer trigger arrives, so at most one
// scan runs per burst of changes.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	run     func()
	timer   *time.Timer
	stopped bool
}

// NewScheduler creates a scheduler that calls run. A non-positive delay uses DefaultDelay.
func NewScheduler(delay time.Duration, run func()) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay, run: run}
}

// Now cancels any pending scan and runs one synchronously.
func (s *Scheduler) Now() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.cancelLocked()
	s.mu.Unlock()
	s.run()
}

// Debounce cancels any pending scan and schedules a new one after the delay.
func (s *Scheduler) Debounce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cancelLocked()

	var t *time.Timer
	t = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.stopped || s.timer != t {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		s.run()
	})
	s.timer = t
}

// pending reports whether a debounced scan is waiting to fire.
func (s *Scheduler) pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Stop cancels any pending scan. Later triggers are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.cancelLocked()
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
