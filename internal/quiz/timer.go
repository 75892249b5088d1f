package quiz

import (
	"sync"
	"time"
)

// Stopwatch tracks elapsed whole seconds for a quiz session. It derives
// elapsed time from the wall clock instead of counting ticks, so missed
// ticks or a suspended process never make it drift. Stopping freezes the
// value; starting again resumes from the frozen value, never from zero.
type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	start   time.Time
	frozen  time.Duration
	running bool
	done    chan struct{}
}

// NewStopwatch returns a stopwatch already running at zero elapsed.
func NewStopwatch() *Stopwatch {
	return newStopwatch(time.Now)
}

func newStopwatch(now func() time.Time) *Stopwatch {
	return &Stopwatch{
		now:     now,
		start:   now(),
		running: true,
	}
}

// Elapsed reports whole seconds since start, or the frozen value when
// stopped.
func (s *Stopwatch) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.elapsedLocked().Seconds())
}

func (s *Stopwatch) elapsedLocked() time.Duration {
	if !s.running {
		return s.frozen
	}
	return s.now().Sub(s.start)
}

// Stop freezes the elapsed value and halts notifications. Safe to call more
// than once.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.frozen = s.now().Sub(s.start)
	s.running = false
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

// Start resumes counting. The start instant is re-derived from the frozen
// elapsed value, so a stopwatch stopped at 40s continues from 40s.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.start = s.now().Add(-s.frozen)
	s.running = true
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Notify invokes observe with the current elapsed seconds once per second
// until Stop is called. It runs its own goroutine and returns immediately.
func (s *Stopwatch) Notify(observe func(seconds int)) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	if s.done != nil {
		// Already notifying.
		s.mu.Unlock()
		return
	}
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				observe(s.Elapsed())
			}
		}
	}()
}
