package core

import "time"

// Stopwatch measures wall-clock time between progress reports.
type Stopwatch struct {
	start   time.Time
	elapsed time.Duration
	running bool

	now func() time.Time
}

// NewStopwatch returns a stopped stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Start (re)starts timing from zero.
func (s *Stopwatch) Start() {
	s.start = s.now()
	s.elapsed = 0
	s.running = true
}

// Stop freezes the elapsed time and returns it.
func (s *Stopwatch) Stop() time.Duration {
	if s.running {
		s.elapsed = s.now().Sub(s.start)
		s.running = false
	}
	return s.elapsed
}

// Elapsed reports the time since Start, or the frozen value after Stop.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.now().Sub(s.start)
	}
	return s.elapsed
}
