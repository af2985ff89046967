package langevin

import "time"

// Record is one convergence report: the mean density at a simulated time.
type Record struct {
	Iteration int
	Time      float64
	Density   float64
	// Wall is the wall-clock time since the previous report.
	Wall time.Duration
}

// RecordSink consumes records in emission order. Emit is only ever called
// from one goroutine at a time.
type RecordSink interface {
	Emit(Record) error
}

// RecordFunc adapts a function to RecordSink.
type RecordFunc func(Record) error

// Emit calls f(r).
func (f RecordFunc) Emit(r Record) error { return f(r) }

// Result summarises a finished run.
type Result struct {
	// Iterations is the last generation computed.
	Iterations int
	Converged  bool
	Time       float64
	Density    float64
	Elapsed    time.Duration
}
