// Package stats provides structured logging and atomic compiler-phase
// counters, adapted from the teacher's SQL query-stats utility to track
// solver invocations, codegen node counts, and interpreter cache hits
// instead of database queries.
package stats

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/relsynth/relsynth/relerr"
)

// Stats accumulates counters for one compilation run. All fields are
// atomic and safe for concurrent use.
type Stats struct {
	SolverChecks     atomic.Int64
	SolverFailures   atomic.Int64
	CodegenNodes     atomic.Int64
	InterpreterCalls atomic.Int64
	InterpreterHits  atomic.Int64
	SolverTime       atomic.Int64 // nanoseconds
}

// New returns a zeroed Stats.
func New() *Stats {
	return &Stats{}
}

// Snapshot is an immutable point-in-time read of Stats, safe to log or
// compare in tests without racing the live counters.
type Snapshot struct {
	SolverChecks     int64
	SolverFailures   int64
	CodegenNodes     int64
	InterpreterCalls int64
	InterpreterHits  int64
	SolverTime       time.Duration
}

// Snapshot returns the current values of every counter.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		SolverChecks:     s.SolverChecks.Load(),
		SolverFailures:   s.SolverFailures.Load(),
		CodegenNodes:     s.CodegenNodes.Load(),
		InterpreterCalls: s.InterpreterCalls.Load(),
		InterpreterHits:  s.InterpreterHits.Load(),
		SolverTime:       time.Duration(s.SolverTime.Load()),
	}
}

// RecordSolverCheck records one Solver.Check call's outcome and
// duration.
func (s *Stats) RecordSolverCheck(ok bool, elapsed time.Duration) {
	s.SolverChecks.Add(1)
	if !ok {
		s.SolverFailures.Add(1)
	}
	s.SolverTime.Add(int64(elapsed))
}

// RecordInterpreterLookup records one Interpreter.Interpret call,
// noting whether it was served from the memo cache.
func (s *Stats) RecordInterpreterLookup(hit bool) {
	s.InterpreterCalls.Add(1)
	if hit {
		s.InterpreterHits.Add(1)
	}
}

// LogError logs err at the slog level appropriate to its relerr.Kind:
// Internal and Unsatisfiable are errors, Precondition/NotImplemented
// are warnings, DeadlineExceeded is a warning annotated with the
// elapsed solver time so far.
func LogError(logger *slog.Logger, err error, elapsed time.Duration) {
	if err == nil {
		return
	}
	switch {
	case relerr.Is(err, relerr.KindInternal), relerr.Is(err, relerr.KindUnsatisfiable):
		logger.Error("compiler phase failed", "error", err)
	case relerr.Is(err, relerr.KindDeadlineExceeded):
		logger.Warn("compiler phase exceeded its deadline", "error", err, "elapsed", elapsed)
	default:
		logger.Warn("compiler phase rejected input", "error", err)
	}
}
