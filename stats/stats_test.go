package stats_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/relsynth/relsynth/relerr"
	"github.com/relsynth/relsynth/stats"
)

func TestSnapshotReflectsRecordedCounters(t *testing.T) {
	s := stats.New()
	s.RecordSolverCheck(true, 5*time.Millisecond)
	s.RecordSolverCheck(false, 2*time.Millisecond)
	s.RecordInterpreterLookup(true)
	s.RecordInterpreterLookup(false)

	snap := s.Snapshot()
	assert.Equal(t, int64(2), snap.SolverChecks)
	assert.Equal(t, int64(1), snap.SolverFailures)
	assert.Equal(t, int64(2), snap.InterpreterCalls)
	assert.Equal(t, int64(1), snap.InterpreterHits)
	assert.Equal(t, 7*time.Millisecond, snap.SolverTime)
}

func TestLogErrorDoesNotPanicOnNil(t *testing.T) {
	logger := slog.Default()
	assert.NotPanics(t, func() { stats.LogError(logger, nil, 0) })
	assert.NotPanics(t, func() {
		stats.LogError(logger, relerr.Internal("fhd", "boom"), time.Second)
	})
}
