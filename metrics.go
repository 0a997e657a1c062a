package graphblas

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// For per-variant kernel metrics, install a trace observer instead
// (see trace/promtrace).
type MetricsCollector interface {
	// RecordEWiseMult is called after each element-wise multiply.
	// duration covers validation and kernel enqueue, not device execution.
	RecordEWiseMult(duration time.Duration, err error)

	// RecordVectorCreate is called after each input vector upload.
	RecordVectorCreate(nvals int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEWiseMult(time.Duration, error) {}
func (NoopMetricsCollector) RecordVectorCreate(int, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MultCount       atomic.Int64
	MultErrors      atomic.Int64
	MultTotalNanos  atomic.Int64
	VectorCount     atomic.Int64
	VectorErrors    atomic.Int64
	VectorNvalsSeen atomic.Int64
}

// RecordEWiseMult implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEWiseMult(duration time.Duration, err error) {
	b.MultCount.Add(1)
	b.MultTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MultErrors.Add(1)
	}
}

// RecordVectorCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVectorCreate(nvals int, err error) {
	b.VectorCount.Add(1)
	if err != nil {
		b.VectorErrors.Add(1)
		return
	}
	b.VectorNvalsSeen.Add(int64(nvals))
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector counters.
type BasicMetricsStats struct {
	MultCount       int64
	MultErrors      int64
	MultAvgNanos    int64
	VectorCount     int64
	VectorErrors    int64
	VectorNvalsSeen int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		MultCount:       b.MultCount.Load(),
		MultErrors:      b.MultErrors.Load(),
		VectorCount:     b.VectorCount.Load(),
		VectorErrors:    b.VectorErrors.Load(),
		VectorNvalsSeen: b.VectorNvalsSeen.Load(),
	}
	if s.MultCount > 0 {
		s.MultAvgNanos = b.MultTotalNanos.Load() / s.MultCount
	}
	return s
}
