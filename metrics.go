package pidalloc

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
//
// Methods are called outside the allocator lock and must be safe for
// concurrent use.
type MetricsCollector interface {
	// RecordAllocate is called after each allocation attempt.
	// inUse is the number of allocated IDs afterwards, ok is false when
	// the pool was exhausted.
	RecordAllocate(duration time.Duration, inUse int, ok bool)

	// RecordRecycle is called after each ID is returned to the pool.
	RecordRecycle(duration time.Duration, inUse int)

	// RecordLeak is called when an ID is reclaimed by the garbage
	// collector instead of an explicit Release.
	RecordLeak(id uint64)

	// RecordReset is called after Allocator.Reset freed released IDs.
	RecordReset(released int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(time.Duration, int, bool) {}
func (NoopMetricsCollector) RecordRecycle(time.Duration, int)        {}
func (NoopMetricsCollector) RecordLeak(uint64)                       {}
func (NoopMetricsCollector) RecordReset(int)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocateCount      atomic.Int64
	AllocateExhausted  atomic.Int64
	AllocateTotalNanos atomic.Int64
	RecycleCount       atomic.Int64
	RecycleTotalNanos  atomic.Int64
	LeakCount          atomic.Int64
	ResetCount         atomic.Int64
	InUse              atomic.Int64
	PeakInUse          atomic.Int64
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(duration time.Duration, inUse int, ok bool) {
	b.AllocateCount.Add(1)
	b.AllocateTotalNanos.Add(duration.Nanoseconds())
	if !ok {
		b.AllocateExhausted.Add(1)
	}
	b.setInUse(int64(inUse))
}

// RecordRecycle implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecycle(duration time.Duration, inUse int) {
	b.RecycleCount.Add(1)
	b.RecycleTotalNanos.Add(duration.Nanoseconds())
	b.setInUse(int64(inUse))
}

// RecordLeak implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLeak(uint64) {
	b.LeakCount.Add(1)
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset(int) {
	b.ResetCount.Add(1)
	b.InUse.Store(0)
}

func (b *BasicMetricsCollector) setInUse(n int64) {
	b.InUse.Store(n)
	for {
		peak := b.PeakInUse.Load()
		if n <= peak || b.PeakInUse.CompareAndSwap(peak, n) {
			return
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocateCount:     b.AllocateCount.Load(),
		AllocateExhausted: b.AllocateExhausted.Load(),
		AllocateAvgNanos:  avg(b.AllocateTotalNanos.Load(), b.AllocateCount.Load()),
		RecycleCount:      b.RecycleCount.Load(),
		RecycleAvgNanos:   avg(b.RecycleTotalNanos.Load(), b.RecycleCount.Load()),
		LeakCount:         b.LeakCount.Load(),
		ResetCount:        b.ResetCount.Load(),
		InUse:             b.InUse.Load(),
		PeakInUse:         b.PeakInUse.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocateCount     int64
	AllocateExhausted int64
	AllocateAvgNanos  int64
	RecycleCount      int64
	RecycleAvgNanos   int64
	LeakCount         int64
	ResetCount        int64
	InUse             int64
	PeakInUse         int64
}
