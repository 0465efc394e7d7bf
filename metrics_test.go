package pidalloc_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/hupe1980/pidalloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &pidalloc.BasicMetricsCollector{}

	m.RecordAllocate(10*time.Nanosecond, 1, true)
	m.RecordAllocate(30*time.Nanosecond, 2, true)
	m.RecordAllocate(20*time.Nanosecond, 2, false)
	m.RecordRecycle(40*time.Nanosecond, 1)
	m.RecordLeak(7)
	m.RecordReset(1)

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats.AllocateCount)
	assert.Equal(t, int64(1), stats.AllocateExhausted)
	assert.Equal(t, int64(20), stats.AllocateAvgNanos)
	assert.Equal(t, int64(1), stats.RecycleCount)
	assert.Equal(t, int64(40), stats.RecycleAvgNanos)
	assert.Equal(t, int64(1), stats.LeakCount)
	assert.Equal(t, int64(1), stats.ResetCount)
	assert.Equal(t, int64(0), stats.InUse)
	assert.Equal(t, int64(2), stats.PeakInUse)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	m := &pidalloc.BasicMetricsCollector{}

	assert.Equal(t, pidalloc.BasicMetricsStats{}, m.GetStats())
}

func TestAllocator_RecordsMetrics(t *testing.T) {
	m := &pidalloc.BasicMetricsCollector{}
	a := pidalloc.MustNew(1, pidalloc.WithMetricsCollector(m))

	ids, ok := a.AllocateN(64)
	require.True(t, ok)

	_, ok = a.Allocate()
	require.False(t, ok)

	ids[0].Release()
	ids[1].Release()

	stats := m.GetStats()
	assert.Equal(t, int64(65), stats.AllocateCount)
	assert.Equal(t, int64(1), stats.AllocateExhausted)
	assert.Equal(t, int64(2), stats.RecycleCount)
	assert.Equal(t, int64(62), stats.InUse)
	assert.Equal(t, int64(64), stats.PeakInUse)

	a.Reset()
	stats = m.GetStats()
	assert.Equal(t, int64(1), stats.ResetCount)
	assert.Equal(t, int64(0), stats.InUse)
	runtime.KeepAlive(ids)
}

func TestAllocator_OversizedBatchRecordsExhaustion(t *testing.T) {
	m := &pidalloc.BasicMetricsCollector{}
	a := pidalloc.MustNew(1, pidalloc.WithMetricsCollector(m))

	held, ok := a.AllocateN(3)
	require.True(t, ok)

	_, ok = a.AllocateN(a.Cap() + 1)
	require.False(t, ok)

	stats := m.GetStats()
	assert.Equal(t, int64(4), stats.AllocateCount)
	assert.Equal(t, int64(1), stats.AllocateExhausted)
	assert.Equal(t, int64(3), stats.InUse)
	runtime.KeepAlive(held)
}

func TestWithMetricsCollector_Nil(t *testing.T) {
	a := pidalloc.MustNew(1, pidalloc.WithMetricsCollector(nil))

	id, ok := a.Allocate()
	require.True(t, ok)
	assert.NotPanics(t, id.Release)
}
