package spin

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

func TestMutex_TryLock(t *testing.T) {
	var m Mutex

	require.True(t, m.TryLock())
	assert.False(t, m.TryLock())

	m.Unlock()
	assert.True(t, m.TryLock())
	m.Unlock()
}

func TestMutex_UnlockUnlocked(t *testing.T) {
	var m Mutex

	assert.Panics(t, func() { m.Unlock() })
}

func TestMutex_ImplementsLocker(t *testing.T) {
	var _ sync.Locker = (*Mutex)(nil)
}

func TestMutex_Padding(t *testing.T) {
	var m Mutex

	// The state word must not share a cache line with surrounding data.
	assert.GreaterOrEqual(t, unsafe.Offsetof(m.state), unsafe.Sizeof(cpu.CacheLinePad{}))
	assert.GreaterOrEqual(t, unsafe.Sizeof(m)-unsafe.Offsetof(m.state)-unsafe.Sizeof(m.state), unsafe.Sizeof(cpu.CacheLinePad{}))
}

func TestMutex_Contention(t *testing.T) {
	const (
		workers    = 8
		iterations = 10000
	)

	var (
		m       Mutex
		counter int
	)

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for range iterations {
				m.Lock()
				counter++
				m.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, workers*iterations, counter)
}

func BenchmarkMutex_Uncontended(b *testing.B) {
	var m Mutex
	for b.Loop() {
		m.Lock()
		m.Unlock()
	}
}

func BenchmarkMutex_Parallel(b *testing.B) {
	var m Mutex
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Lock()
			m.Unlock()
		}
	})
}
