package pidalloc

import (
	"runtime"
	"strconv"
	"sync/atomic"
)

// ID is an allocated identifier. Releasing it returns the value to the pool
// it came from.
//
// Release must be called exactly once when the holder is done, usually via
// defer. Additional calls are no-ops. If the ID is dropped without Release
// and leak tracking is enabled, the value is reclaimed once the garbage
// collector finds the ID unreachable.
type ID struct {
	value    uint64
	gen      uint64
	pool     *pool
	released atomic.Bool
	tracked  bool
	cleanup  runtime.Cleanup
}

// Value returns the numeric identifier. It never changes.
func (id *ID) Value() uint64 {
	return id.value
}

// String returns the decimal form of the identifier.
func (id *ID) String() string {
	return strconv.FormatUint(id.value, 10)
}

// Released reports whether Release has been called. It does not report
// handles invalidated by Allocator.Reset.
func (id *ID) Released() bool {
	return id.released.Load()
}

// Release returns the identifier to its pool. It is safe to call from any
// goroutine and more than once; only the first call has an effect.
func (id *ID) Release() {
	if id == nil || !id.released.CompareAndSwap(false, true) {
		return
	}
	if id.tracked {
		id.cleanup.Stop()
	}
	id.pool.recycle(id.value, id.gen)
}

type leaked struct {
	pool  *pool
	value uint64
	gen   uint64
}

func addLeakCleanup(id *ID, l leaked) runtime.Cleanup {
	return runtime.AddCleanup(id, reclaimLeaked, l)
}

func reclaimLeaked(l leaked) {
	if !l.pool.recycle(l.value, l.gen) {
		return
	}
	l.pool.opts.logger.LogLeak(l.value)
	l.pool.opts.metricsCollector.RecordLeak(l.value)
}
