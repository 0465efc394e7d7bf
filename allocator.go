package pidalloc

import (
	"context"
	"fmt"
	"math/bits"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/pidalloc/internal/bitmap"
	"github.com/hupe1980/pidalloc/internal/spin"
	"golang.org/x/time/rate"
)

const (
	// WordBits is the number of IDs tracked per bitmap word.
	WordBits = bitmap.WordBits

	// MaxOrder is the largest supported order.
	MaxOrder = bitmap.MaxOrder

	// DefaultOrder is the order used by NewDefault (2048 IDs).
	DefaultOrder = 32
)

// pool is the state shared by every Allocator handle and outstanding ID.
type pool struct {
	mu    spin.Mutex
	store *bitmap.Store
	// gen is bumped by Reset; IDs from an older generation no longer own
	// their value.
	gen uint64

	capacity int
	order    int
	opts     options
}

func (p *pool) allocate() (uint64, uint64, bool) {
	start := time.Now()

	p.mu.Lock()
	v, ok := p.store.Allocate()
	gen := p.gen
	inUse := p.store.Len()
	p.mu.Unlock()

	if !ok {
		p.exhausted(start, inUse, 1)
		return 0, 0, false
	}
	p.opts.metricsCollector.RecordAllocate(time.Since(start), inUse, true)
	return v, gen, true
}

func (p *pool) allocateN(dst []uint64, n int) (uint64, bool) {
	start := time.Now()

	p.mu.Lock()
	if p.store.Available() < n {
		inUse := p.store.Len()
		p.mu.Unlock()
		p.exhausted(start, inUse, n)
		return 0, false
	}
	for i := range n {
		// Cannot fail: Available was checked under the same lock hold.
		dst[i], _ = p.store.Allocate()
	}
	gen := p.gen
	inUse := p.store.Len()
	p.mu.Unlock()

	elapsed := time.Since(start)
	for range n {
		p.opts.metricsCollector.RecordAllocate(elapsed, inUse, true)
	}
	return gen, true
}

// exhausted reports a failed request for n IDs.
func (p *pool) exhausted(start time.Time, inUse, n int) {
	p.opts.metricsCollector.RecordAllocate(time.Since(start), inUse, false)
	p.opts.logger.LogExhausted(context.Background(), p.capacity, n)
}

func (p *pool) inUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Len()
}

// recycle returns v to the store and reports whether it did. Values from a
// generation before the last Reset are ignored.
func (p *pool) recycle(v, gen uint64) bool {
	start := time.Now()

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return false
	}
	ok := p.store.Recycle(v)
	inUse := p.store.Len()
	p.mu.Unlock()

	if !ok {
		p.opts.logger.LogInvalidRecycle(v)
		return false
	}
	p.opts.metricsCollector.RecordRecycle(time.Since(start), inUse)
	return true
}

func (p *pool) reset() int {
	p.mu.Lock()
	released := p.store.Len()
	p.store.Reset()
	p.gen++
	p.mu.Unlock()

	p.opts.metricsCollector.RecordReset(released)
	p.opts.logger.LogReset(released)
	return released
}

func (p *pool) newID(v, gen uint64) *ID {
	id := &ID{value: v, gen: gen, pool: p}
	if p.opts.leakTracking {
		id.cleanup = addLeakCleanup(id, leaked{pool: p, value: v, gen: gen})
		id.tracked = true
	}
	return id
}

// Allocator hands out unique IDs in [0, Cap()) from a fixed-size pool.
//
// An Allocator is a handle: Clone returns another handle on the same pool,
// and every ID keeps the pool alive until it is released, so IDs may outlive
// the handle that produced them. All methods are safe for concurrent use.
//
// The zero value is not usable; construct with New.
type Allocator struct {
	p *pool
}

// New creates an allocator with order bitmap words, i.e. order*WordBits IDs.
// order must be in [1, MaxOrder].
func New(order int, optFns ...Option) (*Allocator, error) {
	store, err := bitmap.New(order)
	if err != nil {
		return nil, translateError(err, order)
	}

	p := &pool{
		store:    store,
		capacity: store.Cap(),
		order:    store.Order(),
		opts:     applyOptions(optFns),
	}
	p.opts.logger.LogCreated(order, p.capacity)

	return &Allocator{p: p}, nil
}

// NewDefault creates an allocator with DefaultOrder.
func NewDefault(optFns ...Option) *Allocator {
	return MustNew(DefaultOrder, optFns...)
}

// MustNew is like New but panics on error.
func MustNew(order int, optFns ...Option) *Allocator {
	a, err := New(order, optFns...)
	if err != nil {
		panic(err)
	}
	return a
}

// Clone returns a new handle that shares the same pool.
func (a *Allocator) Clone() *Allocator {
	return &Allocator{p: a.p}
}

// Allocate claims the lowest free ID.
//
// It returns false when the pool is exhausted. Exhaustion is an expected
// outcome; callers decide whether to back off, queue or reject. The returned
// ID must be released exactly once, typically with defer id.Release().
func (a *Allocator) Allocate() (*ID, bool) {
	v, gen, ok := a.p.allocate()
	if !ok {
		return nil, false
	}
	return a.p.newID(v, gen), true
}

// AllocateN claims n IDs atomically: either all n are returned or none are.
// n <= 0 returns an empty slice.
func (a *Allocator) AllocateN(n int) ([]*ID, bool) {
	if n <= 0 {
		return []*ID{}, true
	}
	if n > a.p.capacity {
		a.p.exhausted(time.Now(), a.p.inUse(), n)
		return nil, false
	}

	values := make([]uint64, n)
	gen, ok := a.p.allocateN(values, n)
	if !ok {
		return nil, false
	}

	ids := make([]*ID, n)
	for i, v := range values {
		ids[i] = a.p.newID(v, gen)
	}
	return ids, true
}

// AllocateContext is like Allocate but, while the pool is exhausted, keeps
// retrying at the configured retry interval until an ID frees up or ctx
// ends. One last attempt is made when ctx ends; if that fails too the
// error wraps both ErrExhausted and ctx.Err().
func (a *Allocator) AllocateContext(ctx context.Context) (*ID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id, ok := a.Allocate(); ok {
		return id, nil
	}

	limiter := rate.NewLimiter(rate.Every(a.p.opts.retryInterval), 1)
	limiter.Allow() // the attempt above used the first slot

	timer := time.NewTimer(a.p.opts.retryInterval)
	defer timer.Stop()

	for {
		r := limiter.Reserve()
		timer.Reset(r.Delay())

		select {
		case <-ctx.Done():
			r.Cancel()
			if id, ok := a.Allocate(); ok {
				return id, nil
			}
			return nil, fmt.Errorf("%w: %w", ErrExhausted, ctx.Err())
		case <-timer.C:
		}

		if id, ok := a.Allocate(); ok {
			return id, nil
		}
	}
}

// Contains reports whether id is currently allocated. IDs outside
// [0, Cap()) are never allocated.
//
// Under concurrent use the answer may be stale as soon as it is returned.
func (a *Allocator) Contains(id uint64) bool {
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	return a.p.store.Contains(id)
}

// Len returns the number of allocated IDs.
func (a *Allocator) Len() int {
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	return a.p.store.Len()
}

// Available returns the number of free IDs.
func (a *Allocator) Available() int {
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	return a.p.store.Available()
}

// Reset frees every ID at once and returns how many were allocated.
//
// Handles issued before the reset become stale: their values may be handed
// out again, and releasing them is a no-op.
func (a *Allocator) Reset() int {
	return a.p.reset()
}

// Stats is a point-in-time view of an allocator.
type Stats struct {
	Order      int
	Capacity   int
	InUse      int
	Available  int
	FullBlocks int // bitmap words with every ID allocated
}

// Stats returns the current pool statistics.
func (a *Allocator) Stats() Stats {
	a.p.mu.Lock()
	inUse := a.p.store.Len()
	summary := a.p.store.Summary()
	a.p.mu.Unlock()

	return Stats{
		Order:      a.p.order,
		Capacity:   a.p.capacity,
		InUse:      inUse,
		Available:  a.p.capacity - inUse,
		FullBlocks: bits.OnesCount64(summary),
	}
}

// Cap returns the total number of IDs.
func (a *Allocator) Cap() int { return a.p.capacity }

// Order returns the number of bitmap words.
func (a *Allocator) Order() int { return a.p.order }

// Snapshot returns the set of allocated IDs at one point in time.
// The bitmap is a copy and is not updated afterwards.
func (a *Allocator) Snapshot() *roaring.Bitmap {
	words := make([]uint64, 0, a.p.order)

	a.p.mu.Lock()
	words = a.p.store.AppendWords(words)
	a.p.mu.Unlock()

	bm := roaring.New()
	for i, w := range words {
		base := uint32(i * WordBits)
		for w != 0 {
			bm.Add(base + uint32(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
	return bm
}
