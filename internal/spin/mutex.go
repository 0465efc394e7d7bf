// Package spin provides a spin-style mutual exclusion lock.
//
// Mutex never parks on a wait queue. Waiters retry a compare-and-swap and
// yield the processor after a bounded number of failed attempts, which suits
// the short, bounded critical sections of the allocator.
package spin

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// spinsBeforeYield is the number of failed acquire attempts before a waiter
// calls runtime.Gosched.
const spinsBeforeYield = 16

// Mutex is a spin lock. The zero value is unlocked.
//
// The state word sits on its own cache line so that a hot lock does not
// false-share with neighbouring fields.
type Mutex struct {
	_     cpu.CacheLinePad
	state atomic.Uint32
	_     cpu.CacheLinePad
}

// Lock acquires m, spinning until it is available.
func (m *Mutex) Lock() {
	if m.state.CompareAndSwap(0, 1) {
		return
	}
	m.lockSlow()
}

func (m *Mutex) lockSlow() {
	spins := 0
	for {
		// Test before test-and-set keeps the line shared while held.
		if m.state.Load() == 0 && m.state.CompareAndSwap(0, 1) {
			return
		}
		spins++
		if spins >= spinsBeforeYield {
			spins = 0
			runtime.Gosched()
		}
	}
}

// TryLock acquires m if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	return m.state.CompareAndSwap(0, 1)
}

// Unlock releases m. It panics if m is not locked.
func (m *Mutex) Unlock() {
	if m.state.Swap(0) == 0 {
		panic("spin: unlock of unlocked mutex")
	}
}
