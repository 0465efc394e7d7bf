package testutil

import (
	"github.com/bits-and-blooms/bitset"
)

// Model is a reference allocator with the lowest-free-ID policy.
// It is deliberately naive: a linear scan over a flat bitset.
type Model struct {
	bits *bitset.BitSet
	cap  uint
}

// NewModel creates a model with capacity IDs.
func NewModel(capacity int) *Model {
	return &Model{
		bits: bitset.New(uint(capacity)),
		cap:  uint(capacity),
	}
}

// Allocate returns the lowest free ID, or false when exhausted.
func (m *Model) Allocate() (uint64, bool) {
	id, ok := m.bits.NextClear(0)
	if !ok || id >= m.cap {
		return 0, false
	}
	m.bits.Set(id)
	return uint64(id), true
}

// Release frees id and reports whether it was allocated.
func (m *Model) Release(id uint64) bool {
	if !m.Contains(id) {
		return false
	}
	m.bits.Clear(uint(id))
	return true
}

// Contains reports whether id is allocated.
func (m *Model) Contains(id uint64) bool {
	if id >= uint64(m.cap) {
		return false
	}
	return m.bits.Test(uint(id))
}

// Len returns the number of allocated IDs.
func (m *Model) Len() int {
	return int(m.bits.Count())
}

// Allocated returns the allocated IDs in increasing order.
func (m *Model) Allocated() []uint64 {
	out := make([]uint64, 0, m.bits.Count())
	for i, ok := m.bits.NextSet(0); ok && i < m.cap; i, ok = m.bits.NextSet(i + 1) {
		out = append(out, uint64(i))
	}
	return out
}

// Full reports whether all IDs in [block*64, block*64+64) are allocated.
func (m *Model) Full(block int) bool {
	start := uint(block) * 64
	if start+64 > m.cap {
		return false
	}
	for i := start; i < start+64; i++ {
		if !m.bits.Test(i) {
			return false
		}
	}
	return true
}
