package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711)
	b := NewRNG(4711)

	assert.Equal(t, a.Ops(64, 0.5), b.Ops(64, 0.5))
	assert.Equal(t, a.Intn(1000), b.Intn(1000))
}

func TestRNG_Ops(t *testing.T) {
	rng := NewRNG(4711)

	assert.Len(t, rng.Ops(50, 0.5), 50)
	for _, op := range rng.Ops(20, 1.0) {
		assert.True(t, op)
	}
}

func TestShuffle(t *testing.T) {
	rng := NewRNG(4711)
	s := []int{1, 2, 3, 4, 5, 6, 7, 8}

	Shuffle(rng, s)

	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, s)
}

func TestModel(t *testing.T) {
	m := NewModel(128)

	for i := range 64 {
		id, ok := m.Allocate()
		require.True(t, ok)
		assert.Equal(t, uint64(i), id)
	}
	assert.True(t, m.Full(0))
	assert.False(t, m.Full(1))
	assert.Equal(t, 64, m.Len())

	assert.True(t, m.Release(10))
	assert.False(t, m.Release(10))
	assert.False(t, m.Full(0))
	assert.False(t, m.Contains(10))
	assert.False(t, m.Contains(1000))

	id, ok := m.Allocate()
	require.True(t, ok)
	assert.Equal(t, uint64(10), id)
}

func TestModel_Exhaustion(t *testing.T) {
	m := NewModel(3)

	for range 3 {
		_, ok := m.Allocate()
		require.True(t, ok)
	}
	_, ok := m.Allocate()
	assert.False(t, ok)
	assert.Equal(t, []uint64{0, 1, 2}, m.Allocated())
}
