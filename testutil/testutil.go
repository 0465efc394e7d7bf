package testutil

import (
	"math/rand"
	"sync"
)

// RNG wraps a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Shuffle pseudo-randomizes the order of n elements via swap.
func Shuffle[T any](r *RNG, s []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// Ops generates a random sequence of allocate (true) and release (false)
// operations. allocRate is the probability of an allocate.
func (r *RNG) Ops(n int, allocRate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]bool, n)
	for i := range ops {
		ops[i] = r.rand.Float64() < allocRate
	}
	return ops
}
