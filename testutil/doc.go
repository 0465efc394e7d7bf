// Package testutil provides testing utilities for pidalloc.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source and a reference
// allocator model to check the real allocator against.
//
// # Random Operation Sequences
//
//	rng := testutil.NewRNG(seed)
//	ops := rng.Ops(1000, 0.6) // true = allocate, false = release
//	testutil.Shuffle(rng, ids)
//
// # Reference Model
//
//	model := testutil.NewModel(capacity)
//	want, ok := model.Allocate()
//	// compare against the allocator under test
package testutil
