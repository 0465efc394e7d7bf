// Package bitmap implements the two-level allocation bitmap behind pidalloc.
//
// # Layout
//
//	summary (1 word):   bit i = 1 iff details[i] is full
//	               ┌───┬───┬───┬─────┐
//	               │ 0 │ 1 │ 0 │ ... │
//	               └─┬─┴─┬─┴─┬─┴─────┘
//	details:       ┌─▼─┐ ┌─▼─┐ ┌─▼─┐
//	               │w0 │ │w1 │ │w2 │ ...  (order words)
//	               └───┘ └───┘ └───┘
//	               IDs   IDs    IDs
//	               0-63  64-127 128-191
//
// Allocate scans the detail words in index order and claims the lowest zero
// bit of the first non-full word, so the lowest free ID always wins.
// Recycle clears the bit and drops the summary bit only once the word is no
// longer full, keeping summary bit i equal to (details[i] == all ones).
//
// The Store does no locking and never allocates after New.
package bitmap
