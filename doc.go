// Package pidalloc provides a fixed-capacity, thread-safe ID allocator.
//
// An Allocator hands out unique small integers (process IDs, slot indices,
// handle numbers) from a pool of order*64 IDs and takes them back when the
// holder releases them. The lowest free ID is always returned first.
//
// # Quick Start
//
//	alloc, _ := pidalloc.New(8) // 512 IDs
//
//	id, ok := alloc.Allocate()
//	if !ok {
//	    // pool exhausted: back off, queue or reject
//	}
//	defer id.Release()
//
//	fmt.Println(id.Value())
//
// # Ownership
//
// Allocator is a cheap handle; Clone shares the pool between owners. Each ID
// also references the pool, so an ID can be released after every Allocator
// handle is gone. Release recycles the value exactly once no matter how many
// times or from how many goroutines it is called. With leak tracking on (the
// default) an ID that is dropped without Release is reclaimed after it is
// garbage collected and reported through the Logger and MetricsCollector.
//
// Reset frees every ID at once. IDs handed out before it no longer own their
// values: releasing them afterwards does nothing, so a stale holder cannot
// free an ID that was handed to someone else.
//
// # Exhaustion
//
// Running out of IDs is not an error: Allocate and AllocateN return false.
// AllocateContext wraps the retry loop for callers that prefer to wait:
//
//	ctx, cancel := context.WithTimeout(ctx, time.Second)
//	defer cancel()
//	id, err := alloc.AllocateContext(ctx)
//	if errors.Is(err, pidalloc.ErrExhausted) {
//	    // still full when the deadline passed
//	}
//
// # Concurrency
//
// All pool state sits behind one spin lock. Critical sections scan at most
// order words, so the lock never parks goroutines on a wait queue.
package pidalloc
