// Package array provides Array, a fixed-length owning sequence with the
// strong error-safety guarantee on reassignment.
//
// An Array owns exactly one backing buffer obtained from an Allocator and is
// responsible for releasing it exactly once. Element lifecycle (default
// construction, duplication, destruction) is configurable through Hooks, and
// any construction or duplication step may fail. The package guarantees that
// a failure partway through building or copying a buffer rolls back
// everything built so far: already-constructed elements are dropped in
// reverse order and the buffer is returned to the allocator before the error
// reaches the caller. No Array is ever observable in a half-built state.
//
// Assign implements the clone-and-swap pattern: a complete independent copy
// of the source is built first (the only fallible step), and only after it
// succeeds is it exchanged into the target with a constant-time,
// non-failing swap. Either the assignment fully succeeds or the target is
// left exactly as it was.
//
// Arrays are not safe for concurrent use; ownership is single-owner and
// transfers only through Move or Swap.
package array
