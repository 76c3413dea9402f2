package array

// Allocator provides the backing buffers an Array owns.
//
// Alloc returns a zeroed buffer of n elements; Free returns a buffer
// previously obtained from Alloc. An Array calls Alloc at most once per
// buffer and Free exactly once per non-nil buffer, so a counting
// implementation can detect leaks and double-frees.
type Allocator[T any] interface {
	Alloc(n int) []T
	Free(buf []T)
}

// runtimeAllocator delegates to the Go runtime and keeps Free as a no-op.
// It is the default when no allocator option is given.
type runtimeAllocator[T any] struct{}

func (runtimeAllocator[T]) Alloc(n int) []T { return make([]T, n) }

func (runtimeAllocator[T]) Free([]T) {}
