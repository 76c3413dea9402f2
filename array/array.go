package array

import "fmt"

// Array is a fixed-length, heap-backed owning sequence of T.
//
// Invariant: the buffer is non-nil iff Len() > 0, and the Array is its sole
// owner. The zero value is a released empty array; use New to construct a
// sized one.
type Array[T any] struct {
	elems []T
	hooks Hooks[T]
	alloc Allocator[T]
}

// New constructs an Array of size default-initialized elements.
//
// Elements are constructed in index order. If element i fails to construct,
// elements i-1..0 are dropped in reverse order and the buffer is freed
// before the error is returned; the half-built array is never observable.
// A size of zero allocates nothing.
func New[T any](size int, opts ...Option[T]) (*Array[T], error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, size)
	}

	a := &Array[T]{alloc: runtimeAllocator[T]{}}
	for _, opt := range opts {
		opt(a)
	}
	if size == 0 {
		return a, nil
	}

	buf := a.alloc.Alloc(size)
	for i := 0; i < size; i++ {
		v, err := a.hooks.construct()
		if err != nil {
			a.rollback(buf, i)
			return nil, fmt.Errorf("construct element %d: %w", i, err)
		}
		buf[i] = v
	}
	a.elems = buf

	return a, nil
}

// Clone returns a fully independent deep copy of a.
//
// Elements are duplicated in index order via Hooks.Clone. If duplicating
// element i fails, elements i-1..0 already placed in the new buffer are
// dropped in reverse order and the buffer is freed before the error is
// returned. The source is never mutated.
func (a *Array[T]) Clone() (*Array[T], error) {
	out := &Array[T]{hooks: a.hooks, alloc: a.alloc}
	if len(a.elems) == 0 {
		return out, nil
	}

	buf := out.alloc.Alloc(len(a.elems))
	for i := range a.elems {
		v, err := out.hooks.clone(a.elems[i])
		if err != nil {
			out.rollback(buf, i)
			return nil, fmt.Errorf("clone element %d: %w", i, err)
		}
		buf[i] = v
	}
	out.elems = buf

	return out, nil
}

// Move transfers ownership of src's buffer to a new Array in constant time.
//
// It never fails and never allocates. src is left at length zero with no
// buffer; releasing it afterwards is a safe no-op.
func Move[T any](src *Array[T]) *Array[T] {
	dst := &Array[T]{hooks: src.hooks, alloc: src.alloc}
	dst.elems, src.elems = src.elems, nil
	return dst
}

// Assign replaces a's contents with a deep copy of other, providing the
// strong guarantee: either a ends up equal in size and contents to other,
// or on failure a is left completely untouched.
//
// Implemented as clone-and-swap. All fallible work (element duplication)
// happens while building the temporary; once that succeeds the visible
// exchange is a constant-time swap that cannot fail. The displaced state is
// released before Assign returns. Self-assignment is safe.
func (a *Array[T]) Assign(other *Array[T]) error {
	tmp, err := other.Clone()
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	a.Swap(tmp)
	tmp.Release()
	return nil
}

// Swap exchanges the complete internal state of a and other in constant
// time. It never fails. The allocator and hooks travel with the buffer so
// the displaced state is still released through the allocator that
// produced it.
func (a *Array[T]) Swap(other *Array[T]) {
	a.elems, other.elems = other.elems, a.elems
	a.hooks, other.hooks = other.hooks, a.hooks
	a.alloc, other.alloc = other.alloc, a.alloc
}

// Len returns the element count.
func (a *Array[T]) Len() int { return len(a.elems) }

// At returns a pointer to element i.
//
// The index must satisfy 0 <= i < Len(). An out-of-range index is a
// precondition violation by a trusted caller and panics rather than
// returning an error.
func (a *Array[T]) At(i int) *T {
	if i < 0 || i >= len(a.elems) {
		panic(fmt.Sprintf("array: index %d out of range [0, %d)", i, len(a.elems)))
	}
	return &a.elems[i]
}

// Release drops every live element in reverse index order and returns the
// buffer to the allocator, leaving a empty. It is a no-op on zero-length
// and moved-from arrays, and calling it again after release is safe.
func (a *Array[T]) Release() {
	if a.elems == nil {
		return
	}
	for i := len(a.elems) - 1; i >= 0; i-- {
		a.hooks.drop(&a.elems[i])
	}
	a.alloc.Free(a.elems)
	a.elems = nil
}

// rollback destroys the first built elements of buf in reverse order and
// returns the buffer to the allocator. Used when construction or cloning
// fails partway through.
func (a *Array[T]) rollback(buf []T, built int) {
	for i := built - 1; i >= 0; i-- {
		a.hooks.drop(&buf[i])
	}
	a.alloc.Free(buf)
}
