package array

// Hooks configures the element lifecycle of an Array.
//
// All fields are optional. A nil New produces the zero value, a nil Clone
// performs a shallow copy, and a nil Drop is a no-op. New and Clone may
// fail; Drop must not, because it runs during rollback while an error is
// already propagating.
type Hooks[T any] struct {
	// New default-constructs one element.
	New func() (T, error)

	// Clone duplicates one element. The source value is never mutated.
	Clone func(src T) (T, error)

	// Drop destroys one element in place. Called exactly once per
	// successfully constructed element, in reverse index order.
	Drop func(*T)
}

func (h Hooks[T]) construct() (T, error) {
	if h.New != nil {
		return h.New()
	}
	var zero T
	return zero, nil
}

func (h Hooks[T]) clone(src T) (T, error) {
	if h.Clone != nil {
		return h.Clone(src)
	}
	return src, nil
}

func (h Hooks[T]) drop(p *T) {
	if h.Drop != nil {
		h.Drop(p)
	}
}

// Option configures an Array before construction.
type Option[T any] func(*Array[T])

// WithHooks sets the element lifecycle hooks.
func WithHooks[T any](h Hooks[T]) Option[T] {
	return func(a *Array[T]) { a.hooks = h }
}

// WithAllocator sets the buffer allocator.
func WithAllocator[T any](al Allocator[T]) Option[T] {
	return func(a *Array[T]) { a.alloc = al }
}
