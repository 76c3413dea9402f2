// Package fixture provides the instrumented element type and counting
// allocator the verification harness drives the container with.
//
// Instrumentation state lives in a Counters value threaded explicitly into
// probes and allocators rather than in package-level globals, so scenarios
// stay independent of each other and could run in parallel.
package fixture

import (
	"errors"

	"github.com/roach88/strongarray/array"
)

// ErrConstructionFailed is the failure injected by an armed Counters.
var ErrConstructionFailed = errors.New("fixture: element construction failed")

// DefaultProbeData is the payload of a default-constructed Probe.
const DefaultProbeData = 5

// Counters tracks live Probe instances and outstanding buffer allocations
// for one scenario, and carries the construction-failure trigger.
//
// A leak shows up as a positive count after every array is released; a
// double destruction or double free shows up as a negative one.
type Counters struct {
	live   int
	allocs int
	armed  bool
	until  int // constructions remaining before the armed failure fires
}

// NewCounters returns zeroed, disarmed counters.
func NewCounters() *Counters { return &Counters{} }

// Live reports currently-existing Probe instances.
func (c *Counters) Live() int { return c.live }

// Allocs reports outstanding buffer allocations.
func (c *Counters) Allocs() int { return c.allocs }

// FailConstructionAfter arms the failure trigger: the next n constructions
// succeed and every construction after that fails until Disarm is called.
// n = 0 fails the very next construction.
func (c *Counters) FailConstructionAfter(n int) {
	c.armed = true
	c.until = n
}

// Disarm clears the failure trigger.
func (c *Counters) Disarm() { c.armed = false }

// beforeConstruct either registers one new live instance or fails the
// construction. The failure fires strictly before the live count is
// incremented: a failed construction is never counted as live.
func (c *Counters) beforeConstruct() error {
	if c.armed {
		if c.until == 0 {
			return ErrConstructionFailed
		}
		c.until--
	}
	c.live++
	return nil
}

// Probe is the instrumented element type. Every successful construction
// registers with its Counters and every drop deregisters.
type Probe struct {
	Data int

	counters *Counters
}

// NewProbe constructs a Probe bound to c, failing if c is armed.
func NewProbe(c *Counters, data int) (Probe, error) {
	if err := c.beforeConstruct(); err != nil {
		return Probe{}, err
	}
	return Probe{Data: data, counters: c}, nil
}

func dropProbe(p *Probe) {
	if p.counters != nil {
		p.counters.live--
	}
}

// ProbeHooks wires the Probe lifecycle into an Array. Default construction
// and cloning both register with c and fail while c is armed; cloning
// carries the source payload over.
func ProbeHooks(c *Counters) array.Hooks[Probe] {
	return array.Hooks[Probe]{
		New: func() (Probe, error) {
			return NewProbe(c, DefaultProbeData)
		},
		Clone: func(src Probe) (Probe, error) {
			return NewProbe(c, src.Data)
		},
		Drop: dropProbe,
	}
}

// CountingAllocator tracks outstanding buffer allocations through Counters
// while delegating the actual allocation to the Go runtime.
type CountingAllocator[T any] struct {
	counters *Counters
}

// NewCountingAllocator returns an allocator that records every buffer it
// hands out in c.
func NewCountingAllocator[T any](c *Counters) *CountingAllocator[T] {
	return &CountingAllocator[T]{counters: c}
}

// Alloc returns a zeroed buffer of n elements. Zero-sized requests return
// nil and are not counted.
func (a *CountingAllocator[T]) Alloc(n int) []T {
	if n == 0 {
		return nil
	}
	a.counters.allocs++
	return make([]T, n)
}

// Free returns a buffer. Nil buffers are ignored.
func (a *CountingAllocator[T]) Free(buf []T) {
	if buf == nil {
		return
	}
	a.counters.allocs--
}
