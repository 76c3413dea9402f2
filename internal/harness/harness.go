package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/strongarray/array"
	"github.com/roach88/strongarray/internal/fixture"
)

// Harness executes verification scenarios.
type Harness struct {
	logger *slog.Logger
	runID  string
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the harness logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithRunID fixes the run ID instead of generating one. Used for
// deterministic output in tests and golden comparison.
func WithRunID(id string) Option {
	return func(h *Harness) { h.runID = id }
}

// New creates a Harness with a fresh run ID.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RunID returns the identifier shared by every result of this harness.
func (h *Harness) RunID() string { return h.runID }

// RunAll executes scenarios in order, stopping at the first failing one:
// the run is a linear sequence of scenario and invariant-check steps with
// no retry.
func (h *Harness) RunAll(scenarios []*Scenario) []*Result {
	results := make([]*Result, 0, len(scenarios))
	for _, sc := range scenarios {
		res := h.Run(sc)
		results = append(results, res)
		if !res.Pass {
			break
		}
	}
	return results
}

// Run executes one scenario against a fresh set of counters and returns its
// result. Every scenario ends with the leak check unless an earlier check
// was already violated.
func (h *Harness) Run(sc *Scenario) *Result {
	res := NewResult(h.runID, sc.Name)

	if err := sc.Validate(); err != nil {
		res.Fail("scenario well-formed", "a valid scenario", err.Error())
		return res
	}

	h.logger.Info("scenario start",
		"run_id", h.runID, "scenario", sc.Name, "kind", sc.Kind)

	counters := fixture.NewCounters()
	switch sc.Kind {
	case KindLogic:
		h.runLogic(sc, counters, res)
	case KindSafety:
		h.runSafety(sc, counters, res)
	}

	// Arrays built by the scenario body are released by the time it
	// returns, so nonzero counters here are leaks or double releases.
	if res.Pass {
		if counters.Live() != 0 || counters.Allocs() != 0 {
			res.Fail("no leaks",
				"all elements destroyed and all buffers freed",
				fmt.Sprintf("live=%d allocs=%d", counters.Live(), counters.Allocs()))
		} else {
			res.Check("no leaks")
		}
	}

	if res.Pass {
		h.logger.Info("scenario pass", "scenario", sc.Name, "checks", len(res.Checks))
	} else {
		h.logger.Error("scenario fail", "scenario", sc.Name, "violation", res.Violation().Error())
	}
	return res
}

// runLogic drives ordinary assignment and cloning of plain integers with
// known index values and verifies sizes and every element value.
func (h *Harness) runLogic(sc *Scenario, counters *fixture.Counters, res *Result) {
	alloc := fixture.NewCountingAllocator[int](counters)

	source, err := array.New(sc.SourceSize, array.WithAllocator[int](alloc))
	if err != nil {
		res.Fail("setup", "source array constructed", err.Error())
		return
	}
	defer source.Release()
	for i := 0; i < source.Len(); i++ {
		*source.At(i) = i
	}

	target, err := array.New(sc.TargetSize, array.WithAllocator[int](alloc))
	if err != nil {
		res.Fail("setup", "target array constructed", err.Error())
		return
	}
	defer target.Release()

	if !h.checkAllocatorEngaged(sc, counters, res) {
		return
	}

	if err := target.Assign(source); err != nil {
		res.Fail("assign succeeds", "assignment completes without failure", err.Error())
		return
	}
	res.Check("assign succeeds")

	if target.Len() != source.Len() {
		res.Fail("assigned size",
			fmt.Sprintf("target length %d", source.Len()),
			fmt.Sprintf("target length %d", target.Len()))
		return
	}
	res.Check("assigned size")

	for i := 0; i < target.Len(); i++ {
		if got := *target.At(i); got != i {
			res.Fail("assigned values",
				fmt.Sprintf("target[%d] == %d", i, i),
				fmt.Sprintf("target[%d] == %d", i, got))
			return
		}
	}
	res.Check("assigned values")

	// Same correctness through copy construction into a fresh array.
	clone, err := source.Clone()
	if err != nil {
		res.Fail("clone succeeds", "clone completes without failure", err.Error())
		return
	}
	defer clone.Release()
	res.Check("clone succeeds")

	if clone.Len() != source.Len() {
		res.Fail("cloned size",
			fmt.Sprintf("clone length %d", source.Len()),
			fmt.Sprintf("clone length %d", clone.Len()))
		return
	}
	res.Check("cloned size")

	for i := 0; i < clone.Len(); i++ {
		if got := *clone.At(i); got != i {
			res.Fail("cloned values",
				fmt.Sprintf("clone[%d] == %d", i, i),
				fmt.Sprintf("clone[%d] == %d", i, got))
			return
		}
	}
	res.Check("cloned values")
}

// runSafety drives assignment of instrumented probes, optionally injecting
// a construction failure mid-copy, and verifies the strong guarantee.
func (h *Harness) runSafety(sc *Scenario, counters *fixture.Counters, res *Result) {
	hooks := fixture.ProbeHooks(counters)
	alloc := fixture.NewCountingAllocator[fixture.Probe](counters)

	source, err := array.New(sc.SourceSize,
		array.WithHooks(hooks), array.WithAllocator[fixture.Probe](alloc))
	if err != nil {
		res.Fail("setup", "source array constructed", err.Error())
		return
	}
	defer source.Release()

	target, err := array.New(sc.TargetSize,
		array.WithHooks(hooks), array.WithAllocator[fixture.Probe](alloc))
	if err != nil {
		res.Fail("setup", "target array constructed", err.Error())
		return
	}
	defer target.Release()

	// Index-valued payloads make any post-failure mutation detectable.
	for i := 0; i < target.Len(); i++ {
		target.At(i).Data = i
	}

	if !h.checkAllocatorEngaged(sc, counters, res) {
		return
	}

	if sc.FailAt >= 0 {
		counters.FailConstructionAfter(sc.FailAt)
	}
	assignErr := target.Assign(source)
	counters.Disarm()

	if !sc.ExpectFailure {
		if assignErr != nil {
			res.Fail("assign succeeds", "assignment completes without failure", assignErr.Error())
			return
		}
		res.Check("assign succeeds")

		if target.Len() != sc.SourceSize {
			res.Fail("assigned size",
				fmt.Sprintf("target length %d", sc.SourceSize),
				fmt.Sprintf("target length %d", target.Len()))
			return
		}
		res.Check("assigned size")
		return
	}

	if assignErr == nil {
		res.Fail("failure observed",
			"assignment fails under the injected construction failure",
			"assignment succeeded")
		return
	}
	res.Check("failure observed")

	if target.Len() != sc.TargetSize {
		res.Fail("target size preserved",
			fmt.Sprintf("target length still %d after failed assignment", sc.TargetSize),
			fmt.Sprintf("target length %d", target.Len()))
		return
	}
	res.Check("target size preserved")

	for i := 0; i < target.Len(); i++ {
		if got := target.At(i).Data; got != i {
			res.Fail("target values preserved",
				fmt.Sprintf("target[%d] payload still %d after failed assignment", i, i),
				fmt.Sprintf("target[%d] payload %d", i, got))
			return
		}
	}
	res.Check("target values preserved")
}

// checkAllocatorEngaged verifies the counting allocator actually backs the
// arrays under test. An instrumentation run whose buffers are invisible to
// the counters would prove nothing.
func (h *Harness) checkAllocatorEngaged(sc *Scenario, counters *fixture.Counters, res *Result) bool {
	if sc.SourceSize+sc.TargetSize > 0 && counters.Allocs() == 0 {
		res.Fail("allocator engaged",
			"array buffers tracked by the counting allocator",
			"no outstanding allocations recorded")
		return false
	}
	res.Check("allocator engaged")
	return true
}
