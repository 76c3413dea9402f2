// Package harness drives the array container through controlled failure
// scenarios and checks that its safety guarantees hold.
//
// A scenario describes one run: array shapes, where to inject an element
// construction failure, and whether a failure is expected. The harness
// executes the scenario against a fresh set of fixture counters and records
// an ordered list of checks. The first violated check stops the scenario —
// there is no branching or retry — and every scenario ends with a leak
// check proving that all element instances and buffer allocations were
// released exactly once.
//
// Violations are reported, never escalated: a failed check produces a
// one-line diagnostic in the Result, not a panic.
package harness
