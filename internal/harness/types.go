package harness

import "fmt"

// CheckError describes one violated check with the context needed to debug
// it. Its Error string is a single diagnostic line.
type CheckError struct {
	// Check names the violated check.
	Check string

	// Expected is the human-readable expected outcome.
	Expected string

	// Actual is the human-readable observed outcome.
	Actual string
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("check %q failed: expected %s, got %s", e.Check, e.Expected, e.Actual)
}

// Result is the outcome of one scenario execution.
type Result struct {
	// RunID identifies the harness run this result belongs to.
	RunID string `json:"run_id"`

	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass indicates every check held.
	Pass bool `json:"pass"`

	// Checks lists the checks that passed, in execution order.
	Checks []string `json:"checks"`

	// Errors contains one diagnostic line per violation. Empty if Pass.
	Errors []string `json:"errors,omitempty"`

	violation *CheckError
}

// NewResult creates a passing result to accumulate checks into.
func NewResult(runID, scenario string) *Result {
	return &Result{
		RunID:    runID,
		Scenario: scenario,
		Pass:     true,
		Checks:   []string{},
	}
}

// Check records a passed check.
func (r *Result) Check(name string) {
	r.Checks = append(r.Checks, name)
}

// Fail records a violated check and marks the result failed. Only the first
// violation is kept; the scenario stops at it.
func (r *Result) Fail(check, expected, actual string) {
	violation := &CheckError{Check: check, Expected: expected, Actual: actual}
	if r.violation == nil {
		r.violation = violation
	}
	r.Errors = append(r.Errors, violation.Error())
	r.Pass = false
}

// Violation returns the first violated check, or nil if the result passed.
func (r *Result) Violation() *CheckError {
	return r.violation
}

// Summary aggregates the results of one harness run.
type Summary struct {
	RunID     string    `json:"run_id"`
	Scenarios []*Result `json:"scenarios"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
}

// Summarize rolls results up into a Summary.
func Summarize(results []*Result) *Summary {
	s := &Summary{Scenarios: results, Total: len(results)}
	for _, r := range results {
		if s.RunID == "" {
			s.RunID = r.RunID
		}
		if r.Pass {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
