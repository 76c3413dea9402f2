package harness

import (
	"encoding/json"
	"fmt"
	"io"
)

// RenderText writes the human-readable report for a run: one PASS/FAIL line
// per scenario, violation diagnostics indented beneath failing ones, and a
// trailing tally. Output is deterministic under a fixed run ID.
func RenderText(w io.Writer, s *Summary) error {
	if _, err := fmt.Fprintf(w, "run %s\n", s.RunID); err != nil {
		return err
	}
	for _, r := range s.Scenarios {
		if r.Pass {
			if _, err := fmt.Fprintf(w, "PASS %s (%d checks)\n", r.Scenario, len(r.Checks)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "FAIL %s\n", r.Scenario); err != nil {
			return err
		}
		for _, line := range r.Errors {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d passed, %d failed, %d total\n", s.Passed, s.Failed, s.Total)
	return err
}

// RenderJSON writes the summary as indented JSON.
func RenderJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
