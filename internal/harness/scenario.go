package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is wrapped by every scenario validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Kind selects the scenario body the harness executes.
type Kind string

const (
	// KindLogic verifies ordinary assignment and cloning correctness with
	// plain integer elements and no failure injection.
	KindLogic Kind = "logic"

	// KindSafety verifies the strong guarantee with instrumented probe
	// elements, optionally injecting a construction failure mid-copy.
	KindSafety Kind = "safety"
)

// Scenario describes one verification run.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Kind is "logic" or "safety".
	Kind Kind `yaml:"kind"`

	// SourceSize is the element count of the source array.
	SourceSize int `yaml:"source_size"`

	// TargetSize is the element count of the target array before
	// assignment. Target elements are given index-valued payloads so a
	// failed assignment that mutated them is detectable.
	TargetSize int `yaml:"target_size"`

	// FailAt is the zero-based element index at which construction starts
	// failing during the copy. -1 disables injection.
	FailAt int `yaml:"fail_at"`

	// ExpectFailure requires the assignment to fail. Observing no failure
	// under an armed trigger is itself a reported violation.
	ExpectFailure bool `yaml:"expect_failure"`
}

// scenarioFile mirrors Scenario for YAML decoding. FailAt is a pointer so
// an omitted fail_at defaults to -1 instead of index zero.
type scenarioFile struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description,omitempty"`
	Kind          Kind   `yaml:"kind"`
	SourceSize    int    `yaml:"source_size"`
	TargetSize    int    `yaml:"target_size"`
	FailAt        *int   `yaml:"fail_at,omitempty"`
	ExpectFailure bool   `yaml:"expect_failure,omitempty"`
}

// Validate checks structural well-formedness. It does not judge whether the
// configuration can actually pass; an unreachable fail_at simply produces
// an "expected failure not observed" violation at run time.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	if s.Kind != KindLogic && s.Kind != KindSafety {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidScenario, s.Kind)
	}
	if s.SourceSize < 0 || s.TargetSize < 0 {
		return fmt.Errorf("%w: sizes must be non-negative", ErrInvalidScenario)
	}
	if s.FailAt < -1 {
		return fmt.Errorf("%w: fail_at must be -1 or a valid index", ErrInvalidScenario)
	}
	return nil
}

// LoadScenario reads and parses one scenario YAML file. Unknown fields are
// rejected to catch typos like "expect_failures:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var file scenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	sc := &Scenario{
		Name:          file.Name,
		Description:   file.Description,
		Kind:          file.Kind,
		SourceSize:    file.SourceSize,
		TargetSize:    file.TargetSize,
		FailAt:        -1,
		ExpectFailure: file.ExpectFailure,
	}
	if file.FailAt != nil {
		sc.FailAt = *file.FailAt
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// LoadScenarioDir loads every *.yaml / *.yml file in dir, in lexical order
// so runs are deterministic.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// DefaultScenarios returns the built-in verification sequence: plain value
// correctness first, then the safety success path, then the rollback path
// with a failure injected partway through the copy.
func DefaultScenarios() []*Scenario {
	return []*Scenario{
		{
			Name:        "assign-values",
			Description: "copy-assignment and cloning of plain integers preserve size and every value",
			Kind:        KindLogic,
			SourceSize:  100,
			TargetSize:  50,
			FailAt:      -1,
		},
		{
			Name:        "assign-probes",
			Description: "assignment of instrumented probes succeeds with no failure armed",
			Kind:        KindSafety,
			SourceSize:  10,
			TargetSize:  5,
			FailAt:      -1,
		},
		{
			Name:          "assign-rollback",
			Description:   "assignment fails mid-copy and leaves the target byte-for-byte intact",
			Kind:          KindSafety,
			SourceSize:    10,
			TargetSize:    5,
			FailAt:        3,
			ExpectFailure: true,
		},
	}
}
