package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "rollback.yaml", `
name: rollback
description: failure mid-copy leaves the target intact
kind: safety
source_size: 10
target_size: 5
fail_at: 3
expect_failure: true
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "rollback", sc.Name)
	assert.Equal(t, KindSafety, sc.Kind)
	assert.Equal(t, 10, sc.SourceSize)
	assert.Equal(t, 5, sc.TargetSize)
	assert.Equal(t, 3, sc.FailAt)
	assert.True(t, sc.ExpectFailure)
}

func TestLoadScenario_FailAtDefaultsToDisabled(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "plain.yaml", `
name: plain
kind: logic
source_size: 4
target_size: 2
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, -1, sc.FailAt, "omitted fail_at must disable injection, not mean index zero")
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: typo
kind: safety
source_size: 4
target_size: 2
expect_failures: true
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect_failures")
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "anon.yaml", `
kind: logic
source_size: 4
target_size: 2
`)

	_, err := LoadScenario(path)
	require.ErrorIs(t, err, ErrInvalidScenario)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		wantErr  bool
	}{
		{"valid logic", Scenario{Name: "a", Kind: KindLogic, SourceSize: 1, TargetSize: 1, FailAt: -1}, false},
		{"valid safety", Scenario{Name: "a", Kind: KindSafety, FailAt: 0}, false},
		{"empty name", Scenario{Kind: KindLogic, FailAt: -1}, true},
		{"unknown kind", Scenario{Name: "a", Kind: "chaos", FailAt: -1}, true},
		{"negative source", Scenario{Name: "a", Kind: KindLogic, SourceSize: -1, FailAt: -1}, true},
		{"negative target", Scenario{Name: "a", Kind: KindLogic, TargetSize: -2, FailAt: -1}, true},
		{"fail_at below -1", Scenario{Name: "a", Kind: KindSafety, FailAt: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidScenario)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadScenarioDir_LexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "20-second.yaml", "name: second\nkind: logic\nsource_size: 1\ntarget_size: 1\n")
	writeScenario(t, dir, "10-first.yml", "name: first\nkind: logic\nsource_size: 1\ntarget_size: 1\n")
	writeScenario(t, dir, "notes.txt", "not a scenario\n")

	scenarios, err := LoadScenarioDir(dir)
	require.NoError(t, err)

	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)
}

func TestLoadScenarioDir_Empty(t *testing.T) {
	_, err := LoadScenarioDir(t.TempDir())
	require.Error(t, err)
}

func TestDefaultScenarios(t *testing.T) {
	scenarios := DefaultScenarios()
	require.Len(t, scenarios, 3)

	for _, sc := range scenarios {
		assert.NoError(t, sc.Validate(), "scenario %s", sc.Name)
	}

	// The sequence ends with the rollback scenario, which must inject a
	// failure and demand one.
	last := scenarios[len(scenarios)-1]
	assert.True(t, last.ExpectFailure)
	assert.GreaterOrEqual(t, last.FailAt, 0)
	assert.Less(t, last.FailAt, last.SourceSize, "the injected failure must be reachable")
}
