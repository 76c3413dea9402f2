package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/strongarray/internal/harness"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	RunID string // fixed run ID for deterministic output
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [scenario-dir]",
		Short: "Run the safety verification scenarios",
		Long: `Run the container safety verification scenarios.

Without arguments the built-in sequence runs: plain-value assignment
correctness, the no-failure safety path, and the rollback path with a
construction failure injected mid-copy. With a directory argument, every
*.yaml scenario file in it runs instead, in lexical order. The run stops at
the first violated check; every scenario ends with a leak check.

Exit codes:
  0 - All scenarios passed
  1 - A property check was violated
  2 - Command error (invalid flags, unreadable scenario files)

Examples:
  strongarray verify
  strongarray verify ./scenarios
  strongarray verify --format json
  strongarray verify --run-id nightly-0412`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runVerify(opts, dir, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "fixed run identifier (default: random)")

	return cmd
}

func runVerify(opts *VerifyOptions, dir string, cmd *cobra.Command) error {
	scenarios := harness.DefaultScenarios()
	if dir != "" {
		loaded, err := harness.LoadScenarioDir(dir)
		if err != nil {
			return WrapExitError(ExitCommandError, "load scenarios", err)
		}
		scenarios = loaded
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}

	harnessOpts := []harness.Option{harness.WithLogger(logger)}
	if opts.RunID != "" {
		harnessOpts = append(harnessOpts, harness.WithRunID(opts.RunID))
	}

	h := harness.New(harnessOpts...)
	summary := harness.Summarize(h.RunAll(scenarios))

	var renderErr error
	switch opts.Format {
	case "json":
		renderErr = harness.RenderJSON(cmd.OutOrStdout(), summary)
	default:
		renderErr = harness.RenderText(cmd.OutOrStdout(), summary)
	}
	if renderErr != nil {
		return WrapExitError(ExitCommandError, "render report", renderErr)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%d of %d scenarios failed", summary.Failed, summary.Total))
	}
	return nil
}
