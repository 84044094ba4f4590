// Package cli implements the stripimports command tree. The root command
// itself runs the filter; diff, inspect, watch, version, and completion
// hang off it as subcommands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stripimports/internal/config"
	"github.com/hupe1980/stripimports/internal/logging"
	"github.com/hupe1980/stripimports/internal/version"
)

// ExitError pins an error to the process exit code it should produce.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}

	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute runs the command tree and returns the process exit code.
// Cobra's own error printing is silenced, so the diagnostic for a
// failed run is emitted here, exactly once.
func Execute() int {
	err := NewRootCommand().Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, "Error:", err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached. The root command itself runs the filter.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	opts := &stripOptions{}

	cmd := &cobra.Command{
		Use:   "stripimports [file...]",
		Short: "Remove import lines from generated source text",
		Long: `stripimports is a CLI tool that removes import lines from generated
source text.

It reads lines from stdin, or from the given files concatenated in
order, and drops every line that starts with the import keyword. Lines
that mention the Foundation module are kept even when they start with
the keyword, and indented import lines pass through untouched. All
other lines are copied byte for byte, original line endings included.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			logger := logging.Setup(cfg)

			if err := cfg.CheckVersion(version.GetInfo().Version); err != nil {
				if !errors.Is(err, config.ErrVersionUnknown) {
					return &ExitError{Code: 2, Err: err}
				}

				logger.Warn("skipping version check", slog.String("reason", err.Error()))
			}

			ctx := config.NewContext(cmd.Context(), cfg)
			cmd.SetContext(logging.NewContext(ctx, logger))

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
			)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(cmd.Context(), cmd, args, opts)
		},
	}

	// Persistent flags are shared by every subcommand.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .stripimports.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	registerOutputFlags(cmd, opts)

	// Unknown or malformed flags map to exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Err: err}
	})

	cmd.AddCommand(
		newVersionCommand(),
		newDiffCommand(),
		newInspectCommand(),
		newWatchCommand(),
		newCompletionCommand(),
	)

	return cmd
}
