package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stripimports/internal/filter"
	"github.com/hupe1980/stripimports/internal/report"
)

type inspectOptions struct {
	format       string
	showDropped  bool
	droppedLimit int
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Report what the filter would do without writing output",
		Long: `Inspect runs the filter against the given sources and prints
per-source statistics instead of the filtered text: how many lines were
seen, kept, and dropped, and how many import lines mentioned the
Foundation module and survived.

With --show-dropped the report also lists the dropped lines themselves,
with their line numbers.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "table", "output format: table, json, yaml")
	f.BoolVar(&opts.showDropped, "show-dropped", false, "list dropped lines with their line numbers")
	f.IntVar(&opts.droppedLimit, "dropped-limit", filter.DefaultDroppedLineLimit, "maximum dropped lines to record per source")

	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, args []string, opts *inspectOptions) error {
	// Resolve the formatter before touching any source so a bad
	// --format fails fast.
	formatter, err := report.DefaultRegistry().Formatter(opts.format)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	procOpts := filter.ProcessorOptions{
		RecordDropped:    opts.showDropped,
		DroppedLineLimit: opts.droppedLimit,
	}

	rep, err := runPipeline(ctx, cmd, args, io.Discard, procOpts)
	if err != nil {
		return err
	}

	if err := formatter.Format(cmd.OutOrStdout(), rep); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("formatting report: %w", err)}
	}

	return nil
}
