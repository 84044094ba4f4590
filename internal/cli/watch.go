package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stripimports/internal/filter"
	"github.com/hupe1980/stripimports/internal/logging"
	"github.com/hupe1980/stripimports/internal/output"
	"github.com/hupe1980/stripimports/internal/source"
	"github.com/hupe1980/stripimports/internal/watch"
)

type watchOptions struct {
	stripOptions

	// Watch-specific options.
	debounce time.Duration
	verify   bool
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Watch files for changes and re-run the filter",
		Long: `Watch monitors the given files for changes and re-runs the filter
whenever one of them is modified, rewriting the output file each time.

File changes are debounced to avoid rapid re-runs. Each run reports the
number of lines seen and dropped. With --verify the freshly written
output is re-filtered after each run, and any surviving import line is
reported as an error.

The --output (-o) flag is required; watch mode never writes to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args, opts)
		},
	}

	registerOutputFlags(cmd, &opts.stripOptions)

	// Watch-specific flags.
	f := cmd.Flags()
	f.DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	f.BoolVar(&opts.verify, "verify", false, "re-filter the output after each run")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, args []string, opts *watchOptions) error {
	if opts.output == "" {
		return &ExitError{Code: 2, Err: fmt.Errorf("--output (-o) is required for watch mode")}
	}

	// Refuse to watch the file being written, which would retrigger
	// the watcher on every run.
	outAbs, err := filepath.Abs(opts.output)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("resolving output path %q: %w", opts.output, err)}
	}

	for _, arg := range args {
		argAbs, absErr := filepath.Abs(arg)
		if absErr != nil {
			return &ExitError{Code: 2, Err: fmt.Errorf("resolving file %q: %w", arg, absErr)}
		}

		if argAbs == outAbs {
			return &ExitError{Code: 2, Err: fmt.Errorf("output file %s is also a watched input", arg)}
		}
	}

	logger := logging.FromContext(ctx)

	// Build the run function that filters all watched files into a
	// fresh output file.
	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		sink, sinkErr := output.NewFileSink(opts.output, output.WithLogger(logger))
		if sinkErr != nil {
			return nil, sinkErr
		}

		rep, runErr := runPipeline(fnCtx, cmd, args, sink, filter.ProcessorOptions{})

		closeErr := sink.Close()

		if runErr != nil {
			return nil, runErr
		}

		if closeErr != nil {
			return nil, fmt.Errorf("closing output: %w", closeErr)
		}

		return &watch.RunResult{
			Lines:      rep.Totals.Lines,
			Kept:       rep.Totals.Kept,
			Dropped:    rep.Totals.Dropped,
			OutputPath: opts.output,
		}, nil
	}

	// Build optional verify function.
	var verifyFn watch.VerifyFunc
	if opts.verify {
		verifyFn = func(verCtx context.Context, outputPath string) error {
			return verifyFiltered(verCtx, outputPath)
		}
	}

	watchOpts := watch.Options{
		Files:    args,
		Debounce: opts.debounce,
		Verify:   opts.verify,
		VerifyFn: verifyFn,
		Logger:   logger,
		Out:      cmd.ErrOrStderr(),
	}

	return watch.Run(ctx, watchOpts, runFn)
}

// verifyFiltered runs the written output back through the filter and
// fails when any import line survived.
func verifyFiltered(ctx context.Context, outputPath string) error {
	src := source.Resolve([]string{outputPath})[0]

	r, err := src.Open(nil)
	if err != nil {
		return err
	}

	defer r.Close() //nolint:errcheck

	processor := filter.NewProcessor(filter.ProcessorOptions{})

	stats, err := processor.Run(ctx, r, io.Discard)
	if err != nil {
		return fmt.Errorf("re-filtering %s: %w", outputPath, err)
	}

	if stats.Dropped > 0 {
		return fmt.Errorf("%d import line(s) survived in %s", stats.Dropped, outputPath)
	}

	return nil
}
