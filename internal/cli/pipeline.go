package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stripimports/internal/filter"
	"github.com/hupe1980/stripimports/internal/logging"
	"github.com/hupe1980/stripimports/internal/report"
	"github.com/hupe1980/stripimports/internal/source"
)

// runPipeline streams every resolved source through the processor into
// sink and returns a per-source report. This is the shared core used by
// the root, inspect, and watch commands.
//
// Sources are filtered strictly in the order given. The first open,
// read, or close failure aborts the run; lines already written stay in
// the sink.
func runPipeline(ctx context.Context, cmd *cobra.Command, args []string, sink io.Writer, procOpts filter.ProcessorOptions) (*report.Report, error) {
	logger := logging.FromContext(ctx)

	// 1. Resolve the ordered source sequence.
	sources := source.Resolve(args)

	logger.Debug("sources resolved", slog.Int("count", len(sources)))

	// 2. Build the processor.
	procOpts.Logger = logger
	processor := filter.NewProcessor(procOpts)

	rep := report.New()

	// 3. Filter each source into the sink.
	for _, src := range sources {
		r, err := src.Open(cmd.InOrStdin())
		if err != nil {
			return rep, &ExitError{Code: 1, Err: err}
		}

		stats, runErr := processor.Run(ctx, r, sink)
		closeErr := r.Close()

		if runErr != nil {
			return rep, &ExitError{Code: 1, Err: fmt.Errorf("filtering %s: %w", src.Name, runErr)}
		}

		if closeErr != nil {
			return rep, &ExitError{Code: 1, Err: fmt.Errorf("closing %s: %w", src.Name, closeErr)}
		}

		rep.AddSource(src, stats)

		logging.WithSource(logger, src.Name).Debug("source filtered",
			slog.Int("lines", stats.Lines),
			slog.Int("dropped", stats.Dropped),
		)
	}

	return rep, nil
}
