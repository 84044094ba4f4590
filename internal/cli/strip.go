package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stripimports/internal/filter"
	"github.com/hupe1980/stripimports/internal/logging"
	"github.com/hupe1980/stripimports/internal/output"
	"github.com/hupe1980/stripimports/internal/source"
)

type stripOptions struct {
	output string
}

// runStrip filters the given sources and writes the surviving lines to
// stdout or to the configured output file.
func runStrip(ctx context.Context, cmd *cobra.Command, args []string, opts *stripOptions) error {
	sink, err := newSink(cmd, opts.output)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	_, runErr := runPipeline(ctx, cmd, args, sink, filter.ProcessorOptions{})

	if closeErr := sink.Close(); closeErr != nil && runErr == nil {
		runErr = &ExitError{Code: 1, Err: fmt.Errorf("closing output: %w", closeErr)}
	}

	return runErr
}

// newSink selects the output destination. An empty path or "-" means
// stdout; anything else becomes a file sink, compressed when the path
// carries a compression extension.
func newSink(cmd *cobra.Command, path string) (output.Sink, error) {
	if path == "" || path == source.StdinName {
		return output.NewStdoutSink(cmd.OutOrStdout()), nil
	}

	logger := logging.FromContext(cmd.Context())

	return output.NewFileSink(path, output.WithLogger(logger))
}
