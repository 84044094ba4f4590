package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stripimports/internal/config"
	"github.com/hupe1980/stripimports/internal/filter"
	"github.com/hupe1980/stripimports/internal/logging"
	"github.com/hupe1980/stripimports/internal/preview"
	"github.com/hupe1980/stripimports/internal/source"
)

func newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [file...]",
		Short: "Preview which lines the filter would remove",
		Long: `Diff shows which lines the filter would remove, without writing any
filtered output. Each source is filtered in memory and compared against
its original content as a unified diff.

Exit codes:
  0  No lines would be removed
  1  Error
  2  Invalid arguments
  8  At least one line would be removed`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), cmd, args)
		},
	}

	return cmd
}

func runDiff(ctx context.Context, cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(ctx)

	// Coloring follows the loaded config, so the global --no-color
	// flag, STRIPIMPORTS_NO_COLOR, and the config file all apply.
	cfg := config.FromContext(ctx)

	sources := source.Resolve(args)
	processor := filter.NewProcessor(filter.ProcessorOptions{Logger: logger})

	w := cmd.OutOrStdout()

	totalDropped := 0

	for i, src := range sources {
		original, filtered, stats, err := filterToMemory(ctx, cmd, processor, src)
		if err != nil {
			return err
		}

		totalDropped += stats.Dropped

		diffOpts := preview.DefaultDiffOptions()
		if src.Type != source.TypeStdin {
			diffOpts.OldLabel = src.Name
			diffOpts.NewLabel = src.Name + " (filtered)"
		}

		result, diffErr := preview.ComputeDiff(original, filtered, diffOpts)
		if diffErr != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("computing diff: %w", diffErr)}
		}

		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}

		preview.WriteDiff(w, result, !cfg.NoColor)
	}

	// Exit code 8 when the filter would change anything.
	if totalDropped > 0 {
		return &ExitError{
			Code: 8,
			Err:  fmt.Errorf("%d line(s) would be removed", totalDropped),
		}
	}

	return nil
}

// filterToMemory reads one source fully, filters it into a buffer, and
// returns the original and filtered text. Diff needs both sides in
// memory, so this trades the streaming behavior of runPipeline for a
// complete view of the source.
func filterToMemory(ctx context.Context, cmd *cobra.Command, processor *filter.Processor, src source.Source) (string, string, *filter.Stats, error) {
	r, err := src.Open(cmd.InOrStdin())
	if err != nil {
		return "", "", nil, &ExitError{Code: 1, Err: err}
	}

	defer r.Close() //nolint:errcheck

	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", nil, &ExitError{Code: 1, Err: fmt.Errorf("reading %s: %w", src.Name, err)}
	}

	var out bytes.Buffer

	stats, err := processor.Run(ctx, bytes.NewReader(data), &out)
	if err != nil {
		return "", "", nil, &ExitError{Code: 1, Err: fmt.Errorf("filtering %s: %w", src.Name, err)}
	}

	return string(data), out.String(), stats, nil
}
