// Package stripimports provides a public Go API for removing import
// lines from generated source text.
//
// This package exposes the line filter as a library, allowing
// programmatic use without the CLI.
//
// Basic usage:
//
//	result, err := stripimports.Strip(ctx, reader, writer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("dropped %d of %d lines\n", result.Dropped, result.Lines)
//
// With options:
//
//	result, err := stripimports.Strip(ctx, reader, writer,
//	    stripimports.WithLogger(logger),
//	    stripimports.WithRecordDropped(),
//	)
package stripimports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/stripimports/internal/filter"
	"github.com/hupe1980/stripimports/internal/source"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Option configures the filter.
// Use the With* functions to create Options.
type Option func(*options)

// options holds the internal configuration for the filter.
type options struct {
	logger           *slog.Logger
	recordDropped    bool
	droppedLineLimit int
}

// --- Logging ---

// WithLogger sets the logger used for per-line debug output.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// --- Dropped line recording ---

// WithRecordDropped records the dropped lines on the result.
func WithRecordDropped() Option { return func(o *options) { o.recordDropped = true } }

// WithDroppedLineLimit caps how many dropped lines are recorded per
// source (default: 100).
func WithDroppedLineLimit(n int) Option { return func(o *options) { o.droppedLineLimit = n } }

// DroppedLine is one removed line together with its 1-based position.
type DroppedLine struct {
	Number int
	Text   string
}

// Result holds the outcome of a filter run.
type Result struct {
	// Lines is the total number of lines read.
	Lines int

	// Kept is the number of lines written through unchanged.
	Kept int

	// Dropped is the number of import lines removed.
	Dropped int

	// Imports is the number of lines that started with the import keyword.
	Imports int

	// Preserved is the number of import lines kept for mentioning Foundation.
	Preserved int

	// DroppedLines lists the removed lines when recording was enabled.
	// For multi-source runs the line numbers are relative to each source.
	DroppedLines []DroppedLine

	// DroppedTruncated reports whether DroppedLines hit the recording limit.
	DroppedTruncated bool
}

// Strip filters r into w line by line. Lines starting with the import
// keyword are dropped unless they mention the Foundation module; all
// other lines are copied byte for byte, original terminators included.
//
// Pass no options to use all defaults:
//
//	result, err := stripimports.Strip(ctx, reader, writer)
func Strip(ctx context.Context, r io.Reader, w io.Writer, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	stats, err := newProcessor(o).Run(ctx, r, w)
	if err != nil {
		return nil, err
	}

	return newResult(stats), nil
}

// StripString filters s and returns the filtered text alongside the
// run result.
func StripString(ctx context.Context, s string, opts ...Option) (string, *Result, error) {
	var out strings.Builder

	result, err := Strip(ctx, strings.NewReader(s), &out, opts...)
	if err != nil {
		return "", nil, err
	}

	return out.String(), result, nil
}

// StripFiles filters the named files into w, concatenated in the order
// given. An empty list or the path "-" reads stdin. Sources with a
// compression extension (.gz, .zst, .zstd) are decompressed
// transparently. The first open or read failure aborts the run; lines
// already written stay in w.
func StripFiles(ctx context.Context, paths []string, w io.Writer, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	processor := newProcessor(o)

	total := &filter.Stats{}

	for _, src := range source.Resolve(paths) {
		rc, err := src.Open(nil)
		if err != nil {
			return nil, err
		}

		stats, runErr := processor.Run(ctx, rc, w)
		closeErr := rc.Close()

		if runErr != nil {
			return nil, fmt.Errorf("filtering %s: %w", src.Name, runErr)
		}

		if closeErr != nil {
			return nil, fmt.Errorf("closing %s: %w", src.Name, closeErr)
		}

		total.Add(stats)
		total.DroppedLines = append(total.DroppedLines, stats.DroppedLines...)

		if stats.DroppedTruncated {
			total.DroppedTruncated = true
		}
	}

	return newResult(total), nil
}

// newOptions applies the option functions and fills in defaults.
func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = discardLogger()
	}

	return o
}

func newProcessor(o *options) *filter.Processor {
	return filter.NewProcessor(filter.ProcessorOptions{
		RecordDropped:    o.recordDropped,
		DroppedLineLimit: o.droppedLineLimit,
		Logger:           o.logger,
	})
}

// newResult converts internal stats to the public result type.
func newResult(stats *filter.Stats) *Result {
	result := &Result{
		Lines:            stats.Lines,
		Kept:             stats.Kept,
		Dropped:          stats.Dropped,
		Imports:          stats.Imports,
		Preserved:        stats.Preserved,
		DroppedTruncated: stats.DroppedTruncated,
	}

	for _, dl := range stats.DroppedLines {
		result.DroppedLines = append(result.DroppedLines, DroppedLine{
			Number: dl.Number,
			Text:   dl.Text,
		})
	}

	return result
}
