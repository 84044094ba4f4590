package filter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// readBufferSize is the initial capacity of the buffered line reader.
const readBufferSize = 64 * 1024

// DefaultDroppedLineLimit caps how many dropped lines are recorded per
// source when recording is enabled.
const DefaultDroppedLineLimit = 100

// DroppedLine records one removed line for reporting.
type DroppedLine struct {
	// Number is the 1-based line number within the source.
	Number int `json:"number"`

	// Text is the line content without its terminator.
	Text string `json:"text"`
}

// Stats holds the counters accumulated while processing one source.
type Stats struct {
	// Lines is the total number of lines read.
	Lines int `json:"lines"`

	// Kept is the number of lines written to output.
	Kept int `json:"kept"`

	// Dropped is the number of lines removed.
	Dropped int `json:"dropped"`

	// Imports is the number of lines matching the import prefix.
	Imports int `json:"imports"`

	// Preserved is the number of import lines kept for referencing
	// Foundation.
	Preserved int `json:"preserved"`

	// DroppedLines holds removed lines when recording is enabled,
	// capped at the configured limit.
	DroppedLines []DroppedLine `json:"droppedLines,omitempty"`

	// DroppedTruncated is true when more lines were dropped than the
	// recording limit allowed.
	DroppedTruncated bool `json:"droppedTruncated,omitempty"`
}

// Add accumulates the counters of other into s. Recorded dropped lines
// are not merged because their numbers are source-relative.
func (s *Stats) Add(other *Stats) {
	s.Lines += other.Lines
	s.Kept += other.Kept
	s.Dropped += other.Dropped
	s.Imports += other.Imports
	s.Preserved += other.Preserved
}

// ProcessorOptions configures a Processor.
type ProcessorOptions struct {
	// RecordDropped enables capturing the text and position of dropped
	// lines in the returned Stats.
	RecordDropped bool

	// DroppedLineLimit caps recorded dropped lines per source.
	// Zero means DefaultDroppedLineLimit.
	DroppedLineLimit int

	// Logger is used for debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// Processor streams lines from a reader to a writer, applying the
// import filter rule to each line independently. Kept lines are written
// byte-for-byte, including their original terminators; dropped lines
// produce no output. Processing is strictly sequential with no
// read-ahead beyond the current line.
type Processor struct {
	recordDropped bool
	droppedLimit  int
	logger        *slog.Logger
}

// NewProcessor creates a Processor with the given options.
func NewProcessor(opts ProcessorOptions) *Processor {
	limit := opts.DroppedLineLimit
	if limit <= 0 {
		limit = DefaultDroppedLineLimit
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		recordDropped: opts.RecordDropped,
		droppedLimit:  limit,
		logger:        logger,
	}
}

// Run consumes r line by line until EOF, writing kept lines to w in
// input order. It returns the accumulated stats, or an error on the
// first read or write failure. A read failure aborts the run
// immediately; output already written stays written.
func (p *Processor) Run(ctx context.Context, r io.Reader, w io.Writer) (*Stats, error) {
	br := bufio.NewReaderSize(r, readBufferSize)
	stats := &Stats{}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// ReadBytes retains the trailing '\n'; a final unterminated
		// line arrives together with io.EOF.
		raw, err := br.ReadBytes('\n')

		if len(raw) > 0 {
			stats.Lines++

			line := NewLine(raw)
			verdict := Evaluate(line)

			switch verdict {
			case VerdictPreserve:
				stats.Imports++
				stats.Preserved++
			case VerdictDrop:
				stats.Imports++
			case VerdictPass:
			}

			if verdict.Keep() {
				if _, werr := w.Write(raw); werr != nil {
					return nil, fmt.Errorf("writing line %d: %w", stats.Lines, werr)
				}

				stats.Kept++
			} else {
				stats.Dropped++
				p.recordDrop(stats, line)

				p.logger.Debug("dropped import line",
					slog.Int("line", stats.Lines),
					slog.String("text", line.String()),
				)
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return stats, nil
			}

			return nil, fmt.Errorf("reading line %d: %w", stats.Lines+1, err)
		}
	}
}

// recordDrop captures a dropped line in stats, honoring the limit.
func (p *Processor) recordDrop(stats *Stats, l Line) {
	if !p.recordDropped {
		return
	}

	if len(stats.DroppedLines) >= p.droppedLimit {
		stats.DroppedTruncated = true
		return
	}

	stats.DroppedLines = append(stats.DroppedLines, DroppedLine{
		Number: stats.Lines,
		Text:   l.String(),
	})
}
