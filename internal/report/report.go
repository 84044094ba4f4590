// Package report assembles structured run reports for the inspect command.
//
// A [Report] collects per-source filter statistics under a unique run ID and
// can be rendered as a table, JSON, or YAML via the [Formatter]
// implementations in this package.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/stripimports/internal/filter"
	"github.com/hupe1980/stripimports/internal/source"
)

// SourceReport describes the filter outcome for a single input source.
type SourceReport struct {
	Name             string               `json:"name"`
	Type             string               `json:"type"`
	Lines            int                  `json:"lines"`
	Kept             int                  `json:"kept"`
	Dropped          int                  `json:"dropped"`
	Imports          int                  `json:"imports"`
	Preserved        int                  `json:"preserved"`
	DroppedLines     []filter.DroppedLine `json:"droppedLines,omitempty"`
	DroppedTruncated bool                 `json:"droppedTruncated,omitempty"`
}

// Totals sums the per-source counters.
type Totals struct {
	Sources   int `json:"sources"`
	Lines     int `json:"lines"`
	Kept      int `json:"kept"`
	Dropped   int `json:"dropped"`
	Imports   int `json:"imports"`
	Preserved int `json:"preserved"`
}

// Report aggregates filter outcomes across all sources of one run.
type Report struct {
	RunID     string         `json:"runId"`
	StartedAt time.Time      `json:"startedAt"`
	Sources   []SourceReport `json:"sources"`
	Totals    Totals         `json:"totals"`
}

// New creates an empty report with a fresh run ID.
func New() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// AddSource appends the outcome for one source and updates the totals.
func (r *Report) AddSource(src source.Source, stats *filter.Stats) {
	r.Sources = append(r.Sources, SourceReport{
		Name:             src.Name,
		Type:             src.Type.String(),
		Lines:            stats.Lines,
		Kept:             stats.Kept,
		Dropped:          stats.Dropped,
		Imports:          stats.Imports,
		Preserved:        stats.Preserved,
		DroppedLines:     stats.DroppedLines,
		DroppedTruncated: stats.DroppedTruncated,
	})

	r.Totals.Sources++
	r.Totals.Lines += stats.Lines
	r.Totals.Kept += stats.Kept
	r.Totals.Dropped += stats.Dropped
	r.Totals.Imports += stats.Imports
	r.Totals.Preserved += stats.Preserved
}
