// Package preview computes unified diffs between original and filtered
// text so callers can see exactly which lines a run would remove.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ANSI escapes for colored diff rendering.
const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// DiffResult is one computed diff, ready for rendering.
type DiffResult struct {
	Unified        string
	HasDifferences bool
	Hunks          []string
	OldLabel       string
	NewLabel       string
}

// DiffOptions controls the labels and context size of a diff.
type DiffOptions struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultDiffOptions labels the sides "original" and "filtered" with
// three lines of context.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		OldLabel: "original",
		NewLabel: "filtered",
		Context:  3,
	}
}

// ComputeDiff renders the unified diff of filtered against original.
// An empty Unified string means the filter would change nothing.
func ComputeDiff(original, filtered string, opts DiffOptions) (*DiffResult, error) {
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(filtered),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	result := &DiffResult{
		Unified:        unified,
		HasDifferences: unified != "",
		OldLabel:       opts.OldLabel,
		NewLabel:       opts.NewLabel,
	}

	if result.HasDifferences {
		result.Hunks = splitHunks(unified)
	}

	return result, nil
}

// splitHunks cuts the unified output into per-hunk strings. The file
// header stays attached to the first hunk.
func splitHunks(unified string) []string {
	var (
		hunks []string
		buf   strings.Builder
	)

	for _, line := range strings.Split(unified, "\n") {
		if strings.HasPrefix(line, "@@") && buf.Len() > 0 {
			hunks = append(hunks, buf.String())
			buf.Reset()
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if buf.Len() > 0 {
		hunks = append(hunks, buf.String())
	}

	return hunks
}

// WriteDiff renders result to w, coloring the diff markers when color
// is true. Without differences it prints a short notice instead.
func WriteDiff(w io.Writer, result *DiffResult, color bool) {
	if !result.HasDifferences {
		_, _ = fmt.Fprintln(w, "No differences found.")
		return
	}

	for _, line := range strings.Split(result.Unified, "\n") {
		if prefix := colorFor(line); color && prefix != "" {
			_, _ = fmt.Fprintf(w, "%s%s%s\n", prefix, line, ansiReset)
			continue
		}

		_, _ = fmt.Fprintln(w, line)
	}
}

// colorFor picks the ANSI prefix for one unified-diff line.
func colorFor(line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return ansiBold
	case strings.HasPrefix(line, "@@"):
		return ansiCyan
	case strings.HasPrefix(line, "-"):
		return ansiRed
	case strings.HasPrefix(line, "+"):
		return ansiGreen
	default:
		return ""
	}
}

// splitLines prepares text for difflib: every element keeps its
// trailing newline, and empty input maps to a single empty line.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}

	return strings.SplitAfter(s, "\n")
}
