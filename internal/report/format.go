package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	sigsyaml "sigs.k8s.io/yaml"
)

// Formatter writes a report to a writer.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// --- Table Formatter ---

// TableFormatter writes the report as a human-readable table.
type TableFormatter struct{}

// Format writes the report as a human-readable table.
func (f *TableFormatter) Format(w io.Writer, r *Report) error {
	_, _ = fmt.Fprintf(w, "Run: %s\n\n", r.RunID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "SOURCE\tTYPE\tLINES\tKEPT\tDROPPED\tPRESERVED")
	_, _ = fmt.Fprintln(tw, "------\t----\t-----\t----\t-------\t---------")

	for _, src := range r.Sources {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
			src.Name,
			src.Type,
			src.Lines,
			src.Kept,
			src.Dropped,
			src.Preserved,
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Lines: %d total", r.Totals.Lines)

	parts := []string{
		fmt.Sprintf("%d kept", r.Totals.Kept),
		fmt.Sprintf("%d dropped", r.Totals.Dropped),
	}

	if r.Totals.Preserved > 0 {
		parts = append(parts, fmt.Sprintf("%d preserved", r.Totals.Preserved))
	}

	_, _ = fmt.Fprintf(w, " (%s)", strings.Join(parts, ", "))
	_, _ = fmt.Fprintln(w)

	// Dropped lines are only present when the processor recorded them.
	for _, src := range r.Sources {
		if len(src.DroppedLines) == 0 {
			continue
		}

		_, _ = fmt.Fprintf(w, "\n--- Dropped lines: %s (%d) ---\n", src.Name, src.Dropped)

		for _, dl := range src.DroppedLines {
			_, _ = fmt.Fprintf(w, "%6d  %s\n", dl.Number, dl.Text)
		}

		if src.DroppedTruncated {
			_, _ = fmt.Fprintf(w, "  ... and %d more\n", src.Dropped-len(src.DroppedLines))
		}
	}

	return nil
}

// --- JSON Formatter ---

// JSONFormatter writes the report as indented JSON.
type JSONFormatter struct{}

// Format writes the report as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// --- YAML Formatter ---

// YAMLFormatter writes the report as YAML.
type YAMLFormatter struct{}

// Format writes the report as YAML.
func (f *YAMLFormatter) Format(w io.Writer, r *Report) error {
	data, err := sigsyaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	_, err = w.Write(data)

	return err
}
