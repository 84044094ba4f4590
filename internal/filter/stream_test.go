package filter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runProcessor(t *testing.T, input string) (string, *Stats) {
	t.Helper()

	var out bytes.Buffer

	p := NewProcessor(ProcessorOptions{})

	stats, err := p.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	return out.String(), stats
}

// ---------------------------------------------------------------------------
// Filtering scenarios
// ---------------------------------------------------------------------------

func TestProcessor_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"foundation import kept", "import Foundation\n", "import Foundation\n"},
		{"other import dropped", "import UIKit\n", ""},
		{"plain code unchanged", "let x = 5\n", "let x = 5\n"},
		{"indented import passes through", "  import UIKit\n", "  import UIKit\n"},
		{
			"mixed input",
			"import Foundation\nimport UIKit\nlet x = 5\n",
			"import Foundation\nlet x = 5\n",
		},
		{"empty input", "", ""},
		{"blank lines survive", "\n\n\n", "\n\n\n"},
		{
			"dropped line leaves no blank substitute",
			"a\nimport UIKit\nb\n",
			"a\nb\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := runProcessor(t, tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessor_PreservesOrder(t *testing.T) {
	input := "one\nimport A\ntwo\nimport Foundation\nthree\nimport B\nfour\n"
	want := "one\ntwo\nimport Foundation\nthree\nfour\n"

	got, _ := runProcessor(t, input)
	assert.Equal(t, want, got)
}

// ---------------------------------------------------------------------------
// Terminator preservation
// ---------------------------------------------------------------------------

func TestProcessor_PreservesCRLF(t *testing.T) {
	input := "import Foundation\r\nimport UIKit\r\nlet x = 5\r\n"
	want := "import Foundation\r\nlet x = 5\r\n"

	got, _ := runProcessor(t, input)
	assert.Equal(t, want, got)
}

func TestProcessor_FinalLineWithoutTerminator(t *testing.T) {
	got, _ := runProcessor(t, "let a = 1\nlet b = 2")
	assert.Equal(t, "let a = 1\nlet b = 2", got)

	got, _ = runProcessor(t, "let a = 1\nimport UIKit")
	assert.Equal(t, "let a = 1\n", got)

	got, _ = runProcessor(t, "import Foundation")
	assert.Equal(t, "import Foundation", got)
}

func TestProcessor_MixedTerminators(t *testing.T) {
	input := "a\r\nb\nimport UIKit\r\nc"
	want := "a\r\nb\nc"

	got, _ := runProcessor(t, input)
	assert.Equal(t, want, got)
}

// ---------------------------------------------------------------------------
// Idempotence
// ---------------------------------------------------------------------------

func TestProcessor_Idempotent(t *testing.T) {
	input := "import Foundation\nimport UIKit\n  import SwiftUI\nlet x = 5\n"

	once, _ := runProcessor(t, input)
	twice, _ := runProcessor(t, once)

	assert.Equal(t, once, twice)
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

func TestProcessor_Stats(t *testing.T) {
	input := "import Foundation\nimport UIKit\nimport CoreData\nlet x = 5\n\n"

	_, stats := runProcessor(t, input)

	assert.Equal(t, 5, stats.Lines)
	assert.Equal(t, 3, stats.Kept)
	assert.Equal(t, 2, stats.Dropped)
	assert.Equal(t, 3, stats.Imports)
	assert.Equal(t, 1, stats.Preserved)
	assert.Empty(t, stats.DroppedLines, "recording disabled by default")
}

func TestProcessor_EmptyInputStats(t *testing.T) {
	_, stats := runProcessor(t, "")

	assert.Equal(t, 0, stats.Lines)
	assert.Equal(t, 0, stats.Kept)
	assert.Equal(t, 0, stats.Dropped)
}

func TestProcessor_RecordDropped(t *testing.T) {
	var out bytes.Buffer

	p := NewProcessor(ProcessorOptions{RecordDropped: true})

	input := "keep\nimport UIKit\nkeep\nimport CoreData\n"

	stats, err := p.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	require.Len(t, stats.DroppedLines, 2)
	assert.Equal(t, 2, stats.DroppedLines[0].Number)
	assert.Equal(t, "import UIKit", stats.DroppedLines[0].Text)
	assert.Equal(t, 4, stats.DroppedLines[1].Number)
	assert.Equal(t, "import CoreData", stats.DroppedLines[1].Text)
	assert.False(t, stats.DroppedTruncated)
}

func TestProcessor_RecordDroppedLimit(t *testing.T) {
	var out bytes.Buffer

	p := NewProcessor(ProcessorOptions{RecordDropped: true, DroppedLineLimit: 2})

	input := "import A\nimport B\nimport C\nimport D\n"

	stats, err := p.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Dropped)
	assert.Len(t, stats.DroppedLines, 2)
	assert.True(t, stats.DroppedTruncated)
}

func TestStats_Add(t *testing.T) {
	total := &Stats{}
	total.Add(&Stats{Lines: 3, Kept: 2, Dropped: 1, Imports: 1})
	total.Add(&Stats{Lines: 5, Kept: 5, Imports: 2, Preserved: 2})

	assert.Equal(t, 8, total.Lines)
	assert.Equal(t, 7, total.Kept)
	assert.Equal(t, 1, total.Dropped)
	assert.Equal(t, 3, total.Imports)
	assert.Equal(t, 2, total.Preserved)
}

// ---------------------------------------------------------------------------
// Long lines
// ---------------------------------------------------------------------------

func TestProcessor_LineLongerThanReadBuffer(t *testing.T) {
	long := strings.Repeat("x", readBufferSize*2)
	input := long + "\nimport UIKit\n"

	got, stats := runProcessor(t, input)
	assert.Equal(t, long+"\n", got)
	assert.Equal(t, 2, stats.Lines)
}

// ---------------------------------------------------------------------------
// Error paths
// ---------------------------------------------------------------------------

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestProcessor_WriteError(t *testing.T) {
	p := NewProcessor(ProcessorOptions{})

	_, err := p.Run(context.Background(), strings.NewReader("keep\n"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing line 1")
	assert.Contains(t, err.Error(), "disk full")
}

func TestProcessor_ReadError(t *testing.T) {
	p := NewProcessor(ProcessorOptions{})

	_, err := p.Run(context.Background(), failingReader{}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading line 1")
	assert.Contains(t, err.Error(), "device gone")
}

func TestProcessor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(ProcessorOptions{})

	_, err := p.Run(ctx, strings.NewReader("a\nb\n"), io.Discard)
	require.ErrorIs(t, err, context.Canceled)
}
