package stripimports_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stripimports/pkg/stripimports"
)

func TestStrip_DropsImports(t *testing.T) {
	out, result, err := stripimports.StripString(context.Background(),
		"import UIKit\nlet x = 5\n")
	require.NoError(t, err)

	assert.Equal(t, "let x = 5\n", out)
	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, 1, result.Kept)
	assert.Equal(t, 1, result.Dropped)
}

func TestStrip_PreservesFoundation(t *testing.T) {
	out, result, err := stripimports.StripString(context.Background(),
		"import Foundation\nimport UIKit\n")
	require.NoError(t, err)

	assert.Equal(t, "import Foundation\n", out)
	assert.Equal(t, 2, result.Imports)
	assert.Equal(t, 1, result.Preserved)
	assert.Equal(t, 1, result.Dropped)
}

func TestStrip_IndentedImportPasses(t *testing.T) {
	out, result, err := stripimports.StripString(context.Background(), "  import UIKit\n")
	require.NoError(t, err)

	assert.Equal(t, "  import UIKit\n", out)
	assert.Zero(t, result.Imports)
}

func TestStrip_EmptyInput(t *testing.T) {
	out, result, err := stripimports.StripString(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Zero(t, result.Lines)
}

func TestStrip_RecordDropped(t *testing.T) {
	_, result, err := stripimports.StripString(context.Background(),
		"keep\nimport UIKit\n",
		stripimports.WithRecordDropped(),
	)
	require.NoError(t, err)

	require.Len(t, result.DroppedLines, 1)
	assert.Equal(t, 2, result.DroppedLines[0].Number)
	assert.Equal(t, "import UIKit", result.DroppedLines[0].Text)
	assert.False(t, result.DroppedTruncated)
}

func TestStrip_DroppedLineLimit(t *testing.T) {
	_, result, err := stripimports.StripString(context.Background(),
		"import A\nimport B\nimport C\n",
		stripimports.WithRecordDropped(),
		stripimports.WithDroppedLineLimit(2),
	)
	require.NoError(t, err)

	assert.Len(t, result.DroppedLines, 2)
	assert.True(t, result.DroppedTruncated)
	assert.Equal(t, 3, result.Dropped)
}

func TestStrip_WithLogger(t *testing.T) {
	var logBuf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	_, _, err := stripimports.StripString(context.Background(),
		"import UIKit\n",
		stripimports.WithLogger(logger),
	)
	require.NoError(t, err)

	assert.Contains(t, logBuf.String(), "dropped import line")
}

func TestStrip_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer

	_, err := stripimports.Strip(ctx, strings.NewReader("keep\n"), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStripFiles_ConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "a.swift")
	require.NoError(t, os.WriteFile(first, []byte("import UIKit\nfirst\n"), 0o644))

	second := filepath.Join(dir, "b.swift")
	require.NoError(t, os.WriteFile(second, []byte("second\n"), 0o644))

	var out bytes.Buffer

	result, err := stripimports.StripFiles(context.Background(), []string{first, second}, &out)
	require.NoError(t, err)

	assert.Equal(t, "first\nsecond\n", out.String())
	assert.Equal(t, 3, result.Lines)
	assert.Equal(t, 1, result.Dropped)
}

func TestStripFiles_MissingFile(t *testing.T) {
	var out bytes.Buffer

	_, err := stripimports.StripFiles(context.Background(), []string{"/nonexistent/file.swift"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening source")
}

func TestResult_HasExpectedCounters(t *testing.T) {
	_, result, err := stripimports.StripString(context.Background(),
		"import UIKit\nimport Foundation\nkeep\n")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Lines)
	assert.Equal(t, 2, result.Kept)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, 2, result.Imports)
	assert.Equal(t, 1, result.Preserved)
}
