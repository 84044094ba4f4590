package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Watch argument validation
// ---------------------------------------------------------------------------

func TestWatch_NoArgs(t *testing.T) {
	_, _, err := executeCommand("watch")
	require.Error(t, err)
}

func TestWatch_RequiresOutput(t *testing.T) {
	_, _, err := executeCommand("watch", "main.swift")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "--output (-o) is required")
}

func TestWatch_OutputIsWatchedInput(t *testing.T) {
	_, _, err := executeCommand("watch", "-o", "main.swift", "main.swift")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "is also a watched input")
}

// ---------------------------------------------------------------------------
// Help text
// ---------------------------------------------------------------------------

func TestDiff_Help(t *testing.T) {
	stdout, _, err := executeCommand("diff", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exit codes:")
}

func TestInspect_Help(t *testing.T) {
	stdout, _, err := executeCommand("inspect", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "per-source statistics")
}

func TestWatch_Help(t *testing.T) {
	stdout, _, err := executeCommand("watch", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--verify")
	assert.Contains(t, stdout, "--debounce")
}

// ---------------------------------------------------------------------------
// Completion command
// ---------------------------------------------------------------------------

func TestCompletion_Bash(t *testing.T) {
	stdout, _, err := executeCommand("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bash completion")
}

func TestCompletion_Zsh(t *testing.T) {
	stdout, _, err := executeCommand("completion", "zsh")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
}

func TestCompletion_Fish(t *testing.T) {
	stdout, _, err := executeCommand("completion", "fish")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fish")
}

func TestCompletion_PowerShell(t *testing.T) {
	stdout, _, err := executeCommand("completion", "powershell")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
}

func TestCompletion_NoDescriptions(t *testing.T) {
	stdout, _, err := executeCommand("completion", "zsh", "--no-descriptions")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
}

func TestCompletion_InvalidShell(t *testing.T) {
	_, _, err := executeCommand("completion", "invalid")
	require.Error(t, err)
}

func TestCompletion_NoArgs(t *testing.T) {
	_, _, err := executeCommand("completion")
	require.Error(t, err)
}
