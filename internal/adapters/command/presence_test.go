package command

import (
	"context"
	"testing"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
	"github.com/revelare/toolbelt/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathChecker_ProbeCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "where node", NewPathCheckerFor(nil, "windows").ProbeCommand("node"))
	assert.Equal(t, "command -v node", NewPathCheckerFor(nil, "linux").ProbeCommand("node"))
}

func TestPathChecker_Exists(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("where node", ports.CommandResult{Status: ports.RunSuccess, Stdout: `C:\Program Files\nodejs\node.exe`})
	runner.AddResult("where psql", ports.CommandResult{Status: ports.RunFailure, ExitCode: 1})
	runner.AddError("where wt", ports.CommandResult{Status: ports.RunTimeout, ExitCode: -1}, ErrTimeout)

	checker := NewPathCheckerFor(runner, "windows")
	ctx := context.Background()

	assert.True(t, checker.Exists(ctx, "node"))
	assert.False(t, checker.Exists(ctx, "psql"))
	assert.False(t, checker.Exists(ctx, "wt"))
	assert.False(t, checker.Exists(ctx, "unregistered"))
}

func TestPathChecker_Exists_RejectsUnsafeNames(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	checker := NewPathCheckerFor(runner, "windows")

	assert.False(t, checker.Exists(context.Background(), "node & calc"))
	assert.False(t, checker.Exists(context.Background(), ""))
	assert.Empty(t, runner.Calls(), "unsafe names must never reach the shell")
}

func TestPathChecker_Exists_NoCaching(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("where git", ports.CommandResult{Status: ports.RunFailure, ExitCode: 1})
	checker := NewPathCheckerFor(runner, "windows")
	ctx := context.Background()

	require.False(t, checker.Exists(ctx, "git"))
	runner.AddResult("where git", ports.CommandResult{Status: ports.RunSuccess})
	assert.True(t, checker.Exists(ctx, "git"))
	assert.Len(t, runner.Calls(), 2)
}

func TestPathChecker_UsesProbeTimeout(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("command -v git", ports.CommandResult{Status: ports.RunSuccess})
	checker := NewPathCheckerFor(runner, "linux").WithTimeout(3 * time.Second)

	require.True(t, checker.Exists(context.Background(), "git"))
	assert.Equal(t, 3*time.Second, runner.Calls()[0].Timeout)
}

func TestPathChecker_RealShell(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	checker := NewPathChecker(NewShellRunner())

	assert.True(t, checker.Exists(context.Background(), "sh"))
	assert.False(t, checker.Exists(context.Background(), "nonexistent-command-12345"))
}
