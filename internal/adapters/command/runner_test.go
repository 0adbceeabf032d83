package command

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests use POSIX shell syntax")
	}
}

func TestShellRunner_Run_Success(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	runner := NewShellRunner()

	result, err := runner.Run(context.Background(), "echo hello", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, ports.RunSuccess, result.Status)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Positive(t, result.Duration)
}

func TestShellRunner_Run_Failure(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	runner := NewShellRunner()

	result, err := runner.Run(context.Background(), "echo boom >&2; exit 3", time.Minute)

	require.NoError(t, err, "non-zero exit is a result, not an error")
	assert.Equal(t, ports.RunFailure, result.Status)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "boom\n", result.Stderr)
}

func TestShellRunner_Run_Timeout(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	runner := NewShellRunner(WithWaitDelay(200 * time.Millisecond))

	start := time.Now()
	result, err := runner.Run(context.Background(), "sleep 5; echo done", 100*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, ports.RunTimeout, result.Status)
	assert.False(t, result.Success())
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestShellRunner_Run_NotFound(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	runner := NewShellRunner()

	result, err := runner.Run(context.Background(), "nonexistent-command-12345 --version", time.Minute)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommandNotFound)
	assert.True(t, IsCommandNotFound(err))
	assert.Equal(t, ports.RunError, result.Status)
}

func TestShellRunner_Run_ParentCancelled(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	runner := NewShellRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.Run(ctx, "sleep 10", time.Minute)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, ports.RunError, result.Status)
}

func TestShellRunner_Run_NoTimeout(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	result, err := NewShellRunner().Run(context.Background(), "true", 0)

	require.NoError(t, err)
	assert.True(t, result.Success())
}

func TestShellRunner_Run_EmptyCommand(t *testing.T) {
	t.Parallel()

	result, err := NewShellRunner().Run(context.Background(), "   ", time.Second)

	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.Equal(t, ports.RunError, result.Status)
}

func TestIsCommandNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrCommandNotFound, true},
		{"exec not found", exec.ErrNotFound, true},
		{"wrapped exec error", &exec.Error{Name: "winget", Err: exec.ErrNotFound}, true},
		{"other", errors.New("permission denied"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsCommandNotFound(tt.err))
		})
	}
}

func TestDryRunRunner_RecordsAndSucceeds(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	runner := NewDryRunRunner(&out)

	result, err := runner.Run(context.Background(), "winget install Git.Git", time.Minute)

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "[dry-run] winget install Git.Git\n", out.String())
	require.Len(t, runner.Calls(), 1)
	assert.Equal(t, time.Minute, runner.Calls()[0].Timeout)
}

func TestShellRunner_RunIn_UsesDirectory(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	dir := t.TempDir()
	result, err := NewShellRunner().RunIn(context.Background(), dir, "pwd", time.Minute)

	require.NoError(t, err)
	assert.Contains(t, strings.TrimSpace(result.Stdout), filepath.Base(dir))
}

func TestDryRunRunner_RunIn(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	runner := NewDryRunRunner(&out)

	_, err := runner.RunIn(context.Background(), "/src/site", "wrangler d1 list", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, "[dry-run] (in /src/site) wrangler d1 list\n", out.String())
	assert.Equal(t, "/src/site", runner.Calls()[0].Dir)
}
