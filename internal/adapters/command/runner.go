// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
)

// Errors reported by ShellRunner alongside RunTimeout and RunError results.
var (
	ErrTimeout         = errors.New("command timed out")
	ErrCommandNotFound = errors.New("command not found")
	ErrEmptyCommand    = errors.New("empty command")
)

// DefaultWaitDelay bounds how long Run keeps waiting for output pipes after a
// timed-out process has been signalled.
const DefaultWaitDelay = 5 * time.Second

// ShellRunner hands command lines to the host command interpreter.
type ShellRunner struct {
	waitDelay time.Duration
	shell     shell
}

// RunnerOption configures a ShellRunner.
type RunnerOption func(*ShellRunner)

// WithWaitDelay overrides DefaultWaitDelay.
func WithWaitDelay(d time.Duration) RunnerOption {
	return func(r *ShellRunner) {
		r.waitDelay = d
	}
}

// NewShellRunner creates a runner for the host shell.
func NewShellRunner(opts ...RunnerOption) *ShellRunner {
	r := &ShellRunner{
		waitDelay: DefaultWaitDelay,
		shell:     hostShell(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes command with the given timeout. A zero timeout means no deadline.
// Timed-out processes are killed on a best-effort basis only.
func (r *ShellRunner) Run(ctx context.Context, command string, timeout time.Duration) (ports.CommandResult, error) {
	return r.run(ctx, "", command, timeout)
}

// RunIn is Run with dir as the working directory.
func (r *ShellRunner) RunIn(ctx context.Context, dir, command string, timeout time.Duration) (ports.CommandResult, error) {
	return r.run(ctx, dir, command, timeout)
}

func (r *ShellRunner) run(ctx context.Context, dir, command string, timeout time.Duration) (ports.CommandResult, error) {
	if strings.TrimSpace(command) == "" {
		return ports.CommandResult{Status: ports.RunError, ExitCode: -1}, ErrEmptyCommand
	}

	runCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	cmd := r.shell.command(runCtx, command)
	cmd.WaitDelay = r.waitDelay
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := ports.CommandResult{
		Status:   ports.RunSuccess,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	// The deadline check comes first: a killed process also reports an ExitError.
	if ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.Status = ports.RunTimeout
		result.ExitCode = -1
		return result, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if ctx.Err() != nil {
		result.Status = ports.RunError
		result.ExitCode = -1
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if r.shell.notFound(result.ExitCode) {
			result.Status = ports.RunError
			return result, fmt.Errorf("%w: %s", ErrCommandNotFound, firstToken(command))
		}
		result.Status = ports.RunFailure
		return result, nil
	}

	result.Status = ports.RunError
	result.ExitCode = -1
	if IsCommandNotFound(err) {
		return result, fmt.Errorf("%w: %s: %w", ErrCommandNotFound, r.shell.name, err)
	}
	return result, err
}

func firstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Ensure ShellRunner implements ports.CommandRunner and ports.DirRunner.
var (
	_ ports.CommandRunner = (*ShellRunner)(nil)
	_ ports.DirRunner     = (*ShellRunner)(nil)
)
