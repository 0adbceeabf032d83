// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"time"
)

// RunStatus classifies how a shell command ended.
type RunStatus int

const (
	// RunSuccess means the command exited with code 0.
	RunSuccess RunStatus = iota
	// RunFailure means the command exited with a non-zero code.
	RunFailure
	// RunTimeout means the command exceeded its wall-clock budget.
	RunTimeout
	// RunError means the command could not be started or awaited.
	RunError
)

// String returns the string representation of the status.
func (s RunStatus) String() string {
	switch s {
	case RunSuccess:
		return "success"
	case RunFailure:
		return "failure"
	case RunTimeout:
		return "timeout"
	case RunError:
		return "error"
	default:
		return "unknown"
	}
}

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	Status   RunStatus
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.Status == RunSuccess && r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Dir     string
	Timeout time.Duration
}

// CommandRunner executes command lines through the host shell.
//
// The returned error is nil for RunSuccess and RunFailure. For RunTimeout and
// RunError it describes the cause; the result is still populated with whatever
// output was captured.
type CommandRunner interface {
	Run(ctx context.Context, command string, timeout time.Duration) (CommandResult, error)
}

// DirRunner is implemented by runners that can run a command in a given
// working directory.
type DirRunner interface {
	RunIn(ctx context.Context, dir, command string, timeout time.Duration) (CommandResult, error)
}
