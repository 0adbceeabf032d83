package command

import (
	"context"
	"runtime"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
	"github.com/revelare/toolbelt/internal/validation"
)

// DefaultProbeTimeout bounds a single path lookup.
const DefaultProbeTimeout = 10 * time.Second

// PathChecker resolves executables with the platform path-search utility
// ("where" on Windows, "command -v" elsewhere), run through a CommandRunner.
type PathChecker struct {
	runner  ports.CommandRunner
	lookup  string
	timeout time.Duration
}

// NewPathChecker creates a PathChecker for the current platform.
func NewPathChecker(runner ports.CommandRunner) *PathChecker {
	return NewPathCheckerFor(runner, runtime.GOOS)
}

// NewPathCheckerFor creates a PathChecker that uses the lookup utility of goos.
func NewPathCheckerFor(runner ports.CommandRunner, goos string) *PathChecker {
	lookup := "command -v"
	if goos == "windows" {
		lookup = "where"
	}
	return &PathChecker{
		runner:  runner,
		lookup:  lookup,
		timeout: DefaultProbeTimeout,
	}
}

// WithTimeout returns a copy of the checker with a different probe timeout.
func (c *PathChecker) WithTimeout(d time.Duration) *PathChecker {
	cp := *c
	cp.timeout = d
	return &cp
}

// ProbeCommand returns the command line used to look up name.
func (c *PathChecker) ProbeCommand(name string) string {
	return c.lookup + " " + name
}

// Exists reports whether name resolves. Any error, including an invalid name,
// counts as not found.
func (c *PathChecker) Exists(ctx context.Context, name string) bool {
	if err := validation.ValidateExecutableName(name); err != nil {
		return false
	}
	result, err := c.runner.Run(ctx, c.ProbeCommand(name), c.timeout)
	if err != nil {
		return false
	}
	return result.Success()
}

// Ensure PathChecker implements ports.PresenceChecker.
var _ ports.PresenceChecker = (*PathChecker)(nil)
