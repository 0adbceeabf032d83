package command

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
)

// DryRunRunner prints command lines instead of executing them and reports
// every one as successful.
type DryRunRunner struct {
	mu    sync.Mutex
	out   io.Writer
	calls []ports.CommandCall
}

// NewDryRunRunner creates a DryRunRunner writing to out.
func NewDryRunRunner(out io.Writer) *DryRunRunner {
	return &DryRunRunner{out: out}
}

// Run records command and prints it.
func (r *DryRunRunner) Run(_ context.Context, command string, timeout time.Duration) (ports.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ports.CommandCall{Command: command, Timeout: timeout})
	_, _ = fmt.Fprintf(r.out, "[dry-run] %s\n", command)
	return ports.CommandResult{Status: ports.RunSuccess}, nil
}

// RunIn records command with its working directory and prints it.
func (r *DryRunRunner) RunIn(_ context.Context, dir, command string, timeout time.Duration) (ports.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ports.CommandCall{Command: command, Dir: dir, Timeout: timeout})
	_, _ = fmt.Fprintf(r.out, "[dry-run] (in %s) %s\n", dir, command)
	return ports.CommandResult{Status: ports.RunSuccess}, nil
}

// Calls returns the recorded command lines.
func (r *DryRunRunner) Calls() []ports.CommandCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]ports.CommandCall, len(r.calls))
	copy(calls, r.calls)
	return calls
}

var (
	_ ports.CommandRunner = (*DryRunRunner)(nil)
	_ ports.DirRunner     = (*DryRunRunner)(nil)
)
