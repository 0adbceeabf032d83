// Package mocks provides test doubles for testing.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
)

type scripted struct {
	result ports.CommandResult
	err    error
}

// CommandRunner is a thread-safe test double for ports.CommandRunner keyed by
// the full command line.
type CommandRunner struct {
	mu      sync.RWMutex
	results map[string]scripted
	calls   []ports.CommandCall
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results: make(map[string]scripted),
		calls:   make([]ports.CommandCall, 0),
	}
}

// AddResult registers the result returned for command.
// RunFailure is implied when a non-zero ExitCode is given without a status.
func (m *CommandRunner) AddResult(command string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if result.Status == ports.RunSuccess && result.ExitCode != 0 {
		result.Status = ports.RunFailure
	}
	m.results[command] = scripted{result: result}
}

// AddError registers a result together with the error Run returns for command.
func (m *CommandRunner) AddError(command string, result ports.CommandResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[command] = scripted{result: result, err: err}
}

// Run records the call and returns the scripted outcome. Unregistered commands
// behave like a spawn error.
func (m *CommandRunner) Run(_ context.Context, command string, timeout time.Duration) (ports.CommandResult, error) {
	return m.respond(ports.CommandCall{Command: command, Timeout: timeout})
}

// RunIn records the call with its working directory and returns the scripted outcome.
func (m *CommandRunner) RunIn(_ context.Context, dir, command string, timeout time.Duration) (ports.CommandResult, error) {
	return m.respond(ports.CommandCall{Command: command, Dir: dir, Timeout: timeout})
}

func (m *CommandRunner) respond(call ports.CommandCall) (ports.CommandResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, call)

	if s, ok := m.results[call.Command]; ok {
		return s.result, s.err
	}

	return ports.CommandResult{Status: ports.RunError, ExitCode: -1}, fmt.Errorf("no mock result for command: %s", call.Command)
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallsWithPrefix returns the recorded command lines starting with prefix.
func (m *CommandRunner) CallsWithPrefix(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for _, c := range m.calls {
		if strings.HasPrefix(c.Command, prefix) {
			out = append(out, c.Command)
		}
	}
	return out
}

// Reset clears all registered results and recorded calls.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[string]scripted)
	m.calls = make([]ports.CommandCall, 0)
}

// Ensure CommandRunner implements ports.CommandRunner and ports.DirRunner.
var (
	_ ports.CommandRunner = (*CommandRunner)(nil)
	_ ports.DirRunner     = (*CommandRunner)(nil)
)
