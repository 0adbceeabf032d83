package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunner_AddResult(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("winget --version", ports.CommandResult{Stdout: "v1.7.10861"})

	result, err := runner.Run(context.Background(), "winget --version", time.Second)

	require.NoError(t, err)
	assert.Equal(t, "v1.7.10861", result.Stdout)
	assert.True(t, result.Success())
}

func TestCommandRunner_NonZeroExitImpliesFailure(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("npm install -g vue", ports.CommandResult{ExitCode: 1})

	result, err := runner.Run(context.Background(), "npm install -g vue", time.Second)

	require.NoError(t, err)
	assert.Equal(t, ports.RunFailure, result.Status)
}

func TestCommandRunner_AddError(t *testing.T) {
	runner := NewCommandRunner()
	boom := errors.New("boom")
	runner.AddError("refreshenv", ports.CommandResult{Status: ports.RunError, ExitCode: -1}, boom)

	result, err := runner.Run(context.Background(), "refreshenv", time.Second)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ports.RunError, result.Status)
}

func TestCommandRunner_Unregistered(t *testing.T) {
	runner := NewCommandRunner()

	result, err := runner.Run(context.Background(), "unknown", time.Second)

	require.Error(t, err)
	assert.Equal(t, ports.RunError, result.Status)
}

func TestCommandRunner_RecordsCalls(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("npm install -g yarn", ports.CommandResult{})
	runner.AddResult("where npm", ports.CommandResult{})

	_, _ = runner.Run(context.Background(), "where npm", time.Second)
	_, _ = runner.Run(context.Background(), "npm install -g yarn", 2*time.Minute)

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "npm install -g yarn", calls[1].Command)
	assert.Equal(t, 2*time.Minute, calls[1].Timeout)
	assert.Equal(t, []string{"npm install -g yarn"}, runner.CallsWithPrefix("npm install"))

	runner.Reset()
	assert.Empty(t, runner.Calls())
}

func TestCommandRunner_RunInRecordsDir(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("wrangler d1 list", ports.CommandResult{Stdout: "db"})

	result, err := runner.RunIn(context.Background(), "/src/site", "wrangler d1 list", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, "db", result.Stdout)
	assert.Equal(t, []ports.CommandCall{{Command: "wrangler d1 list", Dir: "/src/site", Timeout: time.Minute}}, runner.Calls())
}

func TestCommandRunner_Concurrent(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("echo", ports.CommandResult{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = runner.Run(context.Background(), "echo", time.Second)
		}()
	}
	wg.Wait()

	assert.Len(t, runner.Calls(), 20)
}

func TestDecider_ReplaysAnswers(t *testing.T) {
	d := NewDecider(true, false)
	ctx := context.Background()

	first, _ := d.Confirm(ctx, "a?")
	second, _ := d.Confirm(ctx, "b?")
	third, _ := d.Confirm(ctx, "c?")

	assert.True(t, first)
	assert.False(t, second)
	assert.False(t, third)
	assert.Equal(t, []string{"a?", "b?", "c?"}, d.Questions())
}

func TestDecider_Error(t *testing.T) {
	boom := errors.New("no tty")
	d := NewDecider(true).WithError(boom)

	ok, err := d.Confirm(context.Background(), "continue?")

	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestPresenceChecker(t *testing.T) {
	p := NewPresenceChecker("node")
	ctx := context.Background()

	assert.True(t, p.Exists(ctx, "node"))
	assert.False(t, p.Exists(ctx, "git"))
	p.Add("git")
	assert.True(t, p.Exists(ctx, "git"))
	assert.Equal(t, []string{"node", "git", "git"}, p.Probes())
}
