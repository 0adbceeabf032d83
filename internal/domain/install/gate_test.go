package install

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/ports"
	"github.com/revelare/toolbelt/internal/testutil/mocks"
)

func step(cmd string, allowFailure bool) catalog.Step {
	return catalog.Step{Command: cmd, Description: cmd, AllowFailure: allowFailure, Timeout: time.Minute}
}

func TestGate_SuccessDoesNotAsk(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("wrangler d1 list", ports.CommandResult{Stdout: "ok"})
	decider := mocks.NewDecider(false)

	res := NewGate(runner, decider).RunStep(context.Background(), step("wrangler d1 list", false))

	assert.True(t, res.Succeeded())
	assert.True(t, res.Proceed)
	assert.False(t, res.Asked)
	assert.Empty(t, decider.Questions())
}

func TestGate_FailureAnsweredNoStops(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("wrangler d1 list", ports.CommandResult{ExitCode: 1, Stderr: "not logged in"})
	decider := mocks.NewDecider(false)

	res := NewGate(runner, decider).RunStep(context.Background(), step("wrangler d1 list", false))

	assert.False(t, res.Succeeded())
	assert.False(t, res.Proceed)
	assert.True(t, res.Asked)
	assert.Equal(t, []string{ContinuePrompt}, decider.Questions())
}

func TestGate_FailureAnsweredYesContinues(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("wrangler d1 list", ports.CommandResult{ExitCode: 1})

	res := NewGate(runner, mocks.NewDecider(true)).RunStep(context.Background(), step("wrangler d1 list", false))

	assert.True(t, res.Proceed)
	assert.True(t, res.Asked)
}

func TestGate_AllowedFailureNeverAsks(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("refreshenv", ports.CommandResult{ExitCode: 9009, Status: ports.RunError})
	decider := mocks.NewDecider(false)

	res := NewGate(runner, decider).RunStep(context.Background(), step("refreshenv", true))

	assert.True(t, res.Proceed)
	assert.False(t, res.Asked)
	assert.Empty(t, decider.Questions())
}

func TestGate_SpawnErrorAsks(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddError("wrangler kv:namespace list", ports.CommandResult{Status: ports.RunError, ExitCode: -1}, errors.New("not found"))

	res := NewGate(runner, mocks.NewDecider(false)).RunStep(context.Background(), step("wrangler kv:namespace list", false))

	assert.Error(t, res.Err)
	assert.True(t, res.Asked)
	assert.False(t, res.Proceed)
}

func TestGate_DeciderErrorStops(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("x", ports.CommandResult{ExitCode: 2})
	decider := mocks.NewDecider(true).WithError(errors.New("stdin closed"))

	res := NewGate(runner, decider).RunStep(context.Background(), step("x", false))

	assert.False(t, res.Proceed)
}

func TestGate_CancelledContextStopsWithoutAsking(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := mocks.NewCommandRunner()
	runner.AddError("x", ports.CommandResult{Status: ports.RunError, ExitCode: -1}, context.Canceled)
	decider := mocks.NewDecider(true)

	res := NewGate(runner, decider).RunStep(ctx, step("x", false))

	assert.False(t, res.Proceed)
	assert.False(t, res.Asked)
	assert.Empty(t, decider.Questions())
}

func TestGate_PassesStepTimeout(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("x", ports.CommandResult{})
	s := step("x", false)
	s.Timeout = 42 * time.Second

	NewGate(runner, mocks.NewDecider()).RunStep(context.Background(), s)

	assert.Equal(t, 42*time.Second, runner.Calls()[0].Timeout)
}

func TestGate_RunsInStepDirectory(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("wrangler d1 list", ports.CommandResult{})
	s := step("wrangler d1 list", true)
	s.Dir = `E:\Scripts\project-revelare-web`

	NewGate(runner, mocks.NewDecider()).RunStep(context.Background(), s)

	calls := runner.Calls()
	assert.Len(t, calls, 1)
	assert.Equal(t, `E:\Scripts\project-revelare-web`, calls[0].Dir)
}
