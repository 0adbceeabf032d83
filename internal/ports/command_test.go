package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandResult_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result CommandResult
		want   bool
	}{
		{"exit zero", CommandResult{Status: RunSuccess}, true},
		{"non-zero exit", CommandResult{Status: RunFailure, ExitCode: 1}, false},
		{"timeout", CommandResult{Status: RunTimeout, ExitCode: -1}, false},
		{"spawn error", CommandResult{Status: RunError, ExitCode: -1}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.result.Success())
		})
	}
}

func TestRunStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", RunSuccess.String())
	assert.Equal(t, "failure", RunFailure.String())
	assert.Equal(t, "timeout", RunTimeout.String())
	assert.Equal(t, "error", RunError.String())
	assert.Equal(t, "unknown", RunStatus(42).String())
}

func TestDeciderFunc_Confirm(t *testing.T) {
	t.Parallel()

	var asked string
	d := DeciderFunc(func(_ context.Context, q string) (bool, error) {
		asked = q
		return true, nil
	})

	ok, err := d.Confirm(context.Background(), "continue?")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "continue?", asked)
}
