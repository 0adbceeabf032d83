package elevation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure_AlreadyElevated(t *testing.T) {
	t.Parallel()

	relaunched := false
	g := NewGate(
		WithAdminCheck(func() (bool, error) { return true, nil }),
		WithRelauncher(func(string, []string) error { relaunched = true; return nil }),
	)

	state, err := g.Ensure(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Elevated, state)
	assert.False(t, relaunched)
}

func TestEnsure_RelaunchesWithSameArguments(t *testing.T) {
	t.Parallel()

	var gotArgs []string
	g := NewGate(
		WithArgs([]string{"--only", "core,python"}),
		WithAdminCheck(func() (bool, error) { return false, nil }),
		WithRelauncher(func(exe string, args []string) error {
			assert.NotEmpty(t, exe)
			gotArgs = args
			return nil
		}),
	)

	state, err := g.Ensure(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Relaunched, state)
	assert.Equal(t, []string{"--only", "core,python"}, gotArgs)
}

func TestEnsure_RelaunchFailureIsDenied(t *testing.T) {
	t.Parallel()

	g := NewGate(
		WithAdminCheck(func() (bool, error) { return false, errors.New("token unavailable") }),
		WithRelauncher(func(string, []string) error { return ErrNotSupported }),
	)

	state, err := g.Ensure(context.Background())

	assert.Equal(t, Denied, state)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "elevated", Elevated.String())
	assert.Equal(t, "relaunched", Relaunched.String())
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "unknown", State(9).String())
}
