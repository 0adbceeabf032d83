package command

import (
	"context"
	"os/exec"
)

// shell describes how a command line is handed to an interpreter and which
// exit codes that interpreter uses for "no such command".
type shell struct {
	name          string
	build         func(ctx context.Context, command string) *exec.Cmd
	notFoundCodes []int
}

func (s shell) command(ctx context.Context, command string) *exec.Cmd {
	return s.build(ctx, command)
}

func (s shell) notFound(code int) bool {
	for _, c := range s.notFoundCodes {
		if c == code {
			return true
		}
	}
	return false
}

func posixShell() shell {
	return shell{
		name: "sh",
		build: func(ctx context.Context, command string) *exec.Cmd {
			return exec.CommandContext(ctx, "sh", "-c", command)
		},
		notFoundCodes: []int{127},
	}
}
