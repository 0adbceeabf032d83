//go:build windows

package command

import (
	"context"
	"os/exec"
	"syscall"
)

// cmd.exe parses its own command line, so the line is passed through verbatim
// instead of being re-quoted by os/exec.
func hostShell() shell {
	return shell{
		name: "cmd.exe",
		build: func(ctx context.Context, command string) *exec.Cmd {
			cmd := exec.CommandContext(ctx, "cmd.exe")
			cmd.SysProcAttr = &syscall.SysProcAttr{
				CmdLine:    `cmd.exe /D /S /C "` + command + `"`,
				HideWindow: true,
			}
			return cmd
		},
		// 9009 is what cmd.exe returns for "is not recognized as an internal or external command".
		notFoundCodes: []int{9009},
	}
}
