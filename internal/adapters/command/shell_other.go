//go:build !windows

package command

func hostShell() shell {
	return posixShell()
}
