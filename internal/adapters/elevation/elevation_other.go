//go:build !windows

package elevation

import "os"

// isAdmin reports whether the effective user is root.
func isAdmin() (bool, error) {
	return os.Geteuid() == 0, nil
}

func relaunchElevated(string, []string) error {
	return ErrNotSupported
}
