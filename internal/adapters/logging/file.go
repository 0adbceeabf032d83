package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionLogName returns the log file name for a session started at t.
func SessionLogName(t time.Time) string {
	return fmt.Sprintf("install_debug_%s.log", t.Format("20060102_150405"))
}

// OpenSessionLog creates the session log file in dir, creating dir if needed.
// The caller closes the returned file.
func OpenSessionLog(dir string, t time.Time) (*os.File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, SessionLogName(t))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}
	return f, nil
}
