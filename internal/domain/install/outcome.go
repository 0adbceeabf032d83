// Package install runs catalogs against the host: the batch install loop that
// every category shares, and the gate used for one-off commands.
package install

import "github.com/revelare/toolbelt/internal/ports"

// Outcome is the per-entry result of one install run. It is never persisted.
type Outcome int

const (
	// AlreadyPresent means the presence probe resolved; nothing was installed.
	AlreadyPresent Outcome = iota
	// Installed means the install command exited with code 0.
	Installed
	// Failed means the install command exited with a non-zero code.
	Failed
	// TimedOut means the install command exceeded the category timeout.
	TimedOut
	// Error means the install command could not be run at all.
	Error
	// Skipped means no attempt was made: a prerequisite was missing or the
	// session was cancelled before the entry was reached.
	Skipped
)

// Outcomes lists every outcome in report order.
var Outcomes = []Outcome{AlreadyPresent, Installed, Failed, TimedOut, Error, Skipped}

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case AlreadyPresent:
		return "already-present"
	case Installed:
		return "installed"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed-out"
	case Error:
		return "error"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Counts reports whether the outcome counts toward the installed tally.
func (o Outcome) Counts() bool {
	return o == AlreadyPresent || o == Installed
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// OutcomeFromRun maps a runner status onto an install outcome.
func OutcomeFromRun(status ports.RunStatus) Outcome {
	switch status {
	case ports.RunSuccess:
		return Installed
	case ports.RunFailure:
		return Failed
	case ports.RunTimeout:
		return TimedOut
	default:
		return Error
	}
}
