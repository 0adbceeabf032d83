// Package elevation makes sure the session runs with administrator rights,
// relaunching the program elevated when it does not.
package elevation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/revelare/toolbelt/internal/ports"
)

// ErrNotSupported is returned when the platform cannot relaunch a process elevated.
var ErrNotSupported = errors.New("elevated relaunch is not supported on this platform")

// State is the outcome of Ensure.
type State int

const (
	// Elevated means the current process has administrator rights.
	Elevated State = iota
	// Relaunched means an elevated copy was started; the caller must exit.
	Relaunched
	// Denied means rights are missing and could not be obtained.
	Denied
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Elevated:
		return "elevated"
	case Relaunched:
		return "relaunched"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Gate checks for administrator rights.
type Gate struct {
	isAdmin    func() (bool, error)
	relaunch   func(exe string, args []string) error
	executable func() (string, error)
	args       []string
	logger     ports.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithArgs sets the arguments passed to the relaunched process.
func WithArgs(args []string) Option {
	return func(g *Gate) {
		g.args = args
	}
}

// WithLogger sets the logger.
func WithLogger(l ports.Logger) Option {
	return func(g *Gate) {
		g.logger = l
	}
}

// WithAdminCheck replaces the platform administrator check.
func WithAdminCheck(fn func() (bool, error)) Option {
	return func(g *Gate) {
		g.isAdmin = fn
	}
}

// WithRelauncher replaces the platform relaunch.
func WithRelauncher(fn func(exe string, args []string) error) Option {
	return func(g *Gate) {
		g.relaunch = fn
	}
}

// NewGate creates a Gate for the current platform. Arguments default to os.Args[1:].
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		isAdmin:    isAdmin,
		relaunch:   relaunchElevated,
		executable: os.Executable,
	}
	if len(os.Args) > 1 {
		g.args = os.Args[1:]
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ensure reports Elevated when the process already has administrator rights.
// Otherwise it relaunches the executable elevated with the same arguments and
// reports Relaunched, or Denied when that fails.
func (g *Gate) Ensure(ctx context.Context) (State, error) {
	log := g.logger
	if log == nil {
		log = ports.LoggerFromContext(ctx)
	}

	admin, err := g.isAdmin()
	if err != nil {
		logWith(ctx, log, "Failed to determine administrator rights", err)
	}
	if admin {
		if log != nil {
			log.Info(ctx, "Confirmed running as administrator")
		}
		return Elevated, nil
	}

	if log != nil {
		log.Warn(ctx, "Not running as admin, attempting to restart")
	}

	exe, err := g.executable()
	if err != nil {
		logWith(ctx, log, "Failed to locate executable", err)
		return Denied, fmt.Errorf("failed to locate executable: %w", err)
	}
	if err := g.relaunch(exe, g.args); err != nil {
		logWith(ctx, log, "Failed to restart as administrator", err)
		return Denied, fmt.Errorf("failed to restart as administrator: %w", err)
	}

	if log != nil {
		log.Info(ctx, "Relaunched with administrator privileges", ports.F("executable", exe))
	}
	return Relaunched, nil
}

func logWith(ctx context.Context, log ports.Logger, msg string, err error) {
	if log != nil {
		log.Error(ctx, msg, ports.F("error", err))
	}
}
