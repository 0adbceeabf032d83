// Package app wires catalogs, runners and prompts into an install session.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revelare/toolbelt/internal/adapters/elevation"
	"github.com/revelare/toolbelt/internal/adapters/hostinfo"
	"github.com/revelare/toolbelt/internal/adapters/logging"
	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/domain/install"
	"github.com/revelare/toolbelt/internal/ports"
	"github.com/revelare/toolbelt/internal/ui"
)

// Elevator obtains administrator rights for the session.
type Elevator interface {
	Ensure(ctx context.Context) (elevation.State, error)
}

// SessionConfig selects what a session runs.
type SessionConfig struct {
	Catalog *catalog.Catalog
	// Only restricts install stages to these categories. Empty means all.
	Only    []string
	DryRun  bool
	LogPath string
}

// Session runs the catalog sequence once.
type Session struct {
	runner    ports.CommandRunner
	checker   ports.PresenceChecker
	decider   ports.Decider
	elevator  Elevator
	logger    ports.Logger
	out       io.Writer
	styles    ui.Styles
	host      func(context.Context) (hostinfo.Facts, error)
	dirExists func(string) bool
	now       func() time.Time
	newID     func() string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the session logger.
func WithSessionLogger(l ports.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithElevator sets the elevation gate. Without one, elevation is not checked.
func WithElevator(e Elevator) SessionOption {
	return func(s *Session) {
		s.elevator = e
	}
}

// WithOutput sets where progress and banners are printed.
func WithOutput(w io.Writer) SessionOption {
	return func(s *Session) {
		s.out = w
	}
}

// WithHostInfo replaces host fact collection.
func WithHostInfo(fn func(context.Context) (hostinfo.Facts, error)) SessionOption {
	return func(s *Session) {
		s.host = fn
	}
}

// WithDirCheck replaces the project directory existence check.
func WithDirCheck(fn func(string) bool) SessionOption {
	return func(s *Session) {
		s.dirExists = fn
	}
}

// WithSessionID fixes the session ID generator.
func WithSessionID(fn func() string) SessionOption {
	return func(s *Session) {
		s.newID = fn
	}
}

// NewSession creates a Session. runner executes install and step commands;
// checker answers presence probes and is never swapped for dry runs.
func NewSession(runner ports.CommandRunner, checker ports.PresenceChecker, decider ports.Decider, opts ...SessionOption) *Session {
	s := &Session{
		runner:    runner,
		checker:   checker,
		decider:   decider,
		out:       os.Stdout,
		host:      hostinfo.Collect,
		dirExists: isDir,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	s.styles = ui.NewStyles(s.out)
	return s
}

// Run executes the sequence in order and returns the report. It returns an
// error only when the configuration is unusable; failures during the run are
// recorded in the report.
func (s *Session) Run(ctx context.Context, cfg SessionConfig) (*Report, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("no catalog configured")
	}
	only, err := onlySet(cfg.Catalog, cfg.Only)
	if err != nil {
		return nil, err
	}

	report := &Report{
		SessionID: s.newID(),
		StartedAt: s.now(),
		LogPath:   cfg.LogPath,
		DryRun:    cfg.DryRun,
	}
	log := s.logger.With(ports.F("session", report.SessionID))
	ctx = ports.ContextWithLogger(ctx, log)
	defer func() { report.Duration = s.now().Sub(report.StartedAt) }()

	log.Info(ctx, "Starting comprehensive development environment installation")
	s.banner()

	facts, err := s.host(ctx)
	if err != nil {
		log.Warn(ctx, "Could not read host information", ports.F("error", err))
	}
	report.Host = facts
	log.Info(ctx, "Host: "+facts.Describe(), facts.Fields()...)

	if !s.elevate(ctx, report) {
		return report, nil
	}

	observer := ui.NewProgress(s.out)
	installer := install.NewInstaller(s.runner, s.checker, install.WithObserver(observer))
	gate := install.NewGate(s.runner, s.decider, install.WithObserver(observer))

	for i, stage := range cfg.Catalog.Sequence {
		if ctx.Err() != nil {
			report.stop("cancelled")
			log.Warn(ctx, "Installation cancelled by user")
			break
		}
		log.Debug(ctx, fmt.Sprintf("Stage %d/%d", i+1, len(cfg.Catalog.Sequence)), ports.F("kind", stage.Kind()))

		switch stage.Kind() {
		case catalog.StageInstall:
			if only != nil && !only[stage.Install] {
				log.Debug(ctx, "Skipping category not selected with --only", ports.F("category", stage.Install))
				continue
			}
			cat, _ := cfg.Catalog.Category(stage.Install)
			report.Categories = append(report.Categories, installer.InstallAll(ctx, cat))

		case catalog.StageRun:
			res := gate.RunStep(ctx, *stage.Run)
			report.Steps = append(report.Steps, newStepReport(res))
			if !res.Proceed {
				report.stop("stopped after: " + stepLabel(*stage.Run))
			}

		case catalog.StageProject:
			s.runProject(ctx, gate, *stage.Project, report)
		}

		if report.Stopped {
			log.Warn(ctx, "Sequence stopped", ports.F("reason", report.StopReason))
			break
		}
	}

	total := report.Total()
	log.Info(ctx, fmt.Sprintf("Installation completed. Total: %d/%d", total.Installed, total.Total))
	return report, nil
}

func (s *Session) banner() {
	rule := s.styles.RuleLine("=", 80)
	s.printf("%s\n%s\n", s.styles.Title.Render("🚀 Comprehensive Development Environment Installer"), rule)
	s.printf("🎯 This will install a complete coding, cybersecurity, and pentesting toolkit\n")
	s.printf("📦 Includes: Development tools, security tools, databases, cloud CLI, and more\n")
	s.printf("%s\n", rule)
}

// elevate reports whether the session may go on.
func (s *Session) elevate(ctx context.Context, report *Report) bool {
	if s.elevator == nil {
		report.Elevation = "skipped"
		return true
	}

	log := ports.LoggerFromContext(ctx)
	log.Info(ctx, "Checking administrator privileges")

	state, err := s.elevator.Ensure(ctx)
	report.Elevation = state.String()
	switch state {
	case elevation.Elevated:
		s.printf("%s\n", s.styles.Success.Render("✅ Running as administrator"))
		return true
	case elevation.Relaunched:
		s.printf("Restarting with administrator privileges...\n")
		report.stop("relaunched elevated")
		return false
	default:
		if err != nil {
			log.Error(ctx, "Failed to restart as administrator", ports.F("error", err))
		}
		s.printf("%s\n", s.styles.Error.Render("❌ Cannot proceed without administrator privileges."))
		report.stop("administrator privileges required")
		return false
	}
}

func (s *Session) runProject(ctx context.Context, gate *install.Gate, project catalog.Project, report *Report) {
	log := ports.LoggerFromContext(ctx)
	dir := os.ExpandEnv(project.Dir)
	pr := ProjectReport{Dir: dir}

	s.printf("\n%s\n%s\n", s.styles.Title.Render("📁 Project-Specific Setup"), s.styles.RuleLine("=", ui.RuleWidth))

	switch {
	case !s.dirExists(dir):
		pr.SkipReason = "project directory not found"
		log.Warn(ctx, "Project directory not found: "+dir)
		s.printf("%s\n", s.styles.Warning.Render("⚠️  Project directory not found: "+dir))

	case project.Requires != "" && !s.checker.Exists(ctx, project.Requires):
		pr.Found = true
		pr.SkipReason = project.Requires + " not found"
		log.Warn(ctx, project.Requires+" not found, skipping project commands")
		s.printf("%s\n", s.styles.Success.Render("✅ Project directory found: "+dir))
		s.printf("%s\n", s.styles.Warning.Render(fmt.Sprintf("⚠️  %s not found, skipping project commands", ui.Title(project.Requires))))

	default:
		pr.Found = true
		log.Info(ctx, "Project directory found: "+dir)
		s.printf("%s\n", s.styles.Success.Render("✅ Project directory found: "+dir))
		for _, step := range project.Steps {
			step.Dir = dir
			res := gate.RunStep(ctx, step)
			pr.Steps = append(pr.Steps, newStepReport(res))
			if !res.Proceed {
				report.stop("stopped after: " + stepLabel(step))
				break
			}
		}
	}

	report.Projects = append(report.Projects, pr)
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// onlySet validates names against the catalog. A nil set selects everything.
func onlySet(c *catalog.Catalog, names []string) (map[string]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(map[string]bool, len(names))
	var unknown []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := c.Category(n); !ok {
			unknown = append(unknown, n)
			continue
		}
		set[n] = true
	}
	if len(unknown) > 0 {
		return nil, &UnknownCategoryError{Names: unknown, Known: c.CategoryNames()}
	}
	return set, nil
}

// UnknownCategoryError is returned when --only names a category the catalog lacks.
type UnknownCategoryError struct {
	Names []string
	Known []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %s (known: %s)", strings.Join(e.Names, ", "), strings.Join(e.Known, ", "))
}

func stepLabel(step catalog.Step) string {
	if step.Description != "" {
		return step.Description
	}
	return step.Command
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
