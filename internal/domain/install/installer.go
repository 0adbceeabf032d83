package install

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/ports"
	"github.com/revelare/toolbelt/internal/validation"
)

// maxDetail bounds how much captured stderr is kept per entry.
const maxDetail = 512

// Installer applies the presence check and the install command to every entry
// of a category, strictly one process at a time.
type Installer struct {
	runner   ports.CommandRunner
	checker  ports.PresenceChecker
	logger   ports.Logger
	observer Observer
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger. Without one, the logger from the context is used.
func WithLogger(l ports.Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// WithObserver sets the progress observer.
func WithObserver(o Observer) Option {
	return func(i *Installer) {
		i.observer = o
	}
}

// NewInstaller creates an Installer.
func NewInstaller(runner ports.CommandRunner, checker ports.PresenceChecker, opts ...Option) *Installer {
	i := &Installer{
		runner:   runner,
		checker:  checker,
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// InstallAll runs the install loop over cat. Entry-level failures never stop
// the loop. Every entry contributes exactly once to the tally, so
// Tally.Total always equals cat.Len().
func (i *Installer) InstallAll(ctx context.Context, cat catalog.Category) CategoryResult {
	log := loggerFor(ctx, i.logger).With(ports.F("category", cat.Name))
	start := time.Now()

	i.observer.CategoryStarted(cat)
	log.Info(ctx, "Starting installation of "+cat.Title, ports.F("entries", cat.Len()))

	run := &categoryRun{
		installer: i,
		cat:       cat,
		log:       log,
		result: CategoryResult{
			Name:    cat.Name,
			Title:   cat.Title,
			Entries: make([]EntryResult, cat.Len()),
		},
	}

	if cat.Requires != "" && !i.checker.Exists(ctx, cat.Requires) {
		reason := cat.Requires + " not found"
		log.Warn(ctx, fmt.Sprintf("%s, skipping %s", reason, strings.ToLower(cat.Title)))
		run.result.SkipReason = reason
		run.skipAll(reason)
	} else {
		run.walk(ctx)
	}

	run.result.Duration = time.Since(start)
	for _, e := range run.result.Entries {
		run.result.Tally.Add(e.Outcome)
	}

	log.Info(ctx, fmt.Sprintf("Completed %s: %d/%d installed", cat.Name, run.result.Tally.Installed, run.result.Tally.Total),
		ports.F("spawned", run.result.Spawned))
	i.observer.CategoryFinished(run.result)
	return run.result
}

// categoryRun holds the state of one InstallAll call. Results are stored by
// list position so the report order never depends on batching.
type categoryRun struct {
	installer *Installer
	cat       catalog.Category
	log       ports.Logger
	result    CategoryResult
}

type pendingEntry struct {
	index int
	group string
	entry catalog.ToolEntry
}

func (r *categoryRun) walk(ctx context.Context) {
	batchSize := r.cat.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	index := 0
	for _, group := range r.cat.Groups {
		r.installer.observer.GroupStarted(r.cat, group)
		r.log.Debug(ctx, "Installing "+group.Name+" entries")

		var pending []pendingEntry
		for _, entry := range group.Entries {
			p := pendingEntry{index: index, group: group.Name, entry: entry}
			index++

			if ctx.Err() != nil {
				r.record(p, EntryResult{Outcome: Skipped, Detail: "cancelled"})
				continue
			}

			r.log.Debug(ctx, fmt.Sprintf("Processing %s (%s)", entry.DisplayName(), entry.ID))

			if probe := entry.Probe(); probe != "" && r.installer.checker.Exists(ctx, probe) {
				r.log.Info(ctx, entry.DisplayName()+" already installed", ports.F("probe", probe))
				r.record(p, EntryResult{Outcome: AlreadyPresent})
				continue
			}

			if err := validation.Validate(r.cat.Kind, entry.ID); err != nil {
				r.log.Error(ctx, "Refusing to install "+entry.DisplayName(), ports.F("error", err))
				r.record(p, EntryResult{Outcome: Error, Detail: err.Error()})
				continue
			}

			pending = append(pending, p)
			if len(pending) == batchSize {
				r.flush(ctx, pending)
				pending = nil
			}
		}
		if len(pending) > 0 {
			r.flush(ctx, pending)
		}
	}
}

// flush issues one install command for the pending entries and records the
// same outcome for each of them.
func (r *categoryRun) flush(ctx context.Context, pending []pendingEntry) {
	if ctx.Err() != nil {
		for _, p := range pending {
			r.record(p, EntryResult{Outcome: Skipped, Detail: "cancelled"})
		}
		return
	}

	ids := make([]string, 0, len(pending))
	for _, p := range pending {
		ids = append(ids, p.entry.ID)
	}
	command := r.cat.Command(ids...)
	label := strings.Join(ids, ", ")

	r.log.Debug(ctx, "Installing "+label, ports.F("command", command), ports.F("timeout", r.cat.Timeout))

	r.result.Spawned++
	res, err := r.installer.runner.Run(ctx, command, r.cat.Timeout)
	outcome := OutcomeFromRun(res.Status)
	if err != nil && outcome == Installed {
		// A runner that reports success together with an error is treated as broken.
		outcome = Error
	}

	detail := ""
	switch outcome {
	case Installed:
		r.log.Info(ctx, "Successfully installed "+label, ports.F("duration", res.Duration))
	case Failed:
		detail = trimDetail(res.Stderr)
		r.log.Warn(ctx, "Failed to install "+label, ports.F("exit_code", res.ExitCode), ports.F("stderr", detail))
	case TimedOut:
		detail = fmt.Sprintf("no result after %s", r.cat.Timeout)
		r.log.Warn(ctx, "Timeout installing "+label)
	default:
		if err != nil {
			detail = err.Error()
		}
		r.log.Error(ctx, "Error installing "+label, ports.F("error", detail))
	}

	for _, p := range pending {
		r.record(p, EntryResult{
			Outcome:  outcome,
			Command:  command,
			Duration: res.Duration,
			Detail:   detail,
		})
	}
}

func (r *categoryRun) record(p pendingEntry, er EntryResult) {
	er.Entry = p.entry
	er.ID = p.entry.ID
	er.Group = p.group
	r.result.Entries[p.index] = er
	r.installer.observer.EntryFinished(r.cat, er)
}

func (r *categoryRun) skipAll(reason string) {
	index := 0
	for _, group := range r.cat.Groups {
		for _, entry := range group.Entries {
			r.record(pendingEntry{index: index, group: group.Name, entry: entry}, EntryResult{Outcome: Skipped, Detail: reason})
			index++
		}
	}
}

func trimDetail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDetail {
		return s[:maxDetail] + "..."
	}
	return s
}
