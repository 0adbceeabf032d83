package install

import (
	"context"
	"time"

	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/ports"
)

// ContinuePrompt is the question asked after an unexpected step failure.
const ContinuePrompt = "Do you want to continue anyway?"

// StepResult captures one run of a non-batch command.
type StepResult struct {
	Step     catalog.Step    `json:"-"`
	Command  string          `json:"command"`
	Status   ports.RunStatus `json:"-"`
	ExitCode int             `json:"exit_code"`
	Stdout   string          `json:"-"`
	Stderr   string          `json:"-"`
	Err      error           `json:"-"`
	Duration time.Duration   `json:"duration_ns"`
	// Proceed is false when the rest of the sequence must not run.
	Proceed bool `json:"proceed"`
	// Asked is true when the decider was consulted.
	Asked bool `json:"asked"`
}

// Succeeded reports whether the command itself succeeded.
func (r StepResult) Succeeded() bool {
	return r.Status == ports.RunSuccess && r.Err == nil
}

// Gate runs one-off commands and, for steps that do not allow failure, asks
// the decider whether the session should go on after something went wrong.
type Gate struct {
	runner   ports.CommandRunner
	decider  ports.Decider
	logger   ports.Logger
	observer Observer
}

// NewGate creates a Gate. Installer options are accepted for the logger and observer.
func NewGate(runner ports.CommandRunner, decider ports.Decider, opts ...Option) *Gate {
	cfg := &Installer{observer: NopObserver{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Gate{
		runner:   runner,
		decider:  decider,
		logger:   cfg.logger,
		observer: cfg.observer,
	}
}

// RunStep executes step and decides whether the session may continue.
func (g *Gate) RunStep(ctx context.Context, step catalog.Step) StepResult {
	log := loggerFor(ctx, g.logger).With(ports.F("step", step.Description))

	g.observer.StepStarted(step)
	log.Info(ctx, "Starting command execution: "+step.Description)
	log.Debug(ctx, "Command to execute: "+step.Command)

	res, err := g.run(ctx, step)
	result := StepResult{
		Step:     step,
		Command:  step.Command,
		Status:   res.Status,
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		Err:      err,
		Duration: res.Duration,
		Proceed:  true,
	}

	switch {
	case result.Succeeded():
		log.Info(ctx, "Command executed successfully", ports.F("exit_code", res.ExitCode))
		if res.Stdout != "" {
			log.Debug(ctx, "Command output: "+res.Stdout)
		}
	case ctx.Err() != nil:
		log.Warn(ctx, "Command interrupted", ports.F("error", ctx.Err()))
		result.Proceed = false
	default:
		fields := []ports.Field{ports.F("status", res.Status), ports.F("exit_code", res.ExitCode)}
		if err != nil {
			fields = append(fields, ports.F("error", err))
		}
		log.Error(ctx, "Command failed", fields...)
		if res.Stderr != "" {
			log.Debug(ctx, "STDERR: "+res.Stderr)
		}

		if !step.AllowFailure {
			log.Warn(ctx, "Command failure not allowed, prompting user")
			result.Asked = true
			ok, derr := g.decider.Confirm(ctx, ContinuePrompt)
			if derr != nil {
				log.Error(ctx, "Could not read answer", ports.F("error", derr))
			}
			log.Debug(ctx, "User response", ports.F("continue", ok))
			if derr != nil || !ok {
				log.Warn(ctx, "User chose to cancel installation")
				result.Proceed = false
			}
		}
	}

	g.observer.StepFinished(result)
	return result
}

func (g *Gate) run(ctx context.Context, step catalog.Step) (ports.CommandResult, error) {
	if step.Dir != "" {
		if dr, ok := g.runner.(ports.DirRunner); ok {
			return dr.RunIn(ctx, step.Dir, step.Command, step.Timeout)
		}
	}
	return g.runner.Run(ctx, step.Command, step.Timeout)
}
