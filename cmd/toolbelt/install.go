package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/revelare/toolbelt/internal/adapters/command"
	"github.com/revelare/toolbelt/internal/adapters/elevation"
	"github.com/revelare/toolbelt/internal/adapters/logging"
	"github.com/revelare/toolbelt/internal/adapters/prompt"
	"github.com/revelare/toolbelt/internal/app"
	"github.com/revelare/toolbelt/internal/domain/errs"
	"github.com/revelare/toolbelt/internal/ports"
)

var (
	logDir        string
	logFormat     string
	logLevel      string
	dryRun        bool
	skipElevation bool
	noPause       bool
	onlyFlag      []string
	jsonOutput    bool
)

func registerInstallFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&logDir, "log-dir", ".", "directory for the session log file")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "session log format (text, json)")
	cmd.Flags().StringVar(&logLevel, "log-level", "debug", "session log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print install commands instead of running them")
	cmd.Flags().BoolVar(&skipElevation, "skip-elevation", false, "do not check for or request administrator rights")
	cmd.Flags().BoolVar(&noPause, "no-pause", false, "do not wait for Enter before exiting")
	cmd.Flags().StringSliceVar(&onlyFlag, "only", nil, "install only these categories (comma-separated)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the session report as JSON")
}

func runInstall(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("invalid --log-format %q (want text or json)", logFormat)
	}
	fileLevel, err := ports.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	started := time.Now()
	logFile, err := logging.OpenSessionLog(logDir, started)
	if err != nil {
		return errs.LogUnavailable(logDir, err)
	}
	defer logFile.Close()

	consoleLevel := ports.LevelWarn
	if verbose {
		consoleLevel = ports.LevelDebug
	}
	logger := logging.NewMultiLogger(
		logging.NewConsoleLogger(
			logging.WithOutput(logFile),
			logging.WithLevel(fileLevel),
			logging.WithJSONFormat(logFormat == "json"),
		),
		logging.NewCharmLogger(cmd.ErrOrStderr(), consoleLevel),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	shell := command.NewShellRunner()
	var runner ports.CommandRunner = shell
	if dryRun {
		runner = command.NewDryRunRunner(out)
	}

	opts := []app.SessionOption{
		app.WithOutput(out),
		app.WithSessionLogger(logger),
	}
	if !skipElevation && !dryRun {
		opts = append(opts, app.WithElevator(elevation.NewGate(elevation.WithLogger(logger))))
	}

	decider := prompt.NewDecider(prompt.Options{AssumeYes: yesFlag, In: os.Stdin, Out: os.Stdout})
	session := app.NewSession(runner, command.NewPathChecker(shell), decider, opts...)

	report, err := session.Run(ctx, app.SessionConfig{
		Catalog: cat,
		Only:    onlyFlag,
		DryRun:  dryRun,
		LogPath: logFile.Name(),
	})
	if err != nil {
		var unknown *app.UnknownCategoryError
		if errors.As(err, &unknown) {
			return errs.UnknownCategory(unknown.Names, unknown.Known)
		}
		return err
	}
	if report.Relaunched() {
		return nil
	}

	if ctx.Err() != nil {
		logger.Warn(context.Background(), "Installation cancelled by user (Ctrl+C)")
		_, _ = fmt.Fprintln(out, "\n\n❌ Installation cancelled by user.")
	}

	if jsonOutput {
		if err := report.WriteJSON(out); err != nil {
			return err
		}
	} else {
		report.Render(out)
	}

	logger.Debug(context.Background(), "Installation completed, waiting for user input")
	if shouldPause() {
		prompt.Pause(context.Background(), os.Stdin, out)
	}
	logger.Info(context.Background(), "Script execution finished")
	return nil
}

// shouldPause keeps the console window open when the program was started by
// double-click or from an elevated relaunch.
func shouldPause() bool {
	return !noPause && !yesFlag && !jsonOutput && prompt.IsTerminal(os.Stdin)
}
