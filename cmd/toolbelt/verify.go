package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/revelare/toolbelt/internal/adapters/command"
	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/domain/errs"
	"github.com/revelare/toolbelt/internal/domain/verify"
	"github.com/revelare/toolbelt/internal/ui"
)

var (
	verifyTimeout time.Duration
	verifyJSON    bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [category...]",
	Short: "Run the version checks of installed tools",
	Long: `Run the check command of every catalog entry that has one and report
which tools are present, missing, or older than their min_version.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", verify.DefaultTimeout, "timeout for each check")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "print results as JSON")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	categories := cat.Categories
	if len(args) > 0 {
		categories = make([]catalog.Category, 0, len(args))
		var unknown []string
		for _, name := range args {
			c, ok := cat.Category(name)
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			categories = append(categories, c)
		}
		if len(unknown) > 0 {
			return errs.UnknownCategory(unknown, cat.CategoryNames())
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	verifier := verify.New(command.NewShellRunner(), verify.WithTimeout(verifyTimeout))
	results := verifier.Verify(ctx, categories)

	out := cmd.OutOrStdout()
	if verifyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	ui.RenderVerify(out, results)
	return nil
}
