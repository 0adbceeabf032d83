package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/domain/catalog/embedded"
	"github.com/revelare/toolbelt/internal/domain/errs"
)

var (
	// Global flags
	catalogFile string
	verbose     bool
	yesFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "toolbelt",
	Short: "Provision a Windows workstation with development and security tools",
	Long: `Toolbelt installs a catalog of developer and security tools by driving the
host package managers (winget, pip, npm and the VS Code CLI).

Every entry is probed first and skipped when already present, so running the
installer again only installs what is missing.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
	RunE:          runInstall,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog file, .yaml or .toml (default: built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "auto-confirm all prompts")

	registerInstallFlags(rootCmd)
	registerFlagCompletions()

	rootCmd.AddCommand(listCmd, verifyCmd, versionCmd)
}

// loadCatalog returns the catalog from --catalog, or the built-in one.
func loadCatalog() (*catalog.Catalog, error) {
	if catalogFile == "" {
		return embedded.LoadCatalog()
	}
	cat, err := catalog.LoadFile(catalogFile)
	if err != nil {
		return nil, errs.CatalogLoad(catalogFile, err)
	}
	return cat, nil
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *errs.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("catalog", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("only", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		cat, err := loadCatalog()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return cat.CategoryNames(), cobra.ShellCompDirectiveNoFileComp
	})
}
