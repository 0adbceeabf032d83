package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revelare/toolbelt/internal/domain/catalog/embedded"
	"github.com/revelare/toolbelt/internal/domain/errs"
	"github.com/revelare/toolbelt/internal/ui"
)

var listExport bool

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "Show the install sequence and catalog",
	Long: `Show the install sequence and the categories of the catalog.

With a category name, list every entry of that category instead.
With --export, print the built-in catalog document to start an override file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listExport, "export", false, "print the built-in catalog as YAML")
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if listExport {
		_, err := out.Write(embedded.Raw())
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		category, ok := cat.Category(args[0])
		if !ok {
			return errs.UnknownCategory(args, cat.CategoryNames())
		}
		ui.RenderEntries(out, category)
		return nil
	}

	ui.RenderSequence(out, cat)
	_, _ = fmt.Fprintln(out)
	ui.RenderCategories(out, cat)
	_, _ = fmt.Fprintf(out, "\n%d entries in %d categories\n", cat.EntryCount(), len(cat.Categories))
	return nil
}
