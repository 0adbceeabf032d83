package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/domain/verify"
)

func newTable(s Styles, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		})
}

// RenderSequence writes the stages of c in order.
func RenderSequence(w io.Writer, c *catalog.Catalog) {
	s := NewStyles(w)
	t := newTable(s, "#", "Stage", "Details")
	for i, stage := range c.Sequence {
		kind, details := describeStage(c, stage)
		t.Row(strconv.Itoa(i+1), kind, details)
	}
	_, _ = fmt.Fprintln(w, s.Title.Render("Sequence"))
	_, _ = fmt.Fprintln(w, t.Render())
}

// RenderCategories writes one row per category.
func RenderCategories(w io.Writer, c *catalog.Catalog) {
	s := NewStyles(w)
	t := newTable(s, "Category", "Title", "Kind", "Entries", "Timeout", "Batch", "Requires")
	for _, cat := range c.Categories {
		t.Row(cat.Name, cat.Title, cat.Kind, strconv.Itoa(cat.Len()), cat.Timeout.String(), strconv.Itoa(cat.BatchSize), cat.Requires)
	}
	_, _ = fmt.Fprintln(w, s.Title.Render("Categories"))
	_, _ = fmt.Fprintln(w, t.Render())
}

// RenderEntries writes every entry of cat.
func RenderEntries(w io.Writer, cat catalog.Category) {
	s := NewStyles(w)
	t := newTable(s, "Group", "ID", "Name", "Check")
	for _, g := range cat.Groups {
		for _, e := range g.Entries {
			t.Row(Title(g.Name), e.ID, e.DisplayName(), e.Check)
		}
	}
	_, _ = fmt.Fprintln(w, s.Title.Render(cat.Title))
	_, _ = fmt.Fprintln(w, t.Render())
}

// RenderVerify writes verification results.
func RenderVerify(w io.Writer, results []verify.Result) {
	s := NewStyles(w)
	t := newTable(s, "Category", "Tool", "Status", "Version", "Detail")
	for _, r := range results {
		t.Row(r.Category, r.Name, r.Status.String(), r.Version, r.Detail)
	}
	_, _ = fmt.Fprintln(w, t.Render())

	sum := verify.Summary(results)
	parts := make([]string, 0, 4)
	for _, st := range []verify.Status{verify.Present, verify.Unparsed, verify.Outdated, verify.Missing} {
		parts = append(parts, fmt.Sprintf("%d %s", sum[st], st))
	}
	_, _ = fmt.Fprintln(w, s.Info.Render(strings.Join(parts, ", ")))
}

func describeStage(c *catalog.Catalog, stage catalog.Stage) (string, string) {
	switch stage.Kind() {
	case catalog.StageInstall:
		if cat, ok := c.Category(stage.Install); ok {
			return "install", fmt.Sprintf("%s (%d entries)", cat.Title, cat.Len())
		}
		return "install", stage.Install
	case catalog.StageRun:
		details := stage.Run.Command
		if stage.Run.AllowFailure {
			details += " (failure allowed)"
		}
		return "run", details
	case catalog.StageProject:
		details := stage.Project.Dir
		if stage.Project.Requires != "" {
			details += " requires " + stage.Project.Requires
		}
		return "project", fmt.Sprintf("%s, %d steps", details, len(stage.Project.Steps))
	default:
		return "invalid", ""
	}
}
