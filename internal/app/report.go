package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/revelare/toolbelt/internal/adapters/hostinfo"
	"github.com/revelare/toolbelt/internal/domain/install"
	"github.com/revelare/toolbelt/internal/ui"
)

// Report is the end-of-session summary.
type Report struct {
	SessionID  string                   `json:"session_id"`
	StartedAt  time.Time                `json:"started_at"`
	Duration   time.Duration            `json:"duration_ns"`
	Host       hostinfo.Facts           `json:"host"`
	LogPath    string                   `json:"log_path,omitempty"`
	DryRun     bool                     `json:"dry_run"`
	Elevation  string                   `json:"elevation"`
	Categories []install.CategoryResult `json:"categories"`
	Steps      []StepReport             `json:"steps,omitempty"`
	Projects   []ProjectReport          `json:"projects,omitempty"`
	Stopped    bool                     `json:"stopped"`
	StopReason string                   `json:"stop_reason,omitempty"`
}

// StepReport is the summary of one gated command.
type StepReport struct {
	Description string `json:"description"`
	Command     string `json:"command"`
	Status      string `json:"status"`
	ExitCode    int    `json:"exit_code"`
	Error       string `json:"error,omitempty"`
	Asked       bool   `json:"asked"`
	Proceed     bool   `json:"proceed"`
}

// ProjectReport is the summary of a project stage.
type ProjectReport struct {
	Dir        string       `json:"dir"`
	Found      bool         `json:"found"`
	SkipReason string       `json:"skip_reason,omitempty"`
	Steps      []StepReport `json:"steps,omitempty"`
}

func newStepReport(r install.StepResult) StepReport {
	sr := StepReport{
		Description: r.Step.Description,
		Command:     r.Command,
		Status:      r.Status.String(),
		ExitCode:    r.ExitCode,
		Asked:       r.Asked,
		Proceed:     r.Proceed,
	}
	if r.Err != nil {
		sr.Error = r.Err.Error()
	}
	return sr
}

func (r *Report) stop(reason string) {
	if r.Stopped {
		return
	}
	r.Stopped = true
	r.StopReason = reason
}

// Total sums the tallies of every category that ran.
func (r *Report) Total() install.Tally {
	var total install.Tally
	for _, c := range r.Categories {
		total = total.Plus(c.Tally)
	}
	return total
}

// Relaunched reports whether the session handed over to an elevated copy.
func (r *Report) Relaunched() bool {
	return r.Elevation == "relaunched"
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		*Report
		Total install.Tally `json:"total"`
	}{r, r.Total()}); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// nextSteps are printed after a complete session.
var nextSteps = []string{
	"Restart your computer to ensure all PATH changes take effect",
	"Open VS Code and explore the installed extensions",
	"Test your tools: 'node --version', 'python --version', 'git --version'",
	"For security tools: 'nmap --version', 'wireshark --version'",
	"Update wrangler.json with your actual Cloudflare resource IDs",
}

// Render writes the human-readable summary.
func (r *Report) Render(w io.Writer) {
	s := ui.NewStyles(w)
	rule := s.RuleLine("=", 80)
	total := r.Total()

	heading := s.Success.Render("🎉 Installation Complete!")
	if r.Stopped {
		heading = s.Warning.Render("❌ Installation stopped: " + r.StopReason)
	}
	if r.DryRun {
		heading += s.Muted.Render(" (dry run)")
	}
	fmt.Fprintf(w, "\n%s\n%s\n", heading, rule)

	if len(r.Categories) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.TableBorder).
			Headers("Category", "Installed", "Breakdown").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.TableHeader
				}
				return s.TableCell
			})
		for _, c := range r.Categories {
			t.Row(c.Title, fmt.Sprintf("%d/%d", c.Tally.Installed, c.Tally.Total), breakdown(c))
		}
		fmt.Fprintln(w, t.Render())
		r.renderFailures(w, s)
	}

	fmt.Fprintf(w, "%s\n%s\n", s.Info.Render(fmt.Sprintf("📊 Overall Summary: %d/%d tools installed", total.Installed, total.Total)), rule)

	if !r.Stopped {
		fmt.Fprintln(w, s.Title.Render("🚀 Next steps:"))
		for i, step := range nextSteps {
			fmt.Fprintf(w, "%d. %s\n", i+1, step)
		}
		if r.LogPath != "" {
			fmt.Fprintf(w, "%d. Check debug log: %s\n", len(nextSteps)+1, r.LogPath)
		}
	} else if r.LogPath != "" {
		fmt.Fprintf(w, "Check debug log: %s\n", r.LogPath)
	}
	fmt.Fprintln(w, rule)
}

// renderFailures lists the entries that did not count toward a tally.
// Categories skipped as a whole are already explained by the table.
func (r *Report) renderFailures(w io.Writer, s ui.Styles) {
	var lines []string
	for _, c := range r.Categories {
		if c.SkipReason != "" {
			continue
		}
		for _, e := range c.Failures() {
			line := fmt.Sprintf("  - %s: %s (%s", c.Title, e.ID, e.Outcome)
			if e.Detail != "" {
				line += ": " + e.Detail
			}
			lines = append(lines, line+")")
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, s.Warning.Render("⚠️  Not installed:"))
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// breakdown lists non-zero outcome counts, e.g. "3 installed, 1 failed".
func breakdown(c install.CategoryResult) string {
	if c.SkipReason != "" {
		return "skipped: " + c.SkipReason
	}
	counts := c.Breakdown()
	parts := make([]string, 0, len(install.Outcomes))
	for _, o := range install.Outcomes {
		if n := counts[o]; n > 0 {
			parts = append(parts, strconv.Itoa(n)+" "+o.String())
		}
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}
