package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/domain/install"
	"github.com/revelare/toolbelt/internal/ports"
)

// Progress prints install and step progress as it happens.
type Progress struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
}

// NewProgress creates a Progress writing to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out, styles: NewStyles(out)}
}

// CategoryStarted prints the category header.
func (p *Progress) CategoryStarted(cat catalog.Category) {
	p.printf("\n%s\n%s\n", p.styles.Title.Render("🔧 "+cat.Title), p.styles.RuleLine("=", RuleWidth))
}

// GroupStarted prints a subheading when the category has several groups.
func (p *Progress) GroupStarted(cat catalog.Category, group catalog.Group) {
	if len(cat.Groups) < 2 || len(group.Entries) == 0 {
		return
	}
	p.printf("\n%s\n", p.styles.Subtitle.Render("📦 "+Title(group.Name)+" Tools:"))
}

// EntryFinished prints one line per entry.
func (p *Progress) EntryFinished(_ catalog.Category, r install.EntryResult) {
	p.printf("  • %s... %s\n", r.Entry.DisplayName(), p.outcome(r.Outcome, r.Detail))
}

// CategoryFinished prints the category tally.
func (p *Progress) CategoryFinished(r install.CategoryResult) {
	if r.SkipReason != "" {
		p.printf("%s\n", p.styles.Warning.Render(fmt.Sprintf("⚠️  %s, skipping %s", r.SkipReason, strings.ToLower(r.Title))))
	}
	p.printf("\n%s\n", p.styles.Info.Render(fmt.Sprintf("📊 %s Summary: %d/%d installed", r.Title, r.Tally.Installed, r.Tally.Total)))
}

// StepStarted prints the step banner.
func (p *Progress) StepStarted(step catalog.Step) {
	rule := p.styles.RuleLine("=", RuleWidth)
	p.printf("\n%s\nRunning: %s\nCommand: %s\n%s\n", rule, step.Description, step.Command, rule)
}

// StepFinished prints the step outcome and, when available, its output.
func (p *Progress) StepFinished(r install.StepResult) {
	switch {
	case r.Succeeded():
		p.printf("%s\n", p.styles.Success.Render("✅ SUCCESS!"))
		if out := strings.TrimSpace(r.Stdout); out != "" {
			p.printf("Output: %s\n", out)
		}
	case r.Status == ports.RunTimeout:
		p.printf("%s\n", p.styles.Error.Render(fmt.Sprintf("⏰ TIMEOUT: no result after %s", r.Step.Timeout)))
	case r.Status == ports.RunFailure:
		p.printf("%s\n", p.styles.Error.Render(fmt.Sprintf("❌ ERROR: Command failed with exit code %d", r.ExitCode)))
		if errOut := strings.TrimSpace(r.Stderr); errOut != "" {
			p.printf("Error: %s\n", errOut)
		}
	default:
		msg := "❌ UNEXPECTED ERROR"
		if r.Err != nil {
			msg += ": " + r.Err.Error()
		}
		p.printf("%s\n", p.styles.Error.Render(msg))
	}

	if r.Asked && !r.Proceed {
		p.printf("%s\n", p.styles.Warning.Render("Installation cancelled."))
	}
}

func (p *Progress) outcome(o install.Outcome, detail string) string {
	switch o {
	case install.AlreadyPresent:
		return p.styles.Success.Render("✅ Already installed")
	case install.Installed:
		return p.styles.Success.Render("✅ Installed")
	case install.Failed:
		return p.styles.Warning.Render("⚠️  Installation failed")
	case install.TimedOut:
		return p.styles.Error.Render("⏰ Timeout")
	case install.Skipped:
		return p.styles.Muted.Render("⏭  Skipped")
	default:
		if detail != "" {
			return p.styles.Error.Render("❌ Error: " + detail)
		}
		return p.styles.Error.Render("❌ Error")
	}
}

func (p *Progress) printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format, args...)
}

var _ install.Observer = (*Progress)(nil)
