// Package ui renders session progress, reports and tables for the terminal.
package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#cba6f7"} // Mauve
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError     = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
	ColorText      = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"} // Text
)

// RuleWidth is the width of section separators.
const RuleWidth = 60

// Styles contains the lipgloss styles used by the renderers.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style

	Rule lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style
}

// NewStyles builds styles for the renderer attached to w. Colors are dropped
// automatically when w is not a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle: r.NewStyle().Foreground(ColorSecondary),
		Text:     r.NewStyle().Foreground(ColorText),

		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError),
		Info:    r.NewStyle().Foreground(ColorPrimary),
		Muted:   r.NewStyle().Foreground(ColorMuted),

		Rule: r.NewStyle().Foreground(ColorMuted),

		TableHeader: r.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1),
		TableCell:   r.NewStyle().Padding(0, 1),
		TableBorder: r.NewStyle().Foreground(ColorMuted),
	}
}

// RuleLine returns a separator line made of ch.
func (s Styles) RuleLine(ch string, width int) string {
	return s.Rule.Render(strings.Repeat(ch, width))
}

var titleCaser = cases.Title(language.English)

// Title returns name in title case, e.g. "pentesting" -> "Pentesting".
func Title(name string) string {
	return titleCaser.String(name)
}
