// Package formatter renders engine views for the terminal.
package formatter

import (
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OutcomeStyle returns the style for a dose outcome.
func OutcomeStyle(o domain.Outcome) lipgloss.Style {
	switch o {
	case domain.OutcomeTaken:
		return StyleGreen
	case domain.OutcomeSkipped:
		return StyleYellow
	case domain.OutcomeMissed:
		return StyleRed
	default:
		return StyleDim
	}
}

// OutcomeBadge returns a colored marker such as "✓ taken".
func OutcomeBadge(o domain.Outcome) string {
	switch o {
	case domain.OutcomeTaken:
		return StyleGreen.Render("✓ taken")
	case domain.OutcomeSkipped:
		return StyleYellow.Render("○ skipped")
	case domain.OutcomeMissed:
		return StyleRed.Render("✗ missed")
	default:
		return StyleDim.Render(string(o))
	}
}

// SectionTitle renders a part-of-day heading.
func SectionTitle(s domain.DaySection) string {
	return StyleHeader.Render(titleCase(string(s)))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
