package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/engine"
	"github.com/charmbracelet/lipgloss"
)

// Amount renders a dose amount without trailing zeros ("1", "0.5").
func Amount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// Dose renders "1 pill" or just "1" when the unit is empty.
func Dose(amount float64, unit string) string {
	if unit == "" {
		return Amount(amount)
	}
	return Amount(amount) + " " + unit
}

// FormatToday renders the due set grouped by part of day.
func FormatToday(sections []engine.DueSection) string {
	if len(sections) == 0 {
		return StyleDim.Render("Nothing due today.")
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SectionTitle(sec.Section))
		b.WriteString("\n")
		for _, inst := range sec.Instances {
			b.WriteString(formatInstance(inst))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatInstance(inst domain.DoseInstance) string {
	name := inst.Name
	if inst.Color != "" {
		name = lipgloss.NewStyle().Foreground(lipgloss.Color(inst.Color)).Render(name)
	}
	return fmt.Sprintf("  %s  %s  %s",
		StyleDim.Render(inst.Dose.Time.String()),
		name,
		StyleDim.Render(Dose(inst.Dose.Amount, inst.Unit)))
}
