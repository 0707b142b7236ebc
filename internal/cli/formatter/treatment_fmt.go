package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dosetrack/internal/domain"
)

// FormatTreatments renders the treatment list as a table.
func FormatTreatments(list []*domain.Treatment) string {
	if len(list) == 0 {
		return StyleDim.Render("No treatments. Add one with `dosetrack add`.")
	}

	headers := []string{"Name", "Schedule", "Doses", "Stock"}
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		rows = append(rows, []string{
			StyleFg.Render(t.Name),
			ScheduleLabel(t),
			slotsLabel(t),
			stockLabel(t),
		})
	}
	return RenderTable(headers, rows)
}

// ScheduleLabel renders a treatment's recurrence in one short phrase.
func ScheduleLabel(t *domain.Treatment) string {
	switch t.Frequency {
	case domain.FreqDaily:
		return "every day"
	case domain.FreqSpecificDays:
		names := make([]string, 0, len(t.Days))
		for _, d := range t.Days {
			names = append(names, d.String()[:3])
		}
		return strings.Join(names, ", ")
	case domain.FreqCycle:
		return fmt.Sprintf("%d on / %d off", t.Cycle.ActiveDays, t.Cycle.InactiveDays)
	case domain.FreqWhenNeeded:
		return "when needed"
	}
	return string(t.Frequency)
}

func slotsLabel(t *domain.Treatment) string {
	if len(t.Slots) == 0 {
		return StyleDim.Render("as needed")
	}
	parts := make([]string, 0, len(t.Slots))
	for _, s := range t.Slots {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.Time, Dose(s.Amount, t.Unit)))
	}
	return strings.Join(parts, ", ")
}

func stockLabel(t *domain.Treatment) string {
	if !t.Inventory.Enabled {
		return StyleDim.Render("-")
	}
	s := Dose(t.Inventory.Current, t.Unit)
	if t.Inventory.Low() {
		return StyleRed.Render(s + " (low)")
	}
	return s
}

// FormatInventory renders the stock table for treatments with tracking
// enabled.
func FormatInventory(list []*domain.Treatment) string {
	headers := []string{"Name", "Remaining", "Threshold", ""}
	var rows [][]string
	for _, t := range list {
		if !t.Inventory.Enabled {
			continue
		}
		flag := ""
		if t.Inventory.Low() {
			flag = StyleRed.Render("refill")
		}
		rows = append(rows, []string{
			StyleFg.Render(t.Name),
			Dose(t.Inventory.Current, t.Unit),
			Dose(t.Inventory.Threshold, t.Unit),
			flag,
		})
	}
	if len(rows) == 0 {
		return StyleDim.Render("No treatments track inventory.")
	}
	return RenderTable(headers, rows)
}
