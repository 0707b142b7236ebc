package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/store"
)

// FormatHistory renders recorded outcomes grouped by day, newest first.
// today is used to label the current and previous day.
func FormatHistory(sections []store.DaySection, today time.Time) string {
	if len(sections) == 0 {
		return StyleDim.Render("No history yet.")
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleHeader.Render(dayLabel(sec.Day, today)))
		b.WriteString("\n")
		for _, e := range sec.Entries {
			b.WriteString(fmt.Sprintf("  %s  %-18s %s  %s\n",
				StyleDim.Render(e.Dose.Time.String()),
				e.Name,
				OutcomeBadge(e.Outcome),
				StyleDim.Render(Dose(e.Dose.Amount, e.Unit))))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func dayLabel(day string, today time.Time) string {
	switch day {
	case dateutil.DayKey(today):
		return "Today"
	case dateutil.DayKey(today.AddDate(0, 0, -1)):
		return "Yesterday"
	}
	if d, err := time.ParseInLocation(dateutil.DayKeyLayout, day, today.Location()); err == nil {
		return d.Format("Mon, Jan 2 2006")
	}
	return day
}
