// Package recurrence decides whether a treatment is due on a calendar day.
// Everything here is a pure function of the treatment definition and the
// target date; evaluating twice for the same inputs always agrees.
package recurrence

import (
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
)

// IsDue reports whether the treatment has scheduled doses on the calendar
// day containing date. When-needed treatments are never due here: their
// doses exist only as explicit one-off records.
func IsDue(t *domain.Treatment, date time.Time) bool {
	day := dateutil.DayOf(date)

	if t.Duration.Enabled {
		if day.Before(dateutil.DayOf(t.Duration.Start)) || day.After(dateutil.DayOf(t.Duration.End)) {
			return false
		}
	}

	switch t.Frequency {
	case domain.FreqDaily:
		return !day.Before(dateutil.DayOf(t.CreatedAt))
	case domain.FreqSpecificDays:
		return t.HasWeekday(day.Weekday())
	case domain.FreqCycle:
		return CyclePhase(t.Cycle, day) < t.Cycle.ActiveDays
	default:
		// when-needed, or an unknown tag that slipped past validation
		return false
	}
}

// CyclePhase returns the 0-based position of date within the repeating
// cycle, counted in whole calendar days from the anchor. The result is
// always in [0, Period), including for days before the anchor.
func CyclePhase(c domain.CyclePlan, date time.Time) int {
	period := c.Period()
	if period < 1 {
		return 0
	}
	offset := dateutil.WholeDaysBetween(c.Anchor, date)
	phase := offset % period
	if phase < 0 {
		phase += period
	}
	return phase
}
