package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/recurrence"
)

// Today returns the due dose instances for the current date. The due set
// is a pure function of store state: an instance disappears the moment
// any outcome is recorded for its slot-day, and nothing is tracked on the
// side. Instances are grouped by part of day, then sorted by (time, name)
// within each section.
func (e *Engine) Today() []domain.DoseInstance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.projectLocked(e.now())
}

func (e *Engine) projectLocked(now time.Time) []domain.DoseInstance {
	day := dateutil.DayKey(now)
	var due []domain.DoseInstance

	for _, t := range e.treatments.All() {
		if t.Frequency == domain.FreqWhenNeeded {
			continue
		}
		if !recurrence.IsDue(t, now) {
			continue
		}
		for _, slot := range t.Slots {
			if e.history.Has(t.Name, slot.Time, day) {
				continue
			}
			due = append(due, domain.DoseInstance{
				Name:  t.Name,
				Unit:  t.Unit,
				Color: t.Color,
				Dose:  domain.DoseSnapshot{Time: slot.Time, Amount: slot.Amount},
			})
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		ra, rb := domain.SectionRank(a.Section()), domain.SectionRank(b.Section())
		if ra != rb {
			return ra < rb
		}
		if a.Dose.Time.Minutes() != b.Dose.Time.Minutes() {
			return a.Dose.Time.Minutes() < b.Dose.Time.Minutes()
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return due
}

// DueSection is one part of day's worth of due instances.
type DueSection struct {
	Section   domain.DaySection
	Instances []domain.DoseInstance
}

// TodaySections returns today's due set grouped into ordered sections.
func (e *Engine) TodaySections() []DueSection {
	var sections []DueSection
	for _, inst := range e.Today() {
		sec := inst.Section()
		if n := len(sections); n > 0 && sections[n-1].Section == sec {
			sections[n-1].Instances = append(sections[n-1].Instances, inst)
			continue
		}
		sections = append(sections, DueSection{Section: sec, Instances: []domain.DoseInstance{inst}})
	}
	return sections
}
