// Package domain holds the entity types shared by the stores and the
// reconciliation engine.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayTime is a time-of-day with minute precision, independent of any date.
type DayTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the time as HH:MM.
func (dt DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", dt.Hour, dt.Minute)
}

// Minutes returns the offset from midnight in minutes, used for ordering.
func (dt DayTime) Minutes() int {
	return dt.Hour*60 + dt.Minute
}

// Section returns the part of day this time falls into.
func (dt DayTime) Section() DaySection {
	switch {
	case dt.Hour < 12:
		return SectionMorning
	case dt.Hour < 18:
		return SectionAfternoon
	default:
		return SectionEvening
	}
}

// On places the time-of-day onto the calendar day of d, in d's location.
func (dt DayTime) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), dt.Hour, dt.Minute, 0, 0, d.Location())
}

// DayTimeOf extracts the time-of-day from a wall clock instant.
func DayTimeOf(t time.Time) DayTime {
	return DayTime{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseDayTime parses an "HH:MM" string.
func ParseDayTime(s string) (DayTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return DayTime{}, fmt.Errorf("invalid time %q (want HH:MM): %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return DayTime{}, fmt.Errorf("invalid time %q: out of range", s)
	}
	return DayTime{Hour: h, Minute: m}, nil
}

// DosageSlot is one due-time within a treatment's day. LastSynchronized is
// the watermark advanced by each reconciliation pass; days before it have
// already been accounted for (taken, skipped, or backfilled as missed).
type DosageSlot struct {
	Time             DayTime   `json:"time"`
	Amount           float64   `json:"amount"`
	LastSynchronized time.Time `json:"lastSynchronized"`
}

// CyclePlan is a repeating phase of ActiveDays due days followed by
// InactiveDays non-due days. The phase for a date is recomputed from the
// Anchor day by modulo arithmetic; there is no mutable position counter,
// which keeps due-ness idempotent under re-evaluation.
type CyclePlan struct {
	ActiveDays   int       `json:"activeDays"`
	InactiveDays int       `json:"inactiveDays"`
	Anchor       time.Time `json:"anchor"`

	// Position is the legacy persisted form (offset into the cycle at
	// creation time). It is converted to an Anchor on load and kept only
	// for round-tripping older documents.
	Position int `json:"currentPosition,omitempty"`
}

// Period returns the full cycle length in days.
func (c CyclePlan) Period() int {
	return c.ActiveDays + c.InactiveDays
}

// InventoryState tracks remaining stock for a treatment.
type InventoryState struct {
	Enabled   bool    `json:"enabled"`
	Current   float64 `json:"current"`
	Threshold float64 `json:"threshold"`
}

// Low reports whether stock has reached the reminder threshold.
func (i InventoryState) Low() bool {
	return i.Enabled && i.Current <= i.Threshold
}

// DurationWindow bounds a treatment to a date range. Outside [Start, End]
// the treatment is never due.
type DurationWindow struct {
	Enabled bool      `json:"enabled"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

type Treatment struct {
	Name      string         `json:"name"`
	Unit      string         `json:"unit"`
	Color     string         `json:"color"`
	Frequency Frequency      `json:"frequency"`
	Days      []time.Weekday `json:"days,omitempty"`
	Cycle     CyclePlan      `json:"cycle,omitzero"`
	Slots     []DosageSlot   `json:"slots"`
	Inventory InventoryState `json:"inventory"`
	Duration  DurationWindow `json:"duration"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Validate checks the structural invariants that must hold before the
// treatment enters the store. Uniqueness against other treatments is the
// store's concern.
func (t *Treatment) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if !t.Frequency.IsValid() {
		return fmt.Errorf("frequency %q: %w", t.Frequency, ErrInvalidFrequency)
	}
	if t.Frequency != FreqWhenNeeded && len(t.Slots) == 0 {
		return ErrNoSlots
	}
	seen := make(map[DayTime]bool, len(t.Slots))
	for _, s := range t.Slots {
		if seen[s.Time] {
			return fmt.Errorf("dose time %s: %w", s.Time, ErrDuplicateSlot)
		}
		seen[s.Time] = true
	}
	if t.Frequency == FreqSpecificDays && len(t.Days) == 0 {
		return ErrNoWeekdays
	}
	if t.Frequency == FreqCycle && (t.Cycle.ActiveDays < 1 || t.Cycle.InactiveDays < 0 || t.Cycle.Period() < 1) {
		return ErrInvalidCycle
	}
	return nil
}

// Normalize repairs fields after loading a persisted record: zero slot
// watermarks fall back to the creation time, and a legacy cycle position
// is converted to an explicit anchor day.
func (t *Treatment) Normalize() {
	for i := range t.Slots {
		if t.Slots[i].LastSynchronized.IsZero() {
			t.Slots[i].LastSynchronized = t.CreatedAt
		}
	}
	if t.Frequency == FreqCycle && t.Cycle.Anchor.IsZero() {
		anchor := time.Date(t.CreatedAt.Year(), t.CreatedAt.Month(), t.CreatedAt.Day(), 0, 0, 0, 0, t.CreatedAt.Location())
		t.Cycle.Anchor = anchor.AddDate(0, 0, -t.Cycle.Position)
	}
}

// SlotAt returns the dosage slot with the given time-of-day, or nil.
func (t *Treatment) SlotAt(at DayTime) *DosageSlot {
	for i := range t.Slots {
		if t.Slots[i].Time == at {
			return &t.Slots[i]
		}
	}
	return nil
}

// HasWeekday reports whether d is in the specific-days set.
func (t *Treatment) HasWeekday(d time.Weekday) bool {
	for _, w := range t.Days {
		if w == d {
			return true
		}
	}
	return false
}
