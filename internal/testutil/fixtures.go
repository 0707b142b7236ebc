// Package testutil provides fixture builders shared across test packages.
package testutil

import (
	"time"

	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/google/uuid"
)

// TreatmentOption mutates a fixture treatment.
type TreatmentOption func(*domain.Treatment)

func WithUnit(unit string) TreatmentOption {
	return func(t *domain.Treatment) { t.Unit = unit }
}

func WithFrequency(f domain.Frequency) TreatmentOption {
	return func(t *domain.Treatment) { t.Frequency = f }
}

func WithWeekdays(days ...time.Weekday) TreatmentOption {
	return func(t *domain.Treatment) {
		t.Frequency = domain.FreqSpecificDays
		t.Days = days
	}
}

func WithCycle(active, inactive int, anchor time.Time) TreatmentOption {
	return func(t *domain.Treatment) {
		t.Frequency = domain.FreqCycle
		t.Cycle = domain.CyclePlan{ActiveDays: active, InactiveDays: inactive, Anchor: anchor}
	}
}

func WithSlot(hour, minute int, amount float64, lastSync time.Time) TreatmentOption {
	return func(t *domain.Treatment) {
		t.Slots = append(t.Slots, domain.DosageSlot{
			Time:             domain.DayTime{Hour: hour, Minute: minute},
			Amount:           amount,
			LastSynchronized: lastSync,
		})
	}
}

func WithInventory(current, threshold float64) TreatmentOption {
	return func(t *domain.Treatment) {
		t.Inventory = domain.InventoryState{Enabled: true, Current: current, Threshold: threshold}
	}
}

func WithDuration(start, end time.Time) TreatmentOption {
	return func(t *domain.Treatment) {
		t.Duration = domain.DurationWindow{Enabled: true, Start: start, End: end}
	}
}

func WithCreatedAt(at time.Time) TreatmentOption {
	return func(t *domain.Treatment) { t.CreatedAt = at }
}

// NewTreatment builds a daily treatment created now. Options that add
// slots replace the implicit default 08:00 slot.
func NewTreatment(name string, opts ...TreatmentOption) *domain.Treatment {
	t := &domain.Treatment{
		Name:      name,
		Unit:      "pill",
		Color:     "#83a598",
		Frequency: domain.FreqDaily,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(t.Slots) == 0 && t.Frequency != domain.FreqWhenNeeded {
		t.Slots = []domain.DosageSlot{{
			Time:             domain.DayTime{Hour: 8},
			Amount:           1,
			LastSynchronized: t.CreatedAt,
		}}
	}
	return t
}

// NewEntry builds a history entry for the named treatment.
func NewEntry(name string, outcome domain.Outcome, at domain.DayTime, recorded time.Time) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:         uuid.New().String(),
		Name:       name,
		Unit:       "pill",
		Color:      "#83a598",
		Outcome:    outcome,
		Dose:       domain.DoseSnapshot{Time: at, Amount: 1},
		RecordedAt: recorded,
	}
}
