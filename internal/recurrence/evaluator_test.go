package recurrence

import (
	"testing"
	"time"

	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dailyTreatment(created time.Time) *domain.Treatment {
	return &domain.Treatment{
		Name:      "Aspirin",
		Frequency: domain.FreqDaily,
		Slots:     []domain.DosageSlot{{Time: domain.DayTime{Hour: 8}, Amount: 1}},
		CreatedAt: created,
	}
}

func TestIsDue_Daily(t *testing.T) {
	created := day(2026, 8, 10)
	tr := dailyTreatment(created)

	assert.True(t, IsDue(tr, created), "due on creation day")
	assert.True(t, IsDue(tr, day(2026, 8, 28)))
	assert.False(t, IsDue(tr, day(2026, 8, 9)), "not due before creation")
}

func TestIsDue_DailyCreationDayIgnoresTimeOfDay(t *testing.T) {
	// Created at 23:50; an evaluation at 08:00 the same day must still be
	// due. Comparisons operate on date-only precision.
	created := time.Date(2026, 8, 10, 23, 50, 0, 0, time.Local)
	tr := dailyTreatment(created)
	assert.True(t, IsDue(tr, time.Date(2026, 8, 10, 8, 0, 0, 0, time.Local)))
}

func TestIsDue_SpecificDays(t *testing.T) {
	tr := &domain.Treatment{
		Name:      "Methotrexate",
		Frequency: domain.FreqSpecificDays,
		Days:      []time.Weekday{time.Monday, time.Wednesday},
		Slots:     []domain.DosageSlot{{Time: domain.DayTime{Hour: 8}, Amount: 1}},
		CreatedAt: day(2026, 8, 1),
	}

	// A 30-day window: due exactly on Mondays and Wednesdays.
	start := day(2026, 8, 1)
	for i := 0; i < 30; i++ {
		d := start.AddDate(0, 0, i)
		want := d.Weekday() == time.Monday || d.Weekday() == time.Wednesday
		assert.Equal(t, want, IsDue(tr, d), d.Format("2006-01-02 Mon"))
	}
}

func TestIsDue_CyclePeriodicity(t *testing.T) {
	// 3 active days, 4 inactive: due on relative days 0,1,2 and not due
	// on 3..6, repeating with period 7.
	anchor := day(2026, 8, 3)
	tr := &domain.Treatment{
		Name:      "Prednisone",
		Frequency: domain.FreqCycle,
		Cycle:     domain.CyclePlan{ActiveDays: 3, InactiveDays: 4, Anchor: anchor},
		Slots:     []domain.DosageSlot{{Time: domain.DayTime{Hour: 8}, Amount: 1}},
		CreatedAt: anchor,
	}

	for i := 0; i < 14; i++ {
		d := anchor.AddDate(0, 0, i)
		want := i%7 < 3
		assert.Equal(t, want, IsDue(tr, d), "relative day %d", i)
	}
}

func TestCyclePhase_BeforeAnchorStaysInRange(t *testing.T) {
	c := domain.CyclePlan{ActiveDays: 3, InactiveDays: 4, Anchor: day(2026, 8, 10)}

	assert.Equal(t, 6, CyclePhase(c, day(2026, 8, 9)))
	assert.Equal(t, 0, CyclePhase(c, day(2026, 8, 3)), "one full period earlier is phase 0")
}

func TestIsDue_WhenNeededNeverDue(t *testing.T) {
	tr := &domain.Treatment{
		Name:      "Ibuprofen",
		Frequency: domain.FreqWhenNeeded,
		CreatedAt: day(2026, 8, 1),
	}
	assert.False(t, IsDue(tr, day(2026, 8, 28)))
}

func TestIsDue_DurationWindow(t *testing.T) {
	tr := dailyTreatment(day(2026, 8, 1))
	tr.Duration = domain.DurationWindow{
		Enabled: true,
		Start:   day(2026, 8, 10),
		End:     day(2026, 8, 20),
	}

	assert.False(t, IsDue(tr, day(2026, 8, 9)))
	assert.True(t, IsDue(tr, day(2026, 8, 10)), "start day inclusive")
	assert.True(t, IsDue(tr, day(2026, 8, 20)), "end day inclusive")
	assert.False(t, IsDue(tr, day(2026, 8, 21)))
}

func TestIsDue_DurationWindowAppliesToAllFrequencies(t *testing.T) {
	tr := &domain.Treatment{
		Name:      "Methotrexate",
		Frequency: domain.FreqSpecificDays,
		Days:      []time.Weekday{time.Friday},
		Slots:     []domain.DosageSlot{{Time: domain.DayTime{Hour: 8}, Amount: 1}},
		CreatedAt: day(2026, 8, 1),
		Duration: domain.DurationWindow{
			Enabled: true,
			Start:   day(2026, 8, 1),
			End:     day(2026, 8, 15),
		},
	}

	// 2026-08-21 is a Friday but outside the window.
	assert.Equal(t, time.Friday, day(2026, 8, 21).Weekday())
	assert.False(t, IsDue(tr, day(2026, 8, 21)))
	// 2026-08-14 is a Friday inside the window.
	assert.Equal(t, time.Friday, day(2026, 8, 14).Weekday())
	assert.True(t, IsDue(tr, day(2026, 8, 14)))
}
