package engine

import (
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/recurrence"
	"github.com/google/uuid"
)

// backfillLocked synthesizes "missed" history entries for every due slot
// day that elapsed while the application was not running, then advances
// each slot's watermark to now. Candidate days lie strictly between the
// watermark's day and today: today itself belongs to the live projection,
// not the backfill. The slot-day index makes re-running the pass for the
// same today a no-op.
func (e *Engine) backfillLocked(now time.Time) int {
	today := dateutil.DayOf(now)
	created := 0

	for _, t := range e.treatments.All() {
		if t.Frequency == domain.FreqWhenNeeded {
			continue
		}
		for i := range t.Slots {
			slot := &t.Slots[i]
			created += e.backfillSlot(t, slot, today)
			// The watermark advances exactly once per slot per pass,
			// whether or not anything was produced, so later passes
			// never re-scan the same gap.
			slot.LastSynchronized = now
		}
	}
	return created
}

func (e *Engine) backfillSlot(t *domain.Treatment, slot *domain.DosageSlot, today time.Time) int {
	last := slot.LastSynchronized
	if last.IsZero() {
		last = t.CreatedAt
	}

	created := 0
	first := dateutil.DayOf(last).AddDate(0, 0, 1)
	for day := first; day.Before(today); day = day.AddDate(0, 0, 1) {
		if !recurrence.IsDue(t, day) {
			continue
		}
		if e.history.Has(t.Name, slot.Time, dateutil.DayKey(day)) {
			continue
		}
		entry := &domain.HistoryEntry{
			ID:         uuid.New().String(),
			Name:       t.Name,
			Unit:       t.Unit,
			Color:      t.Color,
			Outcome:    domain.OutcomeMissed,
			Dose:       domain.DoseSnapshot{Time: slot.Time, Amount: slot.Amount},
			RecordedAt: slot.Time.On(day),
		}
		if err := e.history.Append(entry); err != nil {
			// Only possible if the index check raced with ourselves;
			// treat as already recorded.
			e.log.Debug("backfill append suppressed", "treatment", t.Name, "day", dateutil.DayKey(day), "error", err)
			continue
		}
		created++
	}
	return created
}
