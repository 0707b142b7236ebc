package engine

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/store"
	"github.com/google/uuid"
)

// Record appends one history entry per due instance with the given
// outcome, advances the matching slot watermarks, and runs a full
// reconciliation. The inventory ledger fires synchronously from the
// history store's change event.
func (e *Engine) Record(ctx context.Context, instances []domain.DoseInstance, outcome domain.Outcome) error {
	if !outcome.IsValid() {
		return fmt.Errorf("outcome %q is not recordable", outcome)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	for _, inst := range instances {
		entry := &domain.HistoryEntry{
			ID:         uuid.New().String(),
			Name:       inst.Name,
			Unit:       inst.Unit,
			Color:      inst.Color,
			Outcome:    outcome,
			Dose:       inst.Dose,
			RecordedAt: now,
		}
		if err := e.history.Append(entry); err != nil {
			return err
		}
		if t := e.treatments.Get(inst.Name); t != nil {
			if slot := t.SlotAt(inst.Dose.Time); slot != nil {
				slot.LastSynchronized = now
			}
		}
	}

	e.reconcileLocked(ctx, "record")
	return nil
}

// RecordAdHoc appends a single one-time entry for a when-needed dose. Ad
// hoc records bypass the recurrence evaluator entirely and never touch
// slot watermarks.
func (e *Engine) RecordAdHoc(ctx context.Context, name string, amount float64, at domain.DayTime) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.treatments.Lookup(name)
	if t == nil {
		return fmt.Errorf("%q: %w", name, store.ErrTreatmentNotFound)
	}

	entry := &domain.HistoryEntry{
		ID:         uuid.New().String(),
		Name:       t.Name,
		Unit:       t.Unit,
		Color:      t.Color,
		Outcome:    domain.OutcomeTaken,
		Dose:       domain.DoseSnapshot{Time: at, Amount: amount},
		RecordedAt: e.now(),
	}
	if err := e.history.Append(entry); err != nil {
		return err
	}

	e.saveLocked(ctx)
	return nil
}

// Unrecord removes a history entry. Same-day removals of taken doses get
// their inventory restored by the ledger; older removals do not.
func (e *Engine) Unrecord(ctx context.Context, entryID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.history.Remove(entryID); err != nil {
		return err
	}
	e.saveLocked(ctx)
	return nil
}
