package engine

import (
	"context"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/store"
)

// AddTreatment validates and stores a new treatment, then persists.
// Validation failures block before any store mutation.
func (e *Engine) AddTreatment(ctx context.Context, t *domain.Treatment) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.Frequency == domain.FreqCycle && t.Cycle.Anchor.IsZero() {
		t.Cycle.Anchor = dateutil.DayOf(now).AddDate(0, 0, -t.Cycle.Position)
	}
	for i := range t.Slots {
		if t.Slots[i].LastSynchronized.IsZero() {
			t.Slots[i].LastSynchronized = now
		}
	}

	if err := e.treatments.Add(t); err != nil {
		return err
	}
	e.saveLocked(ctx)
	return nil
}

// UpdateTreatment replaces an existing treatment definition and persists.
func (e *Engine) UpdateTreatment(ctx context.Context, t *domain.Treatment) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.treatments.Update(t); err != nil {
		return err
	}
	e.saveLocked(ctx)
	return nil
}

// RemoveTreatment deletes a treatment by name. History entries keep their
// snapshots; the ledger treats them as benign match misses from then on.
func (e *Engine) RemoveTreatment(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.treatments.Lookup(name)
	if t == nil {
		return store.ErrTreatmentNotFound
	}
	e.treatments.Remove(t.Name)
	e.saveLocked(ctx)
	return nil
}

// Treatments returns the alphabetical view of all treatments.
func (e *Engine) Treatments() []*domain.Treatment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.treatments.All()
}

// Treatment returns one treatment by case-insensitive name, or nil.
func (e *Engine) Treatment(name string) *domain.Treatment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.treatments.Lookup(name)
}

// History returns the date-descending day-sectioned history view.
func (e *Engine) History() []store.DaySection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.ByDay()
}

// LowInventory returns the treatments whose stock has reached the
// reminder threshold. Threshold evaluation lives here, outside the
// ledger, which only moves counters.
func (e *Engine) LowInventory() []*domain.Treatment {
	e.mu.Lock()
	defer e.mu.Unlock()

	var low []*domain.Treatment
	for _, t := range e.treatments.All() {
		if t.Inventory.Low() {
			low = append(low, t)
		}
	}
	return low
}

// Now exposes the engine's clock to the schedulers so that timers and
// reconciliation agree on what "today" is.
func (e *Engine) Now() time.Time {
	return e.now()
}
