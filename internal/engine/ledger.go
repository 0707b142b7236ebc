package engine

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/store"
)

// InventoryLedger keeps treatment stock counters synchronized with
// history mutations. It consumes history change events synchronously and
// touches only the treatment store, so it cannot re-enter the store that
// emitted the event.
type InventoryLedger struct {
	treatments *store.TreatmentStore
	log        *slog.Logger
	now        func() time.Time
}

// NewInventoryLedger creates a ledger over the given treatment store.
func NewInventoryLedger(treatments *store.TreatmentStore, log *slog.Logger) *InventoryLedger {
	return &InventoryLedger{treatments: treatments, log: log, now: time.Now}
}

// OnHistoryEvent applies or reverses the inventory delta for one history
// mutation. Matching is by exact case-sensitive name against the live
// store; a missing treatment (deleted after the entry was recorded) is an
// expected benign case and a silent no-op.
func (l *InventoryLedger) OnHistoryEvent(ev store.HistoryEvent) {
	e := ev.Entry
	if e.Outcome != domain.OutcomeTaken {
		return
	}
	t := l.treatments.Get(e.Name)
	if t == nil {
		l.log.Debug("inventory match miss", "treatment", e.Name)
		return
	}
	if !t.Inventory.Enabled {
		return
	}

	switch ev.Kind {
	case store.EntryAdded:
		t.Inventory.Current -= e.Dose.Amount
	case store.EntryRemoved:
		// Reversal applies only to same-day undo. Removing entries from
		// past days must not silently rewrite long-gone stock state.
		if dateutil.SameDay(e.RecordedAt, l.now()) {
			t.Inventory.Current += e.Dose.Amount
		}
	}
}
