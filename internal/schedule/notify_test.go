package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu    sync.Mutex
	calls []string
}

func (s *recordingSink) Notify(id, title, body string, priority Priority) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, id)
	return nil
}

func (s *recordingSink) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func pastDoseInstance() domain.DoseInstance {
	return domain.DoseInstance{
		Name: "Aspirin",
		Unit: "pill",
		Dose: domain.DoseSnapshot{Time: domain.DayTime{Hour: 0, Minute: 0}, Amount: 1},
	}
}

func TestScheduler_PastDueFiresImmediately(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)

	s.ScheduleDose(pastDoseInstance())
	waitFor(t, func() bool { return len(sink.ids()) == 1 })
}

func TestScheduler_DeliveredIDNeverRefires(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)

	inst := pastDoseInstance()
	s.ScheduleDose(inst)
	waitFor(t, func() bool { return len(sink.ids()) == 1 })

	// Re-arming the same logical event after delivery is a no-op.
	s.ScheduleDose(inst)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, sink.ids(), 1)
}

func TestScheduler_ReschedulingReplacesPending(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)

	inst := domain.DoseInstance{
		Name: "Aspirin",
		Unit: "pill",
		Dose: domain.DoseSnapshot{Time: domain.DayTime{Hour: 23, Minute: 59}, Amount: 1},
	}
	s.ScheduleDose(inst)
	s.ScheduleDose(inst)
	s.ScheduleDose(inst)

	assert.Equal(t, 1, s.PendingCount(), "same id keeps a single armed task")
	s.CancelPending()
	assert.Equal(t, 0, s.PendingCount())
}

func TestScheduler_LowInventoryOncePerDay(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)

	tr := &domain.Treatment{
		Name:      "Aspirin",
		Unit:      "pill",
		Inventory: domain.InventoryState{Enabled: true, Current: 2, Threshold: 5},
	}
	s.NotifyLowInventory(tr)
	waitFor(t, func() bool { return len(sink.ids()) == 1 })

	s.NotifyLowInventory(tr)
	time.Sleep(50 * time.Millisecond)
	require.Len(t, sink.ids(), 1, "one low-stock notification per treatment per day")
}

func TestScheduler_PruneDeliveredKeepsToday(t *testing.T) {
	sink := &recordingSink{}
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	clock := func() time.Time { return now }
	s := NewScheduler(sink, clock)

	s.ScheduleDose(pastDoseInstance())
	waitFor(t, func() bool { return len(sink.ids()) == 1 })

	s.PruneDelivered()
	s.ScheduleDose(pastDoseInstance())
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, sink.ids(), 1, "today's delivered ids survive the prune")

	// Day rolls over: yesterday's ids are dropped and the same slot can
	// notify again.
	now = now.AddDate(0, 0, 1)
	s.PruneDelivered()
	s.ScheduleDose(pastDoseInstance())
	waitFor(t, func() bool { return len(sink.ids()) == 2 })
}

func TestDoseEventID_StableAndDayScoped(t *testing.T) {
	day := time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)
	at := domain.DayTime{Hour: 8}

	a := DoseEventID("Aspirin", at, day, 1)
	b := DoseEventID("Aspirin", at, day.Add(3*time.Hour), 1)
	assert.Equal(t, a, b, "same logical event, same id")

	c := DoseEventID("Aspirin", at, day.AddDate(0, 0, 1), 1)
	assert.NotEqual(t, a, c, "next day is a new event")
	assert.Contains(t, a, dateutil.DayKey(day))
}
