package schedule

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
)

// Priority grades a notification for the sink.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// NotificationSink delivers one notification. Implementations must treat
// repeated calls with the same id as distinct deliveries; deduplication
// is the scheduler's job.
type NotificationSink interface {
	Notify(id, title, body string, priority Priority) error
}

// DoseEventID derives the stable identifier for a dose notification.
// Rescheduling the same logical event always produces the same id, which
// is what lets the scheduler replace rather than duplicate pending tasks.
func DoseEventID(name string, at domain.DayTime, day time.Time, amount float64) string {
	return fmt.Sprintf("dose|%s|%s|%s|%g", name, at, dateutil.DayKey(day), amount)
}

// InventoryEventID derives the stable identifier for a low-stock
// notification, scoped to one calendar day per treatment.
func InventoryEventID(name string, day time.Time) string {
	return fmt.Sprintf("inventory|%s|%s", name, dateutil.DayKey(day))
}

// Scheduler arms at-most-once notification tasks keyed by stable event
// ids. Pending tasks are cancellable; delivered ids are remembered so a
// re-arm after midnight rebuilding cannot re-fire an already-delivered
// notification.
type Scheduler struct {
	sink NotificationSink
	now  func() time.Time

	mu        sync.Mutex
	pending   map[string]*time.Timer
	delivered map[string]bool
}

// NewScheduler creates a scheduler over the given sink.
func NewScheduler(sink NotificationSink, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		sink:      sink,
		now:       now,
		pending:   make(map[string]*time.Timer),
		delivered: make(map[string]bool),
	}
}

// ScheduleDose arms a notification for the instance's slot time today.
// Times already in the past fire immediately. Re-scheduling a pending id
// replaces its timer; a delivered id is never re-armed.
func (s *Scheduler) ScheduleDose(inst domain.DoseInstance) {
	day := s.now()
	at := inst.Dose.Time.On(day)
	id := DoseEventID(inst.Name, inst.Dose.Time, day, inst.Dose.Amount)
	title := "Medication due"
	body := fmt.Sprintf("%s: %g %s at %s", inst.Name, inst.Dose.Amount, inst.Unit, inst.Dose.Time)
	s.schedule(id, at, title, body, PriorityNormal)
}

// NotifyLowInventory fires a low-stock notification immediately, at most
// once per treatment per day.
func (s *Scheduler) NotifyLowInventory(t *domain.Treatment) {
	id := InventoryEventID(t.Name, s.now())
	body := fmt.Sprintf("%s is running low: %g %s left", t.Name, t.Inventory.Current, t.Unit)
	s.schedule(id, s.now(), "Low inventory", body, PriorityHigh)
}

func (s *Scheduler) schedule(id string, at time.Time, title, body string, priority Priority) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.delivered[id] {
		return
	}
	if t, ok := s.pending[id]; ok {
		t.Stop()
	}

	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	s.pending[id] = time.AfterFunc(delay, func() {
		s.deliver(id, title, body, priority)
	})
}

func (s *Scheduler) deliver(id, title, body string, priority Priority) {
	s.mu.Lock()
	if s.delivered[id] {
		s.mu.Unlock()
		return
	}
	s.delivered[id] = true
	delete(s.pending, id)
	s.mu.Unlock()

	// Delivery failures are not retried; the event stays marked so a
	// re-arm cannot turn one failed popup into several.
	_ = s.sink.Notify(id, title, body, priority)
}

// CancelPending stops every armed task, keeping the delivered set. The
// midnight pass calls this before re-arming from the fresh due list.
func (s *Scheduler) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}

// PruneDelivered drops delivered ids from past days so the set cannot
// grow without bound across midnights.
func (s *Scheduler) PruneDelivered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := dateutil.DayKey(s.now())
	for id := range s.delivered {
		if !strings.Contains(id, today) {
			delete(s.delivered, id)
		}
	}
}

// PendingCount reports the number of armed tasks.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
