// Package schedule owns the two background triggers: the once-per-day
// midnight reconciliation timer and the per-dose notification timers.
package schedule

import (
	"sync"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
)

// MidnightTimer fires a callback at each local midnight. The delay is
// recomputed from the wall clock at every firing rather than reusing a
// fixed 24h interval, so suspend gaps and DST shifts cannot accumulate
// drift.
type MidnightTimer struct {
	fire func()
	now  func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewMidnightTimer creates a stopped timer. fire runs on the timer
// goroutine; callers hand it something that serializes store access.
func NewMidnightTimer(fire func(), now func() time.Time) *MidnightTimer {
	if now == nil {
		now = time.Now
	}
	return &MidnightTimer{fire: fire, now: now}
}

// Start arms the timer for the next local midnight.
func (m *MidnightTimer) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = false
	m.armLocked()
}

func (m *MidnightTimer) armLocked() {
	// A small grace delay past midnight keeps the firing clearly inside
	// the new calendar day even with coarse timer resolution.
	delay := dateutil.UntilNextMidnight(m.now()) + time.Second
	m.timer = time.AfterFunc(delay, func() {
		m.fire()
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.stopped {
			m.armLocked()
		}
	})
}

// Stop cancels the pending firing. A stopped timer can be restarted.
func (m *MidnightTimer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
