package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMidnightTimer_ArmsForNextMidnight(t *testing.T) {
	// The clock sits just before midnight, so the armed delay is short
	// enough to observe the firing and the self-rescheduling.
	base := time.Date(2026, 8, 28, 23, 59, 59, 900_000_000, time.Local)
	var offset atomic.Int64
	clock := func() time.Time {
		return base.Add(time.Duration(offset.Load()))
	}

	var fired atomic.Int32
	m := NewMidnightTimer(func() {
		fired.Add(1)
		// Wall clock has moved past midnight by the time we fire.
		offset.Store(int64(2 * time.Second))
	}, clock)

	m.Start()
	defer m.Stop()

	waitFor(t, func() bool { return fired.Load() >= 1 })
}

func TestMidnightTimer_StopPreventsFiring(t *testing.T) {
	var fired atomic.Int32
	m := NewMidnightTimer(func() { fired.Add(1) }, nil)

	m.Start()
	m.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
