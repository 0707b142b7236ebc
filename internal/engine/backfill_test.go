package engine

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/gateway"
	"github.com/alexanderramin/dosetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func newTestEngine(t *testing.T, now time.Time) (*Engine, *fakeClock, *gateway.MemoryGateway) {
	t.Helper()
	clk := &fakeClock{t: now}
	gw := gateway.NewMemoryGateway()
	return New(gw, WithClock(clk.Now)), clk, gw
}

func TestBackfill_ThreeDayGap(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	eng, _, _ := newTestEngine(t, now)
	ctx := context.Background()

	threeDaysAgo := now.AddDate(0, 0, -3)
	tr := testutil.NewTreatment("Aspirin",
		testutil.WithCreatedAt(threeDaysAgo),
		testutil.WithSlot(8, 0, 1, threeDaysAgo),
	)
	require.NoError(t, eng.AddTreatment(ctx, tr))

	eng.Reconcile(ctx)

	// Days -2 and -1 are backfilled; today belongs to the live
	// projection, and the watermark day itself was already seen.
	var missed []*domain.HistoryEntry
	for _, sec := range eng.History() {
		for _, e := range sec.Entries {
			if e.Outcome == domain.OutcomeMissed {
				missed = append(missed, e)
			}
		}
	}
	require.Len(t, missed, 2)
	assert.Equal(t, "2026-08-27", dateutil.DayKey(missed[0].RecordedAt))
	assert.Equal(t, "2026-08-26", dateutil.DayKey(missed[1].RecordedAt))

	got := eng.Treatment("Aspirin")
	assert.True(t, got.Slots[0].LastSynchronized.Equal(now), "watermark advances to now")
}

func TestBackfill_Idempotent(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	eng, _, _ := newTestEngine(t, now)
	ctx := context.Background()

	fiveDaysAgo := now.AddDate(0, 0, -5)
	tr := testutil.NewTreatment("Aspirin",
		testutil.WithCreatedAt(fiveDaysAgo),
		testutil.WithSlot(8, 0, 1, fiveDaysAgo),
	)
	require.NoError(t, eng.AddTreatment(ctx, tr))

	eng.Reconcile(ctx)
	first := historyCount(eng)
	assert.Equal(t, 4, first)

	eng.Reconcile(ctx)
	eng.Reconcile(ctx)
	assert.Equal(t, first, historyCount(eng), "re-running with the same today adds nothing")
}

func TestBackfill_SkipsNonDueDays(t *testing.T) {
	// 2026-08-28 is a Friday; the prior Monday and Wednesday are the
	// 24th and 26th.
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	eng, _, _ := newTestEngine(t, now)
	ctx := context.Background()

	weekAgo := now.AddDate(0, 0, -7)
	tr := testutil.NewTreatment("Methotrexate",
		testutil.WithCreatedAt(weekAgo),
		testutil.WithWeekdays(time.Monday, time.Wednesday),
		testutil.WithSlot(8, 0, 1, weekAgo),
	)
	require.NoError(t, eng.AddTreatment(ctx, tr))

	eng.Reconcile(ctx)

	days := map[string]bool{}
	for _, sec := range eng.History() {
		days[sec.Day] = true
	}
	assert.Equal(t, map[string]bool{"2026-08-24": true, "2026-08-26": true}, days)
}

func TestBackfill_SuppressedByExistingEntry(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	eng, _, _ := newTestEngine(t, now)
	ctx := context.Background()

	twoDaysAgo := now.AddDate(0, 0, -2)
	tr := testutil.NewTreatment("Aspirin",
		testutil.WithCreatedAt(twoDaysAgo),
		testutil.WithSlot(8, 0, 1, twoDaysAgo),
	)
	require.NoError(t, eng.AddTreatment(ctx, tr))

	// The user already recorded yesterday's dose manually.
	yesterday := now.AddDate(0, 0, -1)
	require.NoError(t, eng.history.Append(
		testutil.NewEntry("Aspirin", domain.OutcomeTaken, domain.DayTime{Hour: 8}, yesterday)))

	eng.Reconcile(ctx)

	for _, sec := range eng.History() {
		for _, e := range sec.Entries {
			assert.NotEqual(t, domain.OutcomeMissed, e.Outcome,
				"no synthetic entry may shadow a recorded day")
		}
	}
}

func TestBackfill_IgnoresWhenNeeded(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	eng, _, _ := newTestEngine(t, now)
	ctx := context.Background()

	tr := testutil.NewTreatment("Ibuprofen",
		testutil.WithFrequency(domain.FreqWhenNeeded),
		testutil.WithCreatedAt(now.AddDate(0, 0, -10)),
	)
	require.NoError(t, eng.AddTreatment(ctx, tr))

	eng.Reconcile(ctx)
	assert.Equal(t, 0, historyCount(eng))
}

func TestBackfill_AdvancesAcrossMidnight(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	eng, clk, _ := newTestEngine(t, now)
	ctx := context.Background()

	tr := testutil.NewTreatment("Aspirin",
		testutil.WithCreatedAt(now),
		testutil.WithSlot(8, 0, 1, now),
	)
	require.NoError(t, eng.AddTreatment(ctx, tr))

	eng.Reconcile(ctx)
	assert.Equal(t, 0, historyCount(eng))

	// The midnight boundary passes without the dose being recorded.
	clk.t = now.AddDate(0, 0, 1)
	eng.Reconcile(ctx)

	require.Equal(t, 1, historyCount(eng))
	entry := eng.History()[0].Entries[0]
	assert.Equal(t, domain.OutcomeMissed, entry.Outcome)
	assert.Equal(t, "2026-08-28", dateutil.DayKey(entry.RecordedAt))
}

func historyCount(e *Engine) int {
	n := 0
	for _, sec := range e.History() {
		n += len(sec.Entries)
	}
	return n
}
