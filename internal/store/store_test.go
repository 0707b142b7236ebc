package store

import (
	"testing"
	"time"

	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTreatment(name string) *domain.Treatment {
	return &domain.Treatment{
		Name:      name,
		Unit:      "pill",
		Frequency: domain.FreqDaily,
		Slots:     []domain.DosageSlot{{Time: domain.DayTime{Hour: 8}, Amount: 1}},
		CreatedAt: time.Now(),
	}
}

func testEntry(name string, at domain.DayTime, recorded time.Time, outcome domain.Outcome) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:         uuid.New().String(),
		Name:       name,
		Unit:       "pill",
		Outcome:    outcome,
		Dose:       domain.DoseSnapshot{Time: at, Amount: 1},
		RecordedAt: recorded,
	}
}

func TestTreatmentStore_RejectsDuplicateNameCaseInsensitive(t *testing.T) {
	s := NewTreatmentStore()
	require.NoError(t, s.Add(testTreatment("Aspirin")))

	err := s.Add(testTreatment("aspirin"))
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Equal(t, 1, s.Len(), "rejected add must not mutate the store")
}

func TestTreatmentStore_ValidationBlocksBeforeMutation(t *testing.T) {
	s := NewTreatmentStore()
	bad := testTreatment("Aspirin")
	bad.Slots = nil

	assert.ErrorIs(t, s.Add(bad), domain.ErrNoSlots)
	assert.Equal(t, 0, s.Len())
}

func TestTreatmentStore_GetIsCaseSensitive(t *testing.T) {
	s := NewTreatmentStore()
	require.NoError(t, s.Add(testTreatment("Aspirin")))

	assert.NotNil(t, s.Get("Aspirin"))
	assert.Nil(t, s.Get("aspirin"), "ledger matching is exact-case")
	assert.NotNil(t, s.Lookup("ASPIRIN"))
}

func TestTreatmentStore_AllSortedAlphabetically(t *testing.T) {
	s := NewTreatmentStore()
	require.NoError(t, s.Add(testTreatment("Zinc")))
	require.NoError(t, s.Add(testTreatment("aspirin")))
	require.NoError(t, s.Add(testTreatment("Magnesium")))

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "aspirin", all[0].Name)
	assert.Equal(t, "Magnesium", all[1].Name)
	assert.Equal(t, "Zinc", all[2].Name)
}

func TestTreatmentStore_DocumentRoundTrip(t *testing.T) {
	s := NewTreatmentStore()
	tr := testTreatment("Aspirin")
	tr.Inventory = domain.InventoryState{Enabled: true, Current: 30, Threshold: 5}
	require.NoError(t, s.Add(tr))

	doc, err := s.Document()
	require.NoError(t, err)

	loaded := NewTreatmentStore()
	require.NoError(t, loaded.LoadDocument(doc))
	got := loaded.Get("Aspirin")
	require.NotNil(t, got)
	assert.Equal(t, 30.0, got.Inventory.Current)
	assert.Len(t, got.Slots, 1)
}

func TestHistoryStore_AppendEnforcesSlotDayUniqueness(t *testing.T) {
	s := NewHistoryStore()
	at := domain.DayTime{Hour: 8}
	now := time.Date(2026, 8, 28, 8, 5, 0, 0, time.Local)

	require.NoError(t, s.Append(testEntry("Aspirin", at, now, domain.OutcomeTaken)))

	err := s.Append(testEntry("Aspirin", at, now.Add(2*time.Hour), domain.OutcomeSkipped))
	assert.ErrorIs(t, err, ErrDuplicateEntry, "same slot, same day")

	assert.NoError(t, s.Append(testEntry("Aspirin", domain.DayTime{Hour: 20}, now, domain.OutcomeTaken)),
		"different slot, same day is fine")
	assert.NoError(t, s.Append(testEntry("Aspirin", at, now.AddDate(0, 0, 1), domain.OutcomeTaken)),
		"same slot, next day is fine")
}

func TestHistoryStore_RemoveFreesSlotDay(t *testing.T) {
	s := NewHistoryStore()
	at := domain.DayTime{Hour: 8}
	now := time.Date(2026, 8, 28, 8, 5, 0, 0, time.Local)
	e := testEntry("Aspirin", at, now, domain.OutcomeTaken)
	require.NoError(t, s.Append(e))

	require.NoError(t, s.Remove(e.ID))
	assert.False(t, s.Has("Aspirin", at, "2026-08-28"))
	assert.NoError(t, s.Append(testEntry("Aspirin", at, now, domain.OutcomeTaken)),
		"slot-day is recordable again after removal")

	assert.ErrorIs(t, s.Remove("nope"), ErrEntryNotFound)
}

func TestHistoryStore_EventsDeliveredSynchronously(t *testing.T) {
	s := NewHistoryStore()
	var got []HistoryEvent
	s.Subscribe(func(ev HistoryEvent) { got = append(got, ev) })

	e := testEntry("Aspirin", domain.DayTime{Hour: 8}, time.Now(), domain.OutcomeTaken)
	require.NoError(t, s.Append(e))
	require.NoError(t, s.Remove(e.ID))

	require.Len(t, got, 2)
	assert.Equal(t, EntryAdded, got[0].Kind)
	assert.Equal(t, EntryRemoved, got[1].Kind)
	assert.Equal(t, e.ID, got[1].Entry.ID)
}

func TestHistoryStore_ByDaySectionsNewestFirst(t *testing.T) {
	s := NewHistoryStore()
	d1 := time.Date(2026, 8, 27, 8, 0, 0, 0, time.Local)
	d2 := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	d2b := time.Date(2026, 8, 28, 20, 0, 0, 0, time.Local)

	require.NoError(t, s.Append(testEntry("Aspirin", domain.DayTime{Hour: 8}, d1, domain.OutcomeMissed)))
	require.NoError(t, s.Append(testEntry("Aspirin", domain.DayTime{Hour: 8}, d2, domain.OutcomeTaken)))
	require.NoError(t, s.Append(testEntry("Aspirin", domain.DayTime{Hour: 20}, d2b, domain.OutcomeTaken)))

	sections := s.ByDay()
	require.Len(t, sections, 2)
	assert.Equal(t, "2026-08-28", sections[0].Day)
	require.Len(t, sections[0].Entries, 2)
	assert.Equal(t, domain.DayTime{Hour: 20}, sections[0].Entries[0].Dose.Time, "within a day, newest first")
	assert.Equal(t, "2026-08-27", sections[1].Day)
}

func TestHistoryStore_DocumentRoundTripRebuildsIndex(t *testing.T) {
	s := NewHistoryStore()
	now := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	require.NoError(t, s.Append(testEntry("Aspirin", domain.DayTime{Hour: 8}, now, domain.OutcomeTaken)))

	doc, err := s.Document()
	require.NoError(t, err)

	loaded := NewHistoryStore()
	require.NoError(t, loaded.LoadDocument(doc))
	assert.True(t, loaded.Has("Aspirin", domain.DayTime{Hour: 8}, "2026-08-28"))
	err = loaded.Append(testEntry("Aspirin", domain.DayTime{Hour: 8}, now, domain.OutcomeTaken))
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}
