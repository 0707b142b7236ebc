package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/dosetrack/internal/dateutil"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/gateway"
)

var (
	// ErrTreatmentNotFound indicates an update against a name not in the
	// treatment store.
	ErrTreatmentNotFound = errors.New("treatment not found")

	// ErrEntryNotFound indicates a removal of an unknown history entry.
	ErrEntryNotFound = errors.New("history entry not found")

	// ErrDuplicateEntry indicates a second outcome for the same
	// (treatment, dose time, calendar day) triple.
	ErrDuplicateEntry = errors.New("entry already recorded for this slot and day")
)

// ChangeKind tags a history change event.
type ChangeKind int

const (
	EntryAdded ChangeKind = iota
	EntryRemoved
)

// HistoryEvent describes one store mutation. Events are delivered
// synchronously to subscribers on the mutating call; a subscriber must
// not mutate the history store again from inside its callback.
type HistoryEvent struct {
	Kind  ChangeKind
	Entry *domain.HistoryEntry
}

// HistoryStore owns the ordered set of outcome records. A per-slot-day
// index enforces the one-entry-per-(name, time, day) invariant that the
// backfill and today projection rely on.
type HistoryStore struct {
	entries     []*domain.HistoryEntry
	slotDays    map[string]bool
	subscribers []func(HistoryEvent)
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{slotDays: make(map[string]bool)}
}

// Subscribe registers a synchronous change listener.
func (s *HistoryStore) Subscribe(fn func(HistoryEvent)) {
	s.subscribers = append(s.subscribers, fn)
}

func slotDayKey(name string, at domain.DayTime, day string) string {
	return name + "|" + at.String() + "|" + day
}

func entryKey(e *domain.HistoryEntry) string {
	return slotDayKey(e.Name, e.Dose.Time, dateutil.DayKey(e.RecordedAt))
}

// Has reports whether any outcome is recorded for the treatment's slot on
// the given calendar day.
func (s *HistoryStore) Has(name string, at domain.DayTime, day string) bool {
	return s.slotDays[slotDayKey(name, at, day)]
}

// Append inserts an entry, enforcing the slot-day uniqueness invariant,
// and notifies subscribers.
func (s *HistoryStore) Append(e *domain.HistoryEntry) error {
	key := entryKey(e)
	if s.slotDays[key] {
		return fmt.Errorf("%s %s on %s: %w", e.Name, e.Dose.Time, dateutil.DayKey(e.RecordedAt), ErrDuplicateEntry)
	}
	s.entries = append(s.entries, e)
	s.slotDays[key] = true
	s.emit(HistoryEvent{Kind: EntryAdded, Entry: e})
	return nil
}

// Remove deletes the entry with the given ID and notifies subscribers.
func (s *HistoryStore) Remove(id string) error {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			delete(s.slotDays, entryKey(e))
			s.emit(HistoryEvent{Kind: EntryRemoved, Entry: e})
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrEntryNotFound)
}

func (s *HistoryStore) emit(ev HistoryEvent) {
	for _, fn := range s.subscribers {
		fn(ev)
	}
}

// All returns the entries sorted by recording time descending (the view
// order). The slice is a copy.
func (s *HistoryStore) All() []*domain.HistoryEntry {
	out := make([]*domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out
}

// DaySection is one calendar day's worth of history, newest entry first.
type DaySection struct {
	Day     string
	Entries []*domain.HistoryEntry
}

// ByDay groups the history into day sections, newest day first.
func (s *HistoryStore) ByDay() []DaySection {
	all := s.All()
	var sections []DaySection
	for _, e := range all {
		day := dateutil.DayKey(e.RecordedAt)
		if n := len(sections); n > 0 && sections[n-1].Day == day {
			sections[n-1].Entries = append(sections[n-1].Entries, e)
			continue
		}
		sections = append(sections, DaySection{Day: day, Entries: []*domain.HistoryEntry{e}})
	}
	return sections
}

// Len returns the number of entries.
func (s *HistoryStore) Len() int {
	return len(s.entries)
}

// LoadDocument replaces the store contents from a persisted document and
// rebuilds the slot-day index. Undecodable records are skipped.
func (s *HistoryStore) LoadDocument(doc gateway.Document) error {
	entries := make([]*domain.HistoryEntry, 0, len(doc.Meds))
	index := make(map[string]bool, len(doc.Meds))
	var firstErr error
	for i, raw := range doc.Meds {
		var e domain.HistoryEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("history record %d: %w", i, err)
			}
			continue
		}
		entries = append(entries, &e)
		index[entryKey(&e)] = true
	}
	s.entries = entries
	s.slotDays = index
	return firstErr
}

// Document serializes the store for the gateway.
func (s *HistoryStore) Document() (gateway.Document, error) {
	doc := gateway.EmptyDocument()
	for _, e := range s.entries {
		raw, err := json.Marshal(e)
		if err != nil {
			return gateway.Document{}, fmt.Errorf("encoding history entry %s: %w", e.ID, err)
		}
		doc.Meds = append(doc.Meds, raw)
	}
	return doc, nil
}
