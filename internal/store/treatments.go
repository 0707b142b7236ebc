// Package store holds the two source-of-truth repositories: treatments
// and history. Both are in-memory, mutated from a single control thread
// (the engine serializes access), and round-trip through the gateway's
// document shape.
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/alexanderramin/dosetrack/internal/gateway"
)

// TreatmentStore owns the set of treatment definitions.
type TreatmentStore struct {
	items []*domain.Treatment
}

func NewTreatmentStore() *TreatmentStore {
	return &TreatmentStore{}
}

// Add validates and inserts a treatment. Name uniqueness is checked
// case-insensitively before any mutation, so a rejected add leaves the
// store untouched.
func (s *TreatmentStore) Add(t *domain.Treatment) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if s.Lookup(t.Name) != nil {
		return fmt.Errorf("%q: %w", t.Name, domain.ErrDuplicateName)
	}
	s.items = append(s.items, t)
	return nil
}

// Get returns the treatment with exactly this name, or nil. Exact-case
// matching is what the inventory ledger uses.
func (s *TreatmentStore) Get(name string) *domain.Treatment {
	for _, t := range s.items {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Lookup returns the treatment whose name matches case-insensitively,
// or nil.
func (s *TreatmentStore) Lookup(name string) *domain.Treatment {
	for _, t := range s.items {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// Update replaces the stored treatment with the same name. Renames go
// through Remove+Add so uniqueness stays enforced.
func (s *TreatmentStore) Update(t *domain.Treatment) error {
	if err := t.Validate(); err != nil {
		return err
	}
	for i, cur := range s.items {
		if cur.Name == t.Name {
			s.items[i] = t
			return nil
		}
	}
	return fmt.Errorf("%q: %w", t.Name, ErrTreatmentNotFound)
}

// Remove deletes the treatment with exactly this name. Removing a name
// not present is a no-op.
func (s *TreatmentStore) Remove(name string) {
	for i, t := range s.items {
		if t.Name == name {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// All returns the treatments sorted alphabetically by name. The returned
// slice is a copy; the pointed-to treatments are live.
func (s *TreatmentStore) All() []*domain.Treatment {
	out := make([]*domain.Treatment, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Len returns the number of treatments.
func (s *TreatmentStore) Len() int {
	return len(s.items)
}

// LoadDocument replaces the store contents from a persisted document.
// Records that fail to decode are skipped; the rest still load.
func (s *TreatmentStore) LoadDocument(doc gateway.Document) error {
	items := make([]*domain.Treatment, 0, len(doc.Meds))
	var firstErr error
	for i, raw := range doc.Meds {
		var t domain.Treatment
		if err := json.Unmarshal(raw, &t); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("treatment record %d: %w", i, err)
			}
			continue
		}
		t.Normalize()
		items = append(items, &t)
	}
	s.items = items
	return firstErr
}

// Document serializes the store for the gateway.
func (s *TreatmentStore) Document() (gateway.Document, error) {
	doc := gateway.EmptyDocument()
	for _, t := range s.items {
		raw, err := json.Marshal(t)
		if err != nil {
			return gateway.Document{}, fmt.Errorf("encoding treatment %q: %w", t.Name, err)
		}
		doc.Meds = append(doc.Meds, raw)
	}
	return doc, nil
}
