package gateway

import (
	"context"
	"encoding/json"
	"fmt"
)

// MemoryGateway keeps documents in process memory. Used by tests and as a
// null backend when persistence is disabled.
type MemoryGateway struct {
	docs map[Kind]Document

	// LoadErr and SaveErr, when set, are returned by every call. Tests
	// use them to exercise the degrade-to-empty and save-failure paths.
	LoadErr error
	SaveErr error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{docs: make(map[Kind]Document)}
}

func (g *MemoryGateway) Load(_ context.Context, kind Kind) (Document, error) {
	if g.LoadErr != nil {
		return Document{}, g.LoadErr
	}
	if !validKind(kind) {
		return Document{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	doc, ok := g.docs[kind]
	if !ok {
		return EmptyDocument(), nil
	}
	return doc, nil
}

func (g *MemoryGateway) Save(_ context.Context, kind Kind, doc Document) error {
	if g.SaveErr != nil {
		return g.SaveErr
	}
	if !validKind(kind) {
		return fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	// Deep-copy the raw records so later caller mutations cannot reach
	// the stored document.
	cp := Document{Meds: make([]json.RawMessage, len(doc.Meds))}
	for i, m := range doc.Meds {
		cp.Meds[i] = append(json.RawMessage(nil), m...)
	}
	g.docs[kind] = cp
	return nil
}
