// Package gateway is the opaque load/save boundary for the stores. A
// Document is the logical record list for one store kind; how a backend
// lays it out on disk is its own business.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
)

// Kind names one persisted store.
type Kind string

const (
	KindTreatments Kind = "treatments"
	KindHistory    Kind = "history"
)

// Document is the JSON-shaped record list exchanged with a backend. The
// empty document {"meds":[]} is the bootstrap shape for a first run.
type Document struct {
	Meds []json.RawMessage `json:"meds"`
}

// EmptyDocument returns the bootstrap document.
func EmptyDocument() Document {
	return Document{Meds: []json.RawMessage{}}
}

var (
	// ErrUnknownKind indicates a store kind no backend recognizes.
	ErrUnknownKind = errors.New("unknown store kind")

	// ErrCorrupt indicates a persisted document that could not be parsed.
	// Callers degrade to an empty store rather than aborting.
	ErrCorrupt = errors.New("corrupt persisted document")
)

// Gateway loads and saves store documents. Load must return the bootstrap
// document, not an error, when nothing has been persisted yet.
type Gateway interface {
	Load(ctx context.Context, kind Kind) (Document, error)
	Save(ctx context.Context, kind Kind, doc Document) error
}

func validKind(k Kind) bool {
	return k == KindTreatments || k == KindHistory
}
