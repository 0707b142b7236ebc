package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileGateway persists each store kind as a pretty-printed JSON file in a
// single data directory. Writes go through a temp file and rename so a
// crash mid-save cannot leave a half-written document.
type FileGateway struct {
	dir string
}

// NewFileGateway creates the data directory if needed.
func NewFileGateway(dir string) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileGateway{dir: dir}, nil
}

func (g *FileGateway) path(kind Kind) string {
	return filepath.Join(g.dir, string(kind)+".json")
}

func (g *FileGateway) Load(_ context.Context, kind Kind) (Document, error) {
	if !validKind(kind) {
		return Document{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}

	data, err := os.ReadFile(g.path(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return EmptyDocument(), nil
		}
		return Document{}, fmt.Errorf("reading %s: %w", kind, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing %s: %w: %v", kind, ErrCorrupt, err)
	}
	if doc.Meds == nil {
		doc.Meds = []json.RawMessage{}
	}
	return doc, nil
}

func (g *FileGateway) Save(_ context.Context, kind Kind, doc Document) error {
	if !validKind(kind) {
		return fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	if doc.Meds == nil {
		doc.Meds = []json.RawMessage{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", kind, err)
	}

	tmp := g.path(kind) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", kind, err)
	}
	if err := os.Rename(tmp, g.path(kind)); err != nil {
		return fmt.Errorf("replacing %s: %w", kind, err)
	}
	return nil
}
