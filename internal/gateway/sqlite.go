package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteGateway stores the same logical documents in a SQLite database,
// one row per record with the JSON payload in a text column. It is a
// drop-in alternative to the file backend for installations that want a
// single data file with transactional saves.
type SQLiteGateway struct {
	db *sql.DB
}

// OpenSQLiteGateway opens (or creates) the database at path and applies
// the schema. Path ":memory:" opens an in-memory database.
func OpenSQLiteGateway(path string) (*SQLiteGateway, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS records (
		kind    TEXT    NOT NULL CHECK(kind IN ('treatments','history')),
		seq     INTEGER NOT NULL,
		payload TEXT    NOT NULL,
		PRIMARY KEY (kind, seq)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteGateway{db: db}, nil
}

// Close releases the underlying database handle.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

func (g *SQLiteGateway) Load(ctx context.Context, kind Kind) (Document, error) {
	if !validKind(kind) {
		return Document{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}

	rows, err := g.db.QueryContext(ctx,
		`SELECT payload FROM records WHERE kind = ? ORDER BY seq`, string(kind))
	if err != nil {
		return Document{}, fmt.Errorf("loading %s: %w", kind, err)
	}
	defer rows.Close()

	doc := EmptyDocument()
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return Document{}, fmt.Errorf("scanning %s record: %w", kind, err)
		}
		if !json.Valid([]byte(payload)) {
			return Document{}, fmt.Errorf("%s record: %w", kind, ErrCorrupt)
		}
		doc.Meds = append(doc.Meds, json.RawMessage(payload))
	}
	if err := rows.Err(); err != nil {
		return Document{}, fmt.Errorf("iterating %s records: %w", kind, err)
	}
	return doc, nil
}

// Save replaces the full record list for the kind in one transaction.
func (g *SQLiteGateway) Save(ctx context.Context, kind Kind, doc Document) error {
	if !validKind(kind) {
		return fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("clearing %s records: %w", kind, err)
	}
	for i, raw := range doc.Meds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (kind, seq, payload) VALUES (?, ?, ?)`,
			string(kind), i, string(raw)); err != nil {
			return fmt.Errorf("inserting %s record %d: %w", kind, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s save: %w", kind, err)
	}
	return nil
}
