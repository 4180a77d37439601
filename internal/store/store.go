// Package store persists extraction results to a single-file SQLite
// database: one documents row per parsed image, entry rows fanned out into
// the table matching the document kind.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dsarkar/almirah/internal/record"
)

// Store wraps a SQLite handle. Batch lanes open one Store per document
// write and close it immediately, so two lanes never share a connection;
// SQLite's own locking serializes their interleaved writes.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and ensures the schema
// exists. Parent directories are created if they do not exist.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_type TEXT NOT NULL,
		year TEXT,
		office_location TEXT,
		confidence TEXT,
		extraction_notes TEXT,
		source_path TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS index1_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id INTEGER NOT NULL,
		serial_number TEXT,
		name_of_person TEXT,
		family_details TEXT,
		police_station TEXT,
		religion TEXT,
		occupation TEXT,
		interest_of_person TEXT,
		where_registered TEXT,
		book_1_volume TEXT,
		book_2_page TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (document_id) REFERENCES documents (id)
	);

	CREATE TABLE IF NOT EXISTS index2_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id INTEGER NOT NULL,
		serial_number TEXT,
		property_name TEXT,
		pargana_town_thana TEXT,
		location TEXT,
		nature_of_transaction TEXT,
		where_registered TEXT,
		book_1_volume TEXT,
		book_1_page TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (document_id) REFERENCES documents (id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveExtraction inserts one documents row for the payload plus one entry
// row per item in its entries array, all in a single transaction. Missing
// or null payload fields become NULL columns; no validation or coercion
// happens here beyond stringification - the registers are free text.
// Returns the new document id and the number of entry rows written.
func (s *Store) SaveExtraction(ctx context.Context, kind record.Kind, payload map[string]any, sourcePath string) (int64, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (document_type, year, office_location, confidence, extraction_notes, source_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		asText(payload["document_type"]),
		asText(payload["year"]),
		asText(payload["office_location"]),
		asText(payload["confidence"]),
		asText(payload["extraction_notes"]),
		sourcePath,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert document: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, 0, err
	}

	entries, _ := payload["entries"].([]any)
	if len(entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, entryInsertSQL(kind))
		if err != nil {
			return 0, 0, err
		}
		defer stmt.Close()

		for _, item := range entries {
			entry, _ := item.(map[string]any)
			args := make([]any, 0, len(kind.EntryFields)+1)
			args = append(args, docID)
			for _, field := range kind.EntryFields {
				args = append(args, asText(entry[field]))
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return 0, 0, fmt.Errorf("failed to insert %s entry: %w", kind.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return docID, len(entries), nil
}

func entryInsertSQL(kind record.Kind) string {
	cols := append([]string{"document_id"}, kind.EntryColumns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		kind.EntryTable, strings.Join(cols, ", "), placeholders)
}

// asText maps a decoded JSON value to a TEXT column value: strings pass
// through, nil and absent fields become NULL, anything else is stored in
// its printed form.
func asText(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// CountDocuments returns the total number of documents rows.
func (s *Store) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// CountEntries returns the number of entry rows for a document in the
// kind's entry table.
func (s *Store) CountEntries(ctx context.Context, kind record.Kind, docID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE document_id = ?", kind.EntryTable), docID,
	).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
