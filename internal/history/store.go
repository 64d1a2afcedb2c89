// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion outcomes to a local SQLite log so
// authors can audit what was converted, when, and with how many images and
// warnings. Implements: prd004-history (R1-R3);
//
//	docs/ARCHITECTURE § History.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/coursedoc/pkg/types"
)

const dbFile = "coursedoc.db"

// Entry is one logged conversion.
type Entry struct {
	ID          int64
	InputPath   string
	OutputPath  string
	Status      types.ConversionStatus
	Images      int
	Warnings    int
	Err         string
	ConvertedAt time.Time
}

// Store manages the conversion history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.Dir/coursedoc.db,
// creating the schema if it does not exist (R1.2).
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			output_path TEXT,
			status TEXT NOT NULL,
			images INTEGER NOT NULL DEFAULT 0,
			warnings INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one conversion outcome to the log.
func (s *Store) Record(e Entry) error {
	when := e.ConvertedAt
	if when.IsZero() {
		when = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO conversions (input_path, output_path, status, images, warnings, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.InputPath, e.OutputPath, string(e.Status), e.Images, e.Warnings, e.Err,
		when.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first. A non-positive
// limit falls back to the configured maximum.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.Query(
		`SELECT id, input_path, output_path, status, images, warnings, error, converted_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, convertedAt string
		var outputPath, errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.InputPath, &outputPath, &status,
			&e.Images, &e.Warnings, &errMsg, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.OutputPath = outputPath.String
		e.Err = errMsg.String
		e.Status = types.ConversionStatus(status)
		if t, err := time.Parse(time.RFC3339, convertedAt); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
