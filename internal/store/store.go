package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store wraps the sqlite database holding CVE records, score facets,
// news articles, inventory, and affected products.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path with foreign keys
// enabled. Pass ":memory:" for an in-process database.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_fk=1", path)
	if strings.Contains(path, ":memory:") {
		dsn = "file::memory:?cache=shared&_fk=1"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if strings.Contains(path, ":memory:") {
		// Shared-cache memory databases disappear when the last
		// connection closes; keep a single connection alive.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Bootstrap creates the schema if it does not exist. Safe to run on every
// startup.
func (s *Store) Bootstrap() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// nullFloat converts a nullable column to an optional float.
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
