// Package db provides the SQLite persistence layer for todotrack.
//
// A single database file holds two tables: tasks and completions. Every
// connection runs the embedded schema on open, so opening a store is always
// safe against a fresh or existing file.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema/*.sql
var schemaFS embed.FS

// timeLayout is the storage format for timestamps: local time at second
// precision. Lexicographic order matches chronological order, which the
// streak and summary queries rely on.
const timeLayout = "2006-01-02T15:04:05"

// DB wraps the tracker database connection.
type DB struct {
	db   *sql.DB
	path string

	// now is the clock used for created_at and completed_at stamps.
	// Tests replace it via SetNow.
	now func() time.Time
}

// Open opens the tracker database at the given path, creating the parent
// directory if it doesn't exist, and ensures the schema is present.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	return open(path)
}

// OpenInMemory opens an in-memory database. Each call creates a new
// isolated database, ideal for testing.
func OpenInMemory() (*DB, error) {
	return open(":memory:")
}

func open(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Pin the pool to one connection: the pragmas below are per-connection,
	// and a second connection to :memory: would see a fresh, empty database.
	sqlDB.SetMaxOpenConns(1)

	// Cascade deletes require foreign keys on for every connection.
	if _, err := sqlDB.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	d := &DB{db: sqlDB, path: dsn, now: time.Now}
	if err := d.init(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// init applies the embedded schema. All statements are CREATE IF NOT
// EXISTS, so this is idempotent.
func (d *DB) init() error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	for _, e := range entries {
		content, err := schemaFS.ReadFile("schema/" + e.Name())
		if err != nil {
			return fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if _, err := d.db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply schema %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database path.
func (d *DB) Path() string {
	return d.path
}

// SetNow overrides the store's clock. Intended for tests.
func (d *DB) SetNow(now func() time.Time) {
	d.now = now
}

// Exec executes a statement without returning rows.
func (d *DB) Exec(query string, args ...any) (sql.Result, error) {
	return d.db.Exec(query, args...)
}

// Query executes a query that returns rows.
func (d *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return d.db.Query(query, args...)
}

// QueryRow executes a query that returns at most one row.
func (d *DB) QueryRow(query string, args ...any) *sql.Row {
	return d.db.QueryRow(query, args...)
}
