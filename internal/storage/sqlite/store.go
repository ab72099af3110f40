// Package sqlite implements the storage interfaces on SQLite using the
// CGO-free modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Schema creates all tables. Nested lists (segments, group member sets) are
// stored as JSON columns; person notes get their own table so individual
// notes stay addressable.
const Schema = `
CREATE TABLE IF NOT EXISTS logs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	raw_text TEXT NOT NULL,
	date TIMESTAMP NOT NULL,
	segments TEXT NOT NULL DEFAULT '[]',
	pinned INTEGER NOT NULL DEFAULT 0,
	import_source TEXT NOT NULL DEFAULT '',
	import_contact TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	date TIMESTAMP NOT NULL,
	kind TEXT NOT NULL,
	recurrence TEXT NOT NULL DEFAULT 'None'
);

CREATE TABLE IF NOT EXISTS people (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	contact_id TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	pinned INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	date TIMESTAMP NOT NULL,
	origin_log_id TEXT NOT NULL DEFAULT '',
	locked INTEGER NOT NULL DEFAULT 0,
	pinned INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_person ON notes(person_id, position);

CREATE TABLE IF NOT EXISTS groups (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color_hex TEXT NOT NULL,
	log_ids TEXT NOT NULL DEFAULT '[]',
	event_ids TEXT NOT NULL DEFAULT '[]',
	person_ids TEXT NOT NULL DEFAULT '[]',
	note_ids TEXT NOT NULL DEFAULT '[]',
	summary TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store owns the database connection and exposes the per-entity stores.
type Store struct {
	db       *sql.DB
	Logs     *LogStore
	Events   *EventStore
	People   *PersonStore
	Groups   *GroupStore
	Settings *SettingsStore
}

// Open opens a SQLite database, configures WAL mode, and creates the schema.
// Pass ":memory:" for an in-memory database (used by tests).
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors; WAL mode lets readers
	// proceed without blocking the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:       db,
		Logs:     &LogStore{db: db},
		Events:   &EventStore{db: db},
		People:   &PersonStore{db: db},
		Groups:   &GroupStore{db: db},
		Settings: &SettingsStore{db: db},
	}, nil
}

// DB exposes the underlying connection.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database connection.
func (s *Store) Close() error { return s.db.Close() }
