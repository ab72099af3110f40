// Package postgres implements the storage interfaces on PostgreSQL via lib/pq.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Schema creates all tables. Mirrors the SQLite schema with JSONB member
// sets. "groups" is quoted everywhere since GROUPS is a SQL keyword.
const Schema = `
CREATE TABLE IF NOT EXISTS logs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	raw_text TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL,
	segments JSONB NOT NULL DEFAULT '[]',
	pinned BOOLEAN NOT NULL DEFAULT FALSE,
	import_source TEXT NOT NULL DEFAULT '',
	import_contact TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL,
	kind TEXT NOT NULL,
	recurrence TEXT NOT NULL DEFAULT 'None'
);

CREATE TABLE IF NOT EXISTS people (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	contact_id TEXT NOT NULL DEFAULT '',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	pinned BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL,
	origin_log_id TEXT NOT NULL DEFAULT '',
	locked BOOLEAN NOT NULL DEFAULT FALSE,
	pinned BOOLEAN NOT NULL DEFAULT FALSE,
	position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_person ON notes(person_id, position);

CREATE TABLE IF NOT EXISTS "groups" (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color_hex TEXT NOT NULL,
	log_ids JSONB NOT NULL DEFAULT '[]',
	event_ids JSONB NOT NULL DEFAULT '[]',
	person_ids JSONB NOT NULL DEFAULT '[]',
	note_ids JSONB NOT NULL DEFAULT '[]',
	summary TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
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

// Open connects to PostgreSQL with the given DSN and ensures the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
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
