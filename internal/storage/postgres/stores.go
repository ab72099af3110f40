package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// LogStore implements storage.LogStore using PostgreSQL.
type LogStore struct {
	db *sql.DB
}

// List returns all logs, newest first.
func (s *LogStore) List(ctx context.Context) ([]*types.Log, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, raw_text, date, segments, pinned, import_source, import_contact
		FROM logs ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.Log
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// Get retrieves a log by ID. Returns storage.ErrNotFound if it doesn't exist.
func (s *LogStore) Get(ctx context.Context, id string) (*types.Log, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, raw_text, date, segments, pinned, import_source, import_contact
		FROM logs WHERE id = $1`, id)
	log, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	return log, err
}

// Insert creates a new log.
func (s *LogStore) Insert(ctx context.Context, log *types.Log) error {
	if log == nil || log.ID == "" {
		return fmt.Errorf("%w: log ID is required", storage.ErrInvalidInput)
	}
	segments, err := json.Marshal(log.Segments)
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO logs (id, title, raw_text, date, segments, pinned, import_source, import_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.Title, log.RawText, log.Date, segments, log.Pinned,
		log.ImportSource, log.ImportContact)
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// Update replaces an existing log, segments included.
func (s *LogStore) Update(ctx context.Context, log *types.Log) error {
	if log == nil || log.ID == "" {
		return fmt.Errorf("%w: log ID is required", storage.ErrInvalidInput)
	}
	segments, err := json.Marshal(log.Segments)
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE logs SET title = $1, raw_text = $2, date = $3, segments = $4, pinned = $5,
			import_source = $6, import_contact = $7
		WHERE id = $8`,
		log.Title, log.RawText, log.Date, segments, log.Pinned,
		log.ImportSource, log.ImportContact, log.ID)
	if err != nil {
		return fmt.Errorf("failed to update log: %w", err)
	}
	return requireRow(result)
}

// Delete removes a log by ID.
func (s *LogStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	return requireRow(result)
}

// EventStore implements storage.EventStore using PostgreSQL.
type EventStore struct {
	db *sql.DB
}

// List returns all events in date order.
func (s *EventStore) List(ctx context.Context) ([]*types.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, date, kind, recurrence FROM events ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*types.Event
	for rows.Next() {
		var event types.Event
		if err := rows.Scan(&event.ID, &event.Title, &event.Date, &event.Kind, &event.Recurrence); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

// Get retrieves an event by ID.
func (s *EventStore) Get(ctx context.Context, id string) (*types.Event, error) {
	var event types.Event
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, date, kind, recurrence FROM events WHERE id = $1`, id).
		Scan(&event.ID, &event.Title, &event.Date, &event.Kind, &event.Recurrence)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Insert creates a new event.
func (s *EventStore) Insert(ctx context.Context, event *types.Event) error {
	if event == nil || event.ID == "" {
		return fmt.Errorf("%w: event ID is required", storage.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, date, kind, recurrence) VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.Title, event.Date, event.Kind, event.Recurrence)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Update replaces an existing event.
func (s *EventStore) Update(ctx context.Context, event *types.Event) error {
	if event == nil || event.ID == "" {
		return fmt.Errorf("%w: event ID is required", storage.ErrInvalidInput)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE events SET title = $1, date = $2, kind = $3, recurrence = $4 WHERE id = $5`,
		event.Title, event.Date, event.Kind, event.Recurrence, event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRow(result)
}

// Delete removes an event by ID.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRow(result)
}

// PersonStore implements storage.PersonStore using PostgreSQL.
type PersonStore struct {
	db *sql.DB
}

// List returns all people sorted by name, notes included.
func (s *PersonStore) List(ctx context.Context) ([]*types.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, contact_id, active, pinned, created_at, updated_at
		FROM people ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []*types.Person
	byID := make(map[string]*types.Person)
	for rows.Next() {
		var p types.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.ContactID, &p.Active, &p.Pinned,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		people = append(people, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	noteRows, err := s.db.QueryContext(ctx, `
		SELECT person_id, id, text, date, origin_log_id, locked, pinned
		FROM notes ORDER BY person_id, position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer noteRows.Close()

	for noteRows.Next() {
		var personID string
		var n types.Note
		if err := noteRows.Scan(&personID, &n.ID, &n.Text, &n.Date,
			&n.OriginLogID, &n.Locked, &n.Pinned); err != nil {
			return nil, err
		}
		if p, ok := byID[personID]; ok {
			p.Notes = append(p.Notes, n)
		}
	}
	return people, noteRows.Err()
}

// Get retrieves a person by ID, notes included.
func (s *PersonStore) Get(ctx context.Context, id string) (*types.Person, error) {
	var p types.Person
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, contact_id, active, pinned, created_at, updated_at
		FROM people WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.ContactID, &p.Active, &p.Pinned, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, date, origin_log_id, locked, pinned
		FROM notes WHERE person_id = $1 ORDER BY position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n types.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.Date, &n.OriginLogID, &n.Locked, &n.Pinned); err != nil {
			return nil, err
		}
		p.Notes = append(p.Notes, n)
	}
	return &p, rows.Err()
}

// Insert creates a new person with their notes.
func (s *PersonStore) Insert(ctx context.Context, person *types.Person) error {
	if person == nil || person.ID == "" {
		return fmt.Errorf("%w: person ID is required", storage.ErrInvalidInput)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO people (id, name, contact_id, active, pinned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		person.ID, person.Name, person.ContactID, person.Active, person.Pinned,
		person.CreatedAt, person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	if err := insertNotes(ctx, tx, person); err != nil {
		return err
	}
	return tx.Commit()
}

// Update replaces an existing person and their note list.
func (s *PersonStore) Update(ctx context.Context, person *types.Person) error {
	if person == nil || person.ID == "" {
		return fmt.Errorf("%w: person ID is required", storage.ErrInvalidInput)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE people SET name = $1, contact_id = $2, active = $3, pinned = $4, updated_at = $5
		WHERE id = $6`,
		person.Name, person.ContactID, person.Active, person.Pinned,
		person.UpdatedAt, person.ID)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE person_id = $1`, person.ID); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	if err := insertNotes(ctx, tx, person); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a person and, via cascade, their notes.
func (s *PersonStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return requireRow(result)
}

// GroupStore implements storage.GroupStore using PostgreSQL.
type GroupStore struct {
	db *sql.DB
}

// List returns all groups in creation order.
func (s *GroupStore) List(ctx context.Context) ([]*types.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color_hex, log_ids, event_ids, person_ids, note_ids, summary, created_at
		FROM "groups" ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*types.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// Get retrieves a group by ID.
func (s *GroupStore) Get(ctx context.Context, id string) (*types.Group, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, color_hex, log_ids, event_ids, person_ids, note_ids, summary, created_at
		FROM "groups" WHERE id = $1`, id)
	group, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	return group, err
}

// Insert creates a new group.
func (s *GroupStore) Insert(ctx context.Context, group *types.Group) error {
	if group == nil || group.ID == "" {
		return fmt.Errorf("%w: group ID is required", storage.ErrInvalidInput)
	}
	logIDs, eventIDs, personIDs, noteIDs, err := encodeMembers(group)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO "groups" (id, name, color_hex, log_ids, event_ids, person_ids, note_ids, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		group.ID, group.Name, group.ColorHex, logIDs, eventIDs, personIDs, noteIDs,
		group.Summary, group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// Update replaces an existing group, membership sets included.
func (s *GroupStore) Update(ctx context.Context, group *types.Group) error {
	if group == nil || group.ID == "" {
		return fmt.Errorf("%w: group ID is required", storage.ErrInvalidInput)
	}
	logIDs, eventIDs, personIDs, noteIDs, err := encodeMembers(group)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE "groups" SET name = $1, color_hex = $2, log_ids = $3, event_ids = $4,
			person_ids = $5, note_ids = $6, summary = $7
		WHERE id = $8`,
		group.Name, group.ColorHex, logIDs, eventIDs, personIDs, noteIDs,
		group.Summary, group.ID)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return requireRow(result)
}

// Delete removes a group by ID. Member records are untouched.
func (s *GroupStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "groups" WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireRow(result)
}

// SettingsStore implements storage.SettingsStore using PostgreSQL.
type SettingsStore struct {
	db *sql.DB
}

// Get retrieves a setting value by key.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}

// Set writes a key-value pair using upsert semantics.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*types.Log, error) {
	var log types.Log
	var segments []byte
	err := row.Scan(&log.ID, &log.Title, &log.RawText, &log.Date, &segments,
		&log.Pinned, &log.ImportSource, &log.ImportContact)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(segments, &log.Segments); err != nil {
		return nil, fmt.Errorf("failed to decode segments: %w", err)
	}
	return &log, nil
}

func scanGroup(row rowScanner) (*types.Group, error) {
	var group types.Group
	var logIDs, eventIDs, personIDs, noteIDs []byte
	err := row.Scan(&group.ID, &group.Name, &group.ColorHex, &logIDs, &eventIDs,
		&personIDs, &noteIDs, &group.Summary, &group.CreatedAt)
	if err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		raw  []byte
		dest *[]string
	}{
		{logIDs, &group.LogIDs},
		{eventIDs, &group.EventIDs},
		{personIDs, &group.PersonIDs},
		{noteIDs, &group.NoteIDs},
	} {
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return nil, fmt.Errorf("failed to decode member IDs: %w", err)
		}
	}
	return &group, nil
}

func encodeMembers(group *types.Group) ([]byte, []byte, []byte, []byte, error) {
	encode := func(ids []string) ([]byte, error) {
		if ids == nil {
			ids = []string{}
		}
		return json.Marshal(ids)
	}
	logIDs, err := encode(group.LogIDs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	eventIDs, err := encode(group.EventIDs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	personIDs, err := encode(group.PersonIDs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	noteIDs, err := encode(group.NoteIDs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return logIDs, eventIDs, personIDs, noteIDs, nil
}

func insertNotes(ctx context.Context, tx *sql.Tx, person *types.Person) error {
	for i, n := range person.Notes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, person_id, text, date, origin_log_id, locked, pinned, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			n.ID, person.ID, n.Text, n.Date, n.OriginLogID, n.Locked, n.Pinned, i)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}
	}
	return nil
}

// requireRow maps a zero-row result to storage.ErrNotFound.
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
