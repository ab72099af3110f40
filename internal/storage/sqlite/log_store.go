package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// LogStore implements storage.LogStore using SQLite.
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
		FROM logs WHERE id = ?`, id)
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.Title, log.RawText, log.Date, string(segments), log.Pinned,
		log.ImportSource, log.ImportContact)
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// Update replaces an existing log, segments included.
// Returns storage.ErrNotFound if the log doesn't exist.
func (s *LogStore) Update(ctx context.Context, log *types.Log) error {
	if log == nil || log.ID == "" {
		return fmt.Errorf("%w: log ID is required", storage.ErrInvalidInput)
	}
	segments, err := json.Marshal(log.Segments)
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE logs SET title = ?, raw_text = ?, date = ?, segments = ?, pinned = ?,
			import_source = ?, import_contact = ?
		WHERE id = ?`,
		log.Title, log.RawText, log.Date, string(segments), log.Pinned,
		log.ImportSource, log.ImportContact, log.ID)
	if err != nil {
		return fmt.Errorf("failed to update log: %w", err)
	}
	return requireRow(result)
}

// Delete removes a log by ID. Returns storage.ErrNotFound if it doesn't exist.
func (s *LogStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	return requireRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*types.Log, error) {
	var log types.Log
	var segments string
	err := row.Scan(&log.ID, &log.Title, &log.RawText, &log.Date, &segments,
		&log.Pinned, &log.ImportSource, &log.ImportContact)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(segments), &log.Segments); err != nil {
		return nil, fmt.Errorf("failed to decode segments: %w", err)
	}
	return &log, nil
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

// Compile-time assertion.
var _ storage.LogStore = (*LogStore)(nil)
