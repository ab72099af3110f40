package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// EventStore implements storage.EventStore using SQLite.
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

// Get retrieves an event by ID. Returns storage.ErrNotFound if it doesn't exist.
func (s *EventStore) Get(ctx context.Context, id string) (*types.Event, error) {
	var event types.Event
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, date, kind, recurrence FROM events WHERE id = ?`, id).
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
		INSERT INTO events (id, title, date, kind, recurrence) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Date, event.Kind, event.Recurrence)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Update replaces an existing event. Returns storage.ErrNotFound if it doesn't exist.
func (s *EventStore) Update(ctx context.Context, event *types.Event) error {
	if event == nil || event.ID == "" {
		return fmt.Errorf("%w: event ID is required", storage.ErrInvalidInput)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE events SET title = ?, date = ?, kind = ?, recurrence = ? WHERE id = ?`,
		event.Title, event.Date, event.Kind, event.Recurrence, event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRow(result)
}

// Delete removes an event by ID. Returns storage.ErrNotFound if it doesn't exist.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRow(result)
}

var _ storage.EventStore = (*EventStore)(nil)
