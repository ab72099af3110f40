package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// GroupStore implements storage.GroupStore using SQLite. Member ID sets are
// stored as JSON arrays; idempotence is enforced by the Group type itself.
type GroupStore struct {
	db *sql.DB
}

// List returns all groups in creation order.
func (s *GroupStore) List(ctx context.Context) ([]*types.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color_hex, log_ids, event_ids, person_ids, note_ids, summary, created_at
		FROM groups ORDER BY created_at ASC`)
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

// Get retrieves a group by ID. Returns storage.ErrNotFound if it doesn't exist.
func (s *GroupStore) Get(ctx context.Context, id string) (*types.Group, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, color_hex, log_ids, event_ids, person_ids, note_ids, summary, created_at
		FROM groups WHERE id = ?`, id)
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
		INSERT INTO groups (id, name, color_hex, log_ids, event_ids, person_ids, note_ids, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.ColorHex, logIDs, eventIDs, personIDs, noteIDs,
		group.Summary, group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// Update replaces an existing group, membership sets included.
// Returns storage.ErrNotFound if the group doesn't exist.
func (s *GroupStore) Update(ctx context.Context, group *types.Group) error {
	if group == nil || group.ID == "" {
		return fmt.Errorf("%w: group ID is required", storage.ErrInvalidInput)
	}
	logIDs, eventIDs, personIDs, noteIDs, err := encodeMembers(group)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE groups SET name = ?, color_hex = ?, log_ids = ?, event_ids = ?,
			person_ids = ?, note_ids = ?, summary = ?
		WHERE id = ?`,
		group.Name, group.ColorHex, logIDs, eventIDs, personIDs, noteIDs,
		group.Summary, group.ID)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return requireRow(result)
}

// Delete removes a group by ID. Member records are untouched.
// Returns storage.ErrNotFound if the group doesn't exist.
func (s *GroupStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireRow(result)
}

func encodeMembers(group *types.Group) (string, string, string, string, error) {
	encode := func(ids []string) (string, error) {
		if ids == nil {
			ids = []string{}
		}
		data, err := json.Marshal(ids)
		if err != nil {
			return "", fmt.Errorf("failed to encode member IDs: %w", err)
		}
		return string(data), nil
	}
	logIDs, err := encode(group.LogIDs)
	if err != nil {
		return "", "", "", "", err
	}
	eventIDs, err := encode(group.EventIDs)
	if err != nil {
		return "", "", "", "", err
	}
	personIDs, err := encode(group.PersonIDs)
	if err != nil {
		return "", "", "", "", err
	}
	noteIDs, err := encode(group.NoteIDs)
	if err != nil {
		return "", "", "", "", err
	}
	return logIDs, eventIDs, personIDs, noteIDs, nil
}

func scanGroup(row rowScanner) (*types.Group, error) {
	var group types.Group
	var logIDs, eventIDs, personIDs, noteIDs string
	err := row.Scan(&group.ID, &group.Name, &group.ColorHex, &logIDs, &eventIDs,
		&personIDs, &noteIDs, &group.Summary, &group.CreatedAt)
	if err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		raw  string
		dest *[]string
	}{
		{logIDs, &group.LogIDs},
		{eventIDs, &group.EventIDs},
		{personIDs, &group.PersonIDs},
		{noteIDs, &group.NoteIDs},
	} {
		if err := json.Unmarshal([]byte(pair.raw), pair.dest); err != nil {
			return nil, fmt.Errorf("failed to decode member IDs: %w", err)
		}
	}
	return &group, nil
}

var _ storage.GroupStore = (*GroupStore)(nil)
