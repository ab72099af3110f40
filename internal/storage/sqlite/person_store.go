package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// PersonStore implements storage.PersonStore using SQLite. Notes live in a
// child table ordered by position; Update replaces the note list wholesale.
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
// Returns storage.ErrNotFound if the person doesn't exist.
func (s *PersonStore) Get(ctx context.Context, id string) (*types.Person, error) {
	var p types.Person
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, contact_id, active, pinned, created_at, updated_at
		FROM people WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.ContactID, &p.Active, &p.Pinned, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, date, origin_log_id, locked, pinned
		FROM notes WHERE person_id = ? ORDER BY position ASC`, id)
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
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
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
// Returns storage.ErrNotFound if the person doesn't exist.
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
		UPDATE people SET name = ?, contact_id = ?, active = ?, pinned = ?, updated_at = ?
		WHERE id = ?`,
		person.Name, person.ContactID, person.Active, person.Pinned,
		person.UpdatedAt, person.ID)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE person_id = ?`, person.ID); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	if err := insertNotes(ctx, tx, person); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a person and, via cascade, their notes.
// Returns storage.ErrNotFound if the person doesn't exist.
func (s *PersonStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return requireRow(result)
}

func insertNotes(ctx context.Context, tx *sql.Tx, person *types.Person) error {
	for i, n := range person.Notes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, person_id, text, date, origin_log_id, locked, pinned, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, person.ID, n.Text, n.Date, n.OriginLogID, n.Locked, n.Pinned, i)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}
	}
	return nil
}

var _ storage.PersonStore = (*PersonStore)(nil)
