package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scrypster/journa/internal/storage"
)

// SettingsStore implements storage.SettingsStore using SQLite.
type SettingsStore struct {
	db *sql.DB
}

// Get retrieves a setting value by key.
// Returns storage.ErrNotFound if the key does not exist.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
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
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}

var _ storage.SettingsStore = (*SettingsStore)(nil)
