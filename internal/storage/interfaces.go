// Package storage provides composable storage interfaces for the Journa
// system.
//
// Each entity kind gets its own small CRUD interface so that backends can be
// implemented independently and consumers declare only the stores they
// actually touch. All mutations are synchronous from the caller's viewpoint:
// a write must be visible to the next read within the same operation.
package storage

import (
	"context"
	"errors"

	"github.com/scrypster/journa/pkg/types"
)

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput indicates that the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// LogStore persists journal logs. List returns logs newest first.
type LogStore interface {
	List(ctx context.Context) ([]*types.Log, error)
	Get(ctx context.Context, id string) (*types.Log, error)
	Insert(ctx context.Context, log *types.Log) error
	Update(ctx context.Context, log *types.Log) error
	Delete(ctx context.Context, id string) error
}

// EventStore persists calendar entries. List returns events in date order.
type EventStore interface {
	List(ctx context.Context) ([]*types.Event, error)
	Get(ctx context.Context, id string) (*types.Event, error)
	Insert(ctx context.Context, event *types.Event) error
	Update(ctx context.Context, event *types.Event) error
	Delete(ctx context.Context, id string) error
}

// PersonStore persists people and their notes. List returns people sorted by
// name. Update replaces the person record including its notes.
type PersonStore interface {
	List(ctx context.Context) ([]*types.Person, error)
	Get(ctx context.Context, id string) (*types.Person, error)
	Insert(ctx context.Context, person *types.Person) error
	Update(ctx context.Context, person *types.Person) error
	Delete(ctx context.Context, id string) error
}

// GroupStore persists groups. List returns groups in creation order.
// Deleting a group does not cascade to member records.
type GroupStore interface {
	List(ctx context.Context) ([]*types.Group, error)
	Get(ctx context.Context, id string) (*types.Group, error)
	Insert(ctx context.Context, group *types.Group) error
	Update(ctx context.Context, group *types.Group) error
	Delete(ctx context.Context, id string) error
}

// SettingsStore persists key-value settings with upsert semantics.
// Get returns ErrNotFound for missing keys.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
