// Package services holds thin domain services layered over the storage
// interfaces.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/scrypster/journa/internal/storage"
)

const (
	keyAccessLogs     = "bot_access_logs"
	keyAccessCalendar = "bot_access_calendar"
	keyAccessPeople   = "bot_access_people"
	keyGroupPrefix    = "bot_access_group_"
)

// AccessFlags controls which data categories the assistant may read when
// building its command context.
type AccessFlags struct {
	Logs     bool
	Calendar bool
	People   bool
}

// SettingsService manages persisted user settings, in particular the
// assistant data-access switches. Category access defaults to enabled;
// per-group content access defaults to disabled.
type SettingsService struct {
	store storage.SettingsStore
}

// NewSettingsService creates a settings service over the given store.
func NewSettingsService(store storage.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// AccessFlags returns the category access switches.
func (s *SettingsService) AccessFlags(ctx context.Context) (AccessFlags, error) {
	logs, err := s.boolSetting(ctx, keyAccessLogs, true)
	if err != nil {
		return AccessFlags{}, err
	}
	calendar, err := s.boolSetting(ctx, keyAccessCalendar, true)
	if err != nil {
		return AccessFlags{}, err
	}
	people, err := s.boolSetting(ctx, keyAccessPeople, true)
	if err != nil {
		return AccessFlags{}, err
	}
	return AccessFlags{Logs: logs, Calendar: calendar, People: people}, nil
}

// SetAccessFlags persists the category access switches.
func (s *SettingsService) SetAccessFlags(ctx context.Context, flags AccessFlags) error {
	if err := s.setBool(ctx, keyAccessLogs, flags.Logs); err != nil {
		return err
	}
	if err := s.setBool(ctx, keyAccessCalendar, flags.Calendar); err != nil {
		return err
	}
	return s.setBool(ctx, keyAccessPeople, flags.People)
}

// GroupAccess reports whether the assistant may read the contents of the
// given group. Groups themselves are always listed; only content access is
// gated, and it is off until explicitly enabled.
func (s *SettingsService) GroupAccess(ctx context.Context, groupID string) (bool, error) {
	return s.boolSetting(ctx, keyGroupPrefix+groupID, false)
}

// SetGroupAccess persists the content-access switch for the given group.
func (s *SettingsService) SetGroupAccess(ctx context.Context, groupID string, allowed bool) error {
	return s.setBool(ctx, keyGroupPrefix+groupID, allowed)
}

func (s *SettingsService) boolSetting(ctx context.Context, key string, defaultValue bool) (bool, error) {
	value, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return defaultValue, nil
	}
	if err != nil {
		return false, fmt.Errorf("settings: get %s: %w", key, err)
	}
	return value == "true", nil
}

func (s *SettingsService) setBool(ctx context.Context, key string, value bool) error {
	str := "false"
	if value {
		str = "true"
	}
	if err := s.store.Set(ctx, key, str); err != nil {
		return fmt.Errorf("settings: set %s: %w", key, err)
	}
	return nil
}
