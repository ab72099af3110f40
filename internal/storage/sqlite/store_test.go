package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLogStoreCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seg := types.NewSegment("Maya signed the lease.", types.SegmentPerson)
	seg.ContactName = "Maya"
	entry := types.NewLog("raw journal text", []types.Segment{*seg})
	entry.ImportSource = types.ImportSourceMessages
	entry.ImportContact = "Maya"

	require.NoError(t, store.Logs.Insert(ctx, entry))

	got, err := store.Logs.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Title, got.Title)
	assert.Equal(t, "raw journal text", got.RawText)
	assert.Equal(t, types.ImportSourceMessages, got.ImportSource)
	require.Len(t, got.Segments, 1)
	assert.Equal(t, "Maya", got.Segments[0].ContactName)
	assert.Equal(t, types.SegmentPerson, got.Segments[0].Kind())

	got.Title = "Renamed"
	got.Segments[0].Removed = true
	require.NoError(t, store.Logs.Update(ctx, got))
	got, err = store.Logs.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.True(t, got.Segments[0].Removed)

	require.NoError(t, store.Logs.Delete(ctx, entry.ID))
	_, err = store.Logs.Get(ctx, entry.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.Logs.Delete(ctx, entry.ID), storage.ErrNotFound)
}

func TestLogStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		entry := types.NewLog("text", nil)
		entry.Title = title
		entry.Date = base.AddDate(0, 0, i)
		require.NoError(t, store.Logs.Insert(ctx, entry))
	}

	logs, err := store.Logs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "newest", logs[0].Title)
	assert.Equal(t, "oldest", logs[2].Title)
}

func TestEventStoreCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := types.NewEvent("Dinner friday", time.Date(2026, time.March, 13, 19, 0, 0, 0, time.UTC), types.EventDated)
	event.Recurrence = types.RecurrenceWeekly
	require.NoError(t, store.Events.Insert(ctx, event))

	got, err := store.Events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner friday", got.Title)
	assert.Equal(t, types.EventDated, got.Kind)
	assert.Equal(t, types.RecurrenceWeekly, got.Recurrence)
	assert.True(t, got.Date.Equal(event.Date))

	got.Title = "Dinner moved"
	require.NoError(t, store.Events.Update(ctx, got))

	require.NoError(t, store.Events.Delete(ctx, event.ID))
	_, err = store.Events.Get(ctx, event.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPersonStoreNotesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	person := types.NewPerson("Maya Chen", "contact-7")
	person.AppendNote(types.NewNote("Likes hiking.", "log-1"))
	person.AppendNote(types.NewNote("Moving to Denver.", ""))
	require.NoError(t, store.People.Insert(ctx, person))

	got, err := store.People.Get(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "contact-7", got.ContactID)
	assert.True(t, got.Active)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "Likes hiking.", got.Notes[0].Text)
	assert.Equal(t, "log-1", got.Notes[0].OriginLogID)
	assert.Equal(t, "Moving to Denver.", got.Notes[1].Text)

	// update replaces the note set wholesale
	got.Notes = got.Notes[1:]
	got.AppendNote(types.NewNote("Started a new job.", ""))
	require.NoError(t, store.People.Update(ctx, got))

	got, err = store.People.Get(ctx, person.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "Moving to Denver.", got.Notes[0].Text)
	assert.Equal(t, "Started a new job.", got.Notes[1].Text)

	// deleting the person cascades to notes
	require.NoError(t, store.People.Delete(ctx, person.ID))
	_, err = store.People.Get(ctx, person.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPersonStoreListSortedWithNotes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	zoe := types.NewPerson("Zoe Park", "")
	zoe.AppendNote(types.NewNote("Met at the gym.", ""))
	require.NoError(t, store.People.Insert(ctx, zoe))
	require.NoError(t, store.People.Insert(ctx, types.NewPerson("Maya Chen", "")))

	people, err := store.People.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Maya Chen", people[0].Name)
	assert.Equal(t, "Zoe Park", people[1].Name)
	require.Len(t, people[1].Notes, 1)
}

func TestGroupStoreMembershipRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := types.NewGroup("Climbing", "4A9EDB")
	group.AddLog("log-1")
	group.AddPerson("person-1")
	group.AddEvent("event-1")
	group.AddNote("note-1")
	require.NoError(t, store.Groups.Insert(ctx, group))

	got, err := store.Groups.Get(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "4A9EDB", got.ColorHex)
	assert.Equal(t, []string{"log-1"}, got.LogIDs)
	assert.Equal(t, []string{"person-1"}, got.PersonIDs)
	assert.Equal(t, []string{"event-1"}, got.EventIDs)
	assert.Equal(t, []string{"note-1"}, got.NoteIDs)

	got.RemoveLog("log-1")
	got.Name = "Climbing Crew"
	require.NoError(t, store.Groups.Update(ctx, got))

	got, err = store.Groups.Get(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LogIDs)
	assert.Equal(t, "Climbing Crew", got.Name)
}

func TestGroupStoreListCreationOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := types.NewGroup("First", "")
	second := types.NewGroup("Second", "")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, store.Groups.Insert(ctx, first))
	require.NoError(t, store.Groups.Insert(ctx, second))

	groups, err := store.Groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "First", groups[0].Name)
	assert.Equal(t, "Second", groups[1].Name)
}

func TestSettingsStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Settings.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Settings.Set(ctx, "bot_access_logs", "false"))
	value, err := store.Settings.Get(ctx, "bot_access_logs")
	require.NoError(t, err)
	assert.Equal(t, "false", value)

	// upsert overwrites
	require.NoError(t, store.Settings.Set(ctx, "bot_access_logs", "true"))
	value, err = store.Settings.Get(ctx, "bot_access_logs")
	require.NoError(t, err)
	assert.Equal(t, "true", value)
}
