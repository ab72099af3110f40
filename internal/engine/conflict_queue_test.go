package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/journa/internal/directory"
	"github.com/scrypster/journa/internal/storage/sqlite"
	"github.com/scrypster/journa/pkg/types"
)

func newQueueFixture(t *testing.T) (*sqlite.Store, *directory.Directory) {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, directory.New(store.People, "")
}

func TestConflictQueueResolveWritesOneNotePerChoice(t *testing.T) {
	store, dir := newQueueFixture(t)
	ctx := context.Background()

	johnS := types.NewPerson("John Smith", "")
	johnD := types.NewPerson("John Doe", "")
	johnA := types.NewPerson("John Archer", "")
	for _, p := range []*types.Person{johnS, johnD, johnA} {
		require.NoError(t, store.People.Insert(ctx, p))
	}
	candidates := []*types.Person{johnS, johnD, johnA}

	drained := false
	queue := NewConflictQueue(dir, "log-1", func() { drained = true })
	assert.Equal(t, QueueIdle, queue.State())

	queue.Enqueue(*types.NewSegment("John seemed tired.", types.SegmentPerson), candidates)
	queue.Enqueue(*types.NewSegment("John got promoted.", types.SegmentPerson), candidates)
	queue.Enqueue(*types.NewSegment("John is moving.", types.SegmentPerson), candidates)
	assert.Equal(t, QueueAwaitingChoice, queue.State())
	assert.Equal(t, 3, queue.Len())

	// resolve in order: Smith, Doe, Smith again
	require.NoError(t, queue.Resolve(ctx, johnS))
	require.NoError(t, queue.Resolve(ctx, johnD))
	assert.False(t, drained)
	require.NoError(t, queue.Resolve(ctx, johnS))

	assert.Equal(t, QueueIdle, queue.State())
	assert.Equal(t, 0, queue.Len())
	assert.True(t, drained)

	noteTexts := func(id string) []string {
		person, err := store.People.Get(ctx, id)
		require.NoError(t, err)
		var texts []string
		for _, n := range person.Notes {
			texts = append(texts, n.Text)
			assert.Equal(t, "log-1", n.OriginLogID)
		}
		return texts
	}
	assert.Equal(t, []string{"John seemed tired.", "John is moving."}, noteTexts(johnS.ID))
	assert.Equal(t, []string{"John got promoted."}, noteTexts(johnD.ID))
	assert.Empty(t, noteTexts(johnA.ID), "non-chosen candidate gets no note")
}

func TestConflictQueueSkipWritesNothing(t *testing.T) {
	store, dir := newQueueFixture(t)
	ctx := context.Background()

	john := types.NewPerson("John Smith", "")
	require.NoError(t, store.People.Insert(ctx, john))

	queue := NewConflictQueue(dir, "log-1", nil)
	queue.Enqueue(*types.NewSegment("John called.", types.SegmentPerson), []*types.Person{john, john})

	queue.Skip()
	assert.Equal(t, QueueIdle, queue.State())

	person, err := store.People.Get(ctx, john.ID)
	require.NoError(t, err)
	assert.Empty(t, person.Notes)
}

func TestConflictQueueCurrentAndEmptyOps(t *testing.T) {
	_, dir := newQueueFixture(t)
	queue := NewConflictQueue(dir, "", nil)

	_, ok := queue.Current()
	assert.False(t, ok)

	// resolve and skip on an empty queue are no-ops
	require.NoError(t, queue.Resolve(context.Background(), types.NewPerson("X Y", "")))
	queue.Skip()
	assert.Equal(t, QueueIdle, queue.State())

	john := types.NewPerson("John Smith", "")
	segment := types.NewSegment("John called.", types.SegmentPerson)
	queue.Enqueue(*segment, []*types.Person{john, john})

	pending, ok := queue.Current()
	require.True(t, ok)
	assert.Equal(t, segment.Text, pending.Segment.Text)
	assert.Len(t, pending.Candidates, 2)
}
