package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/journa/internal/config"
	"github.com/scrypster/journa/internal/directory"
	"github.com/scrypster/journa/internal/storage/sqlite"
	"github.com/scrypster/journa/pkg/types"
)

// fakeGenerator plays back scripted responses and records every call.
type fakeGenerator struct {
	responses []string
	errAt     int // call index that fails, -1 for never
	prompts   []string
	maxTokens []int
}

func newFakeGenerator(responses ...string) *fakeGenerator {
	return &fakeGenerator{responses: responses, errAt: -1}
}

func (f *fakeGenerator) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	idx := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	f.maxTokens = append(f.maxTokens, maxTokens)
	if idx == f.errAt {
		return "", errors.New("model unavailable")
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return "", nil
}

func (f *fakeGenerator) Model() string { return "fake" }

func newCategorizerFixture(t *testing.T, gen *fakeGenerator, deviceName string) (*Categorizer, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	dir := directory.New(store.People, deviceName)
	cat := NewCategorizer(gen, dir, store.Logs, store.Events, config.CategorizeConfig{
		People: true, Calendar: true, Logs: true,
	})
	cat.now = func() time.Time { return time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC) }
	return cat, store
}

func seedPerson(t *testing.T, store *sqlite.Store, name string) *types.Person {
	t.Helper()
	person := types.NewPerson(name, "")
	require.NoError(t, store.People.Insert(context.Background(), person))
	return person
}

func TestCategorizeJournal(t *testing.T) {
	gen := newFakeGenerator(
		`<person name="John">John got promoted.</person>
<person name="Spencer">Spencer went for a run.</person>`,
		`<date>Dinner with John this Friday.</date>`,
		`<log>Celebrated John's promotion.</log>`,
	)
	cat, store := newCategorizerFixture(t, gen, "Spencer's iPhone")
	ctx := context.Background()

	seedPerson(t, store, "John Smith")
	seedPerson(t, store, "Maya Chen")

	segments, err := cat.CategorizeJournal(ctx, "Big day. John got promoted, dinner Friday.")
	require.NoError(t, err)
	require.Len(t, segments, 4)

	// people, then dates, then summary
	assert.Equal(t, types.SegmentPerson, segments[0].Kind())
	assert.Equal(t, "John", segments[0].ContactName)
	assert.False(t, segments[0].Removed)
	assert.Equal(t, types.SegmentPerson, segments[1].Kind())
	assert.True(t, segments[1].Removed, "owner self-reference is filtered")
	assert.Equal(t, types.SegmentDate, segments[2].Kind())
	assert.Equal(t, types.SegmentLog, segments[3].Kind())

	require.Len(t, gen.prompts, 3)
	assert.Contains(t, gen.prompts[0], "Contact list: [John, Maya]")
	assert.Equal(t, []int{1024, 1024, 256}, gen.maxTokens)
}

func TestCategorizeJournalFailureDiscardsPartials(t *testing.T) {
	gen := newFakeGenerator(`<person name="John">John got promoted.</person>`)
	gen.errAt = 1 // date scan fails after a successful people scan
	cat, _ := newCategorizerFixture(t, gen, "")

	segments, err := cat.CategorizeJournal(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrCategorizationFailed)
	assert.Nil(t, segments)
}

func TestCategorizeJournalToggles(t *testing.T) {
	gen := newFakeGenerator(`<date>Friday.</date>`, `<log>A day.</log>`)
	cat, _ := newCategorizerFixture(t, gen, "")
	cat.cfg.People = false

	segments, err := cat.CategorizeJournal(context.Background(), "text")
	require.NoError(t, err)
	assert.Len(t, segments, 2)
	assert.Len(t, gen.prompts, 2, "disabled scans make no model call")
}

func TestCategorizeImport(t *testing.T) {
	gen := newFakeGenerator(`<log>Talked about the Denver move.</log>
<person name="Maya">Maya signed the lease.</person>
<date>Helping Maya move on June 1st.</date>`)
	cat, store := newCategorizerFixture(t, gen, "")
	seedPerson(t, store, "Maya Chen")

	segments, err := cat.CategorizeImport(context.Background(), "transcript", types.ImportSourceInstagram, "Maya", false)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	// combined parse keeps document order across tag kinds
	assert.Equal(t, types.SegmentLog, segments[0].Kind())
	assert.Equal(t, types.SegmentPerson, segments[1].Kind())
	assert.Equal(t, types.SegmentDate, segments[2].Kind())

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Instagram")
	assert.Contains(t, gen.prompts[0], "Maya's point of view")
	assert.Equal(t, []int{1500}, gen.maxTokens)
}

func TestCommitFansOutSegments(t *testing.T) {
	cat, store := newCategorizerFixture(t, newFakeGenerator(), "")
	ctx := context.Background()

	maya := seedPerson(t, store, "Maya Chen")
	seedPerson(t, store, "John Smith")
	seedPerson(t, store, "John Doe")

	logSeg := types.NewSegment("Caught up with everyone.", types.SegmentLog)
	dateSeg := types.NewSegment("Dinner this friday.", types.SegmentDate)
	mayaSeg := types.NewSegment("Maya signed the lease.", types.SegmentPerson)
	mayaSeg.ContactName = "Maya"
	johnSeg := types.NewSegment("John got promoted.", types.SegmentPerson)
	johnSeg.ContactName = "John"
	zoeSeg := types.NewSegment("Zoe was there too.", types.SegmentPerson)
	zoeSeg.ContactName = "Zoe"
	removedSeg := types.NewSegment("Ignore this date.", types.SegmentDate)
	removedSeg.Removed = true

	segments := []types.Segment{*logSeg, *dateSeg, *mayaSeg, *johnSeg, *zoeSeg, *removedSeg}

	entry, queue, err := cat.Commit(ctx, "raw journal text", segments, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Caught up with everyone.", entry.Title)
	assert.Len(t, entry.Segments, 6, "removed segments stay on the log for audit")

	// date and log segments became events
	events, err := store.Events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	titles := map[string]types.EventKind{}
	for _, event := range events {
		titles[event.Title] = event.Kind
	}
	assert.Equal(t, types.EventDated, titles["Dinner this friday."])
	assert.Equal(t, types.EventLogged, titles["Caught up with everyone."])

	// unambiguous person match wrote a note immediately
	got, err := store.People.Get(ctx, maya.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "Maya signed the lease.", got.Notes[0].Text)
	assert.Equal(t, entry.ID, got.Notes[0].OriginLogID)

	// ambiguous match queued, unmatched dropped
	assert.Equal(t, 1, queue.Len())
	pending, ok := queue.Current()
	require.True(t, ok)
	assert.Equal(t, "John got promoted.", pending.Segment.Text)
	assert.Len(t, pending.Candidates, 2)
}

func TestCommitWithoutLogSegmentUsesDefaultTitle(t *testing.T) {
	cat, store := newCategorizerFixture(t, newFakeGenerator(), "")
	ctx := context.Background()

	entry, queue, err := cat.Commit(ctx, "just some text", nil, types.ImportSourceMessages, "Maya")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultLogTitle, entry.Title)
	assert.Equal(t, 0, queue.Len())

	stored, err := store.Logs.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ImportSourceMessages, stored.ImportSource)
	assert.Equal(t, "Maya", stored.ImportContact)
}

func TestQuickSave(t *testing.T) {
	cat, store := newCategorizerFixture(t, newFakeGenerator(), "")
	ctx := context.Background()

	entry, err := cat.QuickSave(ctx, "raw text, no categorization", "")
	require.NoError(t, err)

	stored, err := store.Logs.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultLogTitle, stored.Title)
	assert.Empty(t, stored.Segments)
}

func TestQuickSaveTitle(t *testing.T) {
	cat, store := newCategorizerFixture(t, newFakeGenerator(), "")
	ctx := context.Background()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"custom title", "Morning Pages", "Morning Pages"},
		{"title is trimmed", "  Morning Pages  ", "Morning Pages"},
		{"blank title falls back", "   ", types.DefaultLogTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := cat.QuickSave(ctx, "raw text", tt.title)
			require.NoError(t, err)

			stored, err := store.Logs.Get(ctx, entry.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Title)
		})
	}
}

func TestRecategorizeReplacesSegmentsWholesale(t *testing.T) {
	gen := newFakeGenerator(
		`<person name="John">John got promoted.</person>`,
		`<date>Dinner friday.</date>`,
		`<log>A new summary.</log>`,
	)
	cat, store := newCategorizerFixture(t, gen, "")
	ctx := context.Background()
	seedPerson(t, store, "John Smith")

	old := types.NewSegment("Old summary.", types.SegmentLog)
	entry, _, err := cat.Commit(ctx, "raw text", []types.Segment{*old}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Old summary.", entry.Title)

	updated, err := cat.Recategorize(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, updated.Segments, 3)
	assert.Equal(t, "A new summary.", updated.Title)

	stored, err := store.Logs.Get(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, stored.Segments, 3)
	assert.Equal(t, "John got promoted.", stored.Segments[0].Text)
}
