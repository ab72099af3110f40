package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/journa/internal/storage/sqlite"
	"github.com/scrypster/journa/pkg/types"
)

func newTestDirectory(t *testing.T, deviceName string) (*Directory, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store.People, deviceName), store
}

func addPerson(t *testing.T, store *sqlite.Store, name string, active bool) *types.Person {
	t.Helper()
	person := types.NewPerson(name, "")
	person.Active = active
	require.NoError(t, store.People.Insert(context.Background(), person))
	return person
}

func TestIsLikelyNickname(t *testing.T) {
	tests := []struct {
		candidate string
		name      string
		want      bool
	}{
		{"john", "john", true},
		{"John", "john", true},
		{"john", "John Smith", true},       // word of full name
		{"smith", "John Smith", true},      // any word matches
		{"eliza", "elizabeth", true},       // candidate is a prefix, len >= 3
		{"elizabeth", "eliza", true},       // name is a prefix of candidate
		{"al", "alan", false},              // 2-char candidate never prefix-matches
		{"alan", "al", false},              // 2-char name never prefix-matches
		{"j", "john", false},               // candidate too short
		{"john", "j", false},               // name too short
		{"maya", "maria", false},           // shared prefix but neither contains the other
		{" john ", "John Smith", true},     // trimmed before matching
		{"johnathan", "john smith", false}, // prefix must be of the whole name
	}

	for _, tt := range tests {
		t.Run(tt.candidate+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyNickname(tt.candidate, tt.name))
		})
	}
}

func TestMatchContacts(t *testing.T) {
	dir, store := newTestDirectory(t, "")
	ctx := context.Background()

	addPerson(t, store, "John Smith", true)
	addPerson(t, store, "John Doe", true)
	addPerson(t, store, "Maya Chen", true)
	addPerson(t, store, "John Archer", false) // inactive, never matched

	tests := []struct {
		text string
		want []string
	}{
		{"john", []string{"John Doe", "John Smith"}},
		// "john smith" starts with the first name "john", so the nickname
		// rule matches every John
		{"john smith", []string{"John Doe", "John Smith"}},
		{"maya", []string{"Maya Chen"}},
		{"MAYA", []string{"Maya Chen"}},
		{"zoe", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			matches, err := dir.MatchContacts(ctx, tt.text)
			require.NoError(t, err)
			var names []string
			for _, person := range matches {
				names = append(names, person.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestOwnerNames(t *testing.T) {
	tests := []struct {
		device string
		want   []string
	}{
		{"Spencer's iPhone", []string{"spencer", "spencer"}},
		{"Ana Maria's iPad", []string{"ana maria", "ana", "maria"}},
		{"iPhone", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.device, func(t *testing.T) {
			assert.Equal(t, tt.want, OwnerNames(tt.device))
		})
	}
}

func TestFilterSelfReferences(t *testing.T) {
	dir, _ := newTestDirectory(t, "Spencer's iPhone")

	segments := []types.Segment{
		*types.NewSegment("Spencer went for a run.", types.SegmentPerson),
		*types.NewSegment("John told spencer about the party.", types.SegmentPerson),
		*types.NewSegment("John got a promotion.", types.SegmentPerson),
		*types.NewSegment("Meeting Spencer tomorrow.", types.SegmentDate),
		*types.NewSegment("Spencerville was lovely.", types.SegmentPerson),
	}

	filtered := dir.FilterSelfReferences(segments)
	require.Len(t, filtered, 5)
	assert.True(t, filtered[0].Removed, "owner name as subject")
	assert.True(t, filtered[1].Removed, "owner name mid-sentence, punctuation trimmed")
	assert.False(t, filtered[2].Removed, "unrelated person untouched")
	assert.False(t, filtered[3].Removed, "non-person segments never filtered")
	assert.False(t, filtered[4].Removed, "whole-word match only")

	// input slice is not mutated
	assert.False(t, segments[0].Removed)
}

func TestFilterSelfReferencesNoDeviceName(t *testing.T) {
	dir, _ := newTestDirectory(t, "")
	segments := []types.Segment{
		*types.NewSegment("Spencer went for a run.", types.SegmentPerson),
	}
	filtered := dir.FilterSelfReferences(segments)
	assert.False(t, filtered[0].Removed)
}

func TestActiveContactList(t *testing.T) {
	dir, store := newTestDirectory(t, "")
	ctx := context.Background()

	addPerson(t, store, "Maya Chen", true)
	addPerson(t, store, "John Smith", true)
	addPerson(t, store, "Zoe Park", false)

	list, err := dir.ActiveContactList(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John, Maya", list)
}

func TestSyncContacts(t *testing.T) {
	dir, store := newTestDirectory(t, "")
	ctx := context.Background()

	addPerson(t, store, "Maya Chen", true)

	added, err := dir.SyncContacts(ctx, []ContactRecord{
		{GivenName: "Maya", FamilyName: "Chen", ContactID: "c1"}, // already known
		{GivenName: "John", FamilyName: "Smith", ContactID: "c2"},
		{GivenName: "", FamilyName: "", ContactID: "c3"}, // empty name skipped
		{GivenName: "John", FamilyName: "Smith", ContactID: "c4"}, // dup within batch
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	people, err := store.People.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
}

func TestSavePersonNote(t *testing.T) {
	dir, store := newTestDirectory(t, "")
	ctx := context.Background()

	existing := addPerson(t, store, "Maya Chen", true)

	// matches existing person by case-insensitive name
	require.NoError(t, dir.SavePersonNote(ctx, "maya chen", "Got the job offer.", "", "log-1"))

	person, err := store.People.Get(ctx, existing.ID)
	require.NoError(t, err)
	require.Len(t, person.Notes, 1)
	assert.Equal(t, "Got the job offer.", person.Notes[0].Text)
	assert.Equal(t, "log-1", person.Notes[0].OriginLogID)

	// unknown name creates a new person carrying the note
	require.NoError(t, dir.SavePersonNote(ctx, "Zoe Park", "Met at the climbing gym.", "c9", ""))

	people, err := store.People.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	for _, p := range people {
		if p.Name == "Zoe Park" {
			assert.Equal(t, "c9", p.ContactID)
			require.Len(t, p.Notes, 1)
			assert.Equal(t, "Met at the climbing gym.", p.Notes[0].Text)
		}
	}
}

func TestSavePersonNoteMatchesByContactID(t *testing.T) {
	dir, store := newTestDirectory(t, "")
	ctx := context.Background()

	person := types.NewPerson("Maya Chen", "contact-7")
	require.NoError(t, store.People.Insert(ctx, person))

	require.NoError(t, dir.SavePersonNote(ctx, "M. Chen", "Back from Denver.", "contact-7", ""))

	got, err := store.People.Get(ctx, person.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)

	people, err := store.People.List(ctx)
	require.NoError(t, err)
	assert.Len(t, people, 1, "no duplicate person created")
}
