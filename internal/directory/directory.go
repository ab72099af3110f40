// Package directory resolves names appearing in extracted segments to known
// people. It owns nickname matching, device-owner self-reference filtering,
// contact sync, and note attribution against the person store.
package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// ContactRecord is one entry from an external contact source used for sync.
type ContactRecord struct {
	GivenName  string
	FamilyName string
	ContactID  string
}

// Directory matches segment text against the person store.
type Directory struct {
	people     storage.PersonStore
	ownerNames []string
}

// New creates a Directory over the given person store. deviceName is the
// device display name, e.g. "Spencer's iPhone"; owner candidate names are
// derived from it for self-reference filtering.
func New(people storage.PersonStore, deviceName string) *Directory {
	return &Directory{
		people:     people,
		ownerNames: OwnerNames(deviceName),
	}
}

// IsLikelyNickname reports whether candidate plausibly refers to name.
// Both must be at least two characters after trimming; a candidate matches
// when it equals the name, is a word of it, or one is a prefix of the other
// with at least three characters of overlap anchor.
func IsLikelyNickname(candidate, name string) bool {
	candidate = strings.TrimSpace(strings.ToLower(candidate))
	name = strings.TrimSpace(strings.ToLower(name))
	if len(candidate) < 2 || len(name) < 2 {
		return false
	}
	if candidate == name {
		return true
	}
	for _, word := range strings.Split(name, " ") {
		if word == candidate {
			return true
		}
	}
	if len(candidate) >= 3 && strings.HasPrefix(name, candidate) {
		return true
	}
	if len(name) >= 3 && strings.HasPrefix(candidate, name) {
		return true
	}
	return false
}

// MatchContacts returns the active people whose name plausibly matches the
// given text: an exact first-name or full-name match, or a nickname match
// against the first name.
func (d *Directory) MatchContacts(ctx context.Context, text string) ([]*types.Person, error) {
	people, err := d.people.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory: list people: %w", err)
	}

	textLower := strings.ToLower(text)
	var matches []*types.Person
	for _, person := range people {
		if !person.Active {
			continue
		}
		firstName := strings.ToLower(person.FirstName())
		fullName := strings.ToLower(person.Name)
		if textLower == firstName || textLower == fullName || IsLikelyNickname(textLower, firstName) {
			matches = append(matches, person)
		}
	}
	return matches, nil
}

// OwnerNames derives the owner's candidate names from a device display name.
// The cleaned name plus each of its words are candidates; an empty or
// unhelpful device name yields no candidates.
func OwnerNames(deviceName string) []string {
	cleaned := strings.ToLower(deviceName)
	for _, suffix := range []string{"'s iphone", "'s ipad", "s iphone", "iphone", "ipad"} {
		cleaned = strings.ReplaceAll(cleaned, suffix, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	names := []string{cleaned}
	names = append(names, strings.Split(cleaned, " ")...)
	return names
}

// FilterSelfReferences marks person segments that refer to the device owner
// as removed. Words are compared after whitespace splitting and punctuation
// trimming. Non-person segments are left untouched.
func (d *Directory) FilterSelfReferences(segments []types.Segment) []types.Segment {
	if len(d.ownerNames) == 0 {
		return segments
	}
	filtered := make([]types.Segment, len(segments))
	copy(filtered, segments)

	for i := range filtered {
		if !filtered[i].HasType(types.SegmentPerson) {
			continue
		}
		words := strings.Fields(strings.ToLower(filtered[i].Text))
		for j := range words {
			words[j] = strings.Trim(words[j], ".,!?;:'\"()")
		}
		for _, name := range d.ownerNames {
			if containsWord(words, name) {
				filtered[i].Removed = true
				break
			}
		}
	}
	return filtered
}

func containsWord(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}

// ActiveContactList returns the comma-separated first names of active
// people, sorted, for interpolation into extraction prompts.
func (d *Directory) ActiveContactList(ctx context.Context) (string, error) {
	people, err := d.people.List(ctx)
	if err != nil {
		return "", fmt.Errorf("directory: list people: %w", err)
	}
	var names []string
	for _, person := range people {
		if person.Active {
			names = append(names, person.FirstName())
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", "), nil
}

// SyncContacts inserts a person for each record not already present by
// case-insensitive full name. Existing people are never modified. It returns
// the number of people added.
func (d *Directory) SyncContacts(ctx context.Context, records []ContactRecord) (int, error) {
	people, err := d.people.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("directory: list people: %w", err)
	}
	known := make(map[string]bool, len(people))
	for _, person := range people {
		known[strings.ToLower(person.Name)] = true
	}

	added := 0
	for _, record := range records {
		name := strings.TrimSpace(record.GivenName + " " + record.FamilyName)
		if name == "" || known[strings.ToLower(name)] {
			continue
		}
		person := types.NewPerson(name, record.ContactID)
		if err := d.people.Insert(ctx, person); err != nil {
			return added, fmt.Errorf("directory: insert %s: %w", name, err)
		}
		known[strings.ToLower(name)] = true
		added++
	}
	return added, nil
}

// SavePersonNote appends a note to the person matching the given name
// (case-insensitive) or contact ID. When no match exists a new person is
// created carrying the note. originLogID links the note back to the log it
// came from and may be empty.
func (d *Directory) SavePersonNote(ctx context.Context, name, noteText, contactID, originLogID string) error {
	people, err := d.people.List(ctx)
	if err != nil {
		return fmt.Errorf("directory: list people: %w", err)
	}

	nameLower := strings.ToLower(name)
	for _, person := range people {
		if strings.ToLower(person.Name) == nameLower ||
			(person.ContactID != "" && person.ContactID == contactID) {
			person.AppendNote(types.NewNote(noteText, originLogID))
			if err := d.people.Update(ctx, person); err != nil {
				return fmt.Errorf("directory: update %s: %w", person.Name, err)
			}
			return nil
		}
	}

	person := types.NewPerson(name, contactID)
	if noteText != "" {
		person.AppendNote(types.NewNote(noteText, originLogID))
	}
	if err := d.people.Insert(ctx, person); err != nil {
		return fmt.Errorf("directory: insert %s: %w", name, err)
	}
	return nil
}
