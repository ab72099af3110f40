package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person is a tracked contact in the personal knowledge base.
// A person is created on first contact-directory sync or on first save of a
// note naming someone unseen; extraction logic never destroys one.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ContactID string    `json:"contact_id,omitempty"` // external contact-directory identifier
	Notes     []Note    `json:"notes"`                // insertion-ordered, newest last
	Active    bool      `json:"active"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPerson creates an active person with a fresh ID.
func NewPerson(name, contactID string) *Person {
	now := time.Now().UTC()
	return &Person{
		ID:        uuid.NewString(),
		Name:      name,
		ContactID: contactID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FirstName returns the first whitespace-delimited word of the person's name.
func (p *Person) FirstName() string {
	if words := strings.Fields(p.Name); len(words) > 0 {
		return words[0]
	}
	return p.Name
}

// AppendNote appends a note to the person, newest last.
func (p *Person) AppendNote(n Note) {
	p.Notes = append(p.Notes, n)
	p.UpdatedAt = time.Now().UTC()
}

// Note is one dated observation about a person. OriginLogID links back to the
// log whose categorization produced it; it is empty for manually added notes.
type Note struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Date        time.Time `json:"date"`
	OriginLogID string    `json:"origin_log_id,omitempty"`
	Locked      bool      `json:"locked"`
	Pinned      bool      `json:"pinned"`
}

// NewNote creates a note dated now.
func NewNote(text, originLogID string) Note {
	return Note{
		ID:          uuid.NewString(),
		Text:        text,
		Date:        time.Now().UTC(),
		OriginLogID: originLogID,
	}
}
