package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLogTitle is used when a categorization produced no log-typed segment.
const DefaultLogTitle = "Journal Entry"

// Known import source labels for conversation imports.
const (
	ImportSourceInstagram = "Instagram"
	ImportSourceMessages  = "Messages"
	ImportSourceWhatsApp  = "WhatsApp"
	ImportSourceTwitter   = "Twitter"
	ImportSourceEmail     = "Email"
)

// Log is one journal entry: the raw text the user wrote or imported plus the
// segments extracted from it. Segments are replaced wholesale on
// re-categorization, never merged.
type Log struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	RawText       string    `json:"raw_text"`
	Date          time.Time `json:"date"`
	Segments      []Segment `json:"segments"`
	Pinned        bool      `json:"pinned"`
	ImportSource  string    `json:"import_source,omitempty"`  // e.g. "Instagram", "Messages"
	ImportContact string    `json:"import_contact,omitempty"` // contact the import is from
}

// NewLog creates a log dated now. The title defaults to the first log-typed
// segment's text, falling back to DefaultLogTitle.
func NewLog(rawText string, segments []Segment) *Log {
	title := DefaultLogTitle
	for _, seg := range segments {
		if seg.Kind() == SegmentLog {
			title = seg.Text
			break
		}
	}
	return &Log{
		ID:       uuid.NewString(),
		Title:    title,
		RawText:  rawText,
		Date:     time.Now().UTC(),
		Segments: segments,
	}
}

// ActiveSegments returns the segments not marked removed, in order.
func (l *Log) ActiveSegments() []Segment {
	var active []Segment
	for _, seg := range l.Segments {
		if !seg.Removed {
			active = append(active, seg)
		}
	}
	return active
}
