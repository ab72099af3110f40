// Package types defines the core data structures for the Journa journaling
// system: tagged segments extracted from free text, people and their notes,
// journal logs, calendar events, groups, and the assistant action schema.
package types

import "github.com/google/uuid"

// SegmentType classifies a tagged segment extracted from journal text.
type SegmentType string

const (
	SegmentPerson SegmentType = "person"
	SegmentDate   SegmentType = "date"
	SegmentLog    SegmentType = "log"
)

// ValidSegmentTypes is a slice of all valid segment types for validation.
var ValidSegmentTypes = []SegmentType{SegmentPerson, SegmentDate, SegmentLog}

// IsValidSegmentType checks if the given segment type is valid.
func IsValidSegmentType(t SegmentType) bool {
	for _, valid := range ValidSegmentTypes {
		if valid == t {
			return true
		}
	}
	return false
}

// Segment is one typed, attributable fragment of meaning extracted from
// source text. Segments are created by the tag parser and never re-typed;
// review surfaces may edit the text or toggle Removed.
type Segment struct {
	ID          string        `json:"id"`
	Text        string        `json:"text"`
	Types       []SegmentType `json:"types"`
	Removed     bool          `json:"removed"`
	ContactName string        `json:"contact_name,omitempty"` // set only for person segments
}

// NewSegment creates a segment with a fresh ID. The first type in kinds is
// the segment's primary/display type.
func NewSegment(text string, kinds ...SegmentType) *Segment {
	return &Segment{
		ID:    uuid.NewString(),
		Text:  text,
		Types: kinds,
	}
}

// Kind returns the segment's primary type (the first element of Types).
func (s *Segment) Kind() SegmentType {
	if len(s.Types) == 0 {
		return SegmentLog
	}
	return s.Types[0]
}

// HasType reports whether the segment carries the given type.
func (s *Segment) HasType(t SegmentType) bool {
	for _, st := range s.Types {
		if st == t {
			return true
		}
	}
	return false
}
