package types

import (
	"time"

	"github.com/google/uuid"
)

// EventKind distinguishes dated calendar entries from logged-activity entries.
type EventKind string

const (
	EventDated  EventKind = "dated"
	EventLogged EventKind = "logged"
)

// Recurrence is the repeat rule for a calendar entry. There is exactly one
// record per recurring series; occurrences are derived via OccursOn.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "None"
	RecurrenceDaily   Recurrence = "Daily"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
	RecurrenceYearly  Recurrence = "Yearly"
)

// ValidRecurrences is a slice of all valid recurrence rules for validation.
var ValidRecurrences = []Recurrence{
	RecurrenceNone,
	RecurrenceDaily,
	RecurrenceWeekly,
	RecurrenceMonthly,
	RecurrenceYearly,
}

// Event is a calendar entry created from a date-typed or log-typed segment,
// or directly by an assistant action.
type Event struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Date       time.Time  `json:"date"`
	Kind       EventKind  `json:"kind"`
	Recurrence Recurrence `json:"recurrence"`
}

// NewEvent creates a non-recurring event with a fresh ID.
func NewEvent(title string, date time.Time, kind EventKind) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Title:      title,
		Date:       date,
		Kind:       kind,
		Recurrence: RecurrenceNone,
	}
}

// OccursOn reports whether the event occurs on the given day. The anchor date
// always matches its own day; recurring events match any later day whose
// calendar components line up with the anchor (weekday for weekly, day of
// month for monthly, month and day for yearly).
func (e *Event) OccursOn(day time.Time) bool {
	ay, am, ad := e.Date.Date()
	dy, dm, dd := day.Date()
	if ay == dy && am == dm && ad == dd {
		return true
	}
	if day.Before(e.Date) {
		return false
	}
	switch e.Recurrence {
	case RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		return e.Date.Weekday() == day.Weekday()
	case RecurrenceMonthly:
		return ad == dd
	case RecurrenceYearly:
		return am == dm && ad == dd
	default:
		return false
	}
}
