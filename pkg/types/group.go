package types

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// AccentColors is the fixed palette groups are colored from.
var AccentColors = []string{
	"4A9EDB", "E05555", "4CAF50", "F5A623",
	"8FA8A8", "9B59B6", "E67E22", "1ABC9C",
	"E91E8C", "3498DB",
}

// RandomColor picks a color from the accent palette.
func RandomColor() string {
	return AccentColors[rand.Intn(len(AccentColors))]
}

// Group is a named collection of logs, events, people, and notes. Membership
// sets are idempotent: adding an existing member is a no-op. Deleting a group
// never touches the member records themselves.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ColorHex  string    `json:"color_hex"`
	LogIDs    []string  `json:"log_ids"`
	EventIDs  []string  `json:"event_ids"`
	PersonIDs []string  `json:"person_ids"`
	NoteIDs   []string  `json:"note_ids"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGroup creates a group with a fresh ID. An empty colorHex picks a random
// accent color.
func NewGroup(name, colorHex string) *Group {
	if colorHex == "" {
		colorHex = RandomColor()
	}
	return &Group{
		ID:        uuid.NewString(),
		Name:      name,
		ColorHex:  colorHex,
		CreatedAt: time.Now().UTC(),
	}
}

// AddLog adds a log to the group's membership. Returns false if already present.
func (g *Group) AddLog(id string) bool { return addUnique(&g.LogIDs, id) }

// AddEvent adds an event to the group's membership. Returns false if already present.
func (g *Group) AddEvent(id string) bool { return addUnique(&g.EventIDs, id) }

// AddPerson adds a person to the group's membership. Returns false if already present.
func (g *Group) AddPerson(id string) bool { return addUnique(&g.PersonIDs, id) }

// AddNote adds a note to the group's membership. Returns false if already present.
func (g *Group) AddNote(id string) bool { return addUnique(&g.NoteIDs, id) }

// RemoveLog removes a log from the group's membership.
func (g *Group) RemoveLog(id string) { g.LogIDs = removeID(g.LogIDs, id) }

// RemoveEvent removes an event from the group's membership.
func (g *Group) RemoveEvent(id string) { g.EventIDs = removeID(g.EventIDs, id) }

// RemovePerson removes a person from the group's membership.
func (g *Group) RemovePerson(id string) { g.PersonIDs = removeID(g.PersonIDs, id) }

// ContainsLog reports whether the log is a member of the group.
func (g *Group) ContainsLog(id string) bool { return containsID(g.LogIDs, id) }

// ContainsEvent reports whether the event is a member of the group.
func (g *Group) ContainsEvent(id string) bool { return containsID(g.EventIDs, id) }

// ContainsPerson reports whether the person is a member of the group.
func (g *Group) ContainsPerson(id string) bool { return containsID(g.PersonIDs, id) }

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func addUnique(ids *[]string, id string) bool {
	if containsID(*ids, id) {
		return false
	}
	*ids = append(*ids, id)
	return true
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
