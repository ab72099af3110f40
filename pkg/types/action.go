package types

// ActionType enumerates the mutations the assistant can propose. The literal
// strings are the wire values of the action JSON protocol.
type ActionType string

const (
	ActionCreateLog       ActionType = "createLog"
	ActionEditLog         ActionType = "editLog"
	ActionDeleteLog       ActionType = "deleteLog"
	ActionCreateEvent     ActionType = "createEvent"
	ActionEditEvent       ActionType = "editEvent"
	ActionDeleteEvent     ActionType = "deleteEvent"
	ActionCreateNote      ActionType = "createNote"
	ActionEditNote        ActionType = "editNote"
	ActionDeleteNote      ActionType = "deleteNote"
	ActionCreateGroup     ActionType = "createGroup"
	ActionDeleteGroup     ActionType = "deleteGroup"
	ActionRenameGroup     ActionType = "renameGroup"
	ActionRecolorGroup    ActionType = "recolorGroup"
	ActionAddToGroup      ActionType = "addToGroup"
	ActionRemoveFromGroup ActionType = "removeFromGroup"
)

// ValidActionTypes is a slice of all valid action types for validation.
var ValidActionTypes = []ActionType{
	ActionCreateLog, ActionEditLog, ActionDeleteLog,
	ActionCreateEvent, ActionEditEvent, ActionDeleteEvent,
	ActionCreateNote, ActionEditNote, ActionDeleteNote,
	ActionCreateGroup, ActionDeleteGroup, ActionRenameGroup, ActionRecolorGroup,
	ActionAddToGroup, ActionRemoveFromGroup,
}

// IsValidActionType checks if the given action type is valid.
func IsValidActionType(t ActionType) bool {
	for _, valid := range ValidActionTypes {
		if valid == t {
			return true
		}
	}
	return false
}

// Action is one proposed, unconfirmed mutation against a store. It is a
// closed set: exactly one variant exists per action type, each carrying only
// the fields that kind of action needs. Actions are ephemeral — they live
// between interpretation and confirmation and are never persisted.
type Action interface {
	Type() ActionType
	Describe() string

	sealed()
}

// ActionMeta carries the fields common to every action variant.
type ActionMeta struct {
	ID          string
	Description string
}

// Describe returns the human-readable description supplied by the model.
func (m ActionMeta) Describe() string { return m.Description }

func (m ActionMeta) sealed() {}

// CreateLog creates a new journal log with the given title and content.
type CreateLog struct {
	ActionMeta
	Title   string
	Content string
}

// EditLog updates a log's content and/or title, located by ID or title match.
type EditLog struct {
	ActionMeta
	TargetID   string
	TargetName string
	NewContent *string
	NewTitle   *string
}

// DeleteLog removes a log located by ID or title match.
type DeleteLog struct {
	ActionMeta
	TargetID   string
	TargetName string
}

// CreateEvent creates a calendar entry; DateText is parsed best-effort.
type CreateEvent struct {
	ActionMeta
	Title    string
	DateText string
}

// EditEvent updates an event's title and/or date, located by title match.
type EditEvent struct {
	ActionMeta
	TargetName  string
	NewTitle    *string
	NewDateText *string
}

// DeleteEvent removes events whose title matches.
type DeleteEvent struct {
	ActionMeta
	TargetName string
}

// CreateNote appends a note to the named person.
type CreateNote struct {
	ActionMeta
	PersonName string
	Text       string
}

// EditNote rewrites the note matching MatchText (or the person's latest note).
type EditNote struct {
	ActionMeta
	PersonName string
	NewText    string
	MatchText  string
}

// DeleteNote removes the person's notes matching MatchText (all when empty).
type DeleteNote struct {
	ActionMeta
	PersonName string
	MatchText  string
}

// CreateGroup creates a group; an empty ColorHex picks a random accent color.
type CreateGroup struct {
	ActionMeta
	Name     string
	ColorHex string
}

// DeleteGroup removes a group located by ID or name match.
type DeleteGroup struct {
	ActionMeta
	TargetID   string
	TargetName string
}

// RenameGroup renames a group located by ID or name match.
type RenameGroup struct {
	ActionMeta
	TargetID   string
	TargetName string
	NewName    string
}

// RecolorGroup changes a group's color, located by ID or name match.
type RecolorGroup struct {
	ActionMeta
	TargetID   string
	TargetName string
	ColorHex   string
}

// AddToGroup adds the named item to the named group. The item name is probed
// against logs, then people, then events.
type AddToGroup struct {
	ActionMeta
	GroupName string
	ItemName  string
}

// RemoveFromGroup removes the named item from the named group, probing the
// same store order as AddToGroup.
type RemoveFromGroup struct {
	ActionMeta
	GroupName string
	ItemName  string
}

func (CreateLog) Type() ActionType       { return ActionCreateLog }
func (EditLog) Type() ActionType         { return ActionEditLog }
func (DeleteLog) Type() ActionType       { return ActionDeleteLog }
func (CreateEvent) Type() ActionType     { return ActionCreateEvent }
func (EditEvent) Type() ActionType       { return ActionEditEvent }
func (DeleteEvent) Type() ActionType     { return ActionDeleteEvent }
func (CreateNote) Type() ActionType      { return ActionCreateNote }
func (EditNote) Type() ActionType        { return ActionEditNote }
func (DeleteNote) Type() ActionType      { return ActionDeleteNote }
func (CreateGroup) Type() ActionType     { return ActionCreateGroup }
func (DeleteGroup) Type() ActionType     { return ActionDeleteGroup }
func (RenameGroup) Type() ActionType     { return ActionRenameGroup }
func (RecolorGroup) Type() ActionType    { return ActionRecolorGroup }
func (AddToGroup) Type() ActionType      { return ActionAddToGroup }
func (RemoveFromGroup) Type() ActionType { return ActionRemoveFromGroup }
