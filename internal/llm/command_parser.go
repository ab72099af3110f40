package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scrypster/journa/pkg/types"
)

// CommandReply is the interpreter's decoded answer: either a conversational
// message, or a message plus proposed actions awaiting user confirmation.
type CommandReply struct {
	Message              string
	RequiresConfirmation bool
	Actions              []types.Action
}

// wireReply matches the JSON envelope the command prompt instructs the model
// to emit.
type wireReply struct {
	Message              string       `json:"message"`
	RequiresConfirmation bool         `json:"requiresConfirmation"`
	Actions              []wireAction `json:"actions"`
}

// wireAction is the flat wire form of an action. Optional fields are
// pointers so absent and empty can be told apart where it matters.
type wireAction struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	TargetID       *string `json:"targetID"`
	TargetName     *string `json:"targetName"`
	NewValue       *string `json:"newValue"`
	SecondaryValue *string `json:"secondaryValue"`
	Description    string  `json:"description"`
}

// ParseCommandReply decodes a raw model response into a CommandReply. The
// JSON object is extracted by slicing from the first '{' to the last '}'.
// Any decode failure, including an unknown action type, degrades to a
// conversational reply carrying the raw response text; this function never
// returns an error.
func ParseCommandReply(raw string) CommandReply {
	cleaned := strings.TrimSpace(raw)
	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var wire wireReply
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return CommandReply{Message: raw}
	}

	actions := make([]types.Action, 0, len(wire.Actions))
	for _, wa := range wire.Actions {
		action, err := decodeAction(wa)
		if err != nil {
			return CommandReply{Message: raw}
		}
		actions = append(actions, action)
	}

	return CommandReply{
		Message:              wire.Message,
		RequiresConfirmation: wire.RequiresConfirmation,
		Actions:              actions,
	}
}

// decodeAction converts a flat wire action into its typed variant. The
// generic targetName/newValue/secondaryValue slots map onto different fields
// per action type, mirroring the field docs in the command prompt.
func decodeAction(wa wireAction) (types.Action, error) {
	meta := types.ActionMeta{ID: wa.ID, Description: wa.Description}
	targetID := deref(wa.TargetID)
	targetName := deref(wa.TargetName)
	newValue := deref(wa.NewValue)
	secondary := deref(wa.SecondaryValue)

	switch types.ActionType(wa.Type) {
	case types.ActionCreateLog:
		title := targetName
		if title == "" {
			title = "New Log"
		}
		return types.CreateLog{ActionMeta: meta, Title: title, Content: newValue}, nil

	case types.ActionEditLog:
		return types.EditLog{
			ActionMeta: meta,
			TargetID:   targetID,
			TargetName: targetName,
			NewContent: wa.NewValue,
			NewTitle:   wa.SecondaryValue,
		}, nil

	case types.ActionDeleteLog:
		return types.DeleteLog{ActionMeta: meta, TargetID: targetID, TargetName: targetName}, nil

	case types.ActionCreateEvent:
		title := newValue
		if title == "" {
			title = targetName
		}
		if title == "" {
			title = "New Event"
		}
		return types.CreateEvent{ActionMeta: meta, Title: title, DateText: secondary}, nil

	case types.ActionEditEvent:
		return types.EditEvent{
			ActionMeta:  meta,
			TargetName:  targetName,
			NewTitle:    wa.NewValue,
			NewDateText: wa.SecondaryValue,
		}, nil

	case types.ActionDeleteEvent:
		return types.DeleteEvent{ActionMeta: meta, TargetName: targetName}, nil

	case types.ActionCreateNote:
		return types.CreateNote{ActionMeta: meta, PersonName: targetName, Text: newValue}, nil

	case types.ActionEditNote:
		return types.EditNote{ActionMeta: meta, PersonName: targetName, NewText: newValue, MatchText: secondary}, nil

	case types.ActionDeleteNote:
		return types.DeleteNote{ActionMeta: meta, PersonName: targetName, MatchText: secondary}, nil

	case types.ActionCreateGroup:
		name := newValue
		if name == "" {
			name = targetName
		}
		if name == "" {
			name = "New Group"
		}
		return types.CreateGroup{ActionMeta: meta, Name: name, ColorHex: secondary}, nil

	case types.ActionDeleteGroup:
		return types.DeleteGroup{ActionMeta: meta, TargetID: targetID, TargetName: targetName}, nil

	case types.ActionRenameGroup:
		return types.RenameGroup{ActionMeta: meta, TargetID: targetID, TargetName: targetName, NewName: newValue}, nil

	case types.ActionRecolorGroup:
		return types.RecolorGroup{ActionMeta: meta, TargetID: targetID, TargetName: targetName, ColorHex: newValue}, nil

	case types.ActionAddToGroup:
		return types.AddToGroup{ActionMeta: meta, GroupName: targetName, ItemName: newValue}, nil

	case types.ActionRemoveFromGroup:
		return types.RemoveFromGroup{ActionMeta: meta, GroupName: targetName, ItemName: newValue}, nil
	}

	return nil, fmt.Errorf("unknown action type: %q", wa.Type)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
