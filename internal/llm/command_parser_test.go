package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/journa/pkg/types"
)

func TestParseCommandReplyConversational(t *testing.T) {
	raw := `{"message": "You wrote about hiking twice this week.", "requiresConfirmation": false, "actions": []}`

	reply := ParseCommandReply(raw)
	assert.Equal(t, "You wrote about hiking twice this week.", reply.Message)
	assert.False(t, reply.RequiresConfirmation)
	assert.Empty(t, reply.Actions)
}

func TestParseCommandReplyExtractsEmbeddedJSON(t *testing.T) {
	raw := "Sure, here you go:\n" +
		`{"message": "Done", "requiresConfirmation": false, "actions": []}` +
		"\nLet me know if you need anything else."

	reply := ParseCommandReply(raw)
	assert.Equal(t, "Done", reply.Message)
}

func TestParseCommandReplyActions(t *testing.T) {
	raw := `{
		"message": "Here's what I'll do: create an event and a note",
		"requiresConfirmation": true,
		"actions": [
			{"id": "a1", "type": "createEvent", "newValue": "Dinner with Maya", "secondaryValue": "friday at 7pm", "description": "Create event"},
			{"id": "a2", "type": "createNote", "targetName": "Maya", "newValue": "Prefers Thai food", "description": "Add note"},
			{"id": "a3", "type": "renameGroup", "targetID": "6e6f0e8e-9c1a-4a48-9f9d-1c2b3a4d5e6f", "newValue": "Climbing Crew", "description": "Rename group"}
		]
	}`

	reply := ParseCommandReply(raw)
	assert.True(t, reply.RequiresConfirmation)
	require.Len(t, reply.Actions, 3)

	event, ok := reply.Actions[0].(types.CreateEvent)
	require.True(t, ok)
	assert.Equal(t, "Dinner with Maya", event.Title)
	assert.Equal(t, "friday at 7pm", event.DateText)
	assert.Equal(t, "a1", event.ID)
	assert.Equal(t, "Create event", event.Describe())

	note, ok := reply.Actions[1].(types.CreateNote)
	require.True(t, ok)
	assert.Equal(t, "Maya", note.PersonName)
	assert.Equal(t, "Prefers Thai food", note.Text)

	rename, ok := reply.Actions[2].(types.RenameGroup)
	require.True(t, ok)
	assert.Equal(t, "6e6f0e8e-9c1a-4a48-9f9d-1c2b3a4d5e6f", rename.TargetID)
	assert.Equal(t, "Climbing Crew", rename.NewName)
}

func TestParseCommandReplyOptionalFieldsDistinguishAbsent(t *testing.T) {
	raw := `{
		"message": "Retitling",
		"requiresConfirmation": true,
		"actions": [
			{"id": "a1", "type": "editLog", "targetName": "camping", "secondaryValue": "Camping Trip", "description": "Retitle"}
		]
	}`

	reply := ParseCommandReply(raw)
	require.Len(t, reply.Actions, 1)
	edit, ok := reply.Actions[0].(types.EditLog)
	require.True(t, ok)
	assert.Nil(t, edit.NewContent, "content was not supplied and must stay untouched")
	require.NotNil(t, edit.NewTitle)
	assert.Equal(t, "Camping Trip", *edit.NewTitle)
}

func TestParseCommandReplyNameFallbacks(t *testing.T) {
	raw := `{
		"message": "Creating",
		"requiresConfirmation": true,
		"actions": [
			{"id": "a1", "type": "createEvent", "targetName": "Standup", "description": "event via targetName"},
			{"id": "a2", "type": "createGroup", "targetName": "Work", "description": "group via targetName"}
		]
	}`

	reply := ParseCommandReply(raw)
	require.Len(t, reply.Actions, 2)
	assert.Equal(t, "Standup", reply.Actions[0].(types.CreateEvent).Title)
	assert.Equal(t, "Work", reply.Actions[1].(types.CreateGroup).Name)
}

func TestParseCommandReplyMalformedFallsBackToRawText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I can't do that, sorry."},
		{"truncated json", `{"message": "Half a reply`},
		{"unknown action type", `{"message": "ok", "requiresConfirmation": true, "actions": [{"id": "a1", "type": "mergeGroups", "description": "nope"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := ParseCommandReply(tt.raw)
			assert.Equal(t, tt.raw, reply.Message)
			assert.False(t, reply.RequiresConfirmation)
			assert.Empty(t, reply.Actions)
		})
	}
}
