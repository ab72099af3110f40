package llm

import "fmt"

// Prompt templates for the extraction and command calls. Wording here is
// load-bearing: the parsers in this package expect the tag markup and JSON
// shape these prompts describe.

// JournalPeoplePrompt asks for person-tagged thoughts about contacts found
// in a journal entry.
func JournalPeoplePrompt(contactList, text string) string {
	return fmt.Sprintf(`Contact list: [%s]

Read this journal entry. For each distinct thought or trait about someone from the contact list, create a separate <person> tag.

Format each one exactly like this:
<person name="FIRSTNAME">the thought about this person, using their name instead of pronouns</person>

Rules:
- One tag per distinct thought or trait, a thought may span multiple sentences if they're connected
- If John has 3 separate thoughts written about him, create 3 separate John tags
- Resolve pronouns, "he seemed tired" referring to John becomes "John seemed tired"
- If a thought mentions multiple contacts, create a separate tag for each contact
- Only tag people from the contact list
- Do not tag thoughts only about the journal author
- Return only tagged content, no explanation

Example:
Input: "Hung out with John today. He seemed tired but was in good spirits. He also mentioned he wants to move to Austin."
Output:
<person name="John">John seemed tired but was in good spirits.</person>
<person name="John">John mentioned he wants to move to Austin.</person>

Journal entry:
%s`, contactList, text)
}

// JournalDatesPrompt asks for date-tagged sentences with specific,
// actionable time references.
func JournalDatesPrompt(text string) string {
	return fmt.Sprintf(`Read this journal entry and find sentences that mention a SPECIFIC actionable date or time.
Wrap each one in <date>...</date> tags.

INCLUDE:
- Specific dates: "March 5th", "February 29th", "the 22nd"
- Relative future references: "tomorrow", "today", "this Friday", "next Tuesday", "next week"
- Specific times with context: "at 3pm", "at noon on Thursday"

DO NOT INCLUDE:
- Vague future plans with no specific time: "next month", "someday", "soon", "eventually"
- Past references: "last week", "yesterday", "the other day", "a few days ago"
- General intentions with no time: "thinking about moving", "planning to call"

If no qualifying dates exist, return nothing.
Return only tagged content, no explanation.

Journal entry:
%s`, text)
}

// JournalSummaryPrompt asks for a single log-tagged one-sentence summary.
func JournalSummaryPrompt(text string) string {
	return fmt.Sprintf(`Read this journal entry and write ONE single sentence that summarizes the overall gist of what happened or was discussed. Keep it short and punchy, no more than 20 words.
Wrap it in a single <log>...</log> tag.
Return only the tagged summary, no explanation.

Journal entry:
%s`, text)
}

// ImportPrompt asks for a combined person/date/log extraction from an
// imported conversation transcript. povIsMe states whether the transcript
// is from the journal author's point of view or entirely the contact's.
func ImportPrompt(source, fromContact string, povIsMe bool, contactList, text string) string {
	sourceLabel := source
	if sourceLabel == "" {
		sourceLabel = "a messaging platform"
	}
	contactLabel := fromContact
	if contactLabel == "" {
		contactLabel = "the other person"
	}

	var povDescription string
	if povIsMe {
		povDescription = fmt.Sprintf(`This is a conversation from %s. The POV is MINE (the journal author).
- Messages I sent are MY words
- Messages from %s are their words

Extract:
- Key things %s said, expressed, or shared. These are notes about %s
- Any dates or plans mentioned by either side
- A summary of the overall conversation

Focus on what you can learn about %s from this conversation.`,
			sourceLabel, contactLabel, contactLabel, contactLabel, contactLabel)
	} else {
		povDescription = fmt.Sprintf(`This is a conversation from %s from %s's point of view.
- All messages or content here are from %s's perspective
- Extract what %s said, felt, expressed, or shared
- Treat everything as coming from %s unless clearly attributed to someone else

Focus entirely on %s: their thoughts, feelings, plans, and statements.`,
			sourceLabel, contactLabel, contactLabel, contactLabel, contactLabel, contactLabel)
	}

	return fmt.Sprintf(`%s

Format your response using these tags:
- <person name="%s">one distinct thought or thing %s expressed</person>
- <date>specific date or time reference</date>
- <log>one sentence summary of the conversation</log>

Rules:
- One <person> tag per distinct thought. If %s expressed 4 different things, make 4 tags
- Only include dates that are specific and actionable (not vague like "someday")
- Only tag other people if they're in this contact list: [%s]
- Return only tagged content, no explanation

Conversation:
%s`, povDescription, contactLabel, contactLabel, contactLabel, contactList, text)
}

// CommandSystemPrompt builds the assistant system prompt for the command
// interpreter. dataContext is the serialized view of accessible data; when
// empty the assistant is told to suggest enabling access.
func CommandSystemPrompt(dataContext string) string {
	if dataContext == "" {
		dataContext = "No data accessible. Suggest they enable data access in settings."
	}
	return fmt.Sprintf(`You are JournAI, a personal journal assistant that can both answer questions AND manipulate journal data.

You have access to the user's data:
%s

When the user asks you to CREATE, EDIT, DELETE, or MOVE items, respond with a JSON object in this exact format:
{
  "message": "Here's what I'll do: [brief description]",
  "requiresConfirmation": true,
  "actions": [
    {
      "id": "unique-uuid-string",
      "type": "actionType",
      "targetID": "item-id-if-known",
      "targetName": "item-name",
      "newValue": "new content or value",
      "secondaryValue": "secondary info like date or new title",
      "description": "Human readable description of this action"
    }
  ]
}

Action types:
createLog, editLog, deleteLog
createEvent, editEvent, deleteEvent
createNote, editNote, deleteNote
createGroup, deleteGroup, renameGroup, recolorGroup
addToGroup, removeFromGroup

For createLog: newValue = log content, targetName = log title
For editLog: targetName = log title to find, newValue = new content, secondaryValue = new title (optional)
For deleteLog: targetName = log title
For createEvent: newValue = event title, secondaryValue = date string
For editEvent: targetName = event to find, newValue = new title, secondaryValue = new date (optional)
For deleteEvent: targetName = event title
For createNote: targetName = person name, newValue = note text
For editNote: targetName = person name, newValue = new note text, secondaryValue = text to find in existing note
For deleteNote: targetName = person name, secondaryValue = text to find (empty = delete all)
For createGroup: newValue = group name, secondaryValue = color hex (optional, e.g. "4A9EDB")
For deleteGroup: targetName = group name OR targetID = group UUID
For renameGroup: targetName = current group name OR targetID = group UUID, newValue = new name
For recolorGroup: targetName = group name OR targetID = group UUID, newValue = new color hex (e.g. "E05555")
For addToGroup: targetName = group name, newValue = item name to add
For removeFromGroup: targetName = group name, newValue = item name to remove

Available colors for recolorGroup: 4A9EDB (blue), E05555 (red), 4CAF50 (green), F5A623 (orange), 8FA8A8 (gray), 9B59B6 (purple), E67E22 (dark orange), 1ABC9C (teal), E91E8C (pink), 3498DB (light blue)

When the user is just asking a question or chatting, respond normally:
{
  "message": "Your conversational reply here",
  "requiresConfirmation": false,
  "actions": []
}

ALWAYS respond with valid JSON only. Never include any text outside the JSON object.`, dataContext)
}
