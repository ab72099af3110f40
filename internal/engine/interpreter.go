package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/scrypster/journa/internal/llm"
	"github.com/scrypster/journa/internal/services"
	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// Context caps keep the command prompt inside the model window.
const (
	contextMaxLogs     = 20
	contextMaxEvents   = 30
	contextMaxNotes    = 10
	interpretMaxTokens = 2048
)

// ChatTurn is one prior exchange in an assistant conversation.
type ChatTurn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Interpreter turns free-form user instructions into proposed actions. It
// serializes the accessible slice of the user's data into the prompt, asks
// the model for the action JSON, and decodes the reply. Proposed actions
// are not executed here; confirmation is the caller's job.
type Interpreter struct {
	gen      llm.TextGenerator
	logs     storage.LogStore
	events   storage.EventStore
	people   storage.PersonStore
	groups   storage.GroupStore
	settings *services.SettingsService
}

// NewInterpreter creates an interpreter over the given generator, stores,
// and settings.
func NewInterpreter(gen llm.TextGenerator, logs storage.LogStore, events storage.EventStore, people storage.PersonStore, groups storage.GroupStore, settings *services.SettingsService) *Interpreter {
	return &Interpreter{
		gen:      gen,
		logs:     logs,
		events:   events,
		people:   people,
		groups:   groups,
		settings: settings,
	}
}

// BuildDataContext serializes the data the assistant may see. Category
// switches gate logs, events, and people wholesale; groups are always
// listed with name and color, but their contents appear only for groups
// with content access enabled.
func (i *Interpreter) BuildDataContext(ctx context.Context) (string, error) {
	flags, err := i.settings.AccessFlags(ctx)
	if err != nil {
		return "", err
	}

	// Member titles of access-enabled groups are listed even when the
	// category switch hides the top-level section, so all three stores are
	// loaded up front.
	logs, err := i.logs.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list logs: %w", err)
	}
	events, err := i.events.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list events: %w", err)
	}
	people, err := i.people.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list people: %w", err)
	}

	var b strings.Builder

	if flags.Logs && len(logs) > 0 {
		b.WriteString("=== LOGS ===\n")
		for n, entry := range logs {
			if n >= contextMaxLogs {
				break
			}
			fmt.Fprintf(&b, "ID:%s [%s] Title:%s\n%s\n\n",
				entry.ID, entry.Date.Format("Jan 2, 2006"), entry.Title, entry.RawText)
		}
	}

	if flags.Calendar {
		sorted := make([]*types.Event, len(events))
		copy(sorted, events)
		sort.Slice(sorted, func(a, b int) bool { return sorted[a].Date.After(sorted[b].Date) })
		if len(sorted) > 0 {
			b.WriteString("=== CALENDAR EVENTS ===\n")
			for n, event := range sorted {
				if n >= contextMaxEvents {
					break
				}
				fmt.Fprintf(&b, "ID:%s [%s] %s\n",
					event.ID, event.Date.Format("Jan 2, 2006 3:04 PM"), event.Title)
			}
			b.WriteString("\n")
		}
	}

	if flags.People && len(people) > 0 {
		b.WriteString("=== PEOPLE ===\n")
		for _, person := range people {
			fmt.Fprintf(&b, "Name:%s\n", person.Name)
			for n, note := range person.Notes {
				if n >= contextMaxNotes {
					break
				}
				fmt.Fprintf(&b, "  NoteID:%s - %s\n", note.ID, note.Text)
			}
		}
		b.WriteString("\n")
	}

	groups, err := i.groups.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list groups: %w", err)
	}
	if len(groups) > 0 {
		b.WriteString("=== GROUPS ===\n")
		for _, group := range groups {
			fmt.Fprintf(&b, "ID:%s Name:%s Color:%s\n", group.ID, group.Name, group.ColorHex)
			allowed, err := i.settings.GroupAccess(ctx, group.ID)
			if err != nil {
				return "", err
			}
			if !allowed {
				b.WriteString("(content access disabled)\n\n")
				continue
			}
			for _, entry := range logs {
				if group.ContainsLog(entry.ID) {
					fmt.Fprintf(&b, "  Log: %s\n", entry.Title)
				}
			}
			for _, event := range events {
				if group.ContainsEvent(event.ID) {
					fmt.Fprintf(&b, "  Event: %s\n", event.Title)
				}
			}
			for _, person := range people {
				if group.ContainsPerson(person.ID) {
					fmt.Fprintf(&b, "  Person: %s\n", person.Name)
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

// Interpret sends the instruction plus conversation history to the model
// and decodes the reply. A model failure returns ErrCommandFailed; a reply
// the parser cannot decode degrades to a conversational message, never an
// error.
func (i *Interpreter) Interpret(ctx context.Context, instruction string, history []ChatTurn) (llm.CommandReply, error) {
	dataContext, err := i.BuildDataContext(ctx)
	if err != nil {
		return llm.CommandReply{}, fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}

	var b strings.Builder
	b.WriteString(llm.CommandSystemPrompt(dataContext))
	b.WriteString("\n\n")
	for _, turn := range history {
		if turn.Role == "user" {
			fmt.Fprintf(&b, "User: %s\n", turn.Content)
		} else {
			fmt.Fprintf(&b, "Assistant: %s\n", turn.Content)
		}
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", instruction)

	response, err := i.gen.Complete(ctx, b.String(), interpretMaxTokens)
	if err != nil {
		return llm.CommandReply{}, fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}
	return llm.ParseCommandReply(response), nil
}
