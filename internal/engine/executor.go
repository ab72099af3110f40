package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// Executor applies confirmed actions against the stores. Execution is
// best-effort: each action produces one outcome line and a failure never
// stops the remaining actions.
type Executor struct {
	logs   storage.LogStore
	events storage.EventStore
	people storage.PersonStore
	groups storage.GroupStore

	now func() time.Time
}

// NewExecutor creates an executor over the given stores.
func NewExecutor(logs storage.LogStore, events storage.EventStore, people storage.PersonStore, groups storage.GroupStore) *Executor {
	return &Executor{
		logs:   logs,
		events: events,
		people: people,
		groups: groups,
		now:    time.Now,
	}
}

// Execute applies each action in order and returns one outcome line per
// action.
func (e *Executor) Execute(ctx context.Context, actions []types.Action) []string {
	results := make([]string, 0, len(actions))
	for _, action := range actions {
		results = append(results, e.executeAction(ctx, action))
	}
	return results
}

func (e *Executor) executeAction(ctx context.Context, action types.Action) string {
	switch a := action.(type) {
	case types.CreateLog:
		return e.createLog(ctx, a)
	case types.EditLog:
		return e.editLog(ctx, a)
	case types.DeleteLog:
		return e.deleteLog(ctx, a)
	case types.CreateEvent:
		return e.createEvent(ctx, a)
	case types.EditEvent:
		return e.editEvent(ctx, a)
	case types.DeleteEvent:
		return e.deleteEvent(ctx, a)
	case types.CreateNote:
		return e.createNote(ctx, a)
	case types.EditNote:
		return e.editNote(ctx, a)
	case types.DeleteNote:
		return e.deleteNote(ctx, a)
	case types.CreateGroup:
		return e.createGroup(ctx, a)
	case types.DeleteGroup:
		return e.deleteGroup(ctx, a)
	case types.RenameGroup:
		return e.renameGroup(ctx, a)
	case types.RecolorGroup:
		return e.recolorGroup(ctx, a)
	case types.AddToGroup:
		return e.addToGroup(ctx, a)
	case types.RemoveFromGroup:
		return e.removeFromGroup(ctx, a)
	}
	return "Unknown action"
}

// containsFold is the name-matching primitive: case-insensitive substring,
// with an empty needle matching nothing.
func containsFold(s, sub string) bool {
	if sub == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Logs

func (e *Executor) createLog(ctx context.Context, a types.CreateLog) string {
	entry := types.NewLog(a.Content, nil)
	entry.Title = a.Title
	if err := e.logs.Insert(ctx, entry); err != nil {
		return "Could not create log"
	}
	return fmt.Sprintf("Created log: %s", a.Title)
}

func (e *Executor) editLog(ctx context.Context, a types.EditLog) string {
	apply := func(entry *types.Log) {
		if a.NewContent != nil {
			entry.RawText = *a.NewContent
		}
		if a.NewTitle != nil {
			entry.Title = *a.NewTitle
		}
	}

	if isUUID(a.TargetID) {
		entry, err := e.logs.Get(ctx, a.TargetID)
		if err != nil {
			return "Log not found"
		}
		apply(entry)
		if err := e.logs.Update(ctx, entry); err != nil {
			return "Log not found"
		}
		return fmt.Sprintf("Edited log: %s", entry.Title)
	}

	entries, err := e.logs.List(ctx)
	if err != nil {
		return "Could not find log to edit"
	}
	for _, entry := range entries {
		if containsFold(entry.Title, a.TargetName) {
			apply(entry)
			if err := e.logs.Update(ctx, entry); err != nil {
				return "Could not find log to edit"
			}
			return fmt.Sprintf("Edited log: %s", entry.Title)
		}
	}
	return "Could not find log to edit"
}

func (e *Executor) deleteLog(ctx context.Context, a types.DeleteLog) string {
	if isUUID(a.TargetID) {
		e.logs.Delete(ctx, a.TargetID)
		return "Deleted log"
	}
	if a.TargetName != "" {
		entries, err := e.logs.List(ctx)
		if err != nil {
			return "Could not find log to delete"
		}
		for _, entry := range entries {
			if containsFold(entry.Title, a.TargetName) {
				e.logs.Delete(ctx, entry.ID)
			}
		}
		return fmt.Sprintf("Deleted log: %s", a.TargetName)
	}
	return "Could not find log to delete"
}

// Events

func (e *Executor) createEvent(ctx context.Context, a types.CreateEvent) string {
	dateText := a.DateText
	if dateText == "" {
		dateText = a.Title
	}
	event := types.NewEvent(a.Title, ParseNaturalDate(dateText, e.now()), types.EventDated)
	if err := e.events.Insert(ctx, event); err != nil {
		return "Could not create event"
	}
	return fmt.Sprintf("Created event: %s", a.Title)
}

func (e *Executor) editEvent(ctx context.Context, a types.EditEvent) string {
	events, err := e.events.List(ctx)
	if err != nil {
		return "Could not find event to edit"
	}
	for _, event := range events {
		if !containsFold(event.Title, a.TargetName) {
			continue
		}
		if a.NewTitle != nil {
			event.Title = *a.NewTitle
		}
		if a.NewDateText != nil {
			event.Date = ParseNaturalDate(*a.NewDateText, e.now())
		}
		if err := e.events.Update(ctx, event); err != nil {
			return "Could not find event to edit"
		}
		return fmt.Sprintf("Edited event: %s", event.Title)
	}
	return "Could not find event to edit"
}

func (e *Executor) deleteEvent(ctx context.Context, a types.DeleteEvent) string {
	if a.TargetName == "" {
		return "Could not find event to delete"
	}
	events, err := e.events.List(ctx)
	if err != nil {
		return "Could not find event to delete"
	}
	for _, event := range events {
		if containsFold(event.Title, a.TargetName) {
			e.events.Delete(ctx, event.ID)
		}
	}
	return fmt.Sprintf("Deleted event: %s", a.TargetName)
}

// Notes

func (e *Executor) createNote(ctx context.Context, a types.CreateNote) string {
	if a.PersonName == "" {
		return "No person specified"
	}
	person, ok := e.findPerson(ctx, a.PersonName)
	if !ok {
		return fmt.Sprintf("Could not find person: %s", a.PersonName)
	}
	person.AppendNote(types.NewNote(a.Text, ""))
	if err := e.people.Update(ctx, person); err != nil {
		return fmt.Sprintf("Could not find person: %s", a.PersonName)
	}
	return fmt.Sprintf("Added note to %s", person.Name)
}

func (e *Executor) editNote(ctx context.Context, a types.EditNote) string {
	if a.PersonName == "" || a.NewText == "" {
		return "Missing info to edit note"
	}
	person, ok := e.findPerson(ctx, a.PersonName)
	if !ok {
		return "Could not find note to edit"
	}

	// an empty match text falls through to the latest note
	target := -1
	for i, note := range person.Notes {
		if containsFold(note.Text, a.MatchText) {
			target = i
			break
		}
	}
	if target < 0 {
		target = len(person.Notes) - 1
	}
	if target < 0 {
		return "Could not find note to edit"
	}

	person.Notes[target].Text = a.NewText
	if err := e.people.Update(ctx, person); err != nil {
		return "Could not find note to edit"
	}
	return fmt.Sprintf("Edited note for %s", person.Name)
}

func (e *Executor) deleteNote(ctx context.Context, a types.DeleteNote) string {
	if a.PersonName == "" {
		return "No person specified"
	}
	person, ok := e.findPerson(ctx, a.PersonName)
	if !ok {
		return fmt.Sprintf("Could not find person: %s", a.PersonName)
	}

	if a.MatchText == "" {
		person.Notes = nil
	} else {
		kept := person.Notes[:0]
		for _, note := range person.Notes {
			if !containsFold(note.Text, a.MatchText) {
				kept = append(kept, note)
			}
		}
		person.Notes = kept
	}
	if err := e.people.Update(ctx, person); err != nil {
		return fmt.Sprintf("Could not find person: %s", a.PersonName)
	}
	return fmt.Sprintf("Deleted note for %s", person.Name)
}

func (e *Executor) findPerson(ctx context.Context, name string) (*types.Person, bool) {
	people, err := e.people.List(ctx)
	if err != nil {
		return nil, false
	}
	for _, person := range people {
		if containsFold(person.Name, name) {
			return person, true
		}
	}
	return nil, false
}

// Groups

func (e *Executor) createGroup(ctx context.Context, a types.CreateGroup) string {
	group := types.NewGroup(a.Name, a.ColorHex)
	if err := e.groups.Insert(ctx, group); err != nil {
		return "Could not create group"
	}
	return fmt.Sprintf("Created group: %s", a.Name)
}

func (e *Executor) deleteGroup(ctx context.Context, a types.DeleteGroup) string {
	if isUUID(a.TargetID) {
		e.groups.Delete(ctx, a.TargetID)
		return "Deleted group"
	}
	if group, ok := e.findGroup(ctx, a.TargetName); ok {
		e.groups.Delete(ctx, group.ID)
		return fmt.Sprintf("Deleted group: %s", a.TargetName)
	}
	return "Could not find group to delete"
}

func (e *Executor) renameGroup(ctx context.Context, a types.RenameGroup) string {
	if a.NewName == "" {
		return "No new name provided"
	}
	if isUUID(a.TargetID) {
		group, err := e.groups.Get(ctx, a.TargetID)
		if err != nil {
			return "Could not find group to rename"
		}
		group.Name = a.NewName
		if err := e.groups.Update(ctx, group); err != nil {
			return "Could not find group to rename"
		}
		return fmt.Sprintf("Renamed group to %s", a.NewName)
	}
	if group, ok := e.findGroup(ctx, a.TargetName); ok {
		group.Name = a.NewName
		if err := e.groups.Update(ctx, group); err != nil {
			return "Could not find group to rename"
		}
		return fmt.Sprintf("Renamed '%s' to '%s'", a.TargetName, a.NewName)
	}
	return "Could not find group to rename"
}

func (e *Executor) recolorGroup(ctx context.Context, a types.RecolorGroup) string {
	colorHex := a.ColorHex
	if colorHex == "" {
		colorHex = "8FA8A8"
	}
	if isUUID(a.TargetID) {
		group, err := e.groups.Get(ctx, a.TargetID)
		if err != nil {
			return "Could not find group to recolor"
		}
		group.ColorHex = colorHex
		if err := e.groups.Update(ctx, group); err != nil {
			return "Could not find group to recolor"
		}
		return "Updated group color"
	}
	if group, ok := e.findGroup(ctx, a.TargetName); ok {
		group.ColorHex = colorHex
		if err := e.groups.Update(ctx, group); err != nil {
			return "Could not find group to recolor"
		}
		return fmt.Sprintf("Updated color for group '%s'", a.TargetName)
	}
	return "Could not find group to recolor"
}

func (e *Executor) addToGroup(ctx context.Context, a types.AddToGroup) string {
	group, ok := e.findGroup(ctx, a.GroupName)
	if !ok || a.ItemName == "" {
		return "Could not find group"
	}

	if entry, ok := e.findLog(ctx, a.ItemName); ok {
		group.AddLog(entry.ID)
		e.groups.Update(ctx, group)
		return fmt.Sprintf("Added log '%s' to group '%s'", entry.Title, group.Name)
	}
	if person, ok := e.findPerson(ctx, a.ItemName); ok {
		group.AddPerson(person.ID)
		e.groups.Update(ctx, group)
		return fmt.Sprintf("Added %s to group '%s'", person.Name, group.Name)
	}
	if event, ok := e.findEvent(ctx, a.ItemName); ok {
		group.AddEvent(event.ID)
		e.groups.Update(ctx, group)
		return fmt.Sprintf("Added event '%s' to group '%s'", event.Title, group.Name)
	}
	return fmt.Sprintf("Could not find item: %s", a.ItemName)
}

func (e *Executor) removeFromGroup(ctx context.Context, a types.RemoveFromGroup) string {
	group, ok := e.findGroup(ctx, a.GroupName)
	if !ok || a.ItemName == "" {
		return "Could not find group"
	}

	if entry, ok := e.findLog(ctx, a.ItemName); ok {
		group.RemoveLog(entry.ID)
		e.groups.Update(ctx, group)
		return "Removed log from group"
	}
	if person, ok := e.findPerson(ctx, a.ItemName); ok {
		group.RemovePerson(person.ID)
		e.groups.Update(ctx, group)
		return fmt.Sprintf("Removed %s from group", person.Name)
	}
	if event, ok := e.findEvent(ctx, a.ItemName); ok {
		group.RemoveEvent(event.ID)
		e.groups.Update(ctx, group)
		return "Removed event from group"
	}
	return "Could not find item to remove"
}

func (e *Executor) findGroup(ctx context.Context, name string) (*types.Group, bool) {
	groups, err := e.groups.List(ctx)
	if err != nil {
		return nil, false
	}
	for _, group := range groups {
		if containsFold(group.Name, name) {
			return group, true
		}
	}
	return nil, false
}

func (e *Executor) findLog(ctx context.Context, title string) (*types.Log, bool) {
	entries, err := e.logs.List(ctx)
	if err != nil {
		return nil, false
	}
	for _, entry := range entries {
		if containsFold(entry.Title, title) {
			return entry, true
		}
	}
	return nil, false
}

func (e *Executor) findEvent(ctx context.Context, title string) (*types.Event, bool) {
	events, err := e.events.List(ctx)
	if err != nil {
		return nil, false
	}
	for _, event := range events {
		if containsFold(event.Title, title) {
			return event, true
		}
	}
	return nil, false
}
