package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// GroupAggregator sweeps a categorized log into a group: the log itself
// plus the people and events its active segments produced.
type GroupAggregator struct {
	groups storage.GroupStore
	people storage.PersonStore
	events storage.EventStore
}

// NewGroupAggregator creates an aggregator over the given stores.
func NewGroupAggregator(groups storage.GroupStore, people storage.PersonStore, events storage.EventStore) *GroupAggregator {
	return &GroupAggregator{groups: groups, people: people, events: events}
}

// AddCategorization adds a log and its derived members to a group. Person
// segments attach the person whose name equals the segment's contact name
// (case-insensitive); date segments attach the event whose title equals the
// segment text. Removed segments contribute nothing. All additions are
// idempotent.
func (g *GroupAggregator) AddCategorization(ctx context.Context, entry *types.Log, groupID string) error {
	group, err := g.groups.Get(ctx, groupID)
	if err != nil {
		return fmt.Errorf("load group: %w", err)
	}

	group.AddLog(entry.ID)

	people, err := g.people.List(ctx)
	if err != nil {
		return fmt.Errorf("list people: %w", err)
	}
	events, err := g.events.List(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	for _, segment := range entry.ActiveSegments() {
		if segment.HasType(types.SegmentPerson) && segment.ContactName != "" {
			for _, person := range people {
				if strings.EqualFold(person.Name, segment.ContactName) {
					group.AddPerson(person.ID)
					break
				}
			}
		}
		if segment.HasType(types.SegmentDate) {
			for _, event := range events {
				if event.Title == segment.Text {
					group.AddEvent(event.ID)
					break
				}
			}
		}
	}

	if err := g.groups.Update(ctx, group); err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// GroupsContainingLog returns the groups holding the given log.
func (g *GroupAggregator) GroupsContainingLog(ctx context.Context, logID string) ([]*types.Group, error) {
	return g.filterGroups(ctx, func(group *types.Group) bool { return group.ContainsLog(logID) })
}

// GroupsContainingPerson returns the groups holding the given person.
func (g *GroupAggregator) GroupsContainingPerson(ctx context.Context, personID string) ([]*types.Group, error) {
	return g.filterGroups(ctx, func(group *types.Group) bool { return group.ContainsPerson(personID) })
}

// GroupsContainingEvent returns the groups holding the given event.
func (g *GroupAggregator) GroupsContainingEvent(ctx context.Context, eventID string) ([]*types.Group, error) {
	return g.filterGroups(ctx, func(group *types.Group) bool { return group.ContainsEvent(eventID) })
}

func (g *GroupAggregator) filterGroups(ctx context.Context, keep func(*types.Group) bool) ([]*types.Group, error) {
	groups, err := g.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	var matched []*types.Group
	for _, group := range groups {
		if keep(group) {
			matched = append(matched, group)
		}
	}
	return matched, nil
}
