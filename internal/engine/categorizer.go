package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/scrypster/journa/internal/config"
	"github.com/scrypster/journa/internal/directory"
	"github.com/scrypster/journa/internal/llm"
	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/pkg/types"
)

// Token budgets per extraction call.
const (
	peopleMaxTokens  = 1024
	datesMaxTokens   = 1024
	summaryMaxTokens = 256
	importMaxTokens  = 1500
)

// Categorizer runs the extraction pipeline: journal text goes to the model,
// tagged segments come back, and Commit fans the confirmed segments out to
// the log, event, and person stores.
type Categorizer struct {
	gen    llm.TextGenerator
	dir    *directory.Directory
	logs   storage.LogStore
	events storage.EventStore
	cfg    config.CategorizeConfig

	// now is swappable for tests.
	now func() time.Time
}

// NewCategorizer creates a categorizer over the given generator, directory,
// and stores.
func NewCategorizer(gen llm.TextGenerator, dir *directory.Directory, logs storage.LogStore, events storage.EventStore, cfg config.CategorizeConfig) *Categorizer {
	return &Categorizer{
		gen:    gen,
		dir:    dir,
		logs:   logs,
		events: events,
		cfg:    cfg,
		now:    time.Now,
	}
}

// CategorizeJournal extracts segments from a journal entry. Up to three
// model calls run in order (people, dates, summary) per the configured
// toggles. Any call failing fails the whole categorization; partial results
// are discarded. Self-referential person segments come back marked removed.
func (c *Categorizer) CategorizeJournal(ctx context.Context, text string) ([]types.Segment, error) {
	var segments []types.Segment

	if c.cfg.People {
		contactList, err := c.dir.ActiveContactList(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCategorizationFailed, err)
		}
		response, err := c.gen.Complete(ctx, llm.JournalPeoplePrompt(contactList, text), peopleMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("%w: people scan: %v", ErrCategorizationFailed, err)
		}
		segments = append(segments, llm.ParsePersonTags(response)...)
	}

	if c.cfg.Calendar {
		response, err := c.gen.Complete(ctx, llm.JournalDatesPrompt(text), datesMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("%w: date scan: %v", ErrCategorizationFailed, err)
		}
		segments = append(segments, llm.ParseTag(response, types.SegmentDate)...)
	}

	if c.cfg.Logs {
		response, err := c.gen.Complete(ctx, llm.JournalSummaryPrompt(text), summaryMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("%w: summary: %v", ErrCategorizationFailed, err)
		}
		segments = append(segments, llm.ParseTag(response, types.SegmentLog)...)
	}

	return c.dir.FilterSelfReferences(segments), nil
}

// CategorizeImport extracts segments from an imported conversation with a
// single combined model call. povIsMe states whether the transcript is from
// the journal author's point of view.
func (c *Categorizer) CategorizeImport(ctx context.Context, text, source, fromContact string, povIsMe bool) ([]types.Segment, error) {
	contactList, err := c.dir.ActiveContactList(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategorizationFailed, err)
	}
	response, err := c.gen.Complete(ctx, llm.ImportPrompt(source, fromContact, povIsMe, contactList, text), importMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: import: %v", ErrCategorizationFailed, err)
	}
	return c.dir.FilterSelfReferences(llm.ParseAll(response)), nil
}

// QuickSave stores raw text as a log without categorization. A non-blank
// title overrides the default.
func (c *Categorizer) QuickSave(ctx context.Context, rawText, title string) (*types.Log, error) {
	entry := types.NewLog(rawText, nil)
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		entry.Title = trimmed
	}
	if err := c.logs.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("save log: %w", err)
	}
	return entry, nil
}

// Commit persists a reviewed categorization. The log is saved with all
// segments (removed ones included, for audit), then each active segment
// fans out: date segments become dated events, log segments become
// logged-activity events, and person segments become notes on the matching
// person. A person segment matching several contacts is queued on the
// returned ConflictQueue for the user to resolve; one matching nobody is
// dropped. importSource and importContact are empty for plain journal
// entries.
func (c *Categorizer) Commit(ctx context.Context, rawText string, segments []types.Segment, importSource, importContact string) (*types.Log, *ConflictQueue, error) {
	entry := types.NewLog(rawText, segments)
	entry.ImportSource = importSource
	entry.ImportContact = importContact
	if err := c.logs.Insert(ctx, entry); err != nil {
		return nil, nil, fmt.Errorf("save log: %w", err)
	}

	queue := NewConflictQueue(c.dir, entry.ID, nil)

	for _, segment := range entry.ActiveSegments() {
		switch segment.Kind() {
		case types.SegmentDate:
			date := ParseNaturalDate(segment.Text, c.now())
			event := types.NewEvent(segment.Text, date, types.EventDated)
			if err := c.events.Insert(ctx, event); err != nil {
				return nil, nil, fmt.Errorf("save event: %w", err)
			}

		case types.SegmentLog:
			event := types.NewEvent(segment.Text, c.now(), types.EventLogged)
			if err := c.events.Insert(ctx, event); err != nil {
				return nil, nil, fmt.Errorf("save event: %w", err)
			}

		case types.SegmentPerson:
			searchName := segment.ContactName
			if searchName == "" {
				searchName = segment.Text
			}
			matches, err := c.dir.MatchContacts(ctx, searchName)
			if err != nil {
				return nil, nil, fmt.Errorf("match contacts: %w", err)
			}
			switch len(matches) {
			case 0:
				log.Printf("no contact match for %q, dropping segment", searchName)
			case 1:
				person := matches[0]
				if err := c.dir.SavePersonNote(ctx, person.Name, segment.Text, person.ContactID, entry.ID); err != nil {
					return nil, nil, fmt.Errorf("save note: %w", err)
				}
			default:
				queue.Enqueue(segment, matches)
			}
		}
	}

	return entry, queue, nil
}

// Recategorize re-runs journal extraction on a stored log and replaces its
// segments wholesale. It does not re-fan-out to events or notes; Commit
// semantics apply only to the initial save.
func (c *Categorizer) Recategorize(ctx context.Context, logID string) (*types.Log, error) {
	entry, err := c.logs.Get(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("load log: %w", err)
	}
	segments, err := c.CategorizeJournal(ctx, entry.RawText)
	if err != nil {
		return nil, err
	}
	entry.Segments = segments
	for _, seg := range segments {
		if seg.Kind() == types.SegmentLog {
			entry.Title = seg.Text
			break
		}
	}
	if err := c.logs.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update log: %w", err)
	}
	return entry, nil
}
