package engine

import (
	"context"
	"sync"

	"github.com/scrypster/journa/internal/directory"
	"github.com/scrypster/journa/pkg/types"
)

// QueueState describes the conflict queue's lifecycle.
type QueueState string

const (
	// QueueIdle means no ambiguous segments are pending.
	QueueIdle QueueState = "idle"
	// QueueAwaitingChoice means the head segment needs a user decision.
	QueueAwaitingChoice QueueState = "awaiting_choice"
	// QueueDraining means a resolution is being applied.
	QueueDraining QueueState = "draining"
)

// PendingSegment is a person segment whose name matched more than one
// contact. The user picks which candidate the note belongs to.
type PendingSegment struct {
	Segment    types.Segment
	Candidates []*types.Person
}

// ConflictQueue holds ambiguous person segments from one commit, in
// extraction order. Each resolution writes exactly one note; skipping
// writes nothing. When the last pending segment is decided the queue
// drains and fires its callback.
type ConflictQueue struct {
	mu          sync.Mutex
	pending     []PendingSegment
	state       QueueState
	dir         *directory.Directory
	originLogID string
	onDrained   func()
}

// NewConflictQueue creates an idle queue whose resolutions write notes
// attributed to the given origin log. onDrained may be nil.
func NewConflictQueue(dir *directory.Directory, originLogID string, onDrained func()) *ConflictQueue {
	return &ConflictQueue{
		state:       QueueIdle,
		dir:         dir,
		originLogID: originLogID,
		onDrained:   onDrained,
	}
}

// Enqueue adds an ambiguous segment with its candidate people.
func (q *ConflictQueue) Enqueue(segment types.Segment, candidates []*types.Person) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, PendingSegment{Segment: segment, Candidates: candidates})
	q.state = QueueAwaitingChoice
}

// State returns the current queue state.
func (q *ConflictQueue) State() QueueState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Len returns the number of pending segments.
func (q *ConflictQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Current returns the head pending segment, if any.
func (q *ConflictQueue) Current() (PendingSegment, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return PendingSegment{}, false
	}
	return q.pending[0], true
}

// Resolve attributes the head segment's text as a note on the chosen person
// and advances the queue. The note write happens before the queue advances,
// so a storage failure leaves the segment pending for retry.
func (q *ConflictQueue) Resolve(ctx context.Context, person *types.Person) error {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return nil
	}
	current := q.pending[0]
	q.state = QueueDraining
	q.mu.Unlock()

	err := q.dir.SavePersonNote(ctx, person.Name, current.Segment.Text, person.ContactID, q.originLogID)

	q.mu.Lock()
	if err != nil {
		q.state = QueueAwaitingChoice
		q.mu.Unlock()
		return err
	}
	q.pending = q.pending[1:]
	q.advanceLocked()
	return nil
}

// Skip discards the head segment without writing a note.
func (q *ConflictQueue) Skip() {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}
	q.pending = q.pending[1:]
	q.advanceLocked()
}

// advanceLocked updates state after a pop and releases the mutex. The
// drained callback runs outside the lock.
func (q *ConflictQueue) advanceLocked() {
	if len(q.pending) > 0 {
		q.state = QueueAwaitingChoice
		q.mu.Unlock()
		return
	}
	q.state = QueueIdle
	drained := q.onDrained
	q.mu.Unlock()
	if drained != nil {
		drained()
	}
}
