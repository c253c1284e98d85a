// Package update accumulates a batch of insert/delete notifications for
// one update cycle and applies them incrementally to the layout cache.
// The tracker is a two-state machine: Idle outside a batch, Collecting
// between Begin and End. Ending a batch always clears the collected
// entries.
package update

import (
	"log"

	"github.com/google/uuid"
)

// Action is the kind of a reported mutation.
type Action uint8

const (
	// ActionInsert indicates a row or item was inserted.
	ActionInsert Action = iota

	// ActionDelete indicates a row or item was deleted.
	ActionDelete
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// NoIndex marks an unresolved row or column in a Mutation.
const NoIndex = -1

// Mutation is one reported insert or delete. A mutation with a resolved
// row but Column == NoIndex is row-level; one with both resolved is
// item-level. A mutation with neither resolved is unresolvable and is
// skipped.
type Mutation struct {
	Action Action
	Row    int
	Column int
}

// ItemIndex identifies one item by row and column.
type ItemIndex struct {
	Row    int
	Column int
}

// State is the tracker's position in the update cycle.
type State uint8

const (
	// StateIdle means no batch is in progress; all lists are empty.
	StateIdle State = iota

	// StateCollecting means a batch is open and mutations are recorded.
	StateCollecting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	default:
		return "unknown"
	}
}

// RowCache is the subset of cache operations the tracker needs to apply
// mutations incrementally.
type RowCache interface {
	// MaterializeRow creates entries for a newly inserted row at
	// offset zero.
	MaterializeRow(row, itemCount int) error

	// RefreshRow recomputes a row's entries for a changed item count,
	// preserving its scroll offset.
	RefreshRow(row, itemCount int) error
}

// Counts supplies the current item count per row. Counts reflect the
// post-mutation data source state by the time a mutation is reported.
type Counts interface {
	NumItems(row int) int
}

// Tracker collects one batch of mutations and applies the insertions to
// the cache as they arrive. Deletions are recorded only; the cache is
// pruned at the next full recompute.
type Tracker struct {
	state   State
	batchID uuid.UUID

	cache  RowCache
	counts Counts

	insertedRows  []int
	removedRows   []int
	insertedItems []ItemIndex
	removedItems  []ItemIndex

	skipped uint64
}

// NewTracker creates an idle tracker operating on the given cache and
// count source.
func NewTracker(cache RowCache, counts Counts) *Tracker {
	return &Tracker{
		state:  StateIdle,
		cache:  cache,
		counts: counts,
	}
}

// State returns the tracker's current state.
func (t *Tracker) State() State {
	return t.state
}

// BatchID returns the identifier of the current batch, or uuid.Nil when
// idle.
func (t *Tracker) BatchID() uuid.UUID {
	if t.state != StateCollecting {
		return uuid.Nil
	}
	return t.batchID
}

// SetCounts replaces the item-count source.
func (t *Tracker) SetCounts(counts Counts) {
	t.counts = counts
}

// Begin opens a new update batch and enters the Collecting state.
// Beginning while already collecting restarts the batch.
func (t *Tracker) Begin() {
	t.clear()
	t.state = StateCollecting
	t.batchID = uuid.New()
}

// End closes the current batch, clears every collected list, and
// returns to Idle. Ending without a batch in progress is a no-op; the
// lists are cleared either way.
func (t *Tracker) End() {
	t.clear()
	t.state = StateIdle
	t.batchID = uuid.Nil
}

// Record processes one mutation for the current batch. Insertions are
// applied to the cache immediately; deletions are recorded for the next
// full recompute. A mutation with neither row nor column resolved is
// logged and skipped. Recording while idle is a precondition violation
// by the host and is skipped the same way.
func (t *Tracker) Record(m Mutation) {
	if t.state != StateCollecting {
		t.skip("mutation outside update batch", m)
		return
	}
	if m.Row == NoIndex && m.Column == NoIndex {
		t.skip("unresolvable mutation", m)
		return
	}

	switch {
	case m.Action == ActionInsert && m.Column == NoIndex:
		t.insertRow(m.Row)
	case m.Action == ActionInsert:
		t.insertItem(m.Row, m.Column)
	case m.Action == ActionDelete && m.Column == NoIndex:
		t.removedRows = append(t.removedRows, m.Row)
	case m.Action == ActionDelete:
		t.removedItems = append(t.removedItems, ItemIndex{Row: m.Row, Column: m.Column})
	}
}

// InsertedRows returns the row indices inserted in the current batch.
func (t *Tracker) InsertedRows() []int {
	return t.copyInts(t.insertedRows)
}

// RemovedRows returns the row indices removed in the current batch.
func (t *Tracker) RemovedRows() []int {
	return t.copyInts(t.removedRows)
}

// InsertedItems returns the item indices inserted in the current batch.
func (t *Tracker) InsertedItems() []ItemIndex {
	return t.copyItems(t.insertedItems)
}

// RemovedItems returns the item indices removed in the current batch.
func (t *Tracker) RemovedItems() []ItemIndex {
	return t.copyItems(t.removedItems)
}

// SkippedCount returns the number of mutations skipped as unresolvable
// since the tracker was created.
func (t *Tracker) SkippedCount() uint64 {
	return t.skipped
}

// insertRow records a row insertion and materializes its cache entries
// at offset zero from the current item count.
func (t *Tracker) insertRow(row int) {
	t.insertedRows = append(t.insertedRows, row)

	count := 0
	if t.counts != nil {
		count = t.counts.NumItems(row)
	}
	if err := t.cache.MaterializeRow(row, count); err != nil {
		log.Printf("update: batch %s: materialize row %d: %v", t.batchID, row, err)
	}
}

// insertItem records an item insertion and refreshes the owning row.
// Counts have already changed by the time the mutation fires, so the
// row's full frame list is recomputed with its offset preserved.
func (t *Tracker) insertItem(row, column int) {
	t.insertedItems = append(t.insertedItems, ItemIndex{Row: row, Column: column})

	count := 0
	if t.counts != nil {
		count = t.counts.NumItems(row)
	}
	if err := t.cache.RefreshRow(row, count); err != nil {
		log.Printf("update: batch %s: refresh row %d: %v", t.batchID, row, err)
	}
}

// skip logs and counts a mutation that cannot be applied.
func (t *Tracker) skip(reason string, m Mutation) {
	t.skipped++
	log.Printf("update: skipping %s %s (row %d, column %d)", reason, m.Action, m.Row, m.Column)
}

// clear empties all four mutation lists.
func (t *Tracker) clear() {
	t.insertedRows = t.insertedRows[:0]
	t.removedRows = t.removedRows[:0]
	t.insertedItems = t.insertedItems[:0]
	t.removedItems = t.removedItems[:0]
}

func (t *Tracker) copyInts(src []int) []int {
	out := make([]int, len(src))
	copy(out, src)
	return out
}

func (t *Tracker) copyItems(src []ItemIndex) []ItemIndex {
	out := make([]ItemIndex, len(src))
	copy(out, src)
	return out
}
