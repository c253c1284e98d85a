package update

import (
	"testing"

	"github.com/dshills/rowgrid/internal/geom"
	"github.com/dshills/rowgrid/internal/layout"
)

// mapCounts is a Counts backed by a slice of per-row item counts.
type mapCounts []int

func (m mapCounts) NumItems(row int) int {
	if row < 0 || row >= len(m) {
		return 0
	}
	return m[row]
}

func newTestCache(counts []int) *layout.Cache {
	cfg := layout.Config{
		ItemWidth:     10,
		ItemHeight:    4,
		ColumnSpacing: 2,
		RowSpacing:    1,
		Insets:        geom.Insets{Top: 1, Left: 3, Bottom: 1, Right: 3},
	}
	cache := layout.NewCache(layout.NewEngine(cfg))
	cache.RecomputeAll(counts, 80, false)
	return cache
}

func TestTrackerStateMachine(t *testing.T) {
	tr := NewTracker(newTestCache(nil), mapCounts{})

	if tr.State() != StateIdle {
		t.Errorf("new tracker state = %v, want idle", tr.State())
	}

	tr.Begin()
	if tr.State() != StateCollecting {
		t.Errorf("state after Begin = %v, want collecting", tr.State())
	}
	if tr.BatchID().String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("collecting batch should have a non-nil ID")
	}

	tr.End()
	if tr.State() != StateIdle {
		t.Errorf("state after End = %v, want idle", tr.State())
	}
}

func TestEndClearsAllLists(t *testing.T) {
	counts := mapCounts{2, 3, 2}
	tr := NewTracker(newTestCache([]int{2, 3, 2}), counts)

	tr.Begin()
	tr.Record(Mutation{Action: ActionInsert, Row: 1, Column: NoIndex})
	tr.Record(Mutation{Action: ActionInsert, Row: 0, Column: 1})
	tr.Record(Mutation{Action: ActionDelete, Row: 2, Column: NoIndex})
	tr.Record(Mutation{Action: ActionDelete, Row: 0, Column: 0})

	if len(tr.InsertedRows()) != 1 || len(tr.InsertedItems()) != 1 ||
		len(tr.RemovedRows()) != 1 || len(tr.RemovedItems()) != 1 {
		t.Fatal("mutations were not recorded")
	}

	tr.End()

	if len(tr.InsertedRows()) != 0 || len(tr.InsertedItems()) != 0 ||
		len(tr.RemovedRows()) != 0 || len(tr.RemovedItems()) != 0 {
		t.Error("End should clear every collected list")
	}
}

func TestEndWithoutMutationsClears(t *testing.T) {
	tr := NewTracker(newTestCache(nil), mapCounts{})

	tr.Begin()
	tr.End()

	if len(tr.InsertedRows()) != 0 || len(tr.RemovedRows()) != 0 {
		t.Error("lists should be empty after an empty batch")
	}
	if tr.State() != StateIdle {
		t.Errorf("state = %v, want idle", tr.State())
	}
}

func TestRowInsertMaterializesEntry(t *testing.T) {
	// Counts reflect the post-insert data source: the new row 1 holds
	// three items.
	cache := newTestCache([]int{2, 2, 2})
	tr := NewTracker(cache, mapCounts{2, 3, 2, 2})

	tr.Begin()
	tr.Record(Mutation{Action: ActionInsert, Row: 1, Column: NoIndex})

	region, ok := cache.ScrollRegion(1)
	if !ok {
		t.Fatal("inserted row should have a scroll region")
	}
	if region.Offset != 0 {
		t.Errorf("inserted row offset = %g, want 0", region.Offset)
	}
	for col := 0; col < 3; col++ {
		if _, ok := cache.ItemFrame(1, col); !ok {
			t.Errorf("inserted row missing frame %d", col)
		}
	}

	rows := tr.InsertedRows()
	if len(rows) != 1 || rows[0] != 1 {
		t.Errorf("inserted rows = %v, want [1]", rows)
	}
}

func TestItemInsertRefreshesRow(t *testing.T) {
	cache := newTestCache([]int{3})
	if err := cache.SetRowOffset(0, 18); err != nil {
		t.Fatalf("SetRowOffset returned error: %v", err)
	}

	// Count already reflects the insert: row 0 now has four items.
	tr := NewTracker(cache, mapCounts{4})

	tr.Begin()
	tr.Record(Mutation{Action: ActionInsert, Row: 0, Column: 3})

	if _, ok := cache.ItemFrame(0, 3); !ok {
		t.Fatal("refreshed row missing new frame")
	}

	region, _ := cache.ScrollRegion(0)
	if region.Offset != 18 {
		t.Errorf("offset after item insert = %g, want 18", region.Offset)
	}
	// Content width for 4 items: 3+3 + 4*10 + 3*2.
	if region.ContentSize.Width != 52 {
		t.Errorf("content width = %g, want 52", region.ContentSize.Width)
	}
}

func TestDeleteDoesNotMutateCache(t *testing.T) {
	cache := newTestCache([]int{2, 2})
	tr := NewTracker(cache, mapCounts{2})

	tr.Begin()
	tr.Record(Mutation{Action: ActionDelete, Row: 1, Column: NoIndex})
	tr.Record(Mutation{Action: ActionDelete, Row: 0, Column: 1})

	// Deletions are recorded only; pruning happens at the next full
	// recompute.
	if _, ok := cache.ScrollRegion(1); !ok {
		t.Error("deleted row entry should survive until full recompute")
	}
	if _, ok := cache.ItemFrame(0, 1); !ok {
		t.Error("deleted item frame should survive until full recompute")
	}

	if rows := tr.RemovedRows(); len(rows) != 1 || rows[0] != 1 {
		t.Errorf("removed rows = %v, want [1]", rows)
	}
	items := tr.RemovedItems()
	if len(items) != 1 || items[0] != (ItemIndex{Row: 0, Column: 1}) {
		t.Errorf("removed items = %v, want [{0 1}]", items)
	}
}

func TestUnresolvableMutationSkipped(t *testing.T) {
	tr := NewTracker(newTestCache([]int{1}), mapCounts{1})

	tr.Begin()
	before := tr.SkippedCount()
	tr.Record(Mutation{Action: ActionInsert, Row: NoIndex, Column: NoIndex})

	if tr.SkippedCount() != before+1 {
		t.Error("unresolvable mutation should be counted as skipped")
	}
	if len(tr.InsertedRows()) != 0 || len(tr.InsertedItems()) != 0 {
		t.Error("unresolvable mutation should not be recorded")
	}

	// The batch keeps working after a skip.
	tr.Record(Mutation{Action: ActionDelete, Row: 0, Column: NoIndex})
	if len(tr.RemovedRows()) != 1 {
		t.Error("batch should continue after a skipped mutation")
	}
}

func TestRecordOutsideBatchSkipped(t *testing.T) {
	tr := NewTracker(newTestCache([]int{1}), mapCounts{1})

	before := tr.SkippedCount()
	tr.Record(Mutation{Action: ActionInsert, Row: 0, Column: NoIndex})

	if tr.SkippedCount() != before+1 {
		t.Error("recording while idle should be skipped")
	}
	if len(tr.InsertedRows()) != 0 {
		t.Error("idle tracker should not record mutations")
	}
}

func TestBatchIDNilWhenIdle(t *testing.T) {
	tr := NewTracker(newTestCache(nil), mapCounts{})

	if tr.BatchID().String() != "00000000-0000-0000-0000-000000000000" {
		t.Error("idle tracker should report the nil batch ID")
	}
}

func TestSetCounts(t *testing.T) {
	cache := newTestCache([]int{1})
	tr := NewTracker(cache, mapCounts{1})

	// The new count source takes effect for subsequent mutations.
	tr.SetCounts(mapCounts{2})
	tr.Begin()
	tr.Record(Mutation{Action: ActionInsert, Row: 0, Column: 1})

	if _, ok := cache.ItemFrame(0, 1); !ok {
		t.Error("refresh should use the replaced count source")
	}
}

func TestActionString(t *testing.T) {
	if ActionInsert.String() != "insert" {
		t.Errorf("ActionInsert = %q", ActionInsert.String())
	}
	if ActionDelete.String() != "delete" {
		t.Errorf("ActionDelete = %q", ActionDelete.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("unknown action = %q", Action(99).String())
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateCollecting.String() != "collecting" {
		t.Error("state names should be idle/collecting")
	}
	if State(99).String() != "unknown" {
		t.Errorf("unknown state = %q", State(99).String())
	}
}
