package layout

import (
	"errors"
	"testing"

	"github.com/dshills/rowgrid/internal/geom"
)

func testConfig() Config {
	return Config{
		ItemWidth:     10,
		ItemHeight:    4,
		ColumnSpacing: 2,
		RowSpacing:    1,
		Insets:        geom.Insets{Top: 1, Left: 3, Bottom: 1, Right: 3},
	}
}

func TestRowItemFramesGeometry(t *testing.T) {
	engine := NewEngine(testConfig())

	frames, err := engine.RowItemFrames(2, 3, 0)
	if err != nil {
		t.Fatalf("RowItemFrames returned error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}

	// Band y = top inset + row*(itemHeight+rowSpacing) = 1 + 2*5.
	wantY := 11.0
	for col, f := range frames {
		wantX := 3 + float64(col)*12
		if f.Rect.X != wantX || f.Rect.Y != wantY {
			t.Errorf("frame %d at (%g, %g), want (%g, %g)", col, f.Rect.X, f.Rect.Y, wantX, wantY)
		}
		if f.Rect.Width != 10 || f.Rect.Height != 4 {
			t.Errorf("frame %d size %gx%g, want 10x4", col, f.Rect.Width, f.Rect.Height)
		}
		if f.Row != 2 || f.Column != col {
			t.Errorf("frame %d indices (%d, %d), want (2, %d)", col, f.Row, f.Column, col)
		}
		if f.Z != ZItemFrame {
			t.Errorf("frame %d z = %d, want %d", col, f.Z, ZItemFrame)
		}
	}
}

func TestRowItemFramesSpacing(t *testing.T) {
	engine := NewEngine(testConfig())

	frames, err := engine.RowItemFrames(0, 4, 0)
	if err != nil {
		t.Fatalf("RowItemFrames returned error: %v", err)
	}

	// Adjacent frames are separated by exactly the column spacing and
	// never overlap.
	for i := 1; i < len(frames); i++ {
		gap := frames[i].Rect.X - frames[i-1].Rect.MaxX()
		if gap != 2 {
			t.Errorf("gap between frames %d and %d = %g, want 2", i-1, i, gap)
		}
		if frames[i-1].Rect.Intersects(frames[i].Rect) {
			t.Errorf("frames %d and %d overlap", i-1, i)
		}
	}
}

func TestRowItemFramesTranslation(t *testing.T) {
	engine := NewEngine(testConfig())

	frames, err := engine.RowItemFrames(0, 2, 37)
	if err != nil {
		t.Fatalf("RowItemFrames returned error: %v", err)
	}

	for i, f := range frames {
		if f.TranslateX != -37 {
			t.Errorf("frame %d translation = %g, want -37", i, f.TranslateX)
		}
	}

	// VisibleRect applies the translation to the placement rect.
	got := frames[0].VisibleRect().X
	if got != frames[0].Rect.X-37 {
		t.Errorf("VisibleRect().X = %g, want %g", got, frames[0].Rect.X-37)
	}
}

func TestRowItemFramesEmptyRow(t *testing.T) {
	engine := NewEngine(testConfig())

	frames, err := engine.RowItemFrames(0, 0, 0)
	if err != nil {
		t.Fatalf("zero items should not error: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %d", len(frames))
	}
}

func TestRowItemFramesNegativeCount(t *testing.T) {
	engine := NewEngine(testConfig())

	_, err := engine.RowItemFrames(0, -1, 0)
	if !errors.Is(err, ErrPrecondition) {
		t.Errorf("expected ErrPrecondition, got %v", err)
	}
}

func TestRowScrollRegion(t *testing.T) {
	engine := NewEngine(testConfig())

	region, err := engine.RowScrollRegion(1, 5, 80)
	if err != nil {
		t.Fatalf("RowScrollRegion returned error: %v", err)
	}

	wantBand := geom.NewRect(0, 6, 80, 4)
	if region.Band != wantBand {
		t.Errorf("band = %+v, want %+v", region.Band, wantBand)
	}

	// Content width = left+right insets + 5*10 + 4*2.
	wantContent := geom.Size{Width: 64, Height: 4}
	if region.ContentSize != wantContent {
		t.Errorf("content size = %+v, want %+v", region.ContentSize, wantContent)
	}
	if region.Offset != 0 {
		t.Errorf("new region offset = %g, want 0", region.Offset)
	}
	if region.Z != ZScrollRegion {
		t.Errorf("z = %d, want %d", region.Z, ZScrollRegion)
	}
}

func TestRowScrollRegionZeroItems(t *testing.T) {
	engine := NewEngine(testConfig())

	_, err := engine.RowScrollRegion(0, 0, 80)
	if !errors.Is(err, ErrPrecondition) {
		t.Errorf("zero-item scroll region should violate precondition, got %v", err)
	}

	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatal("error should be a *PreconditionError")
	}
	if pe.Op != "RowScrollRegion" {
		t.Errorf("Op = %q, want RowScrollRegion", pe.Op)
	}
}

func TestItemFrameAtMatchesRowLayout(t *testing.T) {
	engine := NewEngine(testConfig())

	frames, err := engine.RowItemFrames(3, 6, 12)
	if err != nil {
		t.Fatalf("RowItemFrames returned error: %v", err)
	}

	// Closed-form placement agrees with the full row layout.
	for col := 0; col < 6; col++ {
		single, err := engine.ItemFrameAt(3, col, 12)
		if err != nil {
			t.Fatalf("ItemFrameAt(3, %d) returned error: %v", col, err)
		}
		if single != frames[col] {
			t.Errorf("ItemFrameAt(3, %d) = %+v, want %+v", col, single, frames[col])
		}
	}
}

func TestItemFrameAtNegativeIndex(t *testing.T) {
	engine := NewEngine(testConfig())

	if _, err := engine.ItemFrameAt(-1, 0, 0); !errors.Is(err, ErrPrecondition) {
		t.Errorf("negative row: expected ErrPrecondition, got %v", err)
	}
	if _, err := engine.ItemFrameAt(0, -1, 0); !errors.Is(err, ErrPrecondition) {
		t.Errorf("negative column: expected ErrPrecondition, got %v", err)
	}
}

func TestScrollRegionMaxOffset(t *testing.T) {
	region := ScrollRegion{
		Band:        geom.NewRect(0, 0, 80, 4),
		ContentSize: geom.Size{Width: 200, Height: 4},
	}
	if region.MaxOffset() != 120 {
		t.Errorf("MaxOffset() = %g, want 120", region.MaxOffset())
	}

	// Content narrower than the band never scrolls.
	region.ContentSize.Width = 50
	if region.MaxOffset() != 0 {
		t.Errorf("MaxOffset() = %g, want 0", region.MaxOffset())
	}
}
