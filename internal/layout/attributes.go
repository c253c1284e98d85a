// Package layout computes and caches placement attributes for a grid of
// independently horizontally-scrollable rows. The Engine is pure geometry;
// the Cache owns the computed attributes and keeps them consistent across
// incremental updates, offset changes, and container resizes.
package layout

import (
	"github.com/dshills/rowgrid/internal/geom"
)

// Stacking order for computed attributes. Item frames always render
// below their row's scroll region.
const (
	ZItemFrame    = 0
	ZScrollRegion = 1
)

// ItemFrame is the placement of a single item: where it sits in layout
// space and how far it is translated by its row's horizontal scroll.
type ItemFrame struct {
	// Row and Column identify the item.
	Row    int
	Column int

	// Rect is the untranslated placement rectangle.
	Rect geom.Rect

	// TranslateX is the horizontal translation applied at render time.
	// It always equals the negative of the owning row's scroll offset.
	TranslateX float64

	// Z is the stacking order (ZItemFrame).
	Z int
}

// VisibleRect returns the placement rectangle with the row's scroll
// translation applied.
func (f ItemFrame) VisibleRect() geom.Rect {
	return f.Rect.Offset(f.TranslateX, 0)
}

// ScrollRegion describes a row's horizontal scroll band: the on-screen
// strip it occupies, the virtual content extent it scrolls over, and the
// current offset. Rows with zero items have no scroll region.
type ScrollRegion struct {
	// Row is the owning row index.
	Row int

	// Band is the on-screen strip: full container width, one item tall.
	Band geom.Rect

	// ContentSize is the virtual scrollable extent of the row.
	ContentSize geom.Size

	// Offset is the current horizontal scroll offset.
	Offset float64

	// Z is the stacking order (ZScrollRegion).
	Z int
}

// MaxOffset returns the largest useful scroll offset for the region:
// the point at which the content's right edge meets the band's right
// edge. Zero when the content fits within the band.
func (r ScrollRegion) MaxOffset() float64 {
	m := r.ContentSize.Width - r.Band.Width
	if m < 0 {
		return 0
	}
	return m
}

// Config holds the fixed geometry parameters for a layout pass.
// It is read-only during computation.
type Config struct {
	// ItemWidth and ItemHeight are the fixed item dimensions.
	ItemWidth  float64
	ItemHeight float64

	// ColumnSpacing separates adjacent items within a row.
	ColumnSpacing float64

	// RowSpacing separates adjacent row bands.
	RowSpacing float64

	// Insets pad the grid's outer edges.
	Insets geom.Insets
}

// bandY returns the top edge of a row's band.
func (c Config) bandY(row int) float64 {
	return c.Insets.Top + float64(row)*(c.ItemHeight+c.RowSpacing)
}

// contentWidth returns the virtual scrollable width for a row with the
// given item count. Only meaningful for itemCount > 0.
func (c Config) contentWidth(itemCount int) float64 {
	return c.Insets.Left + c.Insets.Right +
		float64(itemCount)*c.ItemWidth +
		float64(itemCount-1)*c.ColumnSpacing
}
