package layout

import (
	"github.com/dshills/rowgrid/internal/geom"
)

// Engine computes placement attributes from row/column indices and the
// layout configuration. It holds no state beyond the configuration and
// every method is a pure function of its inputs.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// RowItemFrames lays out itemCount frames for a row, left to right,
// each translated by the negative of the row's scroll offset.
// A negative itemCount is a precondition violation.
func (e *Engine) RowItemFrames(row, itemCount int, offset float64) ([]ItemFrame, error) {
	if itemCount < 0 {
		return nil, newPrecondition("RowItemFrames", row, -1, "negative item count")
	}

	frames := make([]ItemFrame, itemCount)
	y := e.cfg.bandY(row)
	for col := 0; col < itemCount; col++ {
		frames[col] = ItemFrame{
			Row:    row,
			Column: col,
			Rect: geom.NewRect(
				e.cfg.Insets.Left+float64(col)*(e.cfg.ItemWidth+e.cfg.ColumnSpacing),
				y,
				e.cfg.ItemWidth,
				e.cfg.ItemHeight,
			),
			TranslateX: -offset,
			Z:          ZItemFrame,
		}
	}
	return frames, nil
}

// RowScrollRegion computes a row's scroll band and virtual content size.
// A scroll region for an empty row is undefined; itemCount == 0 is a
// precondition violation, as is a negative count.
func (e *Engine) RowScrollRegion(row, itemCount int, containerWidth float64) (ScrollRegion, error) {
	if itemCount == 0 {
		return ScrollRegion{}, newPrecondition("RowScrollRegion", row, -1, "zero-item row has no scroll region")
	}
	if itemCount < 0 {
		return ScrollRegion{}, newPrecondition("RowScrollRegion", row, -1, "negative item count")
	}

	return ScrollRegion{
		Row:         row,
		Band:        geom.NewRect(0, e.cfg.bandY(row), containerWidth, e.cfg.ItemHeight),
		ContentSize: geom.Size{Width: e.cfg.contentWidth(itemCount), Height: e.cfg.ItemHeight},
		Z:           ZScrollRegion,
	}, nil
}

// ItemFrameAt computes the closed-form placement of a single item
// without needing the row's item count. Negative indices are a
// precondition violation.
func (e *Engine) ItemFrameAt(row, column int, offset float64) (ItemFrame, error) {
	if row < 0 || column < 0 {
		return ItemFrame{}, newPrecondition("ItemFrameAt", row, column, "negative index")
	}

	return ItemFrame{
		Row:    row,
		Column: column,
		Rect: geom.NewRect(
			e.cfg.Insets.Left+float64(column)*(e.cfg.ItemWidth+e.cfg.ColumnSpacing),
			e.cfg.bandY(row),
			e.cfg.ItemWidth,
			e.cfg.ItemHeight,
		),
		TranslateX: -offset,
		Z:          ZItemFrame,
	}, nil
}
