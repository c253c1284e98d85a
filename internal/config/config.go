// Package config loads and validates the grid's layout configuration
// and notifies subscribers when the backing file changes on disk.
package config

import (
	"fmt"

	"github.com/dshills/rowgrid/internal/geom"
	"github.com/dshills/rowgrid/internal/layout"
)

// Layout is the on-disk layout configuration.
type Layout struct {
	// ItemWidth and ItemHeight are the fixed item dimensions.
	ItemWidth  float64 `toml:"item_width"`
	ItemHeight float64 `toml:"item_height"`

	// ColumnSpacing separates adjacent items within a row.
	ColumnSpacing float64 `toml:"column_spacing"`

	// RowSpacing separates adjacent row bands.
	RowSpacing float64 `toml:"row_spacing"`

	// Insets pad the grid's outer edges.
	Insets InsetConfig `toml:"insets"`
}

// InsetConfig holds the four outer edge insets.
type InsetConfig struct {
	Top    float64 `toml:"top"`
	Left   float64 `toml:"left"`
	Bottom float64 `toml:"bottom"`
	Right  float64 `toml:"right"`
}

// Default returns the built-in layout configuration.
func Default() Layout {
	return Layout{
		ItemWidth:     12,
		ItemHeight:    4,
		ColumnSpacing: 2,
		RowSpacing:    1,
		Insets:        InsetConfig{Top: 1, Left: 2, Bottom: 1, Right: 2},
	}
}

// Validate checks the configuration for usable values: positive item
// dimensions, non-negative spacing and insets.
func (l Layout) Validate() error {
	if l.ItemWidth <= 0 {
		return fmt.Errorf("%w: item_width must be positive, got %g", ErrValidationFailed, l.ItemWidth)
	}
	if l.ItemHeight <= 0 {
		return fmt.Errorf("%w: item_height must be positive, got %g", ErrValidationFailed, l.ItemHeight)
	}
	if l.ColumnSpacing < 0 {
		return fmt.Errorf("%w: column_spacing must not be negative, got %g", ErrValidationFailed, l.ColumnSpacing)
	}
	if l.RowSpacing < 0 {
		return fmt.Errorf("%w: row_spacing must not be negative, got %g", ErrValidationFailed, l.RowSpacing)
	}
	insets := []struct {
		name  string
		value float64
	}{
		{"top", l.Insets.Top},
		{"left", l.Insets.Left},
		{"bottom", l.Insets.Bottom},
		{"right", l.Insets.Right},
	}
	for _, in := range insets {
		if in.value < 0 {
			return fmt.Errorf("%w: insets.%s must not be negative, got %g", ErrValidationFailed, in.name, in.value)
		}
	}
	return nil
}

// Engine converts the configuration to the layout engine's parameter
// set.
func (l Layout) Engine() layout.Config {
	return layout.Config{
		ItemWidth:     l.ItemWidth,
		ItemHeight:    l.ItemHeight,
		ColumnSpacing: l.ColumnSpacing,
		RowSpacing:    l.RowSpacing,
		Insets: geom.Insets{
			Top:    l.Insets.Top,
			Left:   l.Insets.Left,
			Bottom: l.Insets.Bottom,
			Right:  l.Insets.Right,
		},
	}
}
