// Package geom provides the value types used by the layout engine:
// points, sizes, rectangles, and edge insets. All coordinates are
// abstract layout units; consumers decide how units map to pixels or
// terminal cells.
package geom

// Point is a position in layout space.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// IsZero returns true if both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is an axis-aligned rectangle with origin at the top-left.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from origin and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// IsEmpty returns true if the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects returns true if the two rectangles overlap.
// Touching edges do not count as overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() &&
		r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Contains returns true if the point lies inside the rectangle.
// The top and left edges are inclusive, bottom and right exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Offset returns the rectangle translated by dx, dy.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Insets describes outer edge padding.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Horizontal returns the combined left and right insets.
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Vertical returns the combined top and bottom insets.
func (i Insets) Vertical() float64 {
	return i.Top + i.Bottom
}
