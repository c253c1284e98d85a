package layout

import (
	"sort"

	"github.com/dshills/rowgrid/internal/geom"
)

// Cache owns the computed layout attributes, keyed by row index. It is
// mutated only through its methods and is rebuilt wholesale by
// RecomputeAll or adjusted incrementally for individual rows.
//
// The cache is exclusively owned by the layout subsystem: the host reads
// through query methods and triggers recomputation through the documented
// entry points, all on a single logical thread of control. No internal
// locking is performed.
type Cache struct {
	engine *Engine

	frames  map[int][]ItemFrame
	regions map[int]ScrollRegion

	containerWidth float64
}

// NewCache creates an empty cache backed by the given engine.
func NewCache(engine *Engine) *Cache {
	return &Cache{
		engine:  engine,
		frames:  make(map[int][]ItemFrame),
		regions: make(map[int]ScrollRegion),
	}
}

// Engine returns the engine used for attribute computation.
func (c *Cache) Engine() *Engine {
	return c.engine
}

// SetEngine replaces the engine. Existing entries are left in place so
// their offsets survive; the caller must trigger a full recompute to
// re-derive geometry under the new configuration.
func (c *Cache) SetEngine(engine *Engine) {
	c.engine = engine
}

// ContainerWidth returns the width recorded by the last recompute or
// resize.
func (c *Cache) ContainerWidth() float64 {
	return c.containerWidth
}

// RecomputeAll rebuilds the cache from a full set of per-row item
// counts. Rows with zero items get no entries. When preserveOffsets is
// set, a row that already had a scroll region keeps its offset; new rows
// start at offset zero. Entries for row indices beyond len(rowCounts)
// are pruned. A nil rowCounts slice means no data source is attached and
// clears the cache entirely.
func (c *Cache) RecomputeAll(rowCounts []int, containerWidth float64, preserveOffsets bool) {
	c.containerWidth = containerWidth

	if rowCounts == nil {
		c.Clear()
		return
	}

	frames := make(map[int][]ItemFrame, len(rowCounts))
	regions := make(map[int]ScrollRegion, len(rowCounts))

	for row, count := range rowCounts {
		if count <= 0 {
			continue
		}

		offset := 0.0
		if preserveOffsets {
			if prev, ok := c.regions[row]; ok {
				offset = prev.Offset
			}
		}

		region, err := c.engine.RowScrollRegion(row, count, containerWidth)
		if err != nil {
			// count > 0 is guaranteed above; unreachable.
			continue
		}
		region.Offset = offset

		rowFrames, err := c.engine.RowItemFrames(row, count, offset)
		if err != nil {
			continue
		}

		regions[row] = region
		frames[row] = rowFrames
	}

	c.frames = frames
	c.regions = regions
}

// MaterializeRow creates cache entries for a newly inserted row at
// offset zero. A zero item count legitimately produces no entries (and
// removes any stale ones); a negative count is a precondition violation.
func (c *Cache) MaterializeRow(row, itemCount int) error {
	if itemCount < 0 {
		return newPrecondition("MaterializeRow", row, -1, "negative item count")
	}
	if itemCount == 0 {
		delete(c.frames, row)
		delete(c.regions, row)
		return nil
	}

	region, err := c.engine.RowScrollRegion(row, itemCount, c.containerWidth)
	if err != nil {
		return err
	}
	rowFrames, err := c.engine.RowItemFrames(row, itemCount, 0)
	if err != nil {
		return err
	}

	c.regions[row] = region
	c.frames[row] = rowFrames
	return nil
}

// RefreshRow recomputes a row's frames and scroll-region content size
// for a changed item count, preserving the row's existing offset. A row
// with no prior entry starts at offset zero. A zero count removes the
// row's entries; a negative count is a precondition violation.
func (c *Cache) RefreshRow(row, itemCount int) error {
	if itemCount < 0 {
		return newPrecondition("RefreshRow", row, -1, "negative item count")
	}
	if itemCount == 0 {
		delete(c.frames, row)
		delete(c.regions, row)
		return nil
	}

	offset := 0.0
	if prev, ok := c.regions[row]; ok {
		offset = prev.Offset
	}

	region, err := c.engine.RowScrollRegion(row, itemCount, c.containerWidth)
	if err != nil {
		return err
	}
	region.Offset = offset

	rowFrames, err := c.engine.RowItemFrames(row, itemCount, offset)
	if err != nil {
		return err
	}

	c.regions[row] = region
	c.frames[row] = rowFrames
	return nil
}

// SetRowOffset updates a row's scroll offset. The scroll region and
// every item frame in the row reflect the new offset after the call.
// Setting an offset for a row absent from the cache is a precondition
// violation.
func (c *Cache) SetRowOffset(row int, offset float64) error {
	region, ok := c.regions[row]
	if !ok {
		return newPrecondition("SetRowOffset", row, -1, "row not in cache")
	}

	region.Offset = offset
	c.regions[row] = region

	rowFrames := c.frames[row]
	for i := range rowFrames {
		rowFrames[i].TranslateX = -offset
	}
	return nil
}

// RowOffset returns a row's current scroll offset, or zero if the row
// has no cached scroll region.
func (c *Cache) RowOffset(row int) float64 {
	if region, ok := c.regions[row]; ok {
		return region.Offset
	}
	return 0
}

// ItemFrame returns the cached frame for an item, if present.
func (c *Cache) ItemFrame(row, column int) (ItemFrame, bool) {
	rowFrames, ok := c.frames[row]
	if !ok || column < 0 || column >= len(rowFrames) {
		return ItemFrame{}, false
	}
	return rowFrames[column], true
}

// ScrollRegion returns the cached scroll region for a row, if present.
func (c *Cache) ScrollRegion(row int) (ScrollRegion, bool) {
	region, ok := c.regions[row]
	return region, ok
}

// FramesInRect returns every cached item frame and scroll region. The
// bounds argument describes the query region; no spatial culling is
// performed, callers receive the full cached set. Results are ordered
// by row, then column.
func (c *Cache) FramesInRect(bounds geom.Rect) ([]ItemFrame, []ScrollRegion) {
	_ = bounds

	rows := c.sortedRows()

	var frames []ItemFrame
	regions := make([]ScrollRegion, 0, len(rows))
	for _, row := range rows {
		frames = append(frames, c.frames[row]...)
		if region, ok := c.regions[row]; ok {
			regions = append(regions, region)
		}
	}
	return frames, regions
}

// ResizeContainer rewrites every cached scroll region's band width.
// Offsets and item frames are untouched.
func (c *Cache) ResizeContainer(newWidth float64) {
	c.containerWidth = newWidth
	for row, region := range c.regions {
		region.Band.Width = newWidth
		c.regions[row] = region
	}
}

// ContentExtent returns the total scrollable extent of the grid: the
// container width by the bottom edge of the lowest band plus the bottom
// inset. An empty cache yields a zero size.
func (c *Cache) ContentExtent() geom.Size {
	if len(c.regions) == 0 {
		return geom.Size{}
	}

	maxY := 0.0
	for _, region := range c.regions {
		if bottom := region.Band.MaxY(); bottom > maxY {
			maxY = bottom
		}
	}
	return geom.Size{
		Width:  c.containerWidth,
		Height: maxY + c.engine.cfg.Insets.Bottom,
	}
}

// Clear removes every cached entry.
func (c *Cache) Clear() {
	c.frames = make(map[int][]ItemFrame)
	c.regions = make(map[int]ScrollRegion)
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	total := 0
	for _, rowFrames := range c.frames {
		total += len(rowFrames)
	}
	return CacheStats{
		Rows:   len(c.regions),
		Frames: total,
	}
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Rows   int // Rows with cached attributes
	Frames int // Total cached item frames
}

// sortedRows returns the cached row indices in ascending order.
func (c *Cache) sortedRows() []int {
	rows := make([]int, 0, len(c.frames))
	for row := range c.frames {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}
