// Package grid exposes the layout-provider contract consumed by the
// hosting container: per-item frame queries, bulk visible-region
// queries, scroll-region lookup, bracketed update batches, bounds-change
// handling, and per-row scroll offset updates. It wires the layout
// engine, layout cache, and update tracker together behind one surface.
package grid

import (
	"github.com/dshills/rowgrid/internal/geom"
	"github.com/dshills/rowgrid/internal/layout"
	"github.com/dshills/rowgrid/internal/update"
)

// ElementKindRowScroll is the supplementary element kind tag that
// identifies a row's scroll region, distinct from ordinary item frames.
const ElementKindRowScroll = "rowgrid.row-scroll-region"

// RowCountProvider supplies the grid's shape: how many rows exist and
// how many items each row holds. The host's data source implements it.
type RowCountProvider interface {
	// NumRows returns the total row count.
	NumRows() int

	// NumItems returns the item count for a row.
	NumItems(row int) int
}

// Provider implements the layout-provider contract. All entry points
// must be invoked on a single logical thread of control; see the
// concurrency contract on layout.Cache.
type Provider struct {
	engine  *layout.Engine
	cache   *layout.Cache
	tracker *update.Tracker

	source RowCountProvider
	size   geom.Size
}

// sourceCounts adapts a RowCountProvider to the tracker's Counts
// capability, tolerating a detached source.
type sourceCounts struct {
	p *Provider
}

func (s sourceCounts) NumItems(row int) int {
	if s.p.source == nil {
		return 0
	}
	return s.p.source.NumItems(row)
}

// New creates a provider with the given layout configuration and data
// source. The source may be nil; queries then return nothing until one
// is attached.
func New(cfg layout.Config, source RowCountProvider) *Provider {
	engine := layout.NewEngine(cfg)
	cache := layout.NewCache(engine)
	p := &Provider{
		engine: engine,
		cache:  cache,
		source: source,
	}
	p.tracker = update.NewTracker(cache, sourceCounts{p: p})
	return p
}

// SetSource attaches or detaches the data source. The cache is not
// touched until the next Reload or Invalidate.
func (p *Provider) SetSource(source RowCountProvider) {
	p.source = source
}

// SetConfig swaps in a new layout configuration and performs a full
// recompute at the current size, preserving row offsets.
func (p *Provider) SetConfig(cfg layout.Config) {
	p.engine = layout.NewEngine(cfg)
	p.cache.SetEngine(p.engine)
	p.Invalidate(p.size)
}

// Size returns the last recorded container size.
func (p *Provider) Size() geom.Size {
	return p.size
}

// Cache returns the underlying layout cache.
func (p *Provider) Cache() *layout.Cache {
	return p.cache
}

// Tracker returns the underlying update tracker.
func (p *Provider) Tracker() *update.Tracker {
	return p.tracker
}

// rowCounts snapshots the per-row item counts from the data source.
// A detached source yields nil, which clears the cache on recompute.
func (p *Provider) rowCounts() []int {
	if p.source == nil {
		return nil
	}
	counts := make([]int, p.source.NumRows())
	for row := range counts {
		counts[row] = p.source.NumItems(row)
	}
	return counts
}

// Reload performs a full recompute from the current data source,
// preserving each known row's scroll offset.
func (p *Provider) Reload() {
	p.cache.RecomputeAll(p.rowCounts(), p.size.Width, true)
}

// Invalidate records a new container size, performs a full recompute
// preserving offsets, and rewrites every band to the new width.
func (p *Provider) Invalidate(newSize geom.Size) {
	p.size = newSize
	p.cache.RecomputeAll(p.rowCounts(), newSize.Width, true)
	p.cache.ResizeContainer(newSize.Width)
}

// BoundsChanged reports whether a recompute is needed for a new
// container size: true iff the size differs from the previously
// recorded one. It does not record the size; Invalidate does.
func (p *Provider) BoundsChanged(newSize geom.Size) bool {
	return newSize != p.size
}

// ItemFrame returns the cached placement for an item, or false if the
// indices are out of range.
func (p *Provider) ItemFrame(row, column int) (layout.ItemFrame, bool) {
	return p.cache.ItemFrame(row, column)
}

// VisibleFrames returns every cached item frame and scroll region for a
// query region. No culling is performed.
func (p *Provider) VisibleFrames(bounds geom.Rect) ([]layout.ItemFrame, []layout.ScrollRegion) {
	return p.cache.FramesInRect(bounds)
}

// ScrollRegionDescriptor returns the scroll region for a row, if the
// row has one.
func (p *Provider) ScrollRegionDescriptor(row int) (layout.ScrollRegion, bool) {
	return p.cache.ScrollRegion(row)
}

// SupplementaryDescriptor looks up a supplementary element by kind tag.
// Only ElementKindRowScroll is recognized.
func (p *Provider) SupplementaryDescriptor(kind string, row int) (layout.ScrollRegion, bool) {
	if kind != ElementKindRowScroll {
		return layout.ScrollRegion{}, false
	}
	return p.cache.ScrollRegion(row)
}

// BeginUpdates opens an update batch and records the given mutations.
// Insertions are applied to the cache immediately; deletions take
// effect at the next full recompute.
func (p *Provider) BeginUpdates(mutations []update.Mutation) {
	p.tracker.Begin()
	for _, m := range mutations {
		p.tracker.Record(m)
	}
}

// EndUpdates closes the current batch and clears all collected entries.
func (p *Provider) EndUpdates() {
	p.tracker.End()
}

// ContentExtent returns the total scrollable extent of the grid.
func (p *Provider) ContentExtent() geom.Size {
	return p.cache.ContentExtent()
}

// SetRowScrollOffset updates one row's horizontal scroll offset. The
// host requests a redraw after this call; the provider does not signal
// downstream invalidation itself.
func (p *Provider) SetRowScrollOffset(row int, offset float64) error {
	return p.cache.SetRowOffset(row, offset)
}

// RowScrollOffset returns a row's current scroll offset, or zero for
// rows without a cached scroll region.
func (p *Provider) RowScrollOffset(row int) float64 {
	return p.cache.RowOffset(row)
}
