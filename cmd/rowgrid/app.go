package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rowgrid/internal/config"
	"github.com/dshills/rowgrid/internal/geom"
	"github.com/dshills/rowgrid/internal/grid"
	"github.com/dshills/rowgrid/internal/update"
)

// scrollStep is how far one key press scrolls a row, in layout units.
const scrollStep = 4

// demoSource is the host's data source: a mutable list of per-row item
// counts.
type demoSource struct {
	counts []int
}

func (s *demoSource) NumRows() int { return len(s.counts) }

func (s *demoSource) NumItems(row int) int {
	if row < 0 || row >= len(s.counts) {
		return 0
	}
	return s.counts[row]
}

// app owns the terminal screen, the data source, and the layout
// provider, and runs the event loop.
type app struct {
	screen   tcell.Screen
	source   *demoSource
	provider *grid.Provider

	focus int

	notifier *config.Notifier
	watcher  *config.Watcher
}

func newApp(cfg config.Layout, configPath string) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	source := &demoSource{counts: []int{8, 5, 12, 3, 9, 6}}
	provider := grid.New(cfg.Engine(), source)

	width, height := screen.Size()
	provider.Invalidate(geom.Size{Width: float64(width), Height: float64(height)})

	a := &app{
		screen:   screen,
		source:   source,
		provider: provider,
	}

	if configPath != "" {
		a.notifier = config.NewNotifier()
		a.notifier.Subscribe(func(reloaded config.Layout) {
			// Hand the reload to the event loop; layout mutation stays
			// on the single thread of control.
			_ = screen.PostEvent(tcell.NewEventInterrupt(reloaded))
		})
		watcher, err := config.NewWatcher(configPath, a.notifier)
		if err != nil {
			screen.Fini()
			return nil, err
		}
		a.watcher = watcher
	}

	return a, nil
}

func (a *app) shutdown() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	a.screen.Fini()
}

func (a *app) runLoop() error {
	for {
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			width, height := ev.Size()
			size := geom.Size{Width: float64(width), Height: float64(height)}
			if a.provider.BoundsChanged(size) {
				a.provider.Invalidate(size)
			}
			a.screen.Sync()

		case *tcell.EventInterrupt:
			if reloaded, ok := ev.Data().(config.Layout); ok {
				a.provider.SetConfig(reloaded.Engine())
			}

		case *tcell.EventKey:
			if done := a.handleKey(ev); done {
				return nil
			}
		}
	}
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		a.moveFocus(-1)
	case tcell.KeyDown:
		a.moveFocus(1)
	case tcell.KeyLeft:
		a.scrollFocused(-scrollStep)
	case tcell.KeyRight:
		a.scrollFocused(scrollStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'i':
			a.insertItem()
		case 'd':
			a.deleteItem()
		case 'I':
			a.insertRow()
		case 'D':
			a.deleteRow()
		}
	}
	return false
}

func (a *app) moveFocus(delta int) {
	next := a.focus + delta
	if next >= 0 && next < a.source.NumRows() {
		a.focus = next
	}
}

// scrollFocused shifts the focused row's offset, clamped to its scroll
// region's valid range.
func (a *app) scrollFocused(delta float64) {
	region, ok := a.provider.ScrollRegionDescriptor(a.focus)
	if !ok {
		return
	}

	offset := region.Offset + delta
	if offset < 0 {
		offset = 0
	}
	if maxOff := region.MaxOffset(); offset > maxOff {
		offset = maxOff
	}
	_ = a.provider.SetRowScrollOffset(a.focus, offset)
}

// insertItem appends an item to the focused row. The data source
// changes first; the mutation batch then updates the cache in place.
func (a *app) insertItem() {
	if a.focus >= len(a.source.counts) {
		return
	}
	a.source.counts[a.focus]++
	newCol := a.source.counts[a.focus] - 1

	a.provider.BeginUpdates([]update.Mutation{
		{Action: update.ActionInsert, Row: a.focus, Column: newCol},
	})
	a.provider.EndUpdates()
}

// deleteItem removes the last item of the focused row. Deletions take
// effect in the cache at the next full recompute, so the host reloads
// after ending the batch.
func (a *app) deleteItem() {
	if a.focus >= len(a.source.counts) || a.source.counts[a.focus] == 0 {
		return
	}
	gone := a.source.counts[a.focus] - 1
	a.source.counts[a.focus]--

	a.provider.BeginUpdates([]update.Mutation{
		{Action: update.ActionDelete, Row: a.focus, Column: gone},
	})
	a.provider.EndUpdates()
	a.provider.Reload()
}

func (a *app) insertRow() {
	row := a.focus
	a.source.counts = append(a.source.counts[:row],
		append([]int{4}, a.source.counts[row:]...)...)

	a.provider.BeginUpdates([]update.Mutation{
		{Action: update.ActionInsert, Row: row, Column: update.NoIndex},
	})
	a.provider.EndUpdates()
	// Rows below the insertion point shift down one band.
	a.provider.Reload()
}

func (a *app) deleteRow() {
	row := a.focus
	if row >= len(a.source.counts) {
		return
	}
	a.source.counts = append(a.source.counts[:row], a.source.counts[row+1:]...)
	if a.focus >= len(a.source.counts) && a.focus > 0 {
		a.focus--
	}

	a.provider.BeginUpdates([]update.Mutation{
		{Action: update.ActionDelete, Row: row, Column: update.NoIndex},
	})
	a.provider.EndUpdates()
	a.provider.Reload()
}

var itemPalette = []tcell.Color{
	tcell.ColorDarkCyan,
	tcell.ColorDarkMagenta,
	tcell.ColorDarkGreen,
	tcell.ColorDarkBlue,
	tcell.ColorDarkRed,
	tcell.ColorDarkGoldenrod,
}

func (a *app) draw() {
	a.screen.Clear()

	width, height := a.screen.Size()
	bounds := geom.NewRect(0, 0, float64(width), float64(height))
	frames, regions := a.provider.VisibleFrames(bounds)

	// Item frames render below the scroll regions.
	for _, f := range frames {
		visible := f.VisibleRect()
		style := tcell.StyleDefault.
			Background(itemPalette[(f.Row*3+f.Column)%len(itemPalette)]).
			Foreground(tcell.ColorWhite)
		a.fillRect(visible, style)
		a.drawText(int(visible.X)+1, int(visible.Y), int(visible.MaxX())-1,
			fmt.Sprintf("%d:%d", f.Row, f.Column), style)
	}

	// Scroll region chrome: a focus marker and scroll position per band.
	for _, r := range regions {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		marker := " "
		if r.Row == a.focus {
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
			marker = ">"
		}
		label := fmt.Sprintf("%s row %d  %.0f/%.0f", marker, r.Row, r.Offset, r.MaxOffset())
		a.drawText(0, int(r.Band.Y)-1, width, label, style)
	}

	a.drawStatus(width, height)
	a.screen.Show()
}

func (a *app) drawStatus(width, height int) {
	extent := a.provider.ContentExtent()
	stats := a.provider.Cache().Stats()
	status := fmt.Sprintf(" rows %d  frames %d  extent %.0fx%.0f  [i/d item  I/D row  arrows scroll  q quit]",
		stats.Rows, stats.Frames, extent.Width, extent.Height)
	style := tcell.StyleDefault.Reverse(true)
	a.drawText(0, height-1, width, status, style)
	for x := len([]rune(status)); x < width; x++ {
		a.screen.SetContent(x, height-1, ' ', nil, style)
	}
}

// fillRect paints a rectangle, clipped to the screen.
func (a *app) fillRect(r geom.Rect, style tcell.Style) {
	width, height := a.screen.Size()
	for y := int(r.Y); y < int(r.MaxY()) && y < height; y++ {
		if y < 0 {
			continue
		}
		for x := int(r.X); x < int(r.MaxX()) && x < width; x++ {
			if x < 0 {
				continue
			}
			a.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes a string on one line, clipped to maxX and the screen.
func (a *app) drawText(x, y, maxX int, text string, style tcell.Style) {
	width, height := a.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range text {
		if x >= maxX || x >= width {
			return
		}
		if x >= 0 {
			a.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
