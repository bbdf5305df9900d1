package tabular

import (
	"fmt"
	"time"

	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/timer"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

const (
	// Title is the header title of a CSV preview.
	Title = "CSV Viewer"

	// ScrollInterval throttles scroll-driven renders to about 60 per second.
	ScrollInterval = 16 * time.Millisecond
	// SortDelay lets the "sorting" class reach the page before rows move.
	SortDelay = 10 * time.Millisecond
)

// Options wires a Viewer to its collaborators. Clipboard and Notifier
// default to patches on Sink; Scheduler defaults to real timers.
type Options struct {
	Sink      dom.Sink
	Clipboard dom.Clipboard
	Notifier  dom.Notifier
	Scheduler timer.Scheduler
}

// Viewer is one interactive CSV preview. It owns the table, the rendered
// window and the cell selection. A Viewer is not safe for concurrent use;
// events and timer callbacks must be delivered from one goroutine.
type Viewer struct {
	raw   string
	table *Table

	sink  dom.Sink
	clip  dom.Clipboard
	note  dom.Notifier
	sched timer.Scheduler

	scroll    *timer.Throttle
	scrollTop float64
	viewport  float64
	window    Window
	mounted   bool
	sel       selection
}

// NewViewer parses text and returns a viewer for it.
func NewViewer(text string, opts Options) *Viewer {
	if opts.Sink == nil {
		opts.Sink = dom.SinkFunc(func(dom.Patch) {})
	}
	if opts.Clipboard == nil {
		opts.Clipboard = dom.SinkClipboard{Sink: opts.Sink}
	}
	if opts.Notifier == nil {
		opts.Notifier = dom.SinkNotifier{Sink: opts.Sink}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timer.Real{}
	}
	return &Viewer{
		raw:    text,
		table:  NewTable(text),
		sink:   opts.Sink,
		clip:   opts.Clipboard,
		note:   opts.Notifier,
		sched:  opts.Scheduler,
		scroll: timer.NewThrottle(opts.Scheduler, ScrollInterval),
	}
}

// Table returns the underlying table.
func (v *Viewer) Table() *Table { return v.table }

// Window returns the rows currently rendered.
func (v *Viewer) Window() Window { return v.window }

// Title returns the header title.
func (v *Viewer) Title() string { return Title }

// Stats returns the header stats line.
func (v *Viewer) Stats() string { return v.table.Stats() }

// Mount returns the full preview markup, with the rows covering a viewport
// of the given height at scroll offset 0 already rendered.
func (v *Viewer) Mount(viewportHeight float64) *vnode.Node {
	v.scrollTop = 0
	v.viewport = viewportHeight
	v.window = ComputeWindow(0, viewportHeight, len(v.table.Filtered()))
	v.mounted = true

	header := page.Header(Title, v.table.Stats(), toolbar()...)
	body := page.ScrollBody(ContainerID, renderTable(v.table, v.window, v.sel))
	return page.Layout(header, body)
}

// Scroll records the container's scroll position and schedules a render.
// Scrolls arriving while one is pending only update the position.
func (v *Viewer) Scroll(scrollTop, viewportHeight float64) {
	v.scrollTop = scrollTop
	if viewportHeight > 0 {
		v.viewport = viewportHeight
	}
	v.scroll.Trigger(func() { v.render(false) })
}

// Resize records a new viewport height and re-renders.
func (v *Viewer) Resize(viewportHeight float64) {
	v.viewport = viewportHeight
	v.render(true)
}

// Search filters rows by query, scrolls back to the top and re-renders.
func (v *Viewer) Search(query string) {
	v.table.Filter(query)
	v.scroll.Cancel()
	v.scrollTop = 0
	v.sink.Apply(dom.ScrollTop(containerSelector, 0))
	v.render(true)
	v.sink.Apply(dom.Replace(page.StatsSelector, vnode.Text(v.table.Stats())))
}

// ClearSearch empties the search box and removes the filter.
func (v *Viewer) ClearSearch() {
	v.sink.Apply(dom.SetValue(page.SearchSelector, ""))
	v.Search("")
}

// Sort marks the table as sorting and, after SortDelay, sorts the visible
// rows by column and re-renders. Every call schedules its own sort, so two
// quick clicks on a header sort twice.
func (v *Viewer) Sort(column int) error {
	if column < 0 || column >= len(v.table.headers) {
		return fmt.Errorf("sort column %d out of range [0,%d)", column, len(v.table.headers))
	}
	v.sink.Apply(dom.AddClass(tbodySelector, "sorting"))
	v.sched.AfterFunc(SortDelay, func() {
		state, err := v.table.SortBy(column)
		if err != nil {
			return
		}
		v.sink.Apply(dom.RemoveClass(thSelector, sortClass(Ascending)))
		v.sink.Apply(dom.RemoveClass(thSelector, sortClass(Descending)))
		v.sink.Apply(dom.AddClass(headerSelector(state.Column), sortClass(state.Direction)))
		v.render(true)
		v.sink.Apply(dom.RemoveClass(tbodySelector, "sorting"))
	})
	return nil
}

// SelectCell handles a click on a data cell. row is the row's position in
// the input, col its column. Clicking the selected cell toggles whether it
// is expanded.
func (v *Viewer) SelectCell(row, col int) {
	if row < 0 || row >= v.table.Len() || col < 0 || col >= len(v.table.headers) {
		return
	}
	ref := cellRef{row: row, col: col}
	if v.sel.active && v.sel.cell == ref {
		v.sel.expanded = !v.sel.expanded
		if v.sel.expanded {
			v.sink.Apply(dom.AddClass(ref.selector(), "expanded"))
		} else {
			v.sink.Apply(dom.RemoveClass(ref.selector(), "expanded"))
		}
		return
	}
	v.clearSelection()
	v.sel = selection{cell: ref, active: true}
	v.sink.Apply(dom.AddClass(ref.selector(), "selected"))
}

// Selected returns the selected cell value. ok is false when no cell is
// selected.
func (v *Viewer) Selected() (value string, ok bool) {
	if !v.sel.active {
		return "", false
	}
	value, _ = v.table.all[v.sel.cell.row].Cell(v.sel.cell.col)
	return value, true
}

func (v *Viewer) clearSelection() {
	if !v.sel.active {
		return
	}
	sel := v.sel.cell.selector()
	v.sink.Apply(dom.RemoveClass(sel, "selected"))
	v.sink.Apply(dom.RemoveClass(sel, "expanded"))
	v.sel = selection{}
}

// Key handles keyboard shortcuts. Escape clears the search and the cell
// selection; Ctrl+C copies the selected cell.
func (v *Viewer) Key(key string, ctrl bool) {
	switch {
	case key == "Escape":
		v.ClearSearch()
		v.clearSelection()
	case ctrl && (key == "c" || key == "C"):
		value, ok := v.Selected()
		if !ok {
			return
		}
		v.copy(value, "Cell content copied!")
	}
}

// CopyRaw copies the original CSV text.
func (v *Viewer) CopyRaw() {
	v.copy(v.raw, "CSV copied to clipboard!")
}

// ExportJSON offers the rows as data.json.
func (v *Viewer) ExportJSON() error {
	data, err := v.table.ExportJSON()
	if err != nil {
		return err
	}
	v.sink.Apply(dom.Patch{Op: dom.OpDownload, Name: "data.json", Mime: "application/json", Text: string(data)})
	v.note.ShowStatus("JSON file downloaded!")
	return nil
}

func (v *Viewer) copy(text, message string) {
	if err := v.clip.WriteText(text); err != nil {
		v.note.ShowStatus("Copy failed: " + err.Error())
		return
	}
	v.note.ShowStatus(message)
}

// render re-renders the window at the current scroll position. Unless
// forced, a window that moved by less than half a buffer is left alone.
func (v *Viewer) render(force bool) {
	if !v.mounted {
		return
	}
	w := ComputeWindow(v.scrollTop, v.viewport, len(v.table.Filtered()))
	if !force && w.Near(v.window) {
		return
	}
	v.window = w
	v.sink.Apply(dom.Replace(tbodySelector, renderRows(v.table, w, v.sel)))
}
