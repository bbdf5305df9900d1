package diff

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// Title is the header title of every diff preview.
const Title = "Git Changes Preview"

// DefaultExpandFirst is how many leading files start expanded.
const DefaultExpandFirst = 1

const (
	containerSelector = "#" + ContainerID
	toggleAllID       = "expand-collapse-btn"
	modeSelector      = ".view-mode-btn"
)

// Options wires a Viewer to its collaborators.
type Options struct {
	Sink      dom.Sink
	Clipboard dom.Clipboard
	Notifier  dom.Notifier
	// Mode is the initial layout. Empty selects LineByLine.
	Mode Mode
	// ExpandFirst is how many leading files start expanded. Zero selects
	// DefaultExpandFirst; a negative value collapses every file.
	ExpandFirst int
}

// Viewer is one interactive diff preview. It is not safe for concurrent use.
type Viewer struct {
	raw string
	cs  *Changeset
	err error

	sink dom.Sink
	clip dom.Clipboard
	note dom.Notifier

	mode  Mode
	state []panel
	query string
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
	mode, ok := ParseMode(string(opts.Mode))
	if !ok {
		mode = LineByLine
	}
	expand := opts.ExpandFirst
	if expand == 0 {
		expand = DefaultExpandFirst
	}

	cs, err := Parse(text)
	v := &Viewer{raw: text, cs: cs, err: err, sink: opts.Sink, clip: opts.Clipboard, note: opts.Notifier, mode: mode}
	if cs != nil {
		v.state = make([]panel, len(cs.Files))
		for i := range v.state {
			v.state[i].collapsed = i >= expand
		}
	}
	return v
}

// Changeset returns the parsed diff, nil when parsing failed.
func (v *Viewer) Changeset() *Changeset { return v.cs }

// Err returns the parse error, if any.
func (v *Viewer) Err() error { return v.err }

// Mode returns the current layout.
func (v *Viewer) Mode() Mode { return v.mode }

// Collapsed reports whether file i is collapsed.
func (v *Viewer) Collapsed(i int) bool { return i >= 0 && i < len(v.state) && v.state[i].collapsed }

// Hidden reports whether file i is filtered out.
func (v *Viewer) Hidden(i int) bool { return i >= 0 && i < len(v.state) && v.state[i].hidden }

// Title returns the header title.
func (v *Viewer) Title() string { return Title }

// Stats returns the header stats line.
func (v *Viewer) Stats() string {
	if v.cs == nil {
		return "Invalid diff"
	}
	return fmt.Sprintf("%s changed • +%d additions • -%d deletions",
		page.Plural(len(v.cs.Files), "file", "files"), v.cs.Additions(), v.cs.Deletions())
}

// Mount returns the full preview markup.
func (v *Viewer) Mount() *vnode.Node {
	copyBtn := page.Button("Copy Diff", "copy", "📋")
	if v.cs == nil {
		header := page.Header(v.Title(), v.Stats(), copyBtn)
		return page.Layout(header, page.Body(ContainerID, page.ErrorState("Unable to parse diff", v.err)))
	}
	if len(v.cs.Files) == 0 {
		return page.Layout(page.Header(v.Title(), v.Stats()), page.Body(ContainerID, noChanges()))
	}
	toolbar := []*vnode.Node{
		page.Button(v.toggleAllLabel(), "toggle-all", "", vnode.A("id", toggleAllID)...),
		page.SearchBox("search", "clear-search", "Search files..."),
	}
	toolbar = append(toolbar, modeButtons(v.mode)...)
	toolbar = append(toolbar, copyBtn)
	header := page.Header(v.Title(), v.Stats(), toolbar...)
	return page.Layout(header, page.Body(ContainerID, renderFiles(v.cs, v.state, v.mode)))
}

// ToggleFile collapses or expands file i.
func (v *Viewer) ToggleFile(i int) error {
	if i < 0 || i >= len(v.state) {
		return fmt.Errorf("file %d out of range", i)
	}
	v.state[i].collapsed = !v.state[i].collapsed
	if v.state[i].collapsed {
		v.sink.Apply(dom.AddClass(fileSelector(i), "collapsed"))
	} else {
		v.sink.Apply(dom.RemoveClass(fileSelector(i), "collapsed"))
	}
	v.updateToggleAll()
	return nil
}

// ToggleAll collapses every file when all are expanded, and expands every
// file otherwise.
func (v *Viewer) ToggleAll() {
	if v.cs == nil {
		return
	}
	collapse := v.allExpanded(false)
	for i := range v.state {
		v.state[i].collapsed = collapse
	}
	v.render()
}

// Search hides files whose name does not contain query and expands the
// ones that do. An empty query shows every file.
func (v *Viewer) Search(query string) {
	if v.cs == nil {
		return
	}
	v.query = strings.ToLower(strings.TrimSpace(query))
	for i, f := range v.cs.Files {
		ok := matches(f, v.query)
		v.state[i].hidden = !ok
		if ok && v.query != "" {
			v.state[i].collapsed = false
		}
	}
	v.render()
}

// ClearSearch empties the search box and shows every file.
func (v *Viewer) ClearSearch() {
	v.sink.Apply(dom.SetValue(page.SearchSelector, ""))
	v.Search("")
}

// SetMode switches the layout.
func (v *Viewer) SetMode(name string) error {
	mode, ok := ParseMode(name)
	if !ok {
		return fmt.Errorf("unknown view mode %q", name)
	}
	if mode == v.mode || v.cs == nil {
		return nil
	}
	v.mode = mode
	v.sink.Apply(dom.RemoveClass(modeSelector, "active"))
	v.sink.Apply(dom.AddClass(fmt.Sprintf(`%s[data-mode="%s"]`, modeSelector, mode), "active"))
	v.render()
	return nil
}

// Key handles keyboard shortcuts. Escape clears the filter.
func (v *Viewer) Key(key string, _ bool) {
	if key == "Escape" {
		v.ClearSearch()
	}
}

// CopyRaw copies the diff text.
func (v *Viewer) CopyRaw() {
	if err := v.clip.WriteText(v.raw); err != nil {
		v.note.ShowStatus("Copy failed: " + err.Error())
		return
	}
	v.note.ShowStatus("Diff copied to clipboard!")
}

// allExpanded reports whether every file is expanded. With visibleOnly,
// filtered-out files are ignored.
func (v *Viewer) allExpanded(visibleOnly bool) bool {
	for _, st := range v.state {
		if visibleOnly && st.hidden {
			continue
		}
		if st.collapsed {
			return false
		}
	}
	return true
}

func (v *Viewer) toggleAllLabel() string {
	if v.allExpanded(true) {
		return "Collapse All"
	}
	return "Expand All"
}

func (v *Viewer) updateToggleAll() {
	v.sink.Apply(dom.Replace("#"+toggleAllID, vnode.Text(v.toggleAllLabel())))
}

func (v *Viewer) render() {
	v.sink.Apply(dom.Replace(containerSelector, renderFiles(v.cs, v.state, v.mode)))
	v.updateToggleAll()
}
