package tree

import (
	"fmt"
	"log"

	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

const containerSelector = "#" + ContainerID

// Options wires a Viewer to its collaborators. Clipboard and Notifier
// default to patches on Sink.
type Options struct {
	Sink      dom.Sink
	Clipboard dom.Clipboard
	Notifier  dom.Notifier
}

// Viewer is one interactive JSON or JSONL preview. A Viewer whose input did
// not parse shows an error state and only supports copying the raw text.
// It is not safe for concurrent use.
type Viewer struct {
	raw string
	doc *Document
	err error

	sink dom.Sink
	clip dom.Clipboard
	note dom.Notifier

	result *Result
}

// NewViewer parses text and returns a viewer for it. A parse failure is kept
// and reported through Err and the rendered error state.
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
	doc, err := Parse(text)
	return &Viewer{
		raw:  text,
		doc:  doc,
		err:  err,
		sink: opts.Sink,
		clip: opts.Clipboard,
		note: opts.Notifier,
	}
}

// Document returns the parsed document, nil when parsing failed.
func (v *Viewer) Document() *Document { return v.doc }

// Err returns the parse error, if any.
func (v *Viewer) Err() error { return v.err }

// Title returns the header title.
func (v *Viewer) Title() string {
	if v.doc == nil {
		return "JSON Viewer"
	}
	return v.doc.Title()
}

// Stats returns the header stats line.
func (v *Viewer) Stats() string {
	if v.doc == nil {
		return "Invalid JSON"
	}
	return v.doc.Stats()
}

// Result returns the active search, nil when there is none.
func (v *Viewer) Result() *Result { return v.result }

// Mount returns the full preview markup.
func (v *Viewer) Mount() *vnode.Node {
	if v.doc == nil {
		header := page.Header(v.Title(), v.Stats(), page.Button("Copy JSON", "copy", "📋"))
		return page.Layout(header, page.Body(ContainerID, page.ErrorState("Unable to parse JSON", v.err)))
	}
	header := page.Header(v.Title(), v.Stats(),
		page.SearchBox("search", "clear-search", ""),
		page.Button("Collapse All", "collapse-all", ""),
		page.Button("Expand All", "expand-all", ""),
		page.Button("Copy JSON", "copy", "📋"),
	)
	return page.Layout(header, page.Body(ContainerID, Render(v.doc, v.result)))
}

// Search shows the lines matching query with their context and expands
// everything leading to them. An empty query clears the search.
func (v *Viewer) Search(query string) {
	if v.doc == nil {
		return
	}
	v.result = v.doc.Search(query)
	v.doc.Reveal(v.result)
	v.render()
}

// ClearSearch empties the search box and shows every line again.
func (v *Viewer) ClearSearch() {
	v.sink.Apply(dom.SetValue(page.SearchSelector, ""))
	v.Search("")
}

// Toggle collapses or expands one container.
func (v *Viewer) Toggle(id int) error {
	if v.doc == nil {
		return v.err
	}
	n, ok := v.doc.Node(id)
	if !ok || !n.Collapsible() {
		return fmt.Errorf("node %d is not collapsible", id)
	}
	n.Expanded = !n.Expanded
	if n.Expanded {
		v.sink.Apply(dom.RemoveClass(entrySelector(n), "json-collapsed"))
	} else {
		v.sink.Apply(dom.AddClass(entrySelector(n), "json-collapsed"))
	}
	return nil
}

// ToggleAll expands or collapses every container.
func (v *Viewer) ToggleAll(expand bool) {
	if v.doc == nil {
		return
	}
	v.doc.SetExpanded(expand)
	v.render()
}

// Key handles keyboard shortcuts. Escape clears the search.
func (v *Viewer) Key(key string, _ bool) {
	if key == "Escape" {
		v.ClearSearch()
	}
}

// CopyRaw copies the document as indented JSON, or the raw input when it did
// not parse.
func (v *Viewer) CopyRaw() {
	text := v.raw
	if v.doc != nil {
		indented, err := v.doc.Indent()
		if err != nil {
			log.Printf("tree: indenting document: %v", err)
		} else {
			text = indented
		}
	}
	if err := v.clip.WriteText(text); err != nil {
		v.note.ShowStatus("Copy failed: " + err.Error())
		return
	}
	v.note.ShowStatus("JSON copied to clipboard!")
}

func (v *Viewer) render() {
	v.sink.Apply(dom.Replace(containerSelector, Render(v.doc, v.result)))
}
