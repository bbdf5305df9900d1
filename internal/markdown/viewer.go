package markdown

import (
	"log"
	"strconv"

	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// ContainerID is the id of the element holding the rendered document.
const ContainerID = "markdown-container"

// PlanContainerID is the id of the element holding a rendered plan.
const PlanContainerID = "plan-container"

// Title is the header title of every markdown preview.
const Title = "Markdown Preview"

// PlanTitle is the header title of every plan preview.
const PlanTitle = "Plan Preview"

// Options wires a Viewer to its collaborators. Clipboard and Notifier
// default to patches on Sink.
type Options struct {
	Sink      dom.Sink
	Clipboard dom.Clipboard
	Notifier  dom.Notifier
}

// Viewer is one Markdown preview.
type Viewer struct {
	raw  string
	html string
	err  error
	// plan is set for plan previews.
	plan *Outline

	clip dom.Clipboard
	note dom.Notifier
}

// NewViewer renders text and returns a viewer for it.
func NewViewer(text string, opts Options) *Viewer {
	v := newViewer(text, opts)
	v.html, v.err = Render(text)
	if v.err != nil {
		log.Printf("markdown: rendering: %v", v.err)
	}
	return v
}

// NewPlanViewer renders text as an implementation plan: the document plus a
// table of contents and task progress.
func NewPlanViewer(text string, opts Options) *Viewer {
	v := newViewer(text, opts)
	var o Outline
	v.html, o, v.err = RenderPlan(text)
	if v.err != nil {
		log.Printf("markdown: rendering plan: %v", v.err)
	}
	v.plan = &o
	return v
}

func newViewer(text string, opts Options) *Viewer {
	if opts.Sink == nil {
		opts.Sink = dom.SinkFunc(func(dom.Patch) {})
	}
	if opts.Clipboard == nil {
		opts.Clipboard = dom.SinkClipboard{Sink: opts.Sink}
	}
	if opts.Notifier == nil {
		opts.Notifier = dom.SinkNotifier{Sink: opts.Sink}
	}
	return &Viewer{raw: text, clip: opts.Clipboard, note: opts.Notifier}
}

// Title returns the header title.
func (v *Viewer) Title() string {
	if v.plan != nil {
		return PlanTitle
	}
	return Title
}

// Stats returns the header stats line.
func (v *Viewer) Stats() string {
	if v.plan != nil {
		return v.plan.Stats()
	}
	return Stats(v.raw)
}

// Outline returns the plan outline, or nil for a plain markdown preview.
func (v *Viewer) Outline() *Outline { return v.plan }

// HTML returns the rendered document.
func (v *Viewer) HTML() string { return v.html }

// Err returns the rendering error, if any.
func (v *Viewer) Err() error { return v.err }

// NeedsMermaid reports whether the document has diagrams to render.
func (v *Viewer) NeedsMermaid() bool { return HasMermaid(v.raw) }

// Mount returns the full preview markup.
func (v *Viewer) Mount() *vnode.Node {
	header := page.Header(v.Title(), v.Stats(),
		page.Button("Copy Markdown", "copy", "📋"),
		page.Button("Copy HTML", "copy-html", "📄"),
	)
	id := ContainerID
	if v.plan != nil {
		id = PlanContainerID
	}
	if v.err != nil {
		return page.Layout(header, page.Body(id, page.ErrorState("Unable to render Markdown", v.err)))
	}
	article := vnode.El("article", vnode.A("class", "markdown-body"), vnode.Raw(v.html))
	if v.plan == nil {
		return page.Layout(header, page.Body(id, article))
	}
	return page.Layout(header, page.Body(id,
		vnode.El("div", vnode.A("class", "plan-layout"),
			v.sidebar(),
			vnode.El("main", vnode.A("class", "plan-main"), article),
		),
	))
}

func (v *Viewer) sidebar() *vnode.Node {
	meta := vnode.El("div", vnode.A("class", "plan-meta"))
	for _, b := range v.plan.Badges() {
		meta.Append(vnode.El("span", vnode.A("class", "meta-badge"), vnode.Text(b)))
	}
	toc := vnode.El("ul", vnode.A("class", "toc-list"))
	for _, h := range v.plan.Headings {
		toc.Append(vnode.El("li", nil,
			vnode.El("a", vnode.A(
				"class", "toc-link",
				"data-level", strconv.Itoa(h.Level),
				"href", "#"+h.ID,
				"title", h.Text,
			), vnode.Text(h.Text)),
		))
	}
	return vnode.El("aside", vnode.A("class", "plan-sidebar"),
		vnode.El("div", vnode.A("class", "sidebar-header"),
			vnode.El("div", vnode.A("class", "sidebar-title"), vnode.Text("Contents")),
			vnode.El("div", vnode.A("class", "plan-name"), vnode.Text(v.plan.Title)),
			meta,
		),
		vnode.El("nav", vnode.A("class", "toc-container"), toc),
	)
}

// CopyRaw copies the Markdown source.
func (v *Viewer) CopyRaw() {
	v.copy(v.raw, "Markdown copied to clipboard!")
}

// CopyHTML copies the rendered HTML.
func (v *Viewer) CopyHTML() {
	v.copy(v.html, "HTML copied to clipboard!")
}

func (v *Viewer) copy(text, done string) {
	if err := v.clip.WriteText(text); err != nil {
		v.note.ShowStatus("Copy failed: " + err.Error())
		return
	}
	v.note.ShowStatus(done)
}
