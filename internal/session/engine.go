package session

import (
	"fmt"

	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/markdown"
	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/tabular"
	"github.com/ziadkadry99/previewkit/internal/timer"
	"github.com/ziadkadry99/previewkit/internal/tree"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// DefaultViewport is the table viewport height used for the first render,
// before the page reports its real size.
const DefaultViewport = 600

// Engine is a preview viewer behind a uniform event interface.
type Engine interface {
	Title() string
	Stats() string
	Mount() *vnode.Node
	// Head returns extra trusted markup the page needs in <head>.
	Head() string
	Handle(ev Event) error
}

// EngineOptions configures a new Engine.
type EngineOptions struct {
	Sink      dom.Sink
	Scheduler timer.Scheduler
	DiffMode  diff.Mode
	// ExpandFirst is passed to the diff viewer.
	ExpandFirst int
}

// NewEngine builds the viewer for kind over text.
func NewEngine(kind payload.Kind, text string, opts EngineOptions) (Engine, error) {
	switch kind {
	case payload.KindCSV:
		return &csvEngine{tabular.NewViewer(text, tabular.Options{Sink: opts.Sink, Scheduler: opts.Scheduler})}, nil
	case payload.KindJSON:
		return &jsonEngine{tree.NewViewer(text, tree.Options{Sink: opts.Sink})}, nil
	case payload.KindMarkdown:
		return &markdownEngine{markdown.NewViewer(text, markdown.Options{Sink: opts.Sink})}, nil
	case payload.KindPlan:
		return &markdownEngine{markdown.NewPlanViewer(text, markdown.Options{Sink: opts.Sink})}, nil
	case payload.KindDiff:
		return &diffEngine{diff.NewViewer(text, diff.Options{
			Sink:        opts.Sink,
			Mode:        opts.DiffMode,
			ExpandFirst: opts.ExpandFirst,
		})}, nil
	}
	return nil, fmt.Errorf("unsupported preview kind %q", kind)
}

// Snapshot renders the initial state of kind over text as a standalone page
// with no session attached.
func Snapshot(kind payload.Kind, text string, opts EngineOptions) (page.Document, error) {
	e, err := NewEngine(kind, text, opts)
	if err != nil {
		return page.Document{}, err
	}
	return page.Document{
		Title:   e.Title(),
		Kind:    string(kind),
		Content: e.Mount(),
		Payload: payload.Encode(text),
		Head:    e.Head(),
	}, nil
}

type csvEngine struct{ v *tabular.Viewer }

func (e *csvEngine) Title() string      { return e.v.Title() }
func (e *csvEngine) Stats() string      { return e.v.Stats() }
func (e *csvEngine) Mount() *vnode.Node { return e.v.Mount(DefaultViewport) }
func (e *csvEngine) Head() string       { return "" }

func (e *csvEngine) Handle(ev Event) error {
	switch ev.Type {
	case "scroll":
		e.v.Scroll(ev.ScrollTop, ev.Height)
	case "resize":
		e.v.Resize(ev.Height)
	case "search":
		e.v.Search(ev.Query)
	case "clear-search":
		e.v.ClearSearch()
	case "sort":
		return e.v.Sort(ev.Col)
	case "cell":
		e.v.SelectCell(ev.Row, ev.Col)
	case "key":
		e.v.Key(ev.Key, ev.Ctrl)
	case "copy":
		e.v.CopyRaw()
	case "export":
		return e.v.ExportJSON()
	default:
		return unknown("csv", ev)
	}
	return nil
}

type jsonEngine struct{ v *tree.Viewer }

func (e *jsonEngine) Title() string      { return e.v.Title() }
func (e *jsonEngine) Stats() string      { return e.v.Stats() }
func (e *jsonEngine) Mount() *vnode.Node { return e.v.Mount() }
func (e *jsonEngine) Head() string       { return "" }

func (e *jsonEngine) Handle(ev Event) error {
	switch ev.Type {
	case "resize", "scroll":
	case "search":
		e.v.Search(ev.Query)
	case "clear-search":
		e.v.ClearSearch()
	case "toggle":
		return e.v.Toggle(ev.Node)
	case "collapse-all":
		e.v.ToggleAll(false)
	case "expand-all":
		e.v.ToggleAll(true)
	case "key":
		e.v.Key(ev.Key, ev.Ctrl)
	case "copy":
		e.v.CopyRaw()
	default:
		return unknown("json", ev)
	}
	return nil
}

type markdownEngine struct{ v *markdown.Viewer }

func (e *markdownEngine) Title() string      { return e.v.Title() }
func (e *markdownEngine) Stats() string      { return e.v.Stats() }
func (e *markdownEngine) Mount() *vnode.Node { return e.v.Mount() }

func (e *markdownEngine) Head() string {
	if e.v.NeedsMermaid() {
		return page.MermaidScript
	}
	return ""
}

func (e *markdownEngine) Handle(ev Event) error {
	switch ev.Type {
	case "resize", "scroll", "key":
	case "copy":
		e.v.CopyRaw()
	case "copy-html":
		e.v.CopyHTML()
	default:
		return unknown("markdown", ev)
	}
	return nil
}

type diffEngine struct{ v *diff.Viewer }

func (e *diffEngine) Title() string      { return e.v.Title() }
func (e *diffEngine) Stats() string      { return e.v.Stats() }
func (e *diffEngine) Mount() *vnode.Node { return e.v.Mount() }
func (e *diffEngine) Head() string       { return "" }

func (e *diffEngine) Handle(ev Event) error {
	switch ev.Type {
	case "resize", "scroll":
	case "search":
		e.v.Search(ev.Query)
	case "clear-search":
		e.v.ClearSearch()
	case "toggle-file":
		return e.v.ToggleFile(ev.File)
	case "toggle-all":
		e.v.ToggleAll()
	case "view-mode":
		return e.v.SetMode(ev.Mode)
	case "key":
		e.v.Key(ev.Key, ev.Ctrl)
	case "copy":
		e.v.CopyRaw()
	default:
		return unknown("diff", ev)
	}
	return nil
}
