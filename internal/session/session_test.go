package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/timer"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

const sampleCSV = "name,age\nalice,30\nbob,25\ncarol,41\n"

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"scroll","scrollTop":120.5,"height":400}`))
	if err != nil {
		t.Fatal(err)
	}
	if ev.Type != "scroll" || ev.ScrollTop != 120.5 || ev.Height != 400 {
		t.Errorf("event = %+v", ev)
	}

	ev, err = DecodeEvent([]byte(`{"type":"key","key":"c","ctrl":true}`))
	if err != nil || ev.Key != "c" || !ev.Ctrl {
		t.Errorf("event = %+v, err = %v", ev, err)
	}

	if _, err := DecodeEvent([]byte(`{"query":"x"}`)); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("missing type: err = %v", err)
	}
	if _, err := DecodeEvent([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed message")
	}
}

func TestEngineUnknownEvents(t *testing.T) {
	for _, kind := range payload.Kinds {
		e, err := NewEngine(kind, "", EngineOptions{})
		if err != nil {
			t.Fatalf("NewEngine(%s): %v", kind, err)
		}
		if err := e.Handle(Event{Type: "launch-rockets"}); !errors.Is(err, ErrUnknownEvent) {
			t.Errorf("%s: err = %v, want ErrUnknownEvent", kind, err)
		}
	}
	if _, err := NewEngine("yaml", "", EngineOptions{}); err == nil {
		t.Error("expected error for unsupported kind")
	}
}

func TestSnapshot(t *testing.T) {
	doc, err := Snapshot(payload.KindJSON, `{"a":1}`, EngineOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "JSON Viewer" || doc.Kind != "json" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Payload != payload.Encode(`{"a":1}`) {
		t.Error("payload not embedded")
	}
	if doc.Socket != "" {
		t.Error("snapshot must not have a socket")
	}

	doc, err = Snapshot(payload.KindMarkdown, "```mermaid\ngraph TD\n```\n", EngineOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Head, "mermaid") {
		t.Error("mermaid script missing from head")
	}

	doc, err = Snapshot(payload.KindPlan, "# Launch\n\n## Steps\n\n- [ ] go\n", EngineOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Plan Preview" || doc.Kind != "plan" {
		t.Errorf("plan doc = %+v", doc)
	}
}

func TestHandleCSV(t *testing.T) {
	sched := &timer.Manual{}
	var sent [][]dom.Patch
	s, err := New("p1", payload.KindCSV, sampleCSV, Options{
		Scheduler: sched,
		Send:      func(p []dom.Patch) error { sent = append(sent, p); return nil },
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Mount()

	if err := s.Handle(Event{Type: "sort", Col: 1}); err != nil {
		t.Fatal(err)
	}
	sched.Advance(10 * time.Millisecond)
	s.Flush()
	if len(sent) != 1 {
		t.Fatalf("got %d batches, want 1", len(sent))
	}
	var body string
	for _, p := range sent[0] {
		if p.Op == dom.OpReplace && strings.Contains(p.Target, "tbody") {
			body = p.HTML
		}
	}
	if strings.Index(body, "bob") > strings.Index(body, "alice") {
		t.Errorf("rows not sorted by age: %s", body)
	}

	if err := s.Handle(Event{Type: "sort", Col: 7}); err == nil {
		t.Error("expected error for out-of-range column")
	}
	s.Flush()
	if len(sent) != 1 {
		t.Error("failed sort should not produce patches")
	}
}

func TestHandleJSON(t *testing.T) {
	rec := &dom.Recorder{}
	e, err := NewEngine(payload.KindJSON, `{"a":{"b":1}}`, EngineOptions{Sink: rec})
	if err != nil {
		t.Fatal(err)
	}
	e.Mount()
	if err := e.Handle(Event{Type: "toggle", Node: 1}); err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Last(dom.OpAddClass, "#jn-1"); !ok {
		t.Errorf("patches = %+v", rec.Patches())
	}
	if err := e.Handle(Event{Type: "toggle", Node: 2}); err == nil {
		t.Error("expected error toggling a scalar")
	}
}

func TestHandleDiff(t *testing.T) {
	rec := &dom.Recorder{}
	in := "--- a/x.txt\n+++ b/x.txt\n@@ -1 +1 @@\n-a\n+b\n"
	e, err := NewEngine(payload.KindDiff, in, EngineOptions{Sink: rec, DiffMode: "side-by-side"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(vnode.String(e.Mount()), "diff-table split") {
		t.Error("configured view mode not applied")
	}
	if err := e.Handle(Event{Type: "view-mode", Mode: "line-by-line"}); err != nil {
		t.Fatal(err)
	}
	if err := e.Handle(Event{Type: "toggle-file", File: 3}); err == nil {
		t.Error("expected error for unknown file")
	}
}

func TestRunLoop(t *testing.T) {
	batches := make(chan []dom.Patch, 8)
	s, err := New("p1", payload.KindCSV, sampleCSV, Options{
		Send: func(p []dom.Patch) error { batches <- p; return nil },
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Mount()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.Dispatch(Event{Type: "search", Query: "carol"})
	select {
	case batch := <-batches:
		found := false
		for _, p := range batch {
			if p.Op == dom.OpReplace && strings.Contains(p.HTML, "1 of 3 rows") {
				found = true
			}
		}
		if !found {
			t.Errorf("stats patch missing: %+v", batch)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no patches received")
	}

	// Sort runs on a timer whose callback is posted back onto the loop.
	s.Dispatch(Event{Type: "sort", Col: 0})
	deadline := time.After(2 * time.Second)
	for sorted := false; !sorted; {
		select {
		case batch := <-batches:
			for _, p := range batch {
				if p.Op == dom.OpRemoveClass && p.Class == "sorting" {
					sorted = true
				}
			}
		case <-deadline:
			t.Fatal("sort never completed")
		}
	}

	cancel()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}
}

func TestManager(t *testing.T) {
	m := NewManager(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := m.Open(ctx, "p1", payload.KindJSON, `[1,2]`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := m.Get(s.ID); !ok || got != s {
		t.Fatal("session not registered")
	}

	s.Close()
	deadline := time.Now().Add(2 * time.Second)
	for m.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed session still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := m.Open(ctx, "p2", "yaml", "", nil); err == nil {
		t.Error("expected error for unsupported kind")
	}
}

func TestRenderExport(t *testing.T) {
	x, err := Render(payload.KindCSV, "name,age\nalice,30\n", "people", "dark", EngineOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if x.Title != "people · CSV Viewer" {
		t.Errorf("Title = %q", x.Title)
	}
	if x.Stats != "1 rows × 2 columns" {
		t.Errorf("Stats = %q", x.Stats)
	}
	html := string(x.HTML)
	if !strings.Contains(html, `data-theme="dark"`) || !strings.Contains(html, "alice") {
		t.Errorf("unexpected page: %.200s", html)
	}

	path := filepath.Join(t.TempDir(), "nested", "people.html")
	if err := x.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("page not written: %v", err)
	}

	if _, err := Render(payload.Kind("xml"), "<a/>", "", "", EngineOptions{}); err == nil {
		t.Error("expected error for unsupported kind")
	}
}
