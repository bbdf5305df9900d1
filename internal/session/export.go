package session

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/payload"
)

// Export is a rendered standalone page.
type Export struct {
	Kind  payload.Kind
	Title string
	Stats string
	HTML  []byte
}

// Render builds the standalone page for kind over text. title, when set,
// replaces the viewer's default document title.
func Render(kind payload.Kind, text, title, theme string, opts EngineOptions) (*Export, error) {
	e, err := NewEngine(kind, text, opts)
	if err != nil {
		return nil, err
	}
	doc := page.Document{
		Title:   e.Title(),
		Kind:    string(kind),
		Theme:   theme,
		Content: e.Mount(),
		Payload: payload.Encode(text),
		Head:    e.Head(),
	}
	if title != "" {
		doc.Title = title + " · " + e.Title()
	}
	var buf bytes.Buffer
	if err := page.Write(&buf, doc); err != nil {
		return nil, err
	}
	return &Export{Kind: kind, Title: doc.Title, Stats: e.Stats(), HTML: buf.Bytes()}, nil
}

// WriteFile writes the page to path, creating parent directories.
func (x *Export) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, x.HTML, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
