package page

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// Document is everything the shell template needs to host a preview.
type Document struct {
	Title string
	Kind  string
	Theme string
	// Content is the rendered preview markup.
	Content *vnode.Node
	// Socket is the websocket path for a live session. Empty for static
	// snapshots.
	Socket string
	// Payload is the base64 form of the raw input, used by the copy action
	// when no session is attached.
	Payload string
	// Head holds extra trusted markup for <head>, such as library scripts.
	Head string
}

type shellData struct {
	Title   string
	Kind    string
	Theme   string
	Content template.HTML
	Socket  string
	Payload string
	Head    template.HTML
	CSS     template.CSS
	JS      template.JS
}

var shell = template.Must(template.New("page").Parse(pageTemplate))

// Write renders doc as a complete HTML page.
func Write(w io.Writer, doc Document) error {
	theme := doc.Theme
	if theme == "" {
		theme = "light"
	}
	data := shellData{
		Title:   doc.Title,
		Kind:    doc.Kind,
		Theme:   theme,
		Content: template.HTML(vnode.String(doc.Content)),
		Socket:  doc.Socket,
		Payload: doc.Payload,
		Head:    template.HTML(doc.Head),
		CSS:     template.CSS(cssContent),
		JS:      template.JS(jsContent),
	}
	if err := shell.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// MermaidScript loads the diagram library for pages with mermaid blocks.
const MermaidScript = `<script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>`
