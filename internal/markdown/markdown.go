// Package markdown renders Markdown payloads to sanitised HTML and hosts
// them in a preview with copy actions.
package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md has raw HTML omitted (goldmark's default without html.WithUnsafe).
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
		mermaid{},
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// Render converts Markdown source to HTML.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// HasMermaid reports whether source contains a mermaid fence, so the page
// knows to load the diagram library.
func HasMermaid(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "```mermaid") || strings.HasPrefix(t, "~~~mermaid") {
			return true
		}
	}
	return false
}

// Stats is the header line: "L lines • W words • C chars".
func Stats(source string) string {
	lines := strings.Count(source, "\n") + 1
	words := len(strings.Fields(source))
	chars := utf8.RuneCountInString(source)
	return fmt.Sprintf("%d lines • %d words • %d chars", lines, words, chars)
}
