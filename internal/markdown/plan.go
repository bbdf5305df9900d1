package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ReadingWPM is the reading speed behind the "min read" estimate.
const ReadingWPM = 200

// DefaultPlanTitle names a plan that has no level-one heading.
const DefaultPlanTitle = "Implementation Plan"

// Heading is one table of contents entry.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Outline summarises a plan document.
type Outline struct {
	Title    string
	Headings []Heading
	// Sections counts level-two headings.
	Sections int
	Words    int
	Tasks    int
	Done     int
}

// ReadingMinutes estimates reading time, never less than a minute.
func (o Outline) ReadingMinutes() int {
	m := (o.Words + ReadingWPM - 1) / ReadingWPM
	if m < 1 {
		return 1
	}
	return m
}

// Stats is the header line: "N sections • W words • ~M min read".
func (o Outline) Stats() string {
	return fmt.Sprintf("%d sections • %d words • ~%d min read", o.Sections, o.Words, o.ReadingMinutes())
}

// Badges returns the sidebar metadata badges. Sections and tasks are left
// out when the plan has none.
func (o Outline) Badges() []string {
	var out []string
	if o.Sections > 0 {
		out = append(out, fmt.Sprintf("📁 %d sections", o.Sections))
	}
	if o.Tasks > 0 {
		out = append(out, fmt.Sprintf("☑ %d/%d tasks", o.Done, o.Tasks))
	}
	return append(out, fmt.Sprintf("⏱ %d min", o.ReadingMinutes()))
}

// RenderPlan converts a plan to HTML and extracts its outline from the same
// parse, so table of contents anchors match the rendered heading ids.
func RenderPlan(source string) (string, Outline, error) {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	o := outline(doc, src)
	o.Words = len(strings.Fields(source))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, doc); err != nil {
		return "", o, fmt.Errorf("converting plan: %w", err)
	}
	return buf.String(), o, nil
}

func outline(doc ast.Node, src []byte) Outline {
	var o Outline
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			title := plainText(n, src)
			if n.Level == 1 && o.Title == "" {
				o.Title = title
			}
			if n.Level == 2 {
				o.Sections++
			}
			if id, ok := n.AttributeString("id"); ok {
				if b, ok := id.([]byte); ok && len(b) > 0 {
					o.Headings = append(o.Headings, Heading{
						Level: n.Level,
						ID:    string(b),
						Text:  strings.TrimSpace(strings.TrimPrefix(title, "#")),
					})
				}
			}
			return ast.WalkSkipChildren, nil
		case *extast.TaskCheckBox:
			o.Tasks++
			if n.IsChecked {
				o.Done++
			}
		}
		return ast.WalkContinue, nil
	})
	if o.Title == "" {
		o.Title = DefaultPlanTitle
	}
	return o
}

// plainText concatenates the text under n, dropping inline markup.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
