package markdown

import (
	"strings"
	"testing"
)

func TestRenderGFM(t *testing.T) {
	out, err := Render("# Hello World\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`<h1 id="hello-world">Hello World</h1>`, "<table>", "<del>gone</del>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHardWraps(t *testing.T) {
	out, err := Render("one\ntwo\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "one<br") {
		t.Errorf("expected a line break, got %s", out)
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	out, err := Render("<script>alert(1)</script>\n\ntext\n")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML leaked: %s", out)
	}
}

func TestRenderMermaid(t *testing.T) {
	src := "intro\n\n```mermaid\ngraph TD\n  A --> B\n```\n"
	out, err := Render(src)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<div class="mermaid">graph TD`) {
		t.Errorf("mermaid container missing:\n%s", out)
	}
	if !strings.Contains(out, "A --&gt; B") {
		t.Errorf("diagram source not escaped:\n%s", out)
	}
	if strings.Contains(out, "<pre") {
		t.Errorf("mermaid fence rendered as code:\n%s", out)
	}
	if !HasMermaid(src) {
		t.Error("HasMermaid = false")
	}
	if HasMermaid("```go\nfunc main() {}\n```") {
		t.Error("HasMermaid = true for go fence")
	}
}

func TestRenderHighlightsCode(t *testing.T) {
	out, err := Render("```go\npackage main\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<pre") || !strings.Contains(out, "package") {
		t.Errorf("code block missing:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "1 lines • 0 words • 0 chars"},
		{"# Title\n\nSome text here", "3 lines • 5 words • 23 chars"},
		{"héllo", "1 lines • 1 words • 5 chars"},
	}
	for _, tt := range tests {
		if got := Stats(tt.in); got != tt.want {
			t.Errorf("Stats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
