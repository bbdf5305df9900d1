package tree

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/previewkit/internal/vnode"
)

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return doc
}

func TestLabel(t *testing.T) {
	doc := mustParse(t, `{"name": "alice", "tags": [1], "empty": {}, "n": null}`)
	want := []string{`{`, `"name": "alice"`, `"tags": [`, `1`, `"empty": {}`, `"n": null`}
	for i, n := range doc.Nodes {
		if got := Label(n); got != want[i] {
			t.Errorf("Label(%q) = %q, want %q", n.Path, got, want[i])
		}
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object", `{"name": "Alice", "age": 30}`, `"name": "Alice", "age": 30`},
		{"array", `[1, 2, 3]`, `1, 2, 3`},
		{"nested containers", `{"o": {"x": 1}, "a": [1], "e": [], "f": {}}`, `"o": {…}, "a": […], "e": [], "f": {}`},
		{"long string", `{"text": "this is a very long string that should be truncated"}`, `"text": "this is a very long …"`},
		{"many entries", `[1111111111, 2222222222, 3333333333, 4444444444, 5555555555, 6666666666, 7777777777]`,
			`1111111111, 2222222222, 3333333333, 4444444444, 5555555555, 6666666666, …`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.in)
			if got := Preview(doc.Root); got != tt.want {
				t.Errorf("Preview = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1, "b": 2, "c": 3}`, "3 keys"},
		{`{"a": 1}`, "1 key"},
		{`[1, 2, 3, 4, 5]`, "5 items"},
		{`[true]`, "1 item"},
	}
	for _, tt := range tests {
		if got := Count(mustParse(t, tt.in).Root); got != tt.want {
			t.Errorf("Count(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	doc := mustParse(t, `{"text": "<b>", "num": 42, "flag": true, "none": null, "list": [], "obj": {"k": 1}}`)
	out := Render(doc, nil)
	html := vnode.String(out)

	for _, want := range []string{
		`<span class="json-string">&#34;&lt;b&gt;&#34;</span>`,
		`<span class="json-number">42</span>`,
		`<span class="json-boolean">true</span>`,
		`<span class="json-null">null</span>`,
		`<span class="json-bracket">[]</span>`,
		`data-path="obj.k"`,
		`json-collapsible`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// Only non-empty containers get a toggle.
	toggles := vnode.FindAll(out, vnode.ByAttr("data-action", "toggle"))
	if len(toggles) != 4 {
		t.Errorf("toggle controls = %d, want 4 (root and obj, two each)", len(toggles))
	}

	// The last entry of a container has no trailing comma.
	obj := vnode.Find(out, vnode.ByAttr("data-path", "obj"))
	if n := len(vnode.FindAll(obj, vnode.ByClass("json-comma"))); n != 0 {
		t.Errorf("last entry has %d commas", n)
	}
	text := vnode.Find(out, vnode.ByAttr("data-path", "text"))
	if n := len(vnode.FindAll(text, vnode.ByClass("json-comma"))); n != 1 {
		t.Errorf("first entry has %d commas", n)
	}
}

func TestRenderKeepsNumberLiterals(t *testing.T) {
	html := vnode.String(Render(mustParse(t, `[-2.5e3, 1.50, 12345678901234567890]`), nil))
	for _, want := range []string{"-2.5e3", "1.50", "12345678901234567890"} {
		if !strings.Contains(html, `<span class="json-number">`+want+`</span>`) {
			t.Errorf("number %s not shown as written", want)
		}
	}
}

func TestRenderCollapsed(t *testing.T) {
	doc := mustParse(t, `{"a": {"b": 1}}`)
	doc.Nodes[1].Expanded = false
	entry := vnode.Find(Render(doc, nil), vnode.ByAttr("id", "jn-1"))
	if entry == nil || !entry.HasClass("json-collapsed") {
		t.Fatalf("collapsed entry = %v", entry)
	}
}
