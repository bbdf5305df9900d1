package tree

import (
	"errors"
	"testing"
)

func TestParseObjectKeepsOrder(t *testing.T) {
	doc, err := Parse(`{"zeta": 1, "alpha": {"b": [true, null, "x"]}, "mid": 2.50}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.JSONL {
		t.Error("single value parsed as JSONL")
	}
	root := doc.Root
	if root.Kind != Object || len(root.Children) != 3 {
		t.Fatalf("root = %v with %d children", root.Kind, len(root.Children))
	}
	var keys []string
	for _, c := range root.Children {
		keys = append(keys, c.Key)
	}
	if keys[0] != "zeta" || keys[1] != "alpha" || keys[2] != "mid" {
		t.Errorf("keys = %v", keys)
	}
	if root.Children[2].Value != "2.50" {
		t.Errorf("number literal = %q", root.Children[2].Value)
	}

	arr := root.Children[1].Children[0]
	if arr.Path != "alpha.b" || arr.Kind != Array {
		t.Errorf("array node = %+v", arr)
	}
	wantPaths := []string{"alpha.b[0]", "alpha.b[1]", "alpha.b[2]"}
	wantKinds := []Kind{Boolean, Null, String}
	for i, c := range arr.Children {
		if c.Path != wantPaths[i] || c.Kind != wantKinds[i] {
			t.Errorf("child %d = %q %v", i, c.Path, c.Kind)
		}
		if c.Parent != arr || c.Depth != 3 {
			t.Errorf("child %d parent/depth wrong", i)
		}
	}
}

func TestParseArenaIsPreOrder(t *testing.T) {
	doc, err := Parse(`{"a": {"b": 1}, "c": 2}`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"", "a", "a.b", "c"}
	if len(doc.Nodes) != len(want) {
		t.Fatalf("nodes = %d", len(doc.Nodes))
	}
	for i, n := range doc.Nodes {
		if n.ID != i || n.Path != want[i] {
			t.Errorf("node %d = id %d path %q", i, n.ID, n.Path)
		}
	}
}

func TestParseUnescapesStrings(t *testing.T) {
	doc, err := Parse(`{"k\"ey": "line\nbreak é"}`)
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Root.Children[0]
	if n.Key != `k"ey` {
		t.Errorf("key = %q", n.Key)
	}
	if n.Value != "line\nbreak é" {
		t.Errorf("value = %q", n.Value)
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	doc, err := Parse(`{"a": 1, "b": 2, "a": 3}`)
	if err != nil {
		t.Fatal(err)
	}
	kids := doc.Root.Children
	if len(kids) != 2 || kids[0].Key != "a" || kids[0].Value != "3" || kids[1].Key != "b" {
		t.Errorf("children = %+v", kids)
	}
}

func TestParseScalarRoot(t *testing.T) {
	doc, err := Parse(`  "hello"  `)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Kind != String || doc.Root.Value != "hello" {
		t.Errorf("root = %+v", doc.Root)
	}
	if got := doc.Stats(); got != "String • Depth 0" {
		t.Errorf("Stats = %q", got)
	}
}

func TestParseJSONL(t *testing.T) {
	doc, err := Parse("{\"a\":1}\n\n{\"b\":2}\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !doc.JSONL {
		t.Fatal("expected JSONL")
	}
	if got := len(doc.Root.Children); got != 2 {
		t.Errorf("records = %d, want 2", got)
	}
	if got := doc.Stats(); got != "JSONL • 2 lines" {
		t.Errorf("Stats = %q", got)
	}
	if got := doc.Title(); got != "JSONL Viewer" {
		t.Errorf("Title = %q", got)
	}
	if p := doc.Root.Children[1].Children[0].Path; p != "[1].b" {
		t.Errorf("path = %q", p)
	}
}

func TestParseJSONLWithCRLF(t *testing.T) {
	doc, err := Parse("{\"id\":1}\r\n{\"id\":2}\r\n{\"id\":3}")
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Stats(); got != "JSONL • 3 lines" {
		t.Errorf("Stats = %q", got)
	}
}

func TestParseInvalidLine(t *testing.T) {
	_, err := Parse("{\"a\":1}\n\n{oops}\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("error %v is not ErrInvalidJSON", err)
	}
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 3 {
		t.Errorf("error = %#v, want line 3", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n\n "} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("Parse(%q) error = %v", in, err)
		}
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": {"b": {"c": 1}}}`, "Object • Depth 3"},
		{`[1, 2, 3]`, "Array • Depth 1"},
		{`{}`, "Object • Depth 0"},
		{`[[], {"x": [1]}]`, "Array • Depth 3"},
	}
	for _, tt := range tests {
		doc, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%s): %v", tt.in, err)
		}
		if got := doc.Stats(); got != tt.want {
			t.Errorf("Stats(%s) = %q, want %q", tt.in, got, tt.want)
		}
		if doc.Title() != "JSON Viewer" {
			t.Errorf("Title = %q", doc.Title())
		}
	}
}

func TestIndent(t *testing.T) {
	doc, err := Parse(`{"b":[1,2.0],"a":"<x>","c":{}}`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := doc.Indent()
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "b": [
    1,
    2.0
  ],
  "a": "<x>",
  "c": {}
}`
	if got != want {
		t.Errorf("Indent =\n%s\nwant\n%s", got, want)
	}
}

func TestIndentJSONL(t *testing.T) {
	doc, err := Parse("{\"a\":1}\n{\"b\":2}")
	if err != nil {
		t.Fatal(err)
	}
	got, err := doc.Indent()
	if err != nil {
		t.Fatal(err)
	}
	want := "[\n  {\n    \"a\": 1\n  },\n  {\n    \"b\": 2\n  }\n]"
	if got != want {
		t.Errorf("Indent =\n%s", got)
	}
}
