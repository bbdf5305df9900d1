package diff

import (
	"testing"
)

const sampleDiff = `diff --git a/main.go b/main.go
index 83db48f..bf269f4 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,6 @@ package main
 import "fmt"
 
-func main() {
-	fmt.Println("hi")
+func main() {
+	fmt.Println("hello")
+	fmt.Println("world")
 }
diff --git a/NEW.md b/NEW.md
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/NEW.md
@@ -0,0 +1,2 @@
+# New
+file
diff --git a/old.txt b/old.txt
deleted file mode 100644
index e69de29..0000000
--- a/old.txt
+++ /dev/null
@@ -1 +0,0 @@
-gone
`

func TestParse(t *testing.T) {
	cs, err := Parse(sampleDiff)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs.Files) != 3 {
		t.Fatalf("got %d files, want 3", len(cs.Files))
	}

	tests := []struct {
		name      string
		status    string
		additions int
		deletions int
	}{
		{"main.go", "modified", 3, 2},
		{"NEW.md", "added", 2, 0},
		{"old.txt", "deleted", 0, 1},
	}
	for i, tt := range tests {
		f := cs.Files[i]
		if f.Name != tt.name || f.Status != tt.status {
			t.Errorf("file %d = %q (%s), want %q (%s)", i, f.Name, f.Status, tt.name, tt.status)
		}
		if f.Additions != tt.additions || f.Deletions != tt.deletions {
			t.Errorf("%s: +%d -%d, want +%d -%d", f.Name, f.Additions, f.Deletions, tt.additions, tt.deletions)
		}
	}
	if cs.Additions() != 5 || cs.Deletions() != 3 {
		t.Errorf("totals +%d -%d, want +5 -3", cs.Additions(), cs.Deletions())
	}
}

func TestParseLineNumbers(t *testing.T) {
	cs, err := Parse(sampleDiff)
	if err != nil {
		t.Fatal(err)
	}
	h := cs.Files[0].Hunks[0]
	if h.Header != "@@ -1,5 +1,6 @@ package main" {
		t.Errorf("header = %q", h.Header)
	}
	first := h.Lines[0]
	if first.Kind != Context || first.Old != 1 || first.New != 1 || first.Text != `import "fmt"` {
		t.Errorf("first line = %+v", first)
	}
	last := h.Lines[len(h.Lines)-1]
	if last.Kind != Context || last.Old != 5 || last.New != 6 || last.Text != "}" {
		t.Errorf("last line = %+v", last)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n\n"} {
		cs, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if len(cs.Files) != 0 {
			t.Errorf("Parse(%q) returned %d files", in, len(cs.Files))
		}
	}
}

func TestParseRename(t *testing.T) {
	in := `diff --git a/old.go b/new.go
similarity index 90%
rename from old.go
rename to new.go
index 1111111..2222222 100644
--- a/old.go
+++ b/new.go
@@ -1 +1 @@
-package old
+package new
`
	cs, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	f := cs.Files[0]
	if f.Status != "renamed" || f.Name != "old.go → new.go" {
		t.Errorf("file = %q (%s)", f.Name, f.Status)
	}
}

func TestSplit(t *testing.T) {
	h := Hunk{Lines: []Line{
		{Kind: Context, Old: 1, New: 1, Text: "a"},
		{Kind: Removed, Old: 2, Text: "b"},
		{Kind: Removed, Old: 3, Text: "c"},
		{Kind: Added, New: 2, Text: "B"},
		{Kind: Context, Old: 4, New: 3, Text: "d"},
		{Kind: Added, New: 4, Text: "e"},
	}}
	rows := Split(h)
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if rows[0].Left != rows[0].Right || rows[0].Left.Text != "a" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Left.Text != "b" || rows[1].Right.Text != "B" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].Left.Text != "c" || rows[2].Right != nil {
		t.Errorf("row 2 = %+v", rows[2])
	}
	if rows[4].Left != nil || rows[4].Right.Text != "e" {
		t.Errorf("row 4 = %+v", rows[4])
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"", LineByLine, true},
		{"line-by-line", LineByLine, true},
		{"side-by-side", SideBySide, true},
		{"split", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
