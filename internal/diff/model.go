// Package diff previews git unified diffs: per-file collapsible panels in
// unified or split layout with a filename filter.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	gitdiff "github.com/sourcegraph/go-diff/diff"
)

// LineKind classifies a diff body line.
type LineKind int

const (
	Context LineKind = iota
	Added
	Removed
)

// Line is one body line with its old and new line numbers. A number is 0
// when the line does not exist on that side.
type Line struct {
	Kind LineKind
	Old  int
	New  int
	Text string
}

// Hunk is one @@ section.
type Hunk struct {
	Header string
	Lines  []Line
}

// File is the change to one path.
type File struct {
	Index     int
	Name      string
	OldName   string
	NewName   string
	Status    string // added, deleted, renamed or modified
	Additions int
	Deletions int
	Hunks     []Hunk
	Binary    bool
}

// Changeset is a parsed multi-file diff.
type Changeset struct {
	Files []*File
}

// Parse reads a git unified diff. Blank input yields an empty changeset.
func Parse(text string) (*Changeset, error) {
	cs := &Changeset{}
	if strings.TrimSpace(text) == "" {
		return cs, nil
	}
	fds, err := gitdiff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	for i, fd := range fds {
		cs.Files = append(cs.Files, convertFile(i, fd))
	}
	return cs, nil
}

// Additions sums added lines across files.
func (c *Changeset) Additions() int {
	n := 0
	for _, f := range c.Files {
		n += f.Additions
	}
	return n
}

// Deletions sums removed lines across files.
func (c *Changeset) Deletions() int {
	n := 0
	for _, f := range c.Files {
		n += f.Deletions
	}
	return n
}

func convertFile(index int, fd *gitdiff.FileDiff) *File {
	f := &File{
		Index:   index,
		OldName: trimPrefix(fd.OrigName, "a/"),
		NewName: trimPrefix(fd.NewName, "b/"),
	}
	for _, ext := range fd.Extended {
		switch {
		case strings.HasPrefix(ext, "rename from "):
			f.OldName = strings.TrimPrefix(ext, "rename from ")
		case strings.HasPrefix(ext, "rename to "):
			f.NewName = strings.TrimPrefix(ext, "rename to ")
		case strings.HasPrefix(ext, "Binary files"), ext == "GIT binary patch":
			f.Binary = true
		case strings.HasPrefix(ext, "diff --git ") && f.OldName == "" && f.NewName == "":
			// Extended-only entries (mode changes, binaries) carry no ---/+++ names.
			fields := strings.Fields(strings.TrimPrefix(ext, "diff --git "))
			if len(fields) == 2 {
				f.OldName = trimPrefix(fields[0], "a/")
				f.NewName = trimPrefix(fields[1], "b/")
			}
		}
	}

	switch {
	case f.OldName == "/dev/null":
		f.Status, f.Name = "added", f.NewName
	case f.NewName == "/dev/null":
		f.Status, f.Name = "deleted", f.OldName
	case f.OldName != f.NewName && f.OldName != "":
		f.Status, f.Name = "renamed", f.OldName+" → "+f.NewName
	default:
		f.Status, f.Name = "modified", f.NewName
	}

	for _, h := range fd.Hunks {
		f.Hunks = append(f.Hunks, convertHunk(f, h))
	}
	return f
}

func convertHunk(f *File, h *gitdiff.Hunk) Hunk {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OrigStartLine, h.OrigLines, h.NewStartLine, h.NewLines)
	if h.Section != "" {
		header += " " + h.Section
	}
	out := Hunk{Header: header}
	oldNum, newNum := int(h.OrigStartLine), int(h.NewStartLine)
	for _, raw := range bytes.Split(bytes.TrimSuffix(h.Body, []byte{'\n'}), []byte{'\n'}) {
		if len(raw) == 0 {
			// An empty line in a hunk is a context line whose leading space was stripped.
			out.Lines = append(out.Lines, Line{Kind: Context, Old: oldNum, New: newNum})
			oldNum++
			newNum++
			continue
		}
		text := string(raw[1:])
		switch raw[0] {
		case '+':
			out.Lines = append(out.Lines, Line{Kind: Added, New: newNum, Text: text})
			newNum++
			f.Additions++
		case '-':
			out.Lines = append(out.Lines, Line{Kind: Removed, Old: oldNum, Text: text})
			oldNum++
			f.Deletions++
		case '\\':
		default:
			out.Lines = append(out.Lines, Line{Kind: Context, Old: oldNum, New: newNum, Text: text})
			oldNum++
			newNum++
		}
	}
	return out
}

func trimPrefix(name, prefix string) string {
	if name == "/dev/null" {
		return name
	}
	return strings.TrimPrefix(name, prefix)
}

// Row is one line of the split layout. A nil side renders as an empty cell.
type Row struct {
	Left  *Line
	Right *Line
}

// Split pairs the lines of a hunk for side-by-side display: context lines
// appear on both sides, and each run of removals is aligned with the
// additions that follow it.
func Split(h Hunk) []Row {
	var rows []Row
	lines := h.Lines
	for i := 0; i < len(lines); {
		l := &lines[i]
		if l.Kind == Context {
			rows = append(rows, Row{Left: l, Right: l})
			i++
			continue
		}
		var removed, added []*Line
		for i < len(lines) && lines[i].Kind == Removed {
			removed = append(removed, &lines[i])
			i++
		}
		for i < len(lines) && lines[i].Kind == Added {
			added = append(added, &lines[i])
			i++
		}
		for j := 0; j < len(removed) || j < len(added); j++ {
			var r Row
			if j < len(removed) {
				r.Left = removed[j]
			}
			if j < len(added) {
				r.Right = added[j]
			}
			rows = append(rows, r)
		}
	}
	return rows
}
