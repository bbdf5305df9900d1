package diff

import (
	"strconv"
	"strings"

	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// ContainerID is the id of the element holding the file panels.
const ContainerID = "diff-container"

// Mode is a diff layout.
type Mode string

const (
	LineByLine Mode = "line-by-line"
	SideBySide Mode = "side-by-side"
)

// ParseMode validates a layout name. Empty selects LineByLine.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", LineByLine:
		return LineByLine, true
	case SideBySide:
		return SideBySide, true
	}
	return "", false
}

// panel is the display state of one file.
type panel struct {
	collapsed bool
	hidden    bool
}

func fileID(i int) string { return "df-" + strconv.Itoa(i) }

func fileSelector(i int) string { return "#" + fileID(i) }

func renderFiles(cs *Changeset, state []panel, mode Mode) *vnode.Node {
	if len(cs.Files) == 0 {
		return noChanges()
	}
	out := vnode.Fragment()
	shown := 0
	for i, f := range cs.Files {
		if !state[i].hidden {
			shown++
		}
		out.Append(renderFile(f, state[i], mode))
	}
	if shown == 0 {
		out.Append(vnode.El("div", vnode.A("class", "no-results"), vnode.Text("No files match")))
	}
	return out
}

func noChanges() *vnode.Node {
	return vnode.El("div", vnode.A("class", "diff-empty no-changes"),
		vnode.El("div", vnode.A("class", "diff-empty-icon"), vnode.Text("✓")),
		vnode.El("h2", nil, vnode.Text("No changes detected")),
		vnode.El("p", nil, vnode.Text("Your working directory is clean")),
	)
}

func renderFile(f *File, st panel, mode Mode) *vnode.Node {
	idx := strconv.Itoa(f.Index)
	wrapper := vnode.El("div", vnode.A("class", "diff-file", "id", fileID(f.Index), "data-file", idx))
	if st.collapsed {
		wrapper.AddClass("collapsed")
	}
	if st.hidden {
		wrapper.AddClass("hidden")
	}

	header := vnode.El("div", vnode.A("class", "diff-file-header", "data-action", "toggle-file", "data-file", idx),
		vnode.El("span", vnode.A("class", "collapse-icon"), vnode.Text("▼")),
		vnode.El("span", vnode.A("class", "diff-file-name"), vnode.Text(f.Name)),
		vnode.El("span", vnode.A("class", "diff-file-status status-"+f.Status), vnode.Text(f.Status)),
		vnode.El("span", vnode.A("class", "diff-file-stats"),
			vnode.El("span", vnode.A("class", "added"), vnode.Text("+"+strconv.Itoa(f.Additions))),
			vnode.Text(" "),
			vnode.El("span", vnode.A("class", "removed"), vnode.Text("-"+strconv.Itoa(f.Deletions))),
		),
	)

	body := vnode.El("div", vnode.A("class", "diff-file-body"))
	switch {
	case f.Binary:
		body.Append(vnode.El("div", vnode.A("class", "diff-note"), vnode.Text("Binary file not shown")))
	case len(f.Hunks) == 0:
		body.Append(vnode.El("div", vnode.A("class", "diff-note"), vnode.Text("No content changes")))
	case mode == SideBySide:
		body.Append(splitTable(f))
	default:
		body.Append(unifiedTable(f))
	}
	return wrapper.Append(header, body)
}

func unifiedTable(f *File) *vnode.Node {
	tbody := vnode.El("tbody", nil)
	for _, h := range f.Hunks {
		tbody.Append(vnode.El("tr", vnode.A("class", "diff-line hunk"),
			vnode.El("td", vnode.A("class", "line-num")),
			vnode.El("td", vnode.A("class", "line-num")),
			vnode.El("td", vnode.A("class", "code"), vnode.Text(h.Header)),
		))
		for _, l := range h.Lines {
			tbody.Append(vnode.El("tr", vnode.A("class", "diff-line "+lineClass(l.Kind)),
				lineNum(l.Old),
				lineNum(l.New),
				vnode.El("td", vnode.A("class", "code"), vnode.Text(prefix(l.Kind)+l.Text)),
			))
		}
	}
	return vnode.El("table", vnode.A("class", "diff-table unified"), tbody)
}

func splitTable(f *File) *vnode.Node {
	tbody := vnode.El("tbody", nil)
	for _, h := range f.Hunks {
		tbody.Append(vnode.El("tr", vnode.A("class", "diff-line hunk"),
			vnode.El("td", vnode.A("class", "code", "colspan", "4"), vnode.Text(h.Header)),
		))
		for _, r := range Split(h) {
			tr := vnode.El("tr", vnode.A("class", "diff-line split"))
			tr.Append(side(r.Left, true)...)
			tr.Append(side(r.Right, false)...)
			tbody.Append(tr)
		}
	}
	return vnode.El("table", vnode.A("class", "diff-table split"), tbody)
}

func side(l *Line, left bool) []*vnode.Node {
	if l == nil {
		return []*vnode.Node{
			vnode.El("td", vnode.A("class", "line-num empty")),
			vnode.El("td", vnode.A("class", "code empty")),
		}
	}
	num := l.New
	if left {
		num = l.Old
	}
	return []*vnode.Node{
		lineNum(num),
		vnode.El("td", vnode.A("class", "code "+lineClass(l.Kind)), vnode.Text(prefix(l.Kind)+l.Text)),
	}
}

func lineNum(n int) *vnode.Node {
	td := vnode.El("td", vnode.A("class", "line-num"))
	if n > 0 {
		td.Append(vnode.Text(strconv.Itoa(n)))
	}
	return td
}

func lineClass(k LineKind) string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	}
	return "context"
}

func prefix(k LineKind) string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	}
	return " "
}

func modeButtons(current Mode) []*vnode.Node {
	var out []*vnode.Node
	for _, m := range []struct {
		label string
		mode  Mode
	}{{"Split View", SideBySide}, {"Unified", LineByLine}} {
		b := page.Button(m.label, "view-mode", "", vnode.A("data-mode", string(m.mode))...)
		b.AddClass("view-mode-btn")
		if m.mode == current {
			b.AddClass("active")
		}
		out = append(out, b)
	}
	return out
}

func matches(f *File, query string) bool {
	return query == "" || strings.Contains(strings.ToLower(f.Name), query)
}
