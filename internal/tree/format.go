package tree

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// ContainerID is the id of the element holding the rendered tree.
const ContainerID = "json-container"

const (
	// previewLimit is roughly how many characters of entries a collapsed
	// container previews before eliding the rest.
	previewLimit = 60
	// previewStringLimit truncates strings inside a preview.
	previewStringLimit = 20
)

func entryID(n *Node) string {
	return "jn-" + strconv.Itoa(n.ID)
}

func entrySelector(n *Node) string {
	return "#" + entryID(n)
}

func quoted(s string) string {
	return `"` + s + `"`
}

func brackets(k Kind) (open, close string) {
	if k == Array {
		return "[", "]"
	}
	return "{", "}"
}

// Label is the text of n's own line: its key, if any, and its scalar value or
// opening bracket. Children and the preview are not part of it.
func Label(n *Node) string {
	var b strings.Builder
	if n.HasKey() {
		b.WriteString(quoted(n.Key))
		b.WriteString(": ")
	}
	switch {
	case n.Kind == String:
		b.WriteString(quoted(n.Value))
	case n.IsContainer():
		open, close := brackets(n.Kind)
		b.WriteString(open)
		if len(n.Children) == 0 {
			b.WriteString(close)
		}
	default:
		b.WriteString(n.Value)
	}
	return b.String()
}

// Preview summarises a container's entries for its collapsed form:
// `"name": "alice", "age": 30`. Nested strings are cut at 20 characters and
// nested containers shown as {…} or […]. Entries stop once the text reaches
// about 60 characters.
func Preview(n *Node) string {
	var b strings.Builder
	for i, c := range n.Children {
		if i > 0 {
			if utf8.RuneCountInString(b.String()) >= previewLimit {
				b.WriteString(", …")
				break
			}
			b.WriteString(", ")
		}
		if n.Kind == Object {
			b.WriteString(quoted(c.Key))
			b.WriteString(": ")
		}
		b.WriteString(previewValue(c))
	}
	return b.String()
}

func previewValue(n *Node) string {
	switch n.Kind {
	case Object, Array:
		open, close := brackets(n.Kind)
		if len(n.Children) == 0 {
			return open + close
		}
		return open + "…" + close
	case String:
		return quoted(truncate(n.Value, previewStringLimit))
	}
	return n.Value
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}

// Count is the size note after a preview: "3 keys", "1 item".
func Count(n *Node) string {
	if n.Kind == Array {
		return page.Plural(len(n.Children), "item", "items")
	}
	return page.Plural(len(n.Children), "key", "keys")
}

// Render builds the tree markup. res carries the active search; nil means
// no search.
func Render(d *Document, res *Result) *vnode.Node {
	out := vnode.Fragment(renderEntry(d.Root, true, res))
	if res != nil && len(res.Matches) == 0 {
		out.Append(noResults())
	}
	return out
}

func noResults() *vnode.Node {
	return vnode.El("div", vnode.A("class", "no-results json-no-results"), vnode.Text("No matches found"))
}

func renderEntry(n *Node, last bool, res *Result) *vnode.Node {
	id := strconv.Itoa(n.ID)
	entry := vnode.El("div", vnode.A("class", "json-entry", "id", entryID(n), "data-path", n.Path))
	if n.Collapsible() && !n.Expanded {
		entry.AddClass("json-collapsed")
	}
	if res != nil && !res.Shown(n) {
		entry.AddClass("hidden")
	}

	line := vnode.El("div", vnode.A("class", "json-line"))
	if res != nil && res.Matched(n) {
		line.AddClass("highlight")
	}
	if n.Collapsible() {
		line.Append(vnode.El("span", vnode.A("class", "json-toggle", "data-action", "toggle", "data-node", id)))
	} else {
		line.Append(vnode.El("span", vnode.A("class", "json-toggle leaf")))
	}
	if n.HasKey() {
		line.Append(vnode.El("span", vnode.A("class", "json-key"), vnode.Text(quoted(n.Key))), vnode.Text(": "))
	}

	if !n.Collapsible() {
		line.Append(renderScalar(n))
		if !last {
			line.Append(comma())
		}
		return entry.Append(line)
	}

	open, close := brackets(n.Kind)
	line.Append(
		vnode.El("span", vnode.A("class", "json-bracket json-collapsible", "data-action", "toggle", "data-node", id), vnode.Text(open)),
		vnode.El("span", vnode.A("class", "json-preview"), vnode.Text(Preview(n)+" "+close)),
		vnode.El("span", vnode.A("class", "json-count"), vnode.Text(Count(n))),
	)

	children := vnode.El("div", vnode.A("class", "json-children"))
	for i, c := range n.Children {
		children.Append(renderEntry(c, i == len(n.Children)-1, res))
	}

	closing := vnode.El("div", vnode.A("class", "json-line json-close"),
		vnode.El("span", vnode.A("class", "json-bracket"), vnode.Text(close)),
	)
	if !last {
		closing.Append(comma())
	}
	return entry.Append(line, children, closing)
}

func renderScalar(n *Node) *vnode.Node {
	switch n.Kind {
	case Object, Array:
		open, close := brackets(n.Kind)
		return vnode.El("span", vnode.A("class", "json-bracket"), vnode.Text(open+close))
	case String:
		return vnode.El("span", vnode.A("class", "json-string"), vnode.Text(quoted(n.Value)))
	case Number:
		return vnode.El("span", vnode.A("class", "json-number"), vnode.Text(n.Value))
	case Boolean:
		return vnode.El("span", vnode.A("class", "json-boolean"), vnode.Text(n.Value))
	}
	return vnode.El("span", vnode.A("class", "json-null"), vnode.Text("null"))
}

func comma() *vnode.Node {
	return vnode.El("span", vnode.A("class", "json-comma"), vnode.Text(","))
}
