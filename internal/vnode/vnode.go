// Package vnode is a small virtual markup tree. Engines build nodes; the
// renderer turns them into HTML strings that the page layer ships to the
// browser.
package vnode

import (
	"html"
	"io"
	"strings"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	// TextNode holds escaped character data.
	TextNode Kind = iota
	// ElementNode holds a tag, attributes and children.
	ElementNode
	// RawNode holds pre-rendered, trusted markup.
	RawNode
)

// Attr is a single attribute. Order is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// Node is a Text, Element or Raw node.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Children []*Node
	Data     string
}

// voidElements never carry children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// Text returns a text node.
func Text(s string) *Node {
	return &Node{Kind: TextNode, Data: s}
}

// Raw returns a node whose markup is emitted verbatim.
func Raw(markup string) *Node {
	return &Node{Kind: RawNode, Data: markup}
}

// El returns an element with the given attributes and children. Nil children
// are skipped so callers can build optional parts inline.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	n := &Node{Kind: ElementNode, Tag: tag, Attrs: attrs}
	n.Append(children...)
	return n
}

// A builds an attribute list from name/value pairs.
func A(pairs ...string) []Attr {
	attrs := make([]Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return attrs
}

// Fragment groups nodes without a wrapping element.
func Fragment(children ...*Node) *Node {
	return El("", nil, children...)
}

// Append adds non-nil children.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Classes returns the node's class list.
func (n *Node) Classes() []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	for _, cl := range n.Classes() {
		if cl == c {
			return true
		}
	}
	return false
}

// AddClass adds class c if missing.
func (n *Node) AddClass(c string) {
	if n.HasClass(c) {
		return
	}
	n.SetAttr("class", strings.TrimSpace(strings.Join(append(n.Classes(), c), " ")))
}

// RemoveClass drops class c.
func (n *Node) RemoveClass(c string) {
	classes := n.Classes()
	kept := classes[:0]
	for _, cl := range classes {
		if cl != c {
			kept = append(kept, cl)
		}
	}
	n.SetAttr("class", strings.Join(kept, " "))
}

// Render writes the HTML form of n to w.
func Render(w io.Writer, n *Node) error {
	var b strings.Builder
	write(&b, n)
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the HTML form of n.
func String(n *Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case TextNode:
		b.WriteString(html.EscapeString(n.Data))
	case RawNode:
		b.WriteString(n.Data)
	case ElementNode:
		if n.Tag == "" {
			for _, c := range n.Children {
				write(b, c)
			}
			return
		}
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if voidElements[n.Tag] {
			return
		}
		for _, c := range n.Children {
			write(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}
