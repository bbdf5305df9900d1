// Package tree is the JSON and JSONL preview engine. Input is parsed into an
// arena of nodes with parent links; the formatter renders them as a
// collapsible tree and search works over the links rather than over path
// strings.
package tree

import (
	"fmt"
	"strconv"
)

// Kind is the JSON type of a node.
type Kind int

const (
	Object Kind = iota
	Array
	String
	Number
	Boolean
	Null
)

var kindNames = [...]string{"Object", "Array", "String", "Number", "Boolean", "Null"}

// String returns the type name, e.g. "Object".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one value in the document.
type Node struct {
	// ID is the node's index in Document.Nodes, assigned in pre-order.
	ID   int
	Kind Kind
	// Key is the member name when the parent is an object.
	Key string
	// Index is the position among the parent's children.
	Index int
	// Value is the decoded text of a string, or the literal of a number,
	// boolean or null.
	Value    string
	Children []*Node
	Parent   *Node
	// Path locates the node for display: dotted keys and bracketed indices,
	// e.g. "a.b[2].c". The root's path is empty.
	Path  string
	Depth int
	// Expanded is the collapse state of a container. Containers start
	// expanded.
	Expanded bool
}

// IsContainer reports whether n is an object or array.
func (n *Node) IsContainer() bool {
	return n.Kind == Object || n.Kind == Array
}

// Collapsible reports whether n has a collapse control: non-empty containers
// only.
func (n *Node) Collapsible() bool {
	return n.IsContainer() && len(n.Children) > 0
}

// HasKey reports whether n is an object member.
func (n *Node) HasKey() bool {
	return n.Parent != nil && n.Parent.Kind == Object
}

// Document is a parsed JSON value or JSONL stream.
type Document struct {
	Root *Node
	// Nodes holds every node in pre-order; Nodes[i].ID == i.
	Nodes []*Node
	// JSONL is set when the input was read as JSON Lines. Root is then an
	// array with one child per non-empty line.
	JSONL bool
}

// Node returns the node with the given id.
func (d *Document) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(d.Nodes) {
		return nil, false
	}
	return d.Nodes[id], true
}

// MaxDepth is the deepest nesting level of any value; the root is level 0.
func (d *Document) MaxDepth() int {
	depth := 0
	for _, n := range d.Nodes {
		depth = max(depth, n.Depth)
	}
	return depth
}

// Title returns the viewer title for the document.
func (d *Document) Title() string {
	if d.JSONL {
		return "JSONL Viewer"
	}
	return "JSON Viewer"
}

// Stats returns "Object • Depth 2", "Array • Depth 1" or "JSONL • 3 lines".
func (d *Document) Stats() string {
	if d.JSONL {
		return fmt.Sprintf("JSONL • %d lines", len(d.Root.Children))
	}
	return fmt.Sprintf("%s • Depth %d", d.Root.Kind, d.MaxDepth())
}

// index assigns ids, parents, paths and depths below root in pre-order.
func (d *Document) index() {
	d.Nodes = d.Nodes[:0]
	var walk func(n, parent *Node, depth int)
	walk = func(n, parent *Node, depth int) {
		n.ID = len(d.Nodes)
		n.Parent = parent
		n.Depth = depth
		n.Expanded = true
		if parent != nil {
			if parent.Kind == Object {
				n.Path = joinKey(parent.Path, n.Key)
			} else {
				n.Path = joinIndex(parent.Path, n.Index)
			}
		}
		d.Nodes = append(d.Nodes, n)
		for i, c := range n.Children {
			c.Index = i
			walk(c, n, depth+1)
		}
	}
	walk(d.Root, nil, 0)
}

func joinKey(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func joinIndex(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
