package vnode

import "strings"

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindAll returns every element for which match returns true.
func FindAll(n *Node, match func(*Node) bool) []*Node {
	var out []*Node
	Walk(n, func(c *Node) bool {
		if c.Kind == ElementNode && c.Tag != "" && match(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Find returns the first element for which match returns true.
func Find(n *Node, match func(*Node) bool) *Node {
	if all := FindAll(n, match); len(all) > 0 {
		return all[0]
	}
	return nil
}

// ByClass matches elements carrying class c.
func ByClass(c string) func(*Node) bool {
	return func(n *Node) bool { return n.HasClass(c) }
}

// ByTag matches elements with the given tag.
func ByTag(tag string) func(*Node) bool {
	return func(n *Node) bool { return n.Tag == tag }
}

// ByAttr matches elements whose attribute name equals value.
func ByAttr(name, value string) func(*Node) bool {
	return func(n *Node) bool {
		v, ok := n.Attr(name)
		return ok && v == value
	}
}

// TextContent concatenates all text beneath n. Raw nodes contribute their
// markup unchanged.
func TextContent(n *Node) string {
	var b strings.Builder
	Walk(n, func(c *Node) bool {
		if c.Kind == TextNode || c.Kind == RawNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}
