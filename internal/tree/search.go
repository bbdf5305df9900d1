package tree

import "strings"

// Result is the outcome of one search: which nodes matched and which stay
// visible.
type Result struct {
	// Query is the lowercased search text.
	Query   string
	Matches []*Node

	matched []bool
	shown   []bool
}

// Matched reports whether n itself matched.
func (r *Result) Matched(n *Node) bool { return r.matched[n.ID] }

// Shown reports whether n stays visible.
func (r *Result) Shown(n *Node) bool { return r.shown[n.ID] }

// Search finds the nodes whose own line or path contains query, case
// insensitively. It returns nil for an empty query.
//
// A node stays visible when it leads to a match (the match itself and every
// ancestor) or when its parent holds a match, so matches are shown alongside
// their siblings. The root is always visible and never matches.
func (d *Document) Search(query string) *Result {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}
	res := &Result{
		Query:   q,
		matched: make([]bool, len(d.Nodes)),
		shown:   make([]bool, len(d.Nodes)),
	}
	holdsMatch := make([]bool, len(d.Nodes))
	leadsToMatch := make([]bool, len(d.Nodes))

	for _, n := range d.Nodes {
		if n.Parent == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(Label(n)), q) && !strings.Contains(strings.ToLower(n.Path), q) {
			continue
		}
		res.matched[n.ID] = true
		res.Matches = append(res.Matches, n)
		holdsMatch[n.Parent.ID] = true
		for a := n; a != nil && !leadsToMatch[a.ID]; a = a.Parent {
			leadsToMatch[a.ID] = true
		}
	}

	for _, n := range d.Nodes {
		res.shown[n.ID] = n.Parent == nil || leadsToMatch[n.ID] || holdsMatch[n.Parent.ID]
	}
	return res
}

// Reveal expands every visible container so that all matches and their
// context can be seen.
func (d *Document) Reveal(res *Result) {
	if res == nil {
		return
	}
	for _, n := range d.Nodes {
		if n.IsContainer() && res.Shown(n) {
			n.Expanded = true
		}
	}
}

// SetExpanded expands or collapses every container.
func (d *Document) SetExpanded(expanded bool) {
	for _, n := range d.Nodes {
		if n.IsContainer() {
			n.Expanded = expanded
		}
	}
}
