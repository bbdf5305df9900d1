package tabular

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Comparator orders cell values: numerically when both cells read as
// numbers after stripping $ , and %, otherwise with a locale-aware collation
// that compares digit runs by value ("item2" < "item10").
//
// A Comparator is not safe for concurrent use.
type Comparator struct {
	collator *collate.Collator
}

// NewComparator returns a Comparator using the root locale.
func NewComparator() *Comparator {
	return &Comparator{collator: collate.New(language.Und, collate.Numeric)}
}

// Compare returns -1, 0 or 1 for a before, equal to, or after b in
// ascending order.
func (c *Comparator) Compare(a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	an, aok := parseLeadingNumber(stripNumberNoise(a))
	bn, bok := parseLeadingNumber(stripNumberNoise(b))
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return c.collator.CompareString(a, b)
}

// CompareIn applies dir to Compare. Descending flips the sign whichever
// branch produced the result.
func (c *Comparator) CompareIn(dir Direction, a, b string) int {
	r := c.Compare(a, b)
	if dir == Descending {
		return -r
	}
	return r
}
