package tabular

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is one data row. Rows are compared by identity, so the same *Row
// appears in every view of the table.
type Row struct {
	Cells []string
}

// Cell returns the value at column i; ok is false for absent cells of
// ragged rows.
func (r *Row) Cell(i int) (value string, ok bool) {
	if i < 0 || i >= len(r.Cells) {
		return "", false
	}
	return r.Cells[i], true
}

// SortState is the single active column sort, if any.
type SortState struct {
	Active    bool
	Column    int
	Direction Direction
}

// Table holds parsed CSV data plus the current filter and sort.
//
// Headers and the full row list never change after construction. The
// filtered view and sort state change with every Filter and SortBy call.
type Table struct {
	headers   []string
	hasHeader bool
	all       []*Row
	position  map[*Row]int

	// order is every row in display order. It starts as all and is
	// rearranged by sorting; filters select from it.
	order    []*Row
	filtered []*Row
	query    string
	sort     SortState
	cmp      *Comparator
}

// NewTable parses text and builds a table, detecting whether the first row
// is a header. Without a header, columns are named "Column 1".."Column N"
// after the first row's width.
func NewTable(text string) *Table {
	return FromRows(Parse(text))
}

// FromRows builds a table from already parsed rows.
func FromRows(rows [][]string) *Table {
	t := &Table{cmp: NewComparator(), position: make(map[*Row]int)}
	if len(rows) == 0 {
		return t
	}

	data := rows
	t.hasHeader = HasHeader(rows)
	if t.hasHeader {
		t.headers = append([]string(nil), rows[0]...)
		data = rows[1:]
	} else {
		t.headers = make([]string, len(rows[0]))
		for i := range t.headers {
			t.headers[i] = fmt.Sprintf("Column %d", i+1)
		}
	}

	t.all = make([]*Row, len(data))
	for i, cells := range data {
		r := &Row{Cells: cells}
		t.all[i] = r
		t.position[r] = i
	}
	t.order = slices.Clone(t.all)
	t.filtered = slices.Clone(t.all)
	return t
}

// Headers returns the column names.
func (t *Table) Headers() []string { return slices.Clone(t.headers) }

// HasHeaderRow reports whether the first input row was used as the header.
func (t *Table) HasHeaderRow() bool { return t.hasHeader }

// Rows returns every data row in input order.
func (t *Table) Rows() []*Row { return t.all }

// Filtered returns the rows matching the current filter, in display order.
func (t *Table) Filtered() []*Row { return t.filtered }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.all) }

// Query returns the active lowercase filter text.
func (t *Table) Query() string { return t.query }

// Sort returns the active sort.
func (t *Table) Sort() SortState { return t.sort }

// RowNumber returns the 1-based position of r in the unfiltered input. ok is
// false when r does not belong to the table.
func (t *Table) RowNumber(r *Row) (n int, ok bool) {
	i, ok := t.position[r]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// Filter keeps rows whose cells, lowercased and joined by spaces, contain
// query. An empty query shows every row. The active sort order is kept.
func (t *Table) Filter(query string) {
	t.query = strings.ToLower(query)
	if t.query == "" {
		t.filtered = slices.Clone(t.order)
		return
	}
	t.filtered = t.filtered[:0:0]
	for _, r := range t.order {
		if rowMatches(r, t.query) {
			t.filtered = append(t.filtered, r)
		}
	}
}

// ClearFilter removes the filter.
func (t *Table) ClearFilter() {
	t.Filter("")
}

func rowMatches(r *Row, query string) bool {
	lowered := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		lowered[i] = strings.ToLower(c)
	}
	return strings.Contains(strings.Join(lowered, " "), query)
}

// SortBy sorts the filtered rows by column. Sorting the active column again
// flips the direction; any other column starts ascending. The sort is stable
// over the current filtered order. Rows hidden by the filter keep their
// places, so clearing the filter shows the full set with the sorted subset
// in its new order.
func (t *Table) SortBy(column int) (SortState, error) {
	if column < 0 || column >= len(t.headers) {
		return t.sort, fmt.Errorf("sort column %d out of range [0,%d)", column, len(t.headers))
	}

	dir := Ascending
	if t.sort.Active && t.sort.Column == column && t.sort.Direction == Ascending {
		dir = Descending
	}
	t.sort = SortState{Active: true, Column: column, Direction: dir}

	slots := make([]int, 0, len(t.filtered))
	member := make(map[*Row]bool, len(t.filtered))
	for _, r := range t.filtered {
		member[r] = true
	}
	for i, r := range t.order {
		if member[r] {
			slots = append(slots, i)
		}
	}

	slices.SortStableFunc(t.filtered, func(a, b *Row) int {
		av, _ := a.Cell(column)
		bv, _ := b.Cell(column)
		return t.cmp.CompareIn(dir, av, bv)
	})

	for i, slot := range slots {
		t.order[slot] = t.filtered[i]
	}
	return t.sort, nil
}

// Stats describes the table size, e.g. "3 rows × 2 columns", or
// "1 of 3 rows × 2 columns" while a filter hides rows.
func (t *Table) Stats() string {
	total := len(t.all)
	cols := len(t.headers)
	if t.query != "" && len(t.filtered) != total {
		return fmt.Sprintf("%d of %d rows × %d columns", len(t.filtered), total, cols)
	}
	return fmt.Sprintf("%d rows × %d columns", total, cols)
}

// ExportJSON returns every row, in input order, as an indented JSON array of
// objects keyed by header. Absent cells export as "". A repeated header keeps
// its first position and takes the later column's value.
func (t *Table) ExportJSON() ([]byte, error) {
	objects := make([]*orderedmap.OrderedMap[string, string], len(t.all))
	for i, r := range t.all {
		obj := orderedmap.New[string, string]()
		for col, h := range t.headers {
			v, _ := r.Cell(col)
			obj.Set(h, v)
		}
		objects[i] = obj
	}
	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding rows: %w", err)
	}
	return data, nil
}
