package tabular

import (
	"strconv"
	"unicode/utf8"

	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// ContainerID is the id of the scrolling element holding the table.
const ContainerID = "csv-container"

const (
	containerSelector = "#" + ContainerID
	tbodySelector     = containerSelector + " tbody"
	thSelector        = containerSelector + " th"

	// Cells longer than this carry their full value in a title attribute.
	titleThreshold = 50
)

// cellRef addresses a cell by the row's input position and column index.
type cellRef struct {
	row int
	col int
}

func (c cellRef) selector() string {
	return containerSelector + ` tr[data-row="` + strconv.Itoa(c.row) + `"] td[data-col="` + strconv.Itoa(c.col) + `"]`
}

func headerSelector(col int) string {
	return thSelector + `[data-col="` + strconv.Itoa(col) + `"]`
}

func sortClass(d Direction) string {
	return "sort-" + d.String()
}

// renderHead builds the <thead>. The row number column comes first.
func renderHead(headers []string, sort SortState) *vnode.Node {
	tr := vnode.El("tr", nil, vnode.El("th", vnode.A("class", "row-number"), vnode.Text("#")))
	for i, h := range headers {
		th := vnode.El("th", vnode.A(
			"data-action", "sort",
			"data-col", strconv.Itoa(i),
			"title", "Click to sort, drag edge to resize",
		), vnode.Text(h))
		if sort.Active && sort.Column == i {
			th.AddClass(sortClass(sort.Direction))
		}
		tr.Append(th)
	}
	return vnode.El("thead", nil, tr)
}

// selection is the selected cell, if any, and whether it is expanded.
type selection struct {
	cell     cellRef
	active   bool
	expanded bool
}

// renderRows builds the tbody content for window w over the filtered rows:
// a top spacer, the materialised rows, and a bottom spacer.
func renderRows(t *Table, w Window, sel selection) *vnode.Node {
	rows := t.Filtered()
	cols := len(t.headers)
	body := vnode.Fragment()

	if h := w.TopSpacer(); h > 0 {
		body.Append(spacer(cols, h))
	}
	for i := w.Start; i < w.End && i < len(rows); i++ {
		body.Append(renderRow(t, rows[i], cols, sel))
	}
	if h := w.BottomSpacer(len(rows)); h > 0 {
		body.Append(spacer(cols, h))
	}
	return body
}

func spacer(cols, height int) *vnode.Node {
	return vnode.El("tr", vnode.A("class", "virtual-spacer"),
		vnode.El("td", vnode.A(
			"colspan", strconv.Itoa(cols+1),
			"style", "height:"+strconv.Itoa(height)+"px",
		)),
	)
}

func renderRow(t *Table, r *Row, cols int, sel selection) *vnode.Node {
	// An unknown row keeps an empty number cell instead of failing.
	number := ""
	index := -1
	if n, ok := t.RowNumber(r); ok {
		number = strconv.Itoa(n)
		index = n - 1
	}

	tr := vnode.El("tr", vnode.A("data-row", strconv.Itoa(index)),
		vnode.El("td", vnode.A("class", "row-number"), vnode.Text(number)),
	)
	// Cells past the header width are shown too, since search matches them.
	for col := 0; col < max(cols, len(r.Cells)); col++ {
		td := renderCell(r, col)
		if sel.active && sel.cell == (cellRef{row: index, col: col}) {
			td.AddClass("selected")
			if sel.expanded {
				td.AddClass("expanded")
			}
		}
		tr.Append(td)
	}
	return tr
}

func renderCell(r *Row, col int) *vnode.Node {
	value, ok := r.Cell(col)
	if !ok {
		return vnode.El("td", vnode.A("class", "absent", "data-col", strconv.Itoa(col)))
	}

	class := "text"
	if IsNumeric(value) {
		class = "numeric"
	}
	td := vnode.El("td", vnode.A("class", class, "data-col", strconv.Itoa(col)), vnode.Text(value))
	if utf8.RuneCountInString(value) > titleThreshold {
		td.SetAttr("title", value)
	}
	return td
}

// renderTable builds the scrolling container with the table inside.
func renderTable(t *Table, w Window, sel selection) *vnode.Node {
	return vnode.El("div", vnode.A("class", "table-wrapper"),
		vnode.El("table", nil,
			renderHead(t.headers, t.sort),
			vnode.El("tbody", nil, renderRows(t, w, sel)),
		),
	)
}

func toolbar() []*vnode.Node {
	return []*vnode.Node{
		page.SearchBox("search", "clear-search", ""),
		page.Button("Copy CSV", "copy", "📋"),
		page.Button("Export JSON", "export", "💾"),
	}
}
