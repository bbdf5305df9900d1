package tabular

import "math"

const (
	// RowHeight is the fixed pixel height of a rendered row. The stylesheet
	// uses the same value.
	RowHeight = 40
	// BufferRows is how many rows are materialised beyond each viewport edge.
	BufferRows = 20
)

// Window is the half-open range [Start, End) of filtered rows that are
// rendered as real DOM rows. Rows outside it are stood in for by spacers.
type Window struct {
	Start int
	End   int
}

// ComputeWindow returns the rows covering the viewport at scrollTop plus
// BufferRows on each side, clamped to [0, total].
func ComputeWindow(scrollTop, viewportHeight float64, total int) Window {
	if scrollTop < 0 {
		scrollTop = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	start := int(math.Floor(scrollTop/RowHeight)) - BufferRows
	end := int(math.Ceil((scrollTop+viewportHeight)/RowHeight)) + BufferRows
	start = max(0, start)
	end = min(total, end)
	// A stale scroll offset past the end of a shrunken row set still yields
	// a valid, empty range.
	start = min(start, end)
	return Window{Start: start, End: end}
}

// Len returns the number of rows in the window.
func (w Window) Len() int { return w.End - w.Start }

// TopSpacer is the pixel height standing in for rows above the window.
func (w Window) TopSpacer() int { return w.Start * RowHeight }

// BottomSpacer is the pixel height standing in for rows below the window.
func (w Window) BottomSpacer(total int) int {
	if rest := total - w.End; rest > 0 {
		return rest * RowHeight
	}
	return 0
}

// Near reports whether both edges of w are within half a buffer of o. A
// scroll that only moves the window this little does not re-render.
func (w Window) Near(o Window) bool {
	return absInt(w.Start-o.Start) < BufferRows/2 && absInt(w.End-o.End) < BufferRows/2
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
