// Package tabular is the CSV preview engine: parsing, header detection, an
// in-memory row table with filter and sort, a virtual scroll window and the
// viewer that wires them to page events.
package tabular

import "strings"

// Parse splits CSV text into rows of fields. It never fails: malformed
// quoting still yields some partition of the input.
//
// Quotes toggle quoted mode except for a doubled quote inside quotes, which
// is a literal quote. Commas and line breaks only delimit outside quotes.
// CRLF counts as one terminator. A line is emitted only when it holds a
// field, so blank lines and a trailing newline add no rows.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		line     []string
		field    strings.Builder
		inQuotes bool
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case ch == '"':
			if inQuotes && next == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			line = append(line, field.String())
			field.Reset()
		case (ch == '\n' || ch == '\r') && !inQuotes:
			if ch == '\r' && next == '\n' {
				i++
			}
			if field.Len() > 0 || len(line) > 0 {
				rows = append(rows, append(line, field.String()))
				line = nil
				field.Reset()
			}
		default:
			field.WriteRune(ch)
		}
	}
	if field.Len() > 0 || len(line) > 0 {
		rows = append(rows, append(line, field.String()))
	}
	return rows
}
