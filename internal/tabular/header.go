package tabular

import (
	"regexp"
	"strings"
)

var (
	camelCaseWord  = regexp.MustCompile(`^[a-z][a-zA-Z]*$`)
	pascalCaseWord = regexp.MustCompile(`^[A-Z][a-z]+([A-Z][a-z]+)*$`)
)

// headerThreshold is the minimum HeaderScore for a first row to be treated as
// a header.
const headerThreshold = 3

// HeaderScore rates how much the first row looks like a header:
//
//	+2 some first-row cell looks like an identifier (has "_", camelCase or PascalCase)
//	+2 no first-row cell is numeric
//	+1 some second-row cell is numeric
//	+1 some column changes numeric-ness between the first and second row
func HeaderScore(rows [][]string) int {
	if len(rows) < 2 {
		return 0
	}
	first, second := rows[0], rows[1]
	score := 0

	for _, cell := range first {
		trimmed := strings.TrimSpace(cell)
		if strings.Contains(trimmed, "_") || camelCaseWord.MatchString(trimmed) || pascalCaseWord.MatchString(trimmed) {
			score += 2
			break
		}
	}

	allText := true
	for _, cell := range first {
		if IsNumeric(cell) {
			allText = false
			break
		}
	}
	if allText {
		score += 2
	}

	for _, cell := range second {
		if IsNumeric(cell) {
			score++
			break
		}
	}

	for i := 0; i < len(first) && i < len(second); i++ {
		if IsNumeric(first[i]) != IsNumeric(second[i]) {
			score++
			break
		}
	}

	return score
}

// HasHeader decides whether rows[0] is a header row. Fewer than two rows
// always count as a header.
func HasHeader(rows [][]string) bool {
	if len(rows) < 2 {
		return true
	}
	return HeaderScore(rows) >= headerThreshold
}
