package tabular

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberNoise holds the characters ignored when reading a cell as a number.
var numberNoise = strings.NewReplacer("$", "", ",", "", "%", "")

// stripNumberNoise removes currency, grouping and percent characters.
func stripNumberNoise(s string) string {
	return numberNoise.Replace(s)
}

// IsNumeric reports whether a cell reads as a number once trimmed and
// stripped of $ , and % characters. Blank cells are not numeric.
func IsNumeric(cell string) bool {
	cleaned := stripNumberNoise(strings.TrimSpace(cell))
	if cleaned == "" {
		return false
	}
	_, ok := parseWholeNumber(cleaned)
	return ok
}

// parseWholeNumber parses s as a complete numeric literal: decimal and
// exponent forms, Infinity, and unsigned 0x/0o/0b integers. Surrounding
// whitespace is allowed.
func parseWholeNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, ok := parseInfinity(s); ok {
		return f, true
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	// ParseFloat is more liberal than a plain decimal literal: it takes
	// underscores, hex floats, inf and nan.
	if strings.ContainsAny(s, "_xXpPiInN") {
		return 0, false
	}
	return parseFloat(s)
}

// leadingNumber matches the numeric prefix a lenient float parse accepts.
var leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// parseLeadingNumber reads the longest numeric prefix of s, ignoring leading
// whitespace: "12px" is 12, "px12" is not a number.
func parseLeadingNumber(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return 0, false
	}
	if f, ok := parseInfinity(m); ok {
		return f, true
	}
	return parseFloat(m)
}

func parseInfinity(s string) (float64, bool) {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
