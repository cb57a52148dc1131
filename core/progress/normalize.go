package progress

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numericPrefix matches the longest leading decimal number of a text.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Normalize reads a metric as a number under the ZeroOnUnparseable rule:
// absent, empty and non-numeric values are 0, never an error.
// Leading whitespace is skipped and the longest numeric prefix is read, so "12 lectures" is 12.
func Normalize(f Field) float64 {
	s, ok := f.Raw()
	if !ok {
		return 0
	}
	return parseNumber(s)
}

func parseNumber(s string) float64 {
	m := numericPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
