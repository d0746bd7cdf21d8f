package calc

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize removes all white space from an expression and converts it to
// upper case. Evaluation always normalizes its input, and error positions
// refer to the normalized expression.
func Normalize(expr string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expr)
	// A Caser is stateful, so each call gets its own.
	return cases.Upper(language.Und).String(s)
}
