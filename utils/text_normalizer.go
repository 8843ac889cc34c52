package utils

import (
	"regexp"
	"strings"
)

// unitFix rewrites one family of known OCR misreads of a unit marker.
type unitFix struct {
	re   *regexp.Regexp
	repl string
}

// Minute fixes run before kilometer fixes so "k m in" cannot be read as "km in".
// A misread glued to its number keeps the digit; a glued "1n" is left alone
// since "21n" may be "21" followed by a stray letter.
var unitFixes = []unitFix{
	{regexp.MustCompile(`\b(?:m in|m1n|mn|1n|rnin)\b`), "min"},
	{regexp.MustCompile(`(\d)(?:m in|m1n|mn|rnin)\b`), "${1}min"},
	{regexp.MustCompile(`\b(?:k m|kn|kms)\b`), "km"},
	{regexp.MustCompile(`(\d)(?:k m|kn|kms)\b`), "${1}km"},
}

// NormalizeLine lowercases a recognized line, collapses whitespace and
// corrects the unit misreads OCR engines produce on ride-hailing screens.
// Decimal commas are left untouched. NormalizeLine(NormalizeLine(s)) == NormalizeLine(s).
func NormalizeLine(raw string) string {
	s := strings.ToLower(raw)
	s = strings.Join(strings.Fields(s), " ")
	for _, fix := range unitFixes {
		s = fix.re.ReplaceAllString(s, fix.repl)
	}
	return s
}
