package phrase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and drops combining marks, turning "mañana"
// into "manana" and "miércoles" into "miercoles".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text and strips diacritics. It never fails: input
// that cannot be transformed is passed through as-is.
func Normalize(text string) string {
	out, _, err := transform.String(stripMarks, text)
	if err != nil {
		out = text
	}
	return strings.ToLower(out)
}

// Tokens normalizes text and splits it into whitespace-delimited tokens.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}
