package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldCase = cases.Fold()

// FoldName returns the comparison key for a name: accents stripped,
// case folded and surrounding whitespace trimmed.
// Example: "  Émile ZOLA " -> "emile zola"
func FoldName(name string) string {
	// A transform.Chain is stateful, so build one per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		stripped = name
	}
	return strings.TrimSpace(foldCase.String(stripped))
}

// SameName reports whether two names collide under FoldName.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
