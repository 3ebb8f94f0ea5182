package bayes

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text, drops every rune that is neither a word character
// ([0-9A-Za-z_]) nor whitespace, and splits the rest on whitespace runs.
// Empty or whitespace-only input yields no tokens.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))

	return strings.Fields(cleaned)
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
