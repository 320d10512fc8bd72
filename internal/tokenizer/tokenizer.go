package tokenizer

import (
	"regexp"
	"strings"
)

// wordRegex matches maximal runs of word characters (letters, digits,
// underscore). Punctuation, whitespace and currency symbols act as
// delimiters and are discarded.
var wordRegex = regexp.MustCompile(`\w+`)

// Tokenize converts a string into a slice of normalized tokens.
// It lowercases the input and extracts word-character runs. The index
// builder and the relevance scorer must both use this function so their
// vocabularies stay aligned.
func Tokenize(text string) []string {
	lowerText := strings.ToLower(text)

	tokens := wordRegex.FindAllString(lowerText, -1)
	if tokens == nil {
		return make([]string, 0) // Return empty slice instead of nil
	}
	return tokens
}
