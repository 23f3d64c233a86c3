package keyword

import "strings"

// Normalize produces the canonical matching form of raw text: lower-cased,
// with every run of whitespace collapsed to a single space and the ends
// trimmed. It is total and idempotent; punctuation is left alone so phrases
// containing it still match.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
