package services

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into normalised terms.
//
// The same tokenizer runs over documents at indexing time and over the
// query string at search time. That symmetry is what makes a match
// possible at all: the word "Liquid." in a title and the query "liquid"
// both normalise to the term "liquid".
type Tokenizer struct{}

// Tokenize lower-cases text, treats any non-letter, non-digit rune as a
// delimiter and discards empty tokens. Deterministic and side-effect-free.
func (Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizePhrase collapses a raw query into a single lower-cased,
// whitespace-normalised phrase. Used for exact-phrase detection.
func (t Tokenizer) NormalizePhrase(text string) string {
	return strings.Join(t.Tokenize(text), " ")
}
