// Package query maps free-text search requests onto structured filters. It
// is deliberately heuristic: a small vocabulary, token matching and a
// comparator pattern, with anything unrecognized left for the form layer's
// fuzzy option matching to resolve.
package query

import (
	"regexp"
	"strings"
)

// Intents a query can resolve to.
const (
	IntentRanch  = "ranch"
	IntentAnimal = "animal"
	IntentEPD    = "epd"
)

var (
	punctRe = regexp.MustCompile("[“”‘’–—'\"`-]+")
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, strips quote/dash punctuation and collapses
// whitespace.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = punctRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokenize splits a normalized query into tokens.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

// ClassifyIntent decides which search a query is asking for. EPD vocabulary
// wins over animal vocabulary, and ranch is the fallback.
func ClassifyIntent(q string) string {
	norm := Normalize(q)
	for _, w := range []string{"epd", "weaning", "yearling", "milk", "marbling", "ced", "ww", "yw"} {
		if containsToken(norm, w) {
			return IntentEPD
		}
	}
	for _, w := range []string{"bull", "bulls", "female", "females", "cow", "cows", "eid", "tattoo", "registration"} {
		if containsToken(norm, w) {
			return IntentAnimal
		}
	}
	return IntentRanch
}

// containsToken reports whether the word appears as a whole token.
func containsToken(norm, word string) bool {
	return strings.Contains(" "+norm+" ", " "+word+" ")
}
