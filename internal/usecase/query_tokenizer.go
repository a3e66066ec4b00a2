package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTermLength is the shortest token that still counts as a search term
const minTermLength = 3

// searchStopWords are request phrasing and filler that never narrow a search
var searchStopWords = map[string]bool{
	// Question and request verbs
	"how": true, "find": true, "show": true, "explain": true, "tell": true,
	"suggest": true, "recommend": true, "want": true, "need": true,
	"looking": true, "can": true, "what": true, "is": true,

	// Pronouns and articles
	"me": true, "you": true, "u": true, "i": true,
	"a": true, "an": true, "the": true, "to": true, "for": true, "about": true,

	// Words every catalog entry shares
	"system": true, "project": true, "projects": true,
	"detail": true, "details": true,
}

// termStems folds plural and adjective forms onto the form used in titles
var termStems = map[string]string{
	"robots":   "robot",
	"robotics": "robot",
}

// normalizeUtterance lowercases and trims raw chat input.
// A leading byte order mark counts as whitespace.
func normalizeUtterance(text string) string {
	return strings.TrimFunc(strings.ToLower(text), isTrimmable)
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// extractSearchTerms splits normalized text on whitespace and keeps
// the terms worth matching against the catalog, in input order.
func extractSearchTerms(text string) []string {
	words := strings.Fields(text)

	terms := make([]string, 0, len(words))
	for _, word := range words {
		if searchStopWords[word] {
			continue
		}
		if utf8.RuneCountInString(word) < minTermLength {
			continue
		}
		if stem, ok := termStems[word]; ok {
			word = stem
		}
		terms = append(terms, word)
	}

	return terms
}
