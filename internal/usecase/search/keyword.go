package search

import (
	"strings"
	"unicode"
)

// presenceBonus rewards a keyword appearing at all, on top of its occurrence
// count. Tunable; the value is inherited, not derived.
const presenceBonus = 0.5

// stopWords are dropped from queries before keyword matching: articles,
// conjunctions, common wh-words, modal verbs and auxiliaries. Tokens of
// length <= 2 are dropped separately.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "nor": {}, "for": {}, "yet": {},
	"what": {}, "which": {}, "who": {}, "whom": {}, "whose": {},
	"when": {}, "where": {}, "why": {}, "how": {},
	"can": {}, "could": {}, "may": {}, "might": {}, "must": {},
	"shall": {}, "should": {}, "will": {}, "would": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"was": {}, "were": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "are": {},
}

// ExtractKeywords lowercases the query, strips punctuation, splits on
// whitespace, and drops short tokens and stop words. An empty return means
// the keyword path matches nothing.
func ExtractKeywords(query string) []string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, query)

	var keywords []string
	for _, tok := range strings.Fields(clean) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

// ScoreKeywords scores chunk text by weighted term frequency, normalized to
// occurrences per 100 characters so shorter chunks are not penalized.
// Matching is case-insensitive literal substring matching; partial-word
// matches count. Each present keyword contributes its occurrence count plus
// presenceBonus. A text containing no keyword scores exactly 0.
func ScoreKeywords(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	var raw float64
	for _, kw := range keywords {
		n := strings.Count(lower, kw)
		if n == 0 {
			continue
		}
		raw += float64(n) + presenceBonus
	}
	if raw == 0 {
		return 0
	}

	return raw / (float64(len(text)) / 100.0)
}
