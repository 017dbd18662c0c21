// Package filter defines the pre-ranking filters of a search request.
package filter

import (
	"strings"

	"github.com/beadyks/studysearch/internal/domain/chunk"
)

// Filter narrows the candidate chunk set of a search. Document and topic
// filters are conjunctive with each other; MinScore is applied separately,
// after scoring (post-merge in hybrid mode).
type Filter struct {
	documentIDs map[string]struct{}
	topics      []string
	minScore    float64
}

// New creates a filter. Empty slices mean "allow all".
func New(documentIDs, topics []string, minScore float64) Filter {
	var docs map[string]struct{}
	if len(documentIDs) > 0 {
		docs = make(map[string]struct{}, len(documentIDs))
		for _, id := range documentIDs {
			if id != "" {
				docs[id] = struct{}{}
			}
		}
	}
	return Filter{documentIDs: docs, topics: topics, minScore: minScore}
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return len(f.documentIDs) == 0 && len(f.topics) == 0 && f.minScore <= 0
}

// MinScore returns the minimum relevance threshold (0 = unset).
func (f Filter) MinScore() float64 { return f.minScore }

// MatchesDocument reports whether the document id passes the filter.
func (f Filter) MatchesDocument(documentID string) bool {
	if len(f.documentIDs) == 0 {
		return true
	}
	_, ok := f.documentIDs[documentID]
	return ok
}

// MatchesTopic reports whether the chunk topic passes the filter. A chunk
// passes when its topic contains at least one allowed topic as a substring.
func (f Filter) MatchesTopic(topic string) bool {
	if len(f.topics) == 0 {
		return true
	}
	for _, t := range f.topics {
		if t != "" && strings.Contains(topic, t) {
			return true
		}
	}
	return false
}

// MatchesChunk applies the document and topic filters conjunctively.
func (f Filter) MatchesChunk(c chunk.Chunk) bool {
	return f.MatchesDocument(c.DocumentID()) && f.MatchesTopic(c.Meta().Topic)
}
