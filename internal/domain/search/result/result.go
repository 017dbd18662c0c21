// Package result defines a single search hit.
package result

import "github.com/beadyks/studysearch/internal/domain/chunk"

// Match records which retrieval strategies surfaced a result.
type Match string

// Match type constants.
const (
	MatchSemantic Match = "semantic"
	MatchKeyword  Match = "keyword"
	// MatchBoth marks a result returned by both the semantic and keyword paths.
	MatchBoth Match = "both"
)

// Result is a single search hit. Scores are unbounded above after boosting;
// higher is more relevant.
type Result struct {
	chunkID    string
	documentID string
	text       string
	score      float64
	match      Match
	meta       chunk.Metadata
}

// New creates a search result.
func New(chunkID, documentID, text string, score float64, match Match, meta chunk.Metadata) Result {
	return Result{
		chunkID:    chunkID,
		documentID: documentID,
		text:       text,
		score:      score,
		match:      match,
		meta:       meta,
	}
}

// FromChunk creates a result for a scored chunk.
func FromChunk(c chunk.Chunk, score float64, match Match) Result {
	return New(c.ID(), c.DocumentID(), c.Text(), score, match, c.Meta())
}

// ChunkID returns the chunk identifier.
func (r *Result) ChunkID() string { return r.chunkID }

// DocumentID returns the owning document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// Text returns the chunk content.
func (r *Result) Text() string { return r.text }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Match returns the match type.
func (r *Result) Match() Match { return r.match }

// Meta returns the chunk metadata.
func (r *Result) Meta() chunk.Metadata { return r.meta }
