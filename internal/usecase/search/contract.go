package search

import (
	"context"

	"github.com/beadyks/studysearch/internal/domain"
	"github.com/beadyks/studysearch/internal/domain/chunk"
)

// ChunkStore is the storage contract for search operations. The store returns
// the full working set for a user; the service scores it. An indexed store can
// be swapped in later without changing ranking semantics.
type ChunkStore interface {
	ListByUser(ctx context.Context, userID string) ([]chunk.Chunk, error)
	ListByDocument(ctx context.Context, userID, documentID string) ([]chunk.Chunk, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
