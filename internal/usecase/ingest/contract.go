package ingest

import (
	"context"

	domchunk "github.com/beadyks/studysearch/internal/domain/chunk"
)

// ChunkWriter persists chunks and removes documents.
type ChunkWriter interface {
	Put(ctx context.Context, c domchunk.Chunk) error
	DeleteDocument(ctx context.Context, userID, documentID string) error
}

// ChunkReader lists the stored chunks of one document.
type ChunkReader interface {
	ListByDocument(ctx context.Context, userID, documentID string) ([]domchunk.Chunk, error)
}

// ChunkStore combines the persistence operations the ingest service needs.
type ChunkStore interface {
	ChunkWriter
	ChunkReader
}
