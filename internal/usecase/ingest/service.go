// Package ingest turns raw document text into embedded, persisted chunks.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/beadyks/studysearch/internal/domain"
	domchunk "github.com/beadyks/studysearch/internal/domain/chunk"
	"github.com/beadyks/studysearch/internal/logger"
)

const (
	defaultChunkSize    = 800
	defaultChunkOverlap = 100
)

// Service chunks, embeds and stores documents.
type Service struct {
	chunks       ChunkStore
	embed        domain.Embedder
	dimensions   int
	chunkSize    int
	chunkOverlap int
}

// Option configures the ingest service.
type Option func(*Service)

// WithChunking overrides the default chunk window size and overlap (in runes).
func WithChunking(size, overlap int) Option {
	return func(s *Service) {
		if size > 0 {
			s.chunkSize = size
		}
		if overlap >= 0 && overlap < s.chunkSize {
			s.chunkOverlap = overlap
		}
	}
}

// New creates an ingest service. dimensions is the expected embedding width;
// zero disables the check.
func New(chunks ChunkStore, embed domain.Embedder, dimensions int, opts ...Option) *Service {
	s := &Service{
		chunks:       chunks,
		embed:        embed,
		dimensions:   dimensions,
		chunkSize:    defaultChunkSize,
		chunkOverlap: defaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestDocument splits text into chunks, embeds each one and stores the
// result. Re-ingesting a document id replaces its previous chunks. Returns
// the number of chunks stored.
func (s *Service) IngestDocument(
	ctx context.Context,
	userID, documentID, text string,
	meta domchunk.Metadata,
) (int, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(documentID) == "" {
		return 0, fmt.Errorf("%w: document id is required", domain.ErrInvalidRequest)
	}

	parts := splitText(text, s.chunkSize, s.chunkOverlap)
	if len(parts) == 0 {
		return 0, fmt.Errorf("%w: document text is empty", domain.ErrInvalidRequest)
	}

	batch, err := s.embedAll(ctx, parts)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingFailure) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailure, err)
	}
	if len(batch.Embeddings) != len(parts) {
		return 0, fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingFailure, len(batch.Embeddings), len(parts))
	}

	// Replace semantics: drop whatever this document id held before.
	if err := s.chunks.DeleteDocument(ctx, userID, documentID); err != nil {
		return 0, fmt.Errorf("%w: replace document %s: %w", domain.ErrRetrievalFailure, documentID, err)
	}

	for i, part := range parts {
		embedding := batch.Embeddings[i]
		if s.dimensions > 0 && len(embedding) != s.dimensions {
			return 0, fmt.Errorf("chunk %d: %w", i, domain.NewDimensionMismatch(s.dimensions, len(embedding)))
		}

		c, err := domchunk.New(fmt.Sprintf("%s:%04d", documentID, i), documentID, userID, part, embedding, meta)
		if err != nil {
			return 0, fmt.Errorf("%w: build chunk %d: %w", domain.ErrInvalidRequest, i, err)
		}
		if err := s.chunks.Put(ctx, c); err != nil {
			return 0, fmt.Errorf("%w: store chunk %s: %w", domain.ErrRetrievalFailure, c.ID(), err)
		}
	}

	log.Info("Ingested document",
		zap.String("document_id", documentID),
		zap.Int("chunks", len(parts)),
		zap.Int("total_tokens", batch.TotalTokens))

	return len(parts), nil
}

// ListChunks returns the stored chunks of a document, ordered by chunk id.
func (s *Service) ListChunks(ctx context.Context, userID, documentID string) ([]domchunk.Chunk, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	chunks, err := s.chunks.ListByDocument(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: list document %s: %w", domain.ErrRetrievalFailure, documentID, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, documentID)
	}
	return chunks, nil
}

// DeleteDocument removes a document and all of its chunks.
func (s *Service) DeleteDocument(ctx context.Context, userID, documentID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	if err := s.chunks.DeleteDocument(ctx, userID, documentID); err != nil {
		return fmt.Errorf("%w: delete document %s: %w", domain.ErrRetrievalFailure, documentID, err)
	}

	logger.FromContext(ctx).Info("Deleted document", zap.String("document_id", documentID))
	return nil
}

func (s *Service) embedAll(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := s.embed.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, s.embed, texts)
}
