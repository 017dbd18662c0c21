// Package studysearch is the embedded client for the studysearch retrieval
// engine: hybrid semantic and keyword search over per-user study material
// stored in Redis.
package studysearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/beadyks/studysearch/internal/db"
	dbRedis "github.com/beadyks/studysearch/internal/db/redis"
	"github.com/beadyks/studysearch/internal/domain"
	logpkg "github.com/beadyks/studysearch/internal/logger"
	chunkrepo "github.com/beadyks/studysearch/internal/repository/chunk"
	ingestuc "github.com/beadyks/studysearch/internal/usecase/ingest"
	searchuc "github.com/beadyks/studysearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the studysearch SDK entry point.
type Client struct {
	store     db.Store
	searchSvc *searchuc.Service
	ingestSvc *ingestuc.Service
	logger    *zap.Logger
}

// New creates a studysearch Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		dimensions: domain.DefaultVectorDimensions,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("studysearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("studysearch: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("studysearch: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	chunks := chunkrepo.New(store)

	// Embedder: noop if not provided (keyword search works, semantic
	// returns an error).
	var domEmb domain.Embedder = &noopEmbedder{}
	if cfg.embedder != nil {
		domEmb = &embedderAdapter{inner: cfg.embedder}
	}

	var ingestOpts []ingestuc.Option
	if cfg.chunkSize > 0 {
		ingestOpts = append(ingestOpts, ingestuc.WithChunking(cfg.chunkSize, cfg.chunkOverlap))
	}

	return &Client{
		store:     store,
		searchSvc: searchuc.New(chunks, domEmb),
		ingestSvc: ingestuc.New(chunks, domEmb, cfg.dimensions, ingestOpts...),
		logger:    cfg.logger,
	}
}

// opCtx attaches the client logger to the context so internal services log
// through it. A nil logger leaves the context untouched (silent operation).
func (c *Client) opCtx(ctx context.Context) context.Context {
	if c.logger == nil {
		return ctx
	}
	return logpkg.ContextWithLogger(ctx, c.logger)
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := a.inner.(BatchEmbedder); ok {
		r, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed: %w", err)
		}
		return domain.BatchEmbeddingResult{
			Embeddings:   r.Embeddings,
			PromptTokens: r.PromptTokens,
			TotalTokens:  r.TotalTokens,
		}, nil
	}
	return domain.BatchFallback(ctx, a, texts)
}

// noopEmbedder returns an error on Embed call (used when no embedder configured).
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, errors.New(
		"studysearch: embedder not configured (use WithEmbedder for semantic search)",
	)
}
