// Package embedding decorates embedders with observability concerns.
package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/beadyks/studysearch/internal/domain"
)

// InstrumentedEmbedder logs per-call latency and token usage.
type InstrumentedEmbedder struct {
	inner  domain.Embedder
	logger *zap.Logger
}

// NewInstrumented wraps an embedder with latency and token usage logging.
func NewInstrumented(inner domain.Embedder, logger *zap.Logger) *InstrumentedEmbedder {
	return &InstrumentedEmbedder{inner: inner, logger: logger}
}

// Embed delegates to the inner embedder and logs the outcome.
func (e *InstrumentedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()

	result, err := e.inner.Embed(ctx, text)
	if err != nil {
		e.logger.Warn("Embedding failed",
			zap.Int("text_len", len(text)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return domain.EmbeddingResult{}, fmt.Errorf("instrumented embed: %w", err)
	}

	e.logger.Debug("Embedded text",
		zap.Int("text_len", len(text)),
		zap.Int("dimensions", len(result.Embedding)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("total_tokens", result.TotalTokens),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// BatchEmbed delegates to the inner batch embedder and logs aggregate usage.
// Falls back to per-text Embed when the inner embedder has no batch support.
func (e *InstrumentedEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	start := time.Now()

	var result domain.BatchEmbeddingResult
	var err error
	if be, ok := e.inner.(domain.BatchEmbedder); ok {
		result, err = be.BatchEmbed(ctx, texts)
	} else {
		result, err = domain.BatchFallback(ctx, e.inner, texts)
	}
	if err != nil {
		e.logger.Warn("Batch embedding failed",
			zap.Int("batch_size", len(texts)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return domain.BatchEmbeddingResult{}, fmt.Errorf("instrumented batch embed: %w", err)
	}

	e.logger.Debug("Embedded batch",
		zap.Int("batch_size", len(texts)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("total_tokens", result.TotalTokens),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}
