package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/beadyks/studysearch/internal/domain"
)

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, PromptTokens: 3, TotalTokens: 3}, nil
}

type mockBatchEmbedder struct {
	mockEmbedder
	batchCalls int
}

func (m *mockBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.batchCalls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vec
	}
	return domain.BatchEmbeddingResult{Embeddings: out, TotalTokens: 3 * len(texts)}, nil
}

func TestEmbed_PassesThrough(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.5, 0.5}}
	emb := NewInstrumented(inner, zap.NewNop())

	res, err := emb.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embedding) != 2 || res.TotalTokens != 3 {
		t.Errorf("result altered by instrumentation: %+v", res)
	}
}

func TestEmbed_WrapsError(t *testing.T) {
	sentinel := errors.New("provider down")
	emb := NewInstrumented(&mockEmbedder{err: sentinel}, zap.NewNop())

	_, err := emb.Embed(context.Background(), "hello")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}

func TestBatchEmbed_UsesNativeBatch(t *testing.T) {
	inner := &mockBatchEmbedder{mockEmbedder: mockEmbedder{vec: []float32{1}}}
	emb := NewInstrumented(inner, zap.NewNop())

	res, err := emb.BatchEmbed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.batchCalls != 1 || inner.calls != 0 {
		t.Errorf("expected one native batch call, got batch=%d single=%d", inner.batchCalls, inner.calls)
	}
	if len(res.Embeddings) != 3 {
		t.Errorf("expected 3 embeddings, got %d", len(res.Embeddings))
	}
}

func TestBatchEmbed_FallsBackPerText(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{1}}
	emb := NewInstrumented(inner, zap.NewNop())

	res, err := emb.BatchEmbed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 per-text calls, got %d", inner.calls)
	}
	if res.TotalTokens != 6 {
		t.Errorf("expected aggregated tokens 6, got %d", res.TotalTokens)
	}
}
