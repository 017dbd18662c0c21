package studysearch

import (
	"context"
	"errors"
	"testing"
)

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret")(cfg)
	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v, want [localhost:6379]", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	WithRedisAuth("app", 2)(cfg)
	if cfg.username != "app" || cfg.db != 2 {
		t.Errorf("auth = (%q, %d), want (app, 2)", cfg.username, cfg.db)
	}

	WithDimensions(768)(cfg)
	if cfg.dimensions != 768 {
		t.Errorf("dimensions = %d, want 768", cfg.dimensions)
	}

	WithChunking(400, 50)(cfg)
	if cfg.chunkSize != 400 || cfg.chunkOverlap != 50 {
		t.Errorf("chunking = (%d, %d), want (400, 50)", cfg.chunkSize, cfg.chunkOverlap)
	}
}

func TestNew_RequiresAddress(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without database address")
	}
}

func TestEmbedderAdapter(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{Embedding: []float32{0.1, 0.2}, TotalTokens: 7}, nil
		},
	}

	adapter := &embedderAdapter{inner: mock}
	r, err := adapter.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Embedding) != 2 || r.TotalTokens != 7 {
		t.Errorf("result not carried through adapter: %+v", r)
	}
}

func TestEmbedderAdapter_Error(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{}, errors.New("provider down")
		},
	}

	adapter := &embedderAdapter{inner: mock}
	if _, err := adapter.Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from adapter")
	}
}

func TestEmbedderAdapter_BatchFallback(t *testing.T) {
	calls := 0
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			calls++
			return EmbeddingResult{Embedding: []float32{1}, TotalTokens: 2}, nil
		},
	}

	adapter := &embedderAdapter{inner: mock}
	r, err := adapter.BatchEmbed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 per-text calls, got %d", calls)
	}
	if len(r.Embeddings) != 3 || r.TotalTokens != 6 {
		t.Errorf("unexpected batch result: %+v", r)
	}
}

func TestNoopEmbedder(t *testing.T) {
	var e noopEmbedder
	if _, err := e.Embed(context.Background(), "text"); err == nil {
		t.Fatal("expected error from noop embedder")
	}
}
