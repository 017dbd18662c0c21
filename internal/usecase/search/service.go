// Package search implements the hybrid retrieval engine: semantic and keyword
// scoring over a user's chunk corpus, merged and ranked.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beadyks/studysearch/internal/domain"
	"github.com/beadyks/studysearch/internal/domain/search/mode"
	"github.com/beadyks/studysearch/internal/domain/search/request"
	"github.com/beadyks/studysearch/internal/domain/search/result"
	"github.com/beadyks/studysearch/internal/logger"
	"github.com/beadyks/studysearch/internal/metrics"
)

// hybridOverfetchFactor is how many candidates each hybrid sub-search fetches
// relative to maxResults, so the merge has enough material.
const hybridOverfetchFactor = 2

// Service handles chunk search across semantic, keyword, and hybrid modes.
// Stateless per call; concurrent requests never interact.
type Service struct {
	chunks ChunkStore
	embed  Embedder
}

// New creates a search service.
func New(chunks ChunkStore, embed Embedder) *Service {
	return &Service{chunks: chunks, embed: embed}
}

// Response is the outcome of one search call. QueryEmbedding is set only for
// modes that embedded the query (semantic, hybrid), for caller-side caching.
type Response struct {
	Results        []result.Result
	Total          int
	Mode           mode.Mode
	QueryEmbedding []float32
}

// Search executes a chunk search across semantic, keyword, or hybrid modes.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	start := time.Now()

	resp, err := s.dispatch(ctx, req)

	m := string(req.Mode())
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SearchesTotal.WithLabelValues(m, status).Inc()
	metrics.SearchDuration.WithLabelValues(m).Observe(time.Since(start).Seconds())

	return resp, err
}

func (s *Service) dispatch(ctx context.Context, req *request.Request) (*Response, error) {
	var (
		results  []result.Result
		queryVec []float32
		err      error
	)

	minScore := req.Filters().MinScore()

	switch req.Mode() {
	case mode.Semantic:
		results, queryVec, err = s.searchSemantic(ctx, req, req.MaxResults(), minScore)
	case mode.Keyword:
		results, err = s.searchKeyword(ctx, req, req.MaxResults(), minScore)
	case mode.Hybrid:
		results, queryVec, err = s.searchHybrid(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unsupported search mode %q", domain.ErrInvalidRequest, req.Mode())
	}
	if err != nil {
		return nil, err
	}

	return &Response{
		Results:        results,
		Total:          len(results),
		Mode:           req.Mode(),
		QueryEmbedding: queryVec,
	}, nil
}

// searchSemantic embeds the query once and scores every chunk of the user by
// cosine similarity. A chunk whose stored embedding has the wrong length is
// skipped and logged; one corrupt record must not deny service for the whole
// user.
func (s *Service) searchSemantic(
	ctx context.Context, req *request.Request, limit int, minScore float64,
) ([]result.Result, []float32, error) {
	embRes, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, nil, embeddingFailure(err)
	}

	chunks, err := s.chunks.ListByUser(ctx, req.UserID())
	if err != nil {
		return nil, nil, retrievalFailure(err)
	}
	metrics.SearchChunksScanned.WithLabelValues(string(mode.Semantic)).Add(float64(len(chunks)))

	log := logger.FromContext(ctx)
	filters := req.Filters()

	results := make([]result.Result, 0, len(chunks))
	for i := range chunks {
		c := chunks[i]
		if !filters.MatchesChunk(c) {
			continue
		}
		sim, simErr := CosineSimilarity(embRes.Embedding, c.Embedding())
		if simErr != nil {
			metrics.SearchChunksSkipped.Inc()
			log.Warn("skipping chunk with mismatched embedding",
				zap.String("chunk_id", c.ID()),
				zap.String("document_id", c.DocumentID()),
				zap.Error(simErr),
			)
			continue
		}
		results = append(results, result.FromChunk(c, sim, result.MatchSemantic))
	}

	results = applyMinScore(results, minScore)
	sortByScore(results)
	return truncate(results, limit), embRes.Embedding, nil
}

// searchKeyword scores every chunk of the user by weighted term frequency.
// Zero-score chunks are dropped. A query with no significant keywords matches
// nothing.
func (s *Service) searchKeyword(
	ctx context.Context, req *request.Request, limit int, minScore float64,
) ([]result.Result, error) {
	keywords := ExtractKeywords(req.Query())
	if len(keywords) == 0 {
		return nil, nil
	}

	chunks, err := s.chunks.ListByUser(ctx, req.UserID())
	if err != nil {
		return nil, retrievalFailure(err)
	}
	metrics.SearchChunksScanned.WithLabelValues(string(mode.Keyword)).Add(float64(len(chunks)))

	filters := req.Filters()

	results := make([]result.Result, 0, len(chunks))
	for i := range chunks {
		c := chunks[i]
		if !filters.MatchesChunk(c) {
			continue
		}
		score := ScoreKeywords(c.Text(), keywords)
		if score == 0 {
			continue
		}
		results = append(results, result.FromChunk(c, score, result.MatchKeyword))
	}

	results = applyMinScore(results, minScore)
	sortByScore(results)
	return truncate(results, limit), nil
}

// searchHybrid runs the semantic and keyword sub-searches concurrently, each
// over-fetching candidates, then fuses them. The group wait is the merge
// barrier: both sub-searches complete, or either failure aborts the request.
// The minScore filter is applied inside the merge, not in the sub-searches.
func (s *Service) searchHybrid(
	ctx context.Context, req *request.Request,
) ([]result.Result, []float32, error) {
	overfetch := req.MaxResults() * hybridOverfetchFactor

	var (
		semRes   []result.Result
		kwRes    []result.Result
		queryVec []float32
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		semRes, queryVec, err = s.searchSemantic(gctx, req, overfetch, 0)
		return err
	})
	g.Go(func() error {
		var err error
		kwRes, err = s.searchKeyword(gctx, req, overfetch, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := mergeHybrid(semRes, kwRes, req.Filters().MinScore(), req.MaxResults())
	return merged, queryVec, nil
}

func applyMinScore(results []result.Result, minScore float64) []result.Result {
	if minScore <= 0 {
		return results
	}
	kept := results[:0]
	for _, r := range results {
		if r.Score() >= minScore {
			kept = append(kept, r)
		}
	}
	return kept
}

// sortByScore sorts descending by score. The sort is stable so equal scores
// keep corpus order.
func sortByScore(results []result.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
}

func truncate(results []result.Result, limit int) []result.Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}

// embeddingFailure classifies an embedding provider error. The request is
// aborted; no keyword-only fallback is performed.
func embeddingFailure(err error) error {
	if errors.Is(err, domain.ErrEmbeddingFailure) {
		return fmt.Errorf("vectorize query: %w", err)
	}
	return fmt.Errorf("vectorize query: %w: %w", domain.ErrEmbeddingFailure, err)
}

// retrievalFailure classifies a chunk store error.
func retrievalFailure(err error) error {
	if errors.Is(err, domain.ErrRetrievalFailure) {
		return fmt.Errorf("list chunks: %w", err)
	}
	return fmt.Errorf("list chunks: %w: %w", domain.ErrRetrievalFailure, err)
}
