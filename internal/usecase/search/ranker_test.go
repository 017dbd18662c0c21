package search

import (
	"math"
	"testing"

	"github.com/beadyks/studysearch/internal/domain/chunk"
	"github.com/beadyks/studysearch/internal/domain/search/result"
)

func makeScored(id string, score float64, match result.Match) result.Result {
	return result.New(id, "doc-"+id, "text-"+id, score, match, chunk.Metadata{})
}

func TestMergeHybrid_WeightsAndBoost(t *testing.T) {
	// Chunk A: semantic only, 0.9 * 0.7 = 0.63.
	// Chunk B: semantic 0.4 and keyword 2.0 -> 0.28 + 0.6 = 0.88, boosted to 1.056.
	semantic := []result.Result{
		makeScored("a", 0.9, result.MatchSemantic),
		makeScored("b", 0.4, result.MatchSemantic),
	}
	keyword := []result.Result{
		makeScored("b", 2.0, result.MatchKeyword),
	}

	merged := mergeHybrid(semantic, keyword, 0, 10)
	if len(merged) != 2 {
		t.Fatalf("expected 2 results, got %d", len(merged))
	}

	if merged[0].ChunkID() != "b" || merged[1].ChunkID() != "a" {
		t.Fatalf("expected order [b, a], got [%s, %s]", merged[0].ChunkID(), merged[1].ChunkID())
	}
	if math.Abs(merged[0].Score()-1.056) > 1e-9 {
		t.Errorf("b score = %f, want 1.056", merged[0].Score())
	}
	if merged[0].Match() != result.MatchBoth {
		t.Errorf("b match = %s, want both", merged[0].Match())
	}
	if math.Abs(merged[1].Score()-0.63) > 1e-9 {
		t.Errorf("a score = %f, want 0.63", merged[1].Score())
	}
	if merged[1].Match() != result.MatchSemantic {
		t.Errorf("a match = %s, want semantic", merged[1].Match())
	}
}

func TestMergeHybrid_DeduplicatesOverlap(t *testing.T) {
	semantic := []result.Result{makeScored("x", 0.5, result.MatchSemantic)}
	keyword := []result.Result{makeScored("x", 1.0, result.MatchKeyword)}

	merged := mergeHybrid(semantic, keyword, 0, 10)
	if len(merged) != 1 {
		t.Fatalf("expected chunk in both lists to appear exactly once, got %d entries", len(merged))
	}
	if merged[0].Match() != result.MatchBoth {
		t.Errorf("match = %s, want both", merged[0].Match())
	}
}

func TestMergeHybrid_BoostBreaksPreBoostTie(t *testing.T) {
	// Both entries merge to 0.70 pre-boost; the dual-match entry must rank
	// strictly higher after the 1.2x boost.
	semantic := []result.Result{
		makeScored("solo", 1.0, result.MatchSemantic), // 0.70
		makeScored("dual", 0.4, result.MatchSemantic), // 0.28
	}
	keyword := []result.Result{
		makeScored("dual", 1.4, result.MatchKeyword), // +0.42 -> 0.70
	}

	merged := mergeHybrid(semantic, keyword, 0, 10)
	if len(merged) != 2 {
		t.Fatalf("expected 2 results, got %d", len(merged))
	}
	if merged[0].ChunkID() != "dual" {
		t.Fatalf("expected boosted dual-match entry first, got %s", merged[0].ChunkID())
	}
	if merged[0].Score() <= merged[1].Score() {
		t.Errorf("dual score %f must be strictly greater than solo score %f",
			merged[0].Score(), merged[1].Score())
	}
}

func TestMergeHybrid_MinScoreSeesPreBoostScores(t *testing.T) {
	// dual merges to 0.88 pre-boost (1.056 after). A 0.9 threshold must
	// exclude it: the filter runs before the boost.
	semantic := []result.Result{makeScored("dual", 0.4, result.MatchSemantic)}
	keyword := []result.Result{makeScored("dual", 2.0, result.MatchKeyword)}

	merged := mergeHybrid(semantic, keyword, 0.9, 10)
	if len(merged) != 0 {
		t.Fatalf("expected pre-boost filtering to drop the entry, got %d results", len(merged))
	}

	// At 0.8 the entry passes and is then boosted.
	merged = mergeHybrid(semantic, keyword, 0.8, 10)
	if len(merged) != 1 {
		t.Fatalf("expected 1 result, got %d", len(merged))
	}
	if math.Abs(merged[0].Score()-1.056) > 1e-9 {
		t.Errorf("score = %f, want 1.056", merged[0].Score())
	}
}

func TestMergeHybrid_KeywordCanSurfaceBelowThresholdSemantic(t *testing.T) {
	// Semantic-only score 0.07 is below the 0.3 threshold, but the keyword
	// addition lifts the merged score over it.
	semantic := []result.Result{makeScored("lifted", 0.1, result.MatchSemantic)} // 0.07
	keyword := []result.Result{makeScored("lifted", 1.0, result.MatchKeyword)}  // +0.30 -> 0.37

	merged := mergeHybrid(semantic, keyword, 0.3, 10)
	if len(merged) != 1 {
		t.Fatalf("expected keyword boost to surface the chunk, got %d results", len(merged))
	}
}

func TestMergeHybrid_StableTieBreak(t *testing.T) {
	// Equal final scores keep insertion order: semantic-path entries in
	// semantic order, then keyword-only entries in keyword order.
	semantic := []result.Result{
		makeScored("s1", 0.3, result.MatchSemantic),
		makeScored("s2", 0.3, result.MatchSemantic),
	}
	keyword := []result.Result{
		makeScored("k1", 0.7, result.MatchKeyword),
		makeScored("k2", 0.7, result.MatchKeyword),
	}

	// All four merge to 0.21.
	merged := mergeHybrid(semantic, keyword, 0, 10)
	if len(merged) != 4 {
		t.Fatalf("expected 4 results, got %d", len(merged))
	}
	wantOrder := []string{"s1", "s2", "k1", "k2"}
	for i, want := range wantOrder {
		if merged[i].ChunkID() != want {
			t.Fatalf("position %d = %s, want %s", i, merged[i].ChunkID(), want)
		}
	}
}

func TestMergeHybrid_Truncates(t *testing.T) {
	semantic := []result.Result{
		makeScored("a", 0.9, result.MatchSemantic),
		makeScored("b", 0.8, result.MatchSemantic),
		makeScored("c", 0.7, result.MatchSemantic),
	}

	merged := mergeHybrid(semantic, nil, 0, 2)
	if len(merged) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(merged))
	}
	if merged[0].ChunkID() != "a" || merged[1].ChunkID() != "b" {
		t.Errorf("expected top-scored [a, b], got [%s, %s]", merged[0].ChunkID(), merged[1].ChunkID())
	}
}

func TestMergeHybrid_EmptyInputs(t *testing.T) {
	if merged := mergeHybrid(nil, nil, 0, 10); len(merged) != 0 {
		t.Fatalf("expected empty merge, got %d results", len(merged))
	}
}
