package search

import (
	"sort"

	"github.com/beadyks/studysearch/internal/domain/search/result"
)

// Blend weights and boost. Cosine similarity is bounded in [-1,1] while
// keyword density is unbounded, so the weights express relative trust in each
// signal rather than a normalized probabilistic blend. Tunable; the values
// are inherited, not derived, and downstream score expectations depend on
// them.
const (
	semanticWeight = 0.7
	keywordWeight  = 0.3
	bothMatchBoost = 1.2
)

// mergeHybrid fuses the semantic and keyword result lists into one ranked,
// deduplicated, truncated list.
//
// Each semantic result enters at score*semanticWeight. A keyword result for a
// chunk already present adds score*keywordWeight to the entry and marks it
// "both"; otherwise it enters at score*keywordWeight. The minScore filter
// sees the merged pre-boost scores, so a chunk can surface purely from the
// keyword addition; the bothMatchBoost multiplier is applied after the
// filter. Ties keep insertion order: semantic-path entries before
// keyword-only entries.
func mergeHybrid(semantic, keyword []result.Result, minScore float64, maxResults int) []result.Result {
	type entry struct {
		res   result.Result
		score float64
		match result.Match
	}

	byID := make(map[string]*entry, len(semantic)+len(keyword))
	ordered := make([]*entry, 0, len(semantic)+len(keyword))

	for i := range semantic {
		r := semantic[i]
		e := &entry{res: r, score: r.Score() * semanticWeight, match: result.MatchSemantic}
		byID[r.ChunkID()] = e
		ordered = append(ordered, e)
	}

	for i := range keyword {
		r := keyword[i]
		if e, ok := byID[r.ChunkID()]; ok {
			e.score += r.Score() * keywordWeight
			e.match = result.MatchBoth
			continue
		}
		e := &entry{res: r, score: r.Score() * keywordWeight, match: result.MatchKeyword}
		byID[r.ChunkID()] = e
		ordered = append(ordered, e)
	}

	kept := make([]*entry, 0, len(ordered))
	for _, e := range ordered {
		if minScore > 0 && e.score < minScore {
			continue
		}
		kept = append(kept, e)
	}

	for _, e := range kept {
		if e.match == result.MatchBoth {
			e.score *= bothMatchBoost
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}

	out := make([]result.Result, len(kept))
	for i, e := range kept {
		out[i] = result.New(
			e.res.ChunkID(), e.res.DocumentID(), e.res.Text(),
			e.score, e.match, e.res.Meta(),
		)
	}
	return out
}
