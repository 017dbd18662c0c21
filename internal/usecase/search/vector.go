package search

import (
	"math"

	"github.com/beadyks/studysearch/internal/domain"
)

// CosineSimilarity returns the cosine similarity of two equal-length vectors,
// in [-1, 1]. Vectors of differing length cannot be compared and yield a
// dimension mismatch error. A zero vector carries no directional information
// and is defined as maximally dissimilar to everything: similarity 0, not NaN.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, domain.NewDimensionMismatch(len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
