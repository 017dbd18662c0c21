package search

import (
	"errors"
	"math"
	"testing"

	"github.com/beadyks/studysearch/internal/domain"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5, 0.01}

	sim, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("cos(v, v) = %f, want 1.0", sim)
	}
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	v := []float32{1, 2, 3}
	zero := []float32{0, 0, 0}

	sim, err := CosineSimilarity(v, zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("cos(v, 0) = %f, want 0", sim)
	}

	// Two zero vectors are also defined as 0, not NaN.
	sim, err = CosineSimilarity(zero, zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("cos(0, 0) = %f, want 0", sim)
	}
}

func TestCosineSimilarity_Symmetry(t *testing.T) {
	a := []float32{1, 2, -3, 0.5}
	b := []float32{-2, 0.1, 4, 7}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("cos(a,b)=%f != cos(b,a)=%f", ab, ba)
	}
}

func TestCosineSimilarity_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled parallel", []float32{1, 2}, []float32{3, 6}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cos = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity(make([]float32, 1536), make([]float32, 512))
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	var dm *domain.DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("expected DimensionMismatchError, got %T", err)
	}
	if dm.Want != 1536 || dm.Got != 512 {
		t.Errorf("mismatch lengths = (%d, %d), want (1536, 512)", dm.Want, dm.Got)
	}
}
