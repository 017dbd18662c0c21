package filter

import (
	"testing"

	"github.com/beadyks/studysearch/internal/domain/chunk"
)

func makeChunk(t *testing.T, documentID, topic string) chunk.Chunk {
	t.Helper()
	c, err := chunk.New("c1", documentID, "user-1", "text", []float32{1}, chunk.Metadata{Topic: topic})
	if err != nil {
		t.Fatalf("chunk.New: %v", err)
	}
	return c
}

func TestFilter_Empty(t *testing.T) {
	f := New(nil, nil, 0)
	if !f.IsEmpty() {
		t.Error("expected empty filter")
	}
	if !f.MatchesChunk(makeChunk(t, "any-doc", "any topic")) {
		t.Error("empty filter must match everything")
	}
}

func TestFilter_DocumentIDs(t *testing.T) {
	f := New([]string{"doc-1", "doc-2"}, nil, 0)

	if !f.MatchesDocument("doc-1") {
		t.Error("expected doc-1 to pass")
	}
	if f.MatchesDocument("doc-3") {
		t.Error("expected doc-3 to be excluded")
	}
}

func TestFilter_TopicSubstring(t *testing.T) {
	f := New(nil, []string{"algebra", "calculus"}, 0)

	tests := []struct {
		topic string
		want  bool
	}{
		{"linear algebra", true},
		{"calculus II", true},
		{"organic chemistry", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := f.MatchesTopic(tt.topic); got != tt.want {
			t.Errorf("MatchesTopic(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestFilter_Conjunctive(t *testing.T) {
	f := New([]string{"doc-1"}, []string{"algebra"}, 0)

	if !f.MatchesChunk(makeChunk(t, "doc-1", "linear algebra")) {
		t.Error("expected chunk passing both filters to match")
	}
	if f.MatchesChunk(makeChunk(t, "doc-1", "chemistry")) {
		t.Error("expected topic mismatch to exclude despite document match")
	}
	if f.MatchesChunk(makeChunk(t, "doc-2", "linear algebra")) {
		t.Error("expected document mismatch to exclude despite topic match")
	}
}

func TestFilter_MinScoreIndependent(t *testing.T) {
	f := New(nil, nil, 0.5)
	if f.IsEmpty() {
		t.Error("min-score filter is not empty")
	}
	if f.MinScore() != 0.5 {
		t.Errorf("MinScore = %f", f.MinScore())
	}
	// Min-score never affects chunk matching; it applies to scores.
	if !f.MatchesChunk(makeChunk(t, "doc-1", "")) {
		t.Error("min-score must not exclude chunks pre-scoring")
	}
}
