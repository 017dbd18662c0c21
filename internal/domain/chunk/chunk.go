// Package chunk defines the immutable unit of indexed study-material text.
package chunk

import "fmt"

// Metadata holds optional descriptive fields attached to a chunk.
type Metadata struct {
	Topic        string
	Page         int
	Section      string
	DocumentName string
}

// Chunk is an embedded fragment of a user's document. Chunks are created once
// at ingest time and never mutated by the search core.
type Chunk struct {
	id         string
	documentID string
	userID     string
	text       string
	embedding  []float32
	meta       Metadata
}

// New validates and creates a chunk.
func New(id, documentID, userID, text string, embedding []float32, meta Metadata) (Chunk, error) {
	if id == "" {
		return Chunk{}, fmt.Errorf("chunk id is required")
	}
	if documentID == "" {
		return Chunk{}, fmt.Errorf("document id is required")
	}
	if userID == "" {
		return Chunk{}, fmt.Errorf("user id is required")
	}
	if text == "" {
		return Chunk{}, fmt.Errorf("chunk text is required")
	}
	if len(embedding) == 0 {
		return Chunk{}, fmt.Errorf("chunk embedding is required")
	}
	return Reconstruct(id, documentID, userID, text, embedding, meta), nil
}

// Reconstruct creates a chunk from storage without validation.
func Reconstruct(id, documentID, userID, text string, embedding []float32, meta Metadata) Chunk {
	return Chunk{
		id:         id,
		documentID: documentID,
		userID:     userID,
		text:       text,
		embedding:  embedding,
		meta:       meta,
	}
}

// ID returns the chunk identifier.
func (c *Chunk) ID() string { return c.id }

// DocumentID returns the owning document identifier.
func (c *Chunk) DocumentID() string { return c.documentID }

// UserID returns the owning tenant identifier.
func (c *Chunk) UserID() string { return c.userID }

// Text returns the chunk content.
func (c *Chunk) Text() string { return c.text }

// Embedding returns the precomputed embedding vector.
func (c *Chunk) Embedding() []float32 { return c.embedding }

// Meta returns the optional chunk metadata.
func (c *Chunk) Meta() Metadata { return c.meta }
