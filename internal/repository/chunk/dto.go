package chunk

import (
	domchunk "github.com/beadyks/studysearch/internal/domain/chunk"
)

// chunkDTO is the storage representation of a chunk.
type chunkDTO struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	UserID       string    `json:"user_id"`
	Text         string    `json:"text"`
	Embedding    []float32 `json:"embedding"`
	Topic        string    `json:"topic,omitempty"`
	Page         int       `json:"page,omitempty"`
	Section      string    `json:"section,omitempty"`
	DocumentName string    `json:"document_name,omitempty"`
}

func toDTO(c domchunk.Chunk) chunkDTO {
	return chunkDTO{
		ID:           c.ID(),
		DocumentID:   c.DocumentID(),
		UserID:       c.UserID(),
		Text:         c.Text(),
		Embedding:    c.Embedding(),
		Topic:        c.Meta().Topic,
		Page:         c.Meta().Page,
		Section:      c.Meta().Section,
		DocumentName: c.Meta().DocumentName,
	}
}

func toDomain(d chunkDTO) domchunk.Chunk {
	return domchunk.Reconstruct(d.ID, d.DocumentID, d.UserID, d.Text, d.Embedding, domchunk.Metadata{
		Topic:        d.Topic,
		Page:         d.Page,
		Section:      d.Section,
		DocumentName: d.DocumentName,
	})
}
