package studysearch

import (
	"context"
	"fmt"

	domchunk "github.com/beadyks/studysearch/internal/domain/chunk"
)

// Metadata describes where a chunk came from within its source document.
type Metadata struct {
	Topic        string
	Page         int
	Section      string
	DocumentName string
}

// Chunk is a stored piece of a document.
type Chunk struct {
	ChunkID    string
	DocumentID string
	Text       string
	Metadata   Metadata
}

// IngestDocument splits text into chunks, embeds each one and stores the
// result under the user. Re-ingesting a document id replaces its previous
// chunks. Returns the number of chunks stored.
func (c *Client) IngestDocument(
	ctx context.Context, userID, documentID, text string, meta Metadata,
) (int, error) {
	n, err := c.ingestSvc.IngestDocument(c.opCtx(ctx), userID, documentID, text, domchunk.Metadata{
		Topic:        meta.Topic,
		Page:         meta.Page,
		Section:      meta.Section,
		DocumentName: meta.DocumentName,
	})
	if err != nil {
		return 0, fmt.Errorf("ingest document: %w", err)
	}
	return n, nil
}

// ListChunks returns the stored chunks of a document, ordered by chunk id.
func (c *Client) ListChunks(ctx context.Context, userID, documentID string) ([]Chunk, error) {
	chunks, err := c.ingestSvc.ListChunks(c.opCtx(ctx), userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	out := make([]Chunk, len(chunks))
	for i, ch := range chunks {
		out[i] = Chunk{
			ChunkID:    ch.ID(),
			DocumentID: ch.DocumentID(),
			Text:       ch.Text(),
			Metadata: Metadata{
				Topic:        ch.Meta().Topic,
				Page:         ch.Meta().Page,
				Section:      ch.Meta().Section,
				DocumentName: ch.Meta().DocumentName,
			},
		}
	}
	return out, nil
}

// DeleteDocument removes a document and all of its chunks.
func (c *Client) DeleteDocument(ctx context.Context, userID, documentID string) error {
	if err := c.ingestSvc.DeleteDocument(c.opCtx(ctx), userID, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
