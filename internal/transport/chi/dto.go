package chi

import (
	"github.com/beadyks/studysearch/internal/domain/chunk"
	"github.com/beadyks/studysearch/internal/domain/search/result"
	searchuc "github.com/beadyks/studysearch/internal/usecase/search"
)

// Error codes returned to clients.
const (
	codeBadRequest        = "bad_request"
	codeInvalidRequest    = "invalid_request"
	codeDimensionMismatch = "dimension_mismatch"
	codeDocumentNotFound  = "document_not_found"
	codeEmbeddingFailure  = "embedding_failure"
	codeRetrievalFailure  = "retrieval_failure"
	codeUnauthorized      = "unauthorized"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type chunkMetadata struct {
	Topic        string `json:"topic,omitempty"`
	Page         int    `json:"page,omitempty"`
	Section      string `json:"section,omitempty"`
	DocumentName string `json:"documentName,omitempty"`
}

type searchFilters struct {
	DocumentIDs []string `json:"documentIds,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	MinScore    float64  `json:"minScore,omitempty"`
}

type searchRequest struct {
	UserID     string         `json:"userId"`
	Query      string         `json:"query"`
	MaxResults int            `json:"maxResults,omitempty"`
	SearchType string         `json:"searchType,omitempty"`
	Filters    *searchFilters `json:"filters,omitempty"`
}

type searchResult struct {
	ChunkID    string         `json:"chunkId"`
	DocumentID string         `json:"documentId"`
	Text       string         `json:"text"`
	Score      float64        `json:"score"`
	MatchType  string         `json:"matchType"`
	Metadata   *chunkMetadata `json:"metadata,omitempty"`
}

type searchResponse struct {
	Results        []searchResult `json:"results"`
	TotalResults   int            `json:"totalResults"`
	SearchType     string         `json:"searchType"`
	QueryEmbedding []float32      `json:"queryEmbedding,omitempty"`
}

type ingestRequest struct {
	UserID     string         `json:"userId"`
	DocumentID string         `json:"documentId"`
	Text       string         `json:"text"`
	Metadata   *chunkMetadata `json:"metadata,omitempty"`
}

type ingestResponse struct {
	DocumentID string `json:"documentId"`
	Chunks     int    `json:"chunks"`
}

type chunkItem struct {
	ChunkID    string         `json:"chunkId"`
	DocumentID string         `json:"documentId"`
	Text       string         `json:"text"`
	Metadata   *chunkMetadata `json:"metadata,omitempty"`
}

type chunkListResponse struct {
	DocumentID string      `json:"documentId"`
	Chunks     []chunkItem `json:"chunks"`
	Total      int         `json:"total"`
}

func metadataToDTO(m chunk.Metadata) *chunkMetadata {
	if m == (chunk.Metadata{}) {
		return nil
	}
	return &chunkMetadata{
		Topic:        m.Topic,
		Page:         m.Page,
		Section:      m.Section,
		DocumentName: m.DocumentName,
	}
}

func metadataFromDTO(m *chunkMetadata) chunk.Metadata {
	if m == nil {
		return chunk.Metadata{}
	}
	return chunk.Metadata{
		Topic:        m.Topic,
		Page:         m.Page,
		Section:      m.Section,
		DocumentName: m.DocumentName,
	}
}

func resultToDTO(r *result.Result) searchResult {
	return searchResult{
		ChunkID:    r.ChunkID(),
		DocumentID: r.DocumentID(),
		Text:       r.Text(),
		Score:      r.Score(),
		MatchType:  string(r.Match()),
		Metadata:   metadataToDTO(r.Meta()),
	}
}

func responseToDTO(resp *searchuc.Response) searchResponse {
	results := make([]searchResult, len(resp.Results))
	for i := range resp.Results {
		results[i] = resultToDTO(&resp.Results[i])
	}
	return searchResponse{
		Results:        results,
		TotalResults:   resp.Total,
		SearchType:     string(resp.Mode),
		QueryEmbedding: resp.QueryEmbedding,
	}
}

func chunkToDTO(c chunk.Chunk) chunkItem {
	return chunkItem{
		ChunkID:    c.ID(),
		DocumentID: c.DocumentID(),
		Text:       c.Text(),
		Metadata:   metadataToDTO(c.Meta()),
	}
}
