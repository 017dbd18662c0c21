package studysearch

import (
	"context"
	"fmt"

	"github.com/beadyks/studysearch/internal/domain/search/filter"
	"github.com/beadyks/studysearch/internal/domain/search/mode"
	"github.com/beadyks/studysearch/internal/domain/search/request"
	"github.com/beadyks/studysearch/internal/domain/search/result"
)

// SearchType selects the retrieval strategy.
type SearchType string

// Search type constants. Hybrid is the default.
const (
	SearchHybrid   SearchType = "hybrid"
	SearchSemantic SearchType = "semantic"
	SearchKeyword  SearchType = "keyword"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	Type        SearchType
	DocumentIDs []string
	Topics      []string
	MinScore    float64
	MaxResults  int
}

// SearchResult is a single search hit.
type SearchResult struct {
	ChunkID    string
	DocumentID string
	Text       string
	Score      float64
	MatchType  string
	Metadata   Metadata
}

// Search runs a query over the user's stored chunks. A nil opts runs a
// hybrid search with default limits.
func (c *Client) Search(
	ctx context.Context, userID, query string, opts *SearchOptions,
) ([]SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	f := filter.New(opts.DocumentIDs, opts.Topics, opts.MinScore)

	req, err := request.New(userID, query, mode.Mode(opts.Type), f, opts.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	resp, err := c.searchSvc.Search(c.opCtx(ctx), &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResults(resp.Results), nil
}

func fromResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{
			ChunkID:    r.ChunkID(),
			DocumentID: r.DocumentID(),
			Text:       r.Text(),
			Score:      r.Score(),
			MatchType:  string(r.Match()),
			Metadata: Metadata{
				Topic:        r.Meta().Topic,
				Page:         r.Meta().Page,
				Section:      r.Meta().Section,
				DocumentName: r.Meta().DocumentName,
			},
		}
	}
	return out
}
