// Package request defines the validated search query.
package request

import (
	"fmt"
	"strings"

	"github.com/beadyks/studysearch/internal/domain"
	"github.com/beadyks/studysearch/internal/domain/search/filter"
	"github.com/beadyks/studysearch/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength    = 4096
	DefaultMaxResults = 10
	MaxMaxResults     = 100
)

// Request is a validated, user-scoped search query.
type Request struct {
	userID     string
	query      string
	searchMode mode.Mode
	filters    filter.Filter
	maxResults int
}

// New validates and normalizes search parameters. Validation happens before
// any retrieval or embedding call is made. Defaults: mode=hybrid,
// maxResults=10 when zero.
func New(
	userID, query string,
	m mode.Mode,
	filters filter.Filter,
	maxResults int,
) (Request, error) {
	if userID == "" {
		return Request{}, fmt.Errorf("%w: userId is required", domain.ErrInvalidRequest)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: unknown search type %q", domain.ErrInvalidRequest, m)
	}
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 0 {
		return Request{}, fmt.Errorf("%w: maxResults must be positive", domain.ErrInvalidRequest)
	}
	if maxResults > MaxMaxResults {
		maxResults = MaxMaxResults
	}

	return Request{
		userID:     userID,
		query:      query,
		searchMode: m,
		filters:    filters,
		maxResults: maxResults,
	}, nil
}

// UserID returns the tenant the search is scoped to.
func (r *Request) UserID() string { return r.userID }

// Query returns the trimmed search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Filters returns the pre-ranking filters.
func (r *Request) Filters() filter.Filter { return r.filters }

// MaxResults returns the maximum results to return.
func (r *Request) MaxResults() int { return r.maxResults }
