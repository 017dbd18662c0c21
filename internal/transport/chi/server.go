// Package chi is the HTTP transport of the search service.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/beadyks/studysearch/internal/domain"
	"github.com/beadyks/studysearch/internal/domain/search/filter"
	"github.com/beadyks/studysearch/internal/domain/search/mode"
	"github.com/beadyks/studysearch/internal/domain/search/request"
	healthuc "github.com/beadyks/studysearch/internal/usecase/health"
	ingestuc "github.com/beadyks/studysearch/internal/usecase/ingest"
	searchuc "github.com/beadyks/studysearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search, ingest and health services over HTTP.
type Server struct {
	search        *searchuc.Service
	ingest        *ingestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		ingest: ingest,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadRequest, codeDimensionMismatch),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrEmbeddingFailure, http.StatusBadGateway, codeEmbeddingFailure),
		sentinelHandler(domain.ErrRetrievalFailure, http.StatusServiceUnavailable, codeRetrievalFailure),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/documents", s.handleIngest)
		r.Get("/documents/{documentID}/chunks", s.handleListChunks)
		r.Delete("/documents/{documentID}", s.handleDeleteDocument)
	})
}

// handleSearch handles POST /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var f filter.Filter
	if req.Filters != nil {
		f = filter.New(req.Filters.DocumentIDs, req.Filters.Topics, req.Filters.MinScore)
	}

	searchReq, err := request.New(req.UserID, req.Query, mode.Mode(req.SearchType), f, req.MaxResults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, responseToDTO(resp))
}

// handleIngest handles POST /api/v1/documents.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	n, err := s.ingest.IngestDocument(r.Context(), req.UserID, req.DocumentID, req.Text, metadataFromDTO(req.Metadata))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{
		DocumentID: req.DocumentID,
		Chunks:     n,
	})
}

// handleListChunks handles GET /api/v1/documents/{documentID}/chunks.
func (s *Server) handleListChunks(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	userID := r.URL.Query().Get("userId")

	chunks, err := s.ingest.ListChunks(r.Context(), userID, documentID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]chunkItem, len(chunks))
	for i, c := range chunks {
		items[i] = chunkToDTO(c)
	}

	writeJSON(w, http.StatusOK, chunkListResponse{
		DocumentID: documentID,
		Chunks:     items,
		Total:      len(items),
	})
}

// handleDeleteDocument handles DELETE /api/v1/documents/{documentID}.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	userID := r.URL.Query().Get("userId")

	if err := s.ingest.DeleteDocument(r.Context(), userID, documentID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the full message for validation errors and a
// sentinel-only message otherwise, keeping internals out of responses.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) || errors.Is(err, domain.ErrDimensionMismatch) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrDocumentNotFound,
		domain.ErrEmbeddingFailure,
		domain.ErrRetrievalFailure,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
