// Package chi implements the HTTP API over the retrieval engine.
package chi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	chiRouter "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/snipdex/internal/domain"
	healthuc "github.com/kailas-cloud/snipdex/internal/usecase/health"
	"github.com/kailas-cloud/snipdex/internal/usecase/retriever"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest       = "bad_request"
	codeInvalidQuery     = "invalid_query"
	codeNotReady         = "not_ready"
	codeProviderError    = "embedding_provider_error"
	codeInternalError    = "internal_error"
	codeValidationFailed = "validation_failed"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the retrieval engine over HTTP.
type Server struct {
	index          *retriever.Handle
	health         *healthuc.Service
	logger         *zap.Logger
	defaultResults int
	maxResults     int
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server. defaultResults and maxResults bound
// the n_results request field.
func NewServer(
	index *retriever.Handle,
	health *healthuc.Service,
	defaultResults, maxResults int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		index:          index,
		health:         health,
		logger:         logger,
		defaultResults: defaultResults,
		maxResults:     maxResults,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrNotReady, http.StatusServiceUnavailable, codeNotReady),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Routes mounts all endpoints on the router.
func (s *Server) Routes(r chiRouter.Router) {
	r.Get("/", s.Root)
	r.Post("/query", s.Query)
	r.Get("/health", s.Health)
	r.Get("/collection/info", s.CollectionInfo)
	r.Get("/collection/snippets", s.CollectionSnippets)
	r.Get("/metrics", s.Metrics)
}

type queryRequest struct {
	Question string `json:"question"`
	NResults *int   `json:"n_results,omitempty"`
}

type queryResultDTO struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	SimilarityScore float64 `json:"similarity_score"`
	Distance        float64 `json:"distance"`
}

type queryResponse struct {
	Question     string           `json:"question"`
	Results      []queryResultDTO `json:"results"`
	TotalResults int              `json:"total_results"`
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	nResults := s.defaultResults
	if req.NResults != nil {
		nResults = *req.NResults
	}
	if nResults < 1 || nResults > s.maxResults {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"n_results must be between 1 and "+strconv.Itoa(s.maxResults))
		return
	}

	svc, err := s.index.Acquire()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := svc.Query(r.Context(), req.Question, nResults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	dtos := make([]queryResultDTO, len(results))
	for i, res := range results {
		dtos[i] = queryResultDTO{
			ID:              res.ID,
			Title:           res.Title,
			Content:         res.Content,
			SimilarityScore: round4(res.SimilarityScore),
			Distance:        round4(res.Distance),
		}
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Question:     req.Question,
		Results:      dtos,
		TotalResults: len(dtos),
	})
}

type healthResponse struct {
	Status         string                          `json:"status"`
	Message        string                          `json:"message"`
	CollectionSize int                             `json:"collection_size"`
	Checks         map[string]healthuc.CheckResult `json:"checks,omitempty"`
}

// Health handles GET /health. Returns 503 until the index is built.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	message := "retrieval engine is ready"
	size := 0

	switch report.Status {
	case healthuc.Initializing:
		status = http.StatusServiceUnavailable
		message = "retrieval engine not initialized yet"
	case healthuc.Degraded:
		message = "retrieval engine is ready, a dependency is degraded"
	}

	if svc, err := s.index.Acquire(); err == nil {
		size = svc.Size()
	}

	writeJSON(w, status, healthResponse{
		Status:         string(report.Status),
		Message:        message,
		CollectionSize: size,
		Checks:         report.Checks,
	})
}

// CollectionInfo handles GET /collection/info.
func (s *Server) CollectionInfo(w http.ResponseWriter, r *http.Request) {
	svc, err := s.index.Acquire()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc.Info())
}

type snippetsResponse struct {
	TotalSnippets int              `json:"total_snippets"`
	Snippets      []domain.Snippet `json:"snippets"`
}

// CollectionSnippets handles GET /collection/snippets. Each snippet's
// content carries the canonical searchable text.
func (s *Server) CollectionSnippets(w http.ResponseWriter, r *http.Request) {
	svc, err := s.index.Acquire()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	snippets := svc.Snapshot()
	writeJSON(w, http.StatusOK, snippetsResponse{
		TotalSnippets: len(snippets),
		Snippets:      snippets,
	})
}

// Root handles GET /: a small endpoint directory.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "snipdex API",
		"health":   "/health",
		"query":    "/query",
		"info":     "/collection/info",
		"snippets": "/collection/snippets",
		"metrics":  "/metrics",
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotReady,
		domain.ErrEmbeddingProviderError,
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

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// round4 rounds to 4 decimal places. Applied at the boundary only; the core
// keeps full precision.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
