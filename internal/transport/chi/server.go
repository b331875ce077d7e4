package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/logger"
	healthuc "github.com/kailas-cloud/mediasense/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Services bundles the use cases served over HTTP.
type Services struct {
	Embedding    EmbeddingService
	Search       SearchService
	Classify     ClassifyService
	Instructions InstructionService
	Completion   CompletionService
	Health       HealthService
}

// Server holds the HTTP handlers.
type Server struct {
	svc           Services
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	s := &Server{svc: svc, logger: logger}
	s.errorHandlers = []errorHandler{
		upstreamHandler,
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadRequest, CodeDimensionMismatch),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, CodeValidation),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrDecode, http.StatusUnprocessableEntity, CodeDecode),
		sentinelHandler(domain.ErrBackend, http.StatusBadGateway, CodeBackend),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/generate-embeddings", s.GenerateEmbeddings)
	r.Post("/generate-embeddings-from-url", s.GenerateEmbeddingsFromURL)
	r.Post("/generate-query-embedding", s.GenerateQueryEmbedding)

	r.Post("/search", s.Search)
	r.Post("/search-by-text", s.SearchByText)
	r.Post("/rank", s.Rank)
	r.Post("/classify", s.Classify)
	r.Post("/get-meta-info", s.GetMetaInfo)
	r.Post("/get-embedding-info", s.GetEmbeddingInfo)
	r.Get("/list-ids", s.ListIDs)
	r.Get("/get-document/{id}", s.GetDocument)
	r.Post("/documents", s.IngestDocument)

	r.Post("/ai/completions", s.Complete)

	r.Route("/instructions", func(r chi.Router) {
		r.Get("/", s.ListInstructions)
		r.Post("/", s.CreateInstruction)
		r.Get("/ids", s.ListInstructionIDs)
		r.Get("/search", s.SearchInstructions)
		r.Get("/{id}", s.GetInstruction)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// decodeJSON reads the request body into dst; writes 400 and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// setUsageHeaders reports backend usage of the request.
func setUsageHeaders(w http.ResponseWriter, u *domain.RequestUsage) {
	if n := u.EmbeddingCalls(); n > 0 {
		w.Header().Set("X-Embedding-Calls", strconv.Itoa(n))
	}
	if p, c := u.Tokens(); p+c > 0 {
		w.Header().Set("X-Prompt-Tokens", strconv.Itoa(p))
		w.Header().Set("X-Completion-Tokens", strconv.Itoa(c))
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// upstreamHandler maps remote failures: 503 when a retry may help, 502 otherwise.
func upstreamHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrUpstream) {
		return false
	}
	status := http.StatusBadGateway
	if domain.IsTransient(err) {
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, CodeUpstream, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
}
