package chi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hits, err := s.svc.Search.Search(r.Context(), req.QueryEmbedding, req.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: hitsToAPI(hits)})
}

// SearchByText handles POST /search-by-text.
func (s *Server) SearchByText(w http.ResponseWriter, r *http.Request) {
	var req SearchByTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	hits, err := s.svc.Search.SearchByText(ctx, req.QueryText, req.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, SearchResponse{QueryText: req.QueryText, Results: hitsToAPI(hits)})
}

// Rank handles POST /rank.
func (s *Server) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	results, err := s.svc.Classify.Rank(req.Query, candidatesFromAPI(req.Candidates), req.Metric, req.TopK)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RankResponse{Results: rankResultsToAPI(results)})
}

// Classify handles POST /classify.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	results, err := s.svc.Classify.ClassifyAgainstLabels(ctx, req.Embedding, req.Labels, req.Metric)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, RankResponse{Results: rankResultsToAPI(results)})
}

// GetMetaInfo handles POST /get-meta-info?id=&metric=&labels=a,b.
func (s *Server) GetMetaInfo(w http.ResponseWriter, r *http.Request) {
	var (
		id     string
		metric *string
		labels *string
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "id", q, &id); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "metric", q, &metric); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "labels", q, &labels); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	results, err := s.svc.Search.MetaInfo(ctx, id, splitList(labels), deref(metric))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, MetaInfoResponse{MetaInfo: labelScoresToAPI(results)})
}

// GetEmbeddingInfo handles POST /get-embedding-info.
func (s *Server) GetEmbeddingInfo(w http.ResponseWriter, r *http.Request) {
	var req DocumentIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stats, err := s.svc.Search.EmbeddingInfo(r.Context(), req.ID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToAPI(stats))
}

// ListIDs handles GET /list-ids.
func (s *Server) ListIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.svc.Search.ListIDs(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetDocument handles GET /get-document/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Search.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToAPI(doc))
}

// IngestDocument handles POST /documents.
func (s *Server) IngestDocument(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	doc, err := s.svc.Search.Ingest(ctx, req.ID, req.Name, req.ImageURL)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	w.Header().Set("Location", "/get-document/"+doc.ID())
	writeJSON(w, http.StatusCreated, documentToAPI(doc))
}

func splitList(p *string) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(*p, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
