package chi

import (
	"errors"
	"io"
	"net/http"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/imaging"
)

// multipart framing on top of the image itself
const uploadOverhead = 1 << 20

// GenerateEmbeddings handles POST /generate-embeddings (multipart "file").
func (s *Server) GenerateEmbeddings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxBytes+uploadOverhead)
	if err := r.ParseMultipartForm(imaging.MaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeValidation, "upload exceeds size limit")
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "form file \"file\" is required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, imaging.MaxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "read upload: "+err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.svc.Embedding.EmbedImage(ctx, data)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, embeddingToAPI(res))
}

// GenerateEmbeddingsFromURL handles POST /generate-embeddings-from-url.
func (s *Server) GenerateEmbeddingsFromURL(w http.ResponseWriter, r *http.Request) {
	var req ImageURLRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.svc.Embedding.EmbedImageFromURL(ctx, req.URL)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, embeddingToAPI(res))
}

// GenerateQueryEmbedding handles POST /generate-query-embedding (form "query_text").
func (s *Server) GenerateQueryEmbedding(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("query_text")

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.svc.Embedding.EmbedText(ctx, text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, embeddingToAPI(res))
}
