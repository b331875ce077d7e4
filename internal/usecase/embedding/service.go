package embedding

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/imaging"
)

// Service exposes the embedding operations to the transport.
type Service struct {
	embedder domain.Embedder
	fetcher  Fetcher
}

// New creates an embedding service. fetcher may be nil when URL ingestion is disabled.
func New(embedder domain.Embedder, fetcher Fetcher) *Service {
	return &Service{embedder: embedder, fetcher: fetcher}
}

// EmbedImage vectorizes raw image bytes.
func (s *Service) EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error) {
	if len(data) == 0 {
		return domain.EmbeddingResult{}, domain.Validationf("image is empty")
	}
	if len(data) > imaging.MaxBytes {
		return domain.EmbeddingResult{}, domain.Validationf("image exceeds %d bytes", imaging.MaxBytes)
	}
	return s.embedder.EmbedImage(ctx, data)
}

// EmbedImageFromURL downloads an image and vectorizes it.
func (s *Service) EmbedImageFromURL(ctx context.Context, rawURL string) (domain.EmbeddingResult, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.EmbeddingResult{}, domain.Validationf("url must be an absolute http(s) URL")
	}
	if s.fetcher == nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: url fetcher is not configured", domain.ErrInternal)
	}
	data, err := s.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	return s.EmbedImage(ctx, data)
}

// EmbedText vectorizes a text query.
func (s *Service) EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.EmbeddingResult{}, domain.Validationf("text is empty")
	}
	return s.embedder.EmbedText(ctx, text)
}
