package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/mediasense/internal/domain"
	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
	"github.com/kailas-cloud/mediasense/internal/domain/vector"
)

// Search limits.
const (
	DefaultLimit = 5
	MaxLimit     = 100
)

// Service answers media search and document inspection requests.
type Service struct {
	repo     Repository
	embed    Embedder
	classify Classifier
}

// New creates a search service.
func New(repo Repository, embed Embedder, classify Classifier) *Service {
	return &Service{repo: repo, embed: embed, classify: classify}
}

// Search returns the stored documents nearest to queryEmbedding.
func (s *Service) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]dommedia.Hit, error) {
	if len(queryEmbedding) == 0 {
		return nil, domain.Validationf("query_embedding is required")
	}
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	hits, err := s.repo.VectorSearch(ctx, queryEmbedding, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return hits, nil
}

// SearchByText embeds text and runs a vector search with it.
func (s *Service) SearchByText(ctx context.Context, text string, limit int) ([]dommedia.Hit, error) {
	res, err := s.embed.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return s.Search(ctx, res.Embedding, limit)
}

// Get returns one stored document.
func (s *Service) Get(ctx context.Context, id string) (dommedia.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dommedia.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ListIDs returns every stored document id.
func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	return ids, nil
}

// EmbeddingInfo describes the stored image embedding of a document.
func (s *Service) EmbeddingInfo(ctx context.Context, id string) (vector.Stats, error) {
	emb, err := s.storedEmbedding(ctx, id)
	if err != nil {
		return vector.Stats{}, err
	}
	return vector.Describe(emb)
}

// MetaInfo classifies the stored image embedding against the label set.
func (s *Service) MetaInfo(ctx context.Context, id string, labels []string, metric string) ([]rank.Result, error) {
	emb, err := s.storedEmbedding(ctx, id)
	if err != nil {
		return nil, err
	}
	results, err := s.classify.ClassifyAgainstLabels(ctx, emb, labels, metric)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", id, err)
	}
	return results, nil
}

func (s *Service) storedEmbedding(ctx context.Context, id string) ([]float32, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	emb := doc.ImageEmbeddings()
	if len(emb) == 0 {
		return nil, fmt.Errorf("image embedding of %s: %w", id, domain.ErrNotFound)
	}
	return emb, nil
}

func normalizeLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultLimit, nil
	case limit < 0 || limit > MaxLimit:
		return 0, domain.Validationf("limit must be between 1 and %d", MaxLimit)
	default:
		return limit, nil
	}
}
