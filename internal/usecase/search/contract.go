package search

import (
	"context"

	"github.com/kailas-cloud/mediasense/internal/domain"
	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
)

// Repository defines the storage contract for media documents.
type Repository interface {
	FindByID(ctx context.Context, id string) (dommedia.Document, error)
	ListIDs(ctx context.Context) ([]string, error)
	VectorSearch(ctx context.Context, query []float32, limit int) ([]dommedia.Hit, error)
	Save(ctx context.Context, doc *dommedia.Document) error
}

// Embedder vectorizes search text and ingested images.
type Embedder interface {
	EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error)
	EmbedImageFromURL(ctx context.Context, url string) (domain.EmbeddingResult, error)
}

// Classifier ranks a stored embedding against labels.
type Classifier interface {
	ClassifyAgainstLabels(ctx context.Context, embedding []float32, labels []string, metric string) ([]rank.Result, error)
}
