package classify

import (
	"context"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// TextEmbedder turns a label into a vector in the image space.
type TextEmbedder interface {
	EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
