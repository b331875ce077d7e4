package domain

import "context"

// KeyPrefix namespaces every key the service writes to the store.
const KeyPrefix = "mediasense:"

// DefaultDimensions is the CLIP ViT-B/32 embedding size.
const DefaultDimensions = 512

// ImageEmbedder vectorizes raw image bytes.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, data []byte) (EmbeddingResult, error)
}

// TextEmbedder vectorizes text into the same space as images.
type TextEmbedder interface {
	EmbedText(ctx context.Context, text string) (EmbeddingResult, error)
}

// Embedder is the shared image+text vectorization contract between layers.
type Embedder interface {
	ImageEmbedder
	TextEmbedder
}

// HealthChecker verifies backend availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the vector through the decorator chain.
type EmbeddingResult struct {
	Embedding []float32
	Backend   string
	Model     string
	Cached    bool
}

// Dimensions returns the vector length.
func (r EmbeddingResult) Dimensions() int { return len(r.Embedding) }
