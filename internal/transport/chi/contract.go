package chi

import (
	"context"

	"github.com/kailas-cloud/mediasense/internal/domain"
	domcompl "github.com/kailas-cloud/mediasense/internal/domain/completion"
	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
	"github.com/kailas-cloud/mediasense/internal/domain/vector"
	completionuc "github.com/kailas-cloud/mediasense/internal/usecase/completion"
	healthuc "github.com/kailas-cloud/mediasense/internal/usecase/health"
)

// EmbeddingService vectorizes uploads, URLs and text.
type EmbeddingService interface {
	EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error)
	EmbedImageFromURL(ctx context.Context, url string) (domain.EmbeddingResult, error)
	EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// SearchService answers media search and document requests.
type SearchService interface {
	Search(ctx context.Context, queryEmbedding []float32, limit int) ([]dommedia.Hit, error)
	SearchByText(ctx context.Context, text string, limit int) ([]dommedia.Hit, error)
	Get(ctx context.Context, id string) (dommedia.Document, error)
	ListIDs(ctx context.Context) ([]string, error)
	EmbeddingInfo(ctx context.Context, id string) (vector.Stats, error)
	MetaInfo(ctx context.Context, id string, labels []string, metric string) ([]rank.Result, error)
	Ingest(ctx context.Context, id, name, imageURL string) (dommedia.Document, error)
}

// ClassifyService ranks vectors and classifies embeddings against labels.
type ClassifyService interface {
	ClassifyAgainstLabels(ctx context.Context, embedding []float32, labels []string, metric string) ([]rank.Result, error)
	Rank(query []float32, candidates []rank.Candidate, metric string, topK int) ([]rank.Result, error)
}

// InstructionService manages the template library.
type InstructionService interface {
	Create(ctx context.Context, technology, instruction string, strictRules []string) (dominst.Template, error)
	Get(ctx context.Context, id string) (dominst.Template, error)
	ListIDs(ctx context.Context) ([]string, error)
	List(ctx context.Context, page, pageSize int, technology string) (dominst.Page, error)
	Search(ctx context.Context, query string, limit int) ([]dominst.Match, error)
}

// CompletionService runs constrained completions.
type CompletionService interface {
	Complete(ctx context.Context, in completionuc.Input) (domcompl.Response, error)
}

// HealthService aggregates component checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
