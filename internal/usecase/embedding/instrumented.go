package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/metrics"
)

const (
	kindImage = "image"
	kindText  = "text"
)

// InstrumentedEmbedder wraps an Embedder with logging, metrics and per-request usage.
type InstrumentedEmbedder struct {
	inner   domain.Embedder
	backend string
	model   string
	logger  *zap.Logger
}

// NewInstrumentedEmbedder wraps an embedder with observability.
func NewInstrumentedEmbedder(inner domain.Embedder, backend, model string, logger *zap.Logger) *InstrumentedEmbedder {
	return &InstrumentedEmbedder{
		inner:   inner,
		backend: backend,
		model:   model,
		logger:  logger,
	}
}

// EmbedImage delegates to the inner embedder and records the call.
func (p *InstrumentedEmbedder) EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error) {
	start := time.Now()
	result, err := p.inner.EmbedImage(ctx, data)
	p.observe(ctx, kindImage, start, result, err, zap.Int("bytes", len(data)))
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed image: %w", err)
	}
	return result, nil
}

// EmbedText delegates to the inner embedder and records the call.
func (p *InstrumentedEmbedder) EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()
	result, err := p.inner.EmbedText(ctx, text)
	p.observe(ctx, kindText, start, result, err, zap.Int("chars", len(text)))
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}
	return result, nil
}

func (p *InstrumentedEmbedder) observe(
	ctx context.Context, kind string, start time.Time,
	result domain.EmbeddingResult, err error, extra zap.Field,
) {
	duration := time.Since(start)
	metrics.EmbeddingRequestDuration.WithLabelValues(p.backend, kind).Observe(duration.Seconds())

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(p.backend, kind, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(p.backend, kind, errorType(err)).Inc()
		p.logger.Error("Embedding request failed",
			zap.String("backend", p.backend),
			zap.String("model", p.model),
			zap.String("kind", kind),
			zap.Duration("duration", duration),
			extra,
			zap.Error(err),
		)
		return
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(p.backend, kind, "ok").Inc()
	if !result.Cached {
		domain.UsageFromContext(ctx).AddEmbeddingCall()
	}
	p.logger.Debug("Embedding request completed",
		zap.String("backend", p.backend),
		zap.String("model", p.model),
		zap.String("kind", kind),
		zap.Duration("duration", duration),
		zap.Int("dimensions", result.Dimensions()),
		zap.Bool("cached", result.Cached),
		extra,
	)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrDecode):
		return "decode"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, domain.ErrBackend):
		return "backend"
	default:
		return "other"
	}
}
