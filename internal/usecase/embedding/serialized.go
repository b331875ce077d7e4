package embedding

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/metrics"
)

// Serialized bounds the number of in-flight backend calls; a limit of 1 fully serializes
// access to the shared model.
type Serialized struct {
	inner   domain.Embedder
	sem     *semaphore.Weighted
	backend string
}

// NewSerialized wraps inner; maxConcurrency <= 0 disables the limit.
func NewSerialized(inner domain.Embedder, backend string, maxConcurrency int) *Serialized {
	s := &Serialized{inner: inner, backend: backend}
	if maxConcurrency > 0 {
		s.sem = semaphore.NewWeighted(int64(maxConcurrency))
	}
	return s
}

// EmbedImage waits for a free slot, then delegates.
func (s *Serialized) EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	defer release()
	return s.inner.EmbedImage(ctx, data)
}

// EmbedText waits for a free slot, then delegates.
func (s *Serialized) EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	defer release()
	return s.inner.EmbedText(ctx, text)
}

func (s *Serialized) acquire(ctx context.Context) (func(), error) {
	if s.sem == nil {
		return func() {}, nil
	}
	start := time.Now()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for embedding slot: %w", err)
	}
	metrics.EmbeddingQueueWait.WithLabelValues(s.backend).Observe(time.Since(start).Seconds())
	return func() { s.sem.Release(1) }, nil
}
