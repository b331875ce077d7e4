package embcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/db"
	"github.com/kailas-cloud/mediasense/internal/domain"
)

type mockEmbedder struct {
	result     domain.EmbeddingResult
	err        error
	textCalls  int
	imageCalls int
}

func (m *mockEmbedder) EmbedText(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.textCalls++
	return m.result, m.err
}

func (m *mockEmbedder) EmbedImage(_ context.Context, _ []byte) (domain.EmbeddingResult, error) {
	m.imageCalls++
	return m.result, m.err
}

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

var testCfg = Config{Backend: "clip", Model: "ViT-B/32"}

func newTestEmbedder(t *testing.T, inner *mockEmbedder, ttl time.Duration) (*Embedder, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	cfg := testCfg
	cfg.TTL = ttl
	return New(inner, ms, cfg, nil, zap.NewNop()), ms
}
