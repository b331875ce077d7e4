package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

func TestEmbedText_MissStoresVector(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.5, -1}, Backend: "clip"}}
	e, ms := newTestEmbedder(t, inner, time.Hour)

	var (
		storedKey string
		stored    []byte
		gotTTL    time.Duration
	)
	ms.setFn = func(_ context.Context, key string, value []byte, ttl time.Duration) error {
		storedKey, stored, gotTTL = key, value, ttl
		return nil
	}

	res, err := e.EmbedText(context.Background(), "a red car")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cached {
		t.Error("miss must not be flagged cached")
	}
	if !strings.HasPrefix(storedKey, "mediasense:emb_cache:") {
		t.Errorf("unexpected key %s", storedKey)
	}
	if len(stored) != 8 {
		t.Errorf("stored %d bytes, want 8", len(stored))
	}
	if gotTTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", gotTTL)
	}
	if inner.textCalls != 1 {
		t.Errorf("backend calls = %d, want 1", inner.textCalls)
	}
}

func TestEmbedText_HitSkipsBackend(t *testing.T) {
	inner := &mockEmbedder{}
	e, ms := newTestEmbedder(t, inner, 0)
	ms.getFn = func(context.Context, string) ([]byte, error) {
		return encode([]float32{1, 2, 3}), nil
	}

	res, err := e.EmbedText(context.Background(), "dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Cached || len(res.Embedding) != 3 || res.Embedding[2] != 3 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Backend != "clip" || res.Model != "ViT-B/32" {
		t.Errorf("hit reports %s/%s", res.Backend, res.Model)
	}
	if inner.textCalls != 0 {
		t.Errorf("backend must not be called on hit, got %d calls", inner.textCalls)
	}
}

func TestEmbedText_UnreadableEntryFallsBack(t *testing.T) {
	for name, data := range map[string][]byte{"ragged": {1, 2, 3}, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
			e, ms := newTestEmbedder(t, inner, 0)
			ms.getFn = func(context.Context, string) ([]byte, error) { return data, nil }

			if _, err := e.EmbedText(context.Background(), "x"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if inner.textCalls != 1 {
				t.Errorf("backend calls = %d, want 1", inner.textCalls)
			}
		})
	}
}

func TestEmbedText_StoreErrorsAreNotFatal(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	e, ms := newTestEmbedder(t, inner, 0)
	ms.getFn = func(context.Context, string) ([]byte, error) { return nil, errors.New("conn refused") }
	ms.setFn = func(context.Context, string, []byte, time.Duration) error { return errors.New("conn refused") }

	if _, err := e.EmbedText(context.Background(), "x"); err != nil {
		t.Fatalf("cache failures must not surface: %v", err)
	}
}

func TestEmbedText_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: domain.ErrBackend}
	e, ms := newTestEmbedder(t, inner, 0)
	ms.setFn = func(context.Context, string, []byte, time.Duration) error {
		t.Error("failed embeddings must not be stored")
		return nil
	}

	if _, err := e.EmbedText(context.Background(), "x"); !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
}

func TestEmbedImage_BypassesCache(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	e, ms := newTestEmbedder(t, inner, 0)
	ms.getFn = func(context.Context, string) ([]byte, error) {
		t.Error("images must not touch the cache")
		return nil, nil
	}

	if _, err := e.EmbedImage(context.Background(), []byte{0xff}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.imageCalls != 1 {
		t.Errorf("image calls = %d, want 1", inner.imageCalls)
	}
}

func TestKey_SeparatesModels(t *testing.T) {
	a := New(nil, nil, Config{Backend: "clip", Model: "ViT-B/32"}, nil, nil).key("cat")
	b := New(nil, nil, Config{Backend: "local", Model: "histogram-hash-v1"}, nil, nil).key("cat")
	c := New(nil, nil, Config{Backend: "clipV", Model: "iT-B/32"}, nil, nil).key("cat")
	if a == b || a == c {
		t.Error("different backends or models must produce different keys")
	}
}

func TestLookupCounter(t *testing.T) {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ms := &mockStore{}
	e := New(inner, ms, testCfg, lookups, nil)

	if _, err := e.EmbedText(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms.getFn = func(context.Context, string) ([]byte, error) { return encode([]float32{1}), nil }
	if _, err := e.EmbedText(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(lookups.WithLabelValues("miss")); got != 1 {
		t.Errorf("miss counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(lookups.WithLabelValues("hit")); got != 1 {
		t.Errorf("hit counter = %v, want 1", got)
	}
}
