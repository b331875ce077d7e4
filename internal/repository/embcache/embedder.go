// Package embcache memoizes text embeddings in the key-value side of the store.
// Label sets are embedded on every classification, so repeated labels are the hot path.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/db"
	"github.com/kailas-cloud/mediasense/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "emb_cache:"

type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config identifies the vectors being cached.
type Config struct {
	Backend string
	Model   string
	// TTL <= 0 keeps entries until the store evicts them.
	TTL time.Duration
}

// Embedder serves text embeddings from the store when present. Images bypass it.
type Embedder struct {
	inner   domain.Embedder
	store   store
	cfg     Config
	lookups *prometheus.CounterVec
	logger  *zap.Logger
}

// New wraps inner. lookups is a counter vec labelled by "result" (hit, miss) and may be nil.
func New(inner domain.Embedder, s store, cfg Config, lookups *prometheus.CounterVec, logger *zap.Logger) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{inner: inner, store: s, cfg: cfg, lookups: lookups, logger: logger}
}

// EmbedImage is not cached.
func (e *Embedder) EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error) {
	return e.inner.EmbedImage(ctx, data)
}

// EmbedText returns the stored vector for text or embeds it and stores the result.
// Store failures degrade to a miss.
func (e *Embedder) EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := e.key(text)

	if vec, ok := e.load(ctx, key); ok {
		e.count("hit")
		return domain.EmbeddingResult{
			Embedding: vec,
			Backend:   e.cfg.Backend,
			Model:     e.cfg.Model,
			Cached:    true,
		}, nil
	}
	e.count("miss")

	res, err := e.inner.EmbedText(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}
	if err := e.store.Set(ctx, key, encode(res.Embedding), e.cfg.TTL); err != nil {
		e.logger.Warn("embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
	return res, nil
}

// key hashes backend, model and text so vectors from different models never collide.
func (e *Embedder) key(text string) string {
	h := sha256.New()
	for _, part := range []string{e.cfg.Backend, e.cfg.Model, text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (e *Embedder) load(ctx context.Context, key string) ([]float32, bool) {
	data, err := e.store.Get(ctx, key)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return nil, false
	case err != nil:
		e.logger.Warn("embedding cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	vec, err := decode(data)
	if err != nil {
		e.logger.Warn("embedding cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return vec, true
}

func (e *Embedder) count(result string) {
	if e.lookups != nil {
		e.lookups.WithLabelValues(result).Inc()
	}
}

// encode packs v as little-endian float32, the same layout the vector index uses.
func encode(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decode(data []byte) ([]float32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("cached embedding has %d bytes", len(data))
	}
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return v, nil
}
