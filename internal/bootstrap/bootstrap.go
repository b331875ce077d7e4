// Package bootstrap assembles stores, backends and decorator chains from config.
// Both the API server and the admin CLI build their object graphs here.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/config"
	dbRedis "github.com/kailas-cloud/mediasense/internal/db/redis"
	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
	"github.com/kailas-cloud/mediasense/internal/imaging"
	"github.com/kailas-cloud/mediasense/internal/metrics"
	"github.com/kailas-cloud/mediasense/internal/repository/embcache"
	instrepo "github.com/kailas-cloud/mediasense/internal/repository/instruction"
	mediarepo "github.com/kailas-cloud/mediasense/internal/repository/media"
	"github.com/kailas-cloud/mediasense/internal/transport/clip"
	"github.com/kailas-cloud/mediasense/internal/transport/httpfetch"
	"github.com/kailas-cloud/mediasense/internal/transport/local"
	classifyuc "github.com/kailas-cloud/mediasense/internal/usecase/classify"
	embeddinguc "github.com/kailas-cloud/mediasense/internal/usecase/embedding"
)

// Backend is an embedding backend that can report its own health.
type Backend interface {
	domain.Embedder
	domain.HealthChecker
}

// OpenStore connects to Redis and waits until it answers.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (*dbRedis.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("store not ready: %w", err)
	}
	return store, nil
}

// NewBackend returns the configured embedding backend with its metric labels.
func NewBackend(cfg config.EmbeddingConfig) (b Backend, name, model string, err error) {
	switch cfg.Backend {
	case config.BackendCLIP:
		return clip.New(clip.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		}), clip.BackendName, cfg.Model, nil
	case config.BackendLocal:
		return local.New(), local.BackendName, local.Model, nil
	default:
		return nil, "", "", fmt.Errorf("unknown embedding backend %q", cfg.Backend)
	}
}

// NewEmbedder builds the decorator chain: backend -> cache (optional) -> instrumented -> serialized.
// store may be nil when no cache is wanted.
func NewEmbedder(
	cfg config.EmbeddingConfig,
	backend domain.Embedder,
	name, model string,
	store *dbRedis.Store,
	logger *zap.Logger,
) domain.Embedder {
	embedder := backend
	if cfg.Cache.Enabled && store != nil {
		embedder = embcache.New(embedder, store, embcache.Config{
			Backend: name,
			Model:   model,
			TTL:     time.Duration(cfg.Cache.TTLSec) * time.Second,
		}, metrics.EmbeddingCacheTotal, logger)
	}
	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, name, model, logger)
	return embeddinguc.NewSerialized(embedder, name, cfg.MaxConcurrency)
}

// NewFetcher returns the image downloader used by URL-based embedding.
func NewFetcher(cfg config.EmbeddingConfig) *httpfetch.Fetcher {
	return httpfetch.New(time.Duration(cfg.DownloadSec)*time.Second, imaging.MaxBytes)
}

// NewRepos creates the media and instruction repositories.
func NewRepos(cfg config.Config, store *dbRedis.Store) (*mediarepo.Repo, *instrepo.Repo) {
	readTimeout := time.Duration(cfg.Database.ReadTimeoutSec) * time.Second
	media := mediarepo.New(store, mediarepo.Config{
		Dimensions: cfg.Embedding.Dimensions,
		HNSW: mediarepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		},
		ReadTimeout: readTimeout,
	})
	return media, instrepo.New(store, readTimeout)
}

// Setup creates both search indexes. Existing indexes are accepted.
func Setup(ctx context.Context, media *mediarepo.Repo, instructions *instrepo.Repo) error {
	if err := media.Setup(ctx); err != nil {
		return fmt.Errorf("setup media index: %w", err)
	}
	if err := instructions.Setup(ctx); err != nil {
		return fmt.Errorf("setup instruction index: %w", err)
	}
	return nil
}

// NewClassifier builds the label classifier over text embeddings.
func NewClassifier(cfg config.ClassifyConfig, embedder domain.TextEmbedder) *classifyuc.Service {
	return classifyuc.New(embedder, classifyuc.Config{
		Labels: cfg.Labels,
		Metric: rank.Metric(cfg.DefaultMetric),
		TopK:   cfg.TopK,
	})
}
