package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/mediasense/internal/db"
	"github.com/kailas-cloud/mediasense/internal/domain"
	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
)

// DefaultReadTimeout bounds every store round-trip.
const DefaultReadTimeout = 10 * time.Second

// store is the consumer interface for media documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Config describes the vector index layout.
type Config struct {
	Dimensions  int
	HNSW        HNSWConfig
	ReadTimeout time.Duration
}

// Repo implements usecase/search.Repository over a JSON index.
type Repo struct {
	store store
	cfg   Config

	setupOnce sync.Once
	setupErr  error
}

// New creates a media repository.
func New(s store, cfg Config) *Repo {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = domain.DefaultDimensions
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	return &Repo{store: s, cfg: cfg}
}

// Setup creates the vector index once; an existing index is accepted.
func (r *Repo) Setup(ctx context.Context) error {
	r.setupOnce.Do(func() {
		def, err := buildIndex(r.cfg.Dimensions, r.cfg.HNSW)
		if err != nil {
			r.setupErr = fmt.Errorf("build media index: %w", err)
			return
		}
		ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
		defer cancel()
		if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			r.setupErr = storeErr("create media index", err)
		}
	})
	return r.setupErr
}

// FindByID returns a stored document.
func (r *Repo) FindByID(ctx context.Context, id string) (dommedia.Document, error) {
	if err := dommedia.ValidateID(id); err != nil {
		return dommedia.Document{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	raw, err := r.store.JSONGet(ctx, docKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dommedia.Document{}, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return dommedia.Document{}, storeErr("json.get "+id, err)
	}
	doc, ok, err := parseJSONGet(id, raw)
	if err != nil {
		return dommedia.Document{}, fmt.Errorf("%w: %w", domain.ErrInternal, err)
	}
	if !ok {
		return dommedia.Document{}, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return doc, nil
}

// Save writes a document, replacing any previous version.
func (r *Repo) Save(ctx context.Context, doc *dommedia.Document) error {
	if dim := len(doc.ImageEmbeddings()); dim != r.cfg.Dimensions {
		return fmt.Errorf("%w: embedding has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, dim, r.cfg.Dimensions)
	}
	data, err := json.Marshal(toJSON(doc))
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()
	if err := r.store.JSONSet(ctx, docKey(doc.ID()), "$", data); err != nil {
		return storeErr("json.set "+doc.ID(), err)
	}
	return nil
}

// ListIDs returns every stored document id in lexical order.
func (r *Repo) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	keys, err := r.store.Scan(ctx, keyPrefix()+"*")
	if err != nil {
		return nil, storeErr("scan media", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, keyPrefix()))
	}
	slices.Sort(ids)
	return ids, nil
}

// VectorSearch runs a KNN query over the stored image embeddings.
func (r *Repo) VectorSearch(ctx context.Context, query []float32, limit int) ([]dommedia.Hit, error) {
	if len(query) != r.cfg.Dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(query), r.cfg.Dimensions)
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		Index:  indexName(),
		Field:  vectorAlias,
		Vector: query,
		K:      limit,
		Return: []string{"$", db.ScoreField},
	})
	if err != nil {
		return nil, storeErr("vector search", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	hits := make([]dommedia.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := strings.TrimPrefix(e.Key, keyPrefix())
		doc, err := parseSearchDoc(id, e.Fields["$"])
		if err != nil {
			doc = dommedia.Reconstruct(id, "", "", nil)
		}
		hits = append(hits, dommedia.Hit{Document: doc, Score: e.Score})
	}
	return hits, nil
}

// storeErr classifies a store failure as a retryable upstream error.
func storeErr(op string, err error) error {
	return domain.NewTransientUpstream("store", 0, fmt.Errorf("%s: %w", op, err))
}
