package instruction

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
	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
)

// DefaultReadTimeout bounds every store round-trip.
const DefaultReadTimeout = 10 * time.Second

// store is the consumer interface for instruction templates (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchPage(ctx context.Context, q *db.PageQuery) (*db.SearchResult, error)
}

// Repo implements usecase/instruction.Repository and the completion template source.
type Repo struct {
	store       store
	readTimeout time.Duration

	setupOnce sync.Once
	setupErr  error
}

// New creates an instruction repository; readTimeout <= 0 selects DefaultReadTimeout.
func New(s store, readTimeout time.Duration) *Repo {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &Repo{store: s, readTimeout: readTimeout}
}

// Setup creates the full-text index once; an existing index is accepted.
func (r *Repo) Setup(ctx context.Context) error {
	r.setupOnce.Do(func() {
		def, err := buildIndex()
		if err != nil {
			r.setupErr = fmt.Errorf("build instruction index: %w", err)
			return
		}
		ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
		defer cancel()
		if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			r.setupErr = storeErr("create instruction index", err)
		}
	})
	return r.setupErr
}

// FindByID returns the template stored under id.
func (r *Repo) FindByID(ctx context.Context, id string) (dominst.Template, error) {
	if err := dominst.ValidateID(id); err != nil {
		return dominst.Template{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	raw, err := r.store.JSONGet(ctx, docKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dominst.Template{}, fmt.Errorf("instruction %s: %w", id, domain.ErrNotFound)
		}
		return dominst.Template{}, storeErr("json.get "+id, err)
	}

	var docs []templateJSON
	if err := json.Unmarshal(raw, &docs); err != nil {
		return dominst.Template{}, fmt.Errorf("%w: unmarshal %s: %w", domain.ErrInternal, id, err)
	}
	if len(docs) == 0 {
		return dominst.Template{}, fmt.Errorf("instruction %s: %w", id, domain.ErrNotFound)
	}
	return docs[0].toDomain(id), nil
}

// Create stores a new template.
func (r *Repo) Create(ctx context.Context, t *dominst.Template) error {
	data, err := json.Marshal(toJSON(t))
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()
	if err := r.store.JSONSet(ctx, docKey(t.ID()), "$", data); err != nil {
		return storeErr("json.set "+t.ID(), err)
	}
	return nil
}

// ListIDs returns every template id in lexical order.
func (r *Repo) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	keys, err := r.store.Scan(ctx, keyPrefix()+"*")
	if err != nil {
		return nil, storeErr("scan instructions", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, keyPrefix()))
	}
	slices.Sort(ids)
	return ids, nil
}

// List returns one page of templates and the total matching the technology filter.
func (r *Repo) List(ctx context.Context, offset, limit int, technology string) ([]dominst.Template, int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	sr, err := r.store.SearchPage(ctx, &db.PageQuery{
		Index:  indexName(),
		Filter: technologyQuery(technology),
		Offset: offset,
		Limit:  limit,
		Return: []string{"$"},
	})
	if err != nil {
		return nil, 0, storeErr("list instructions", err)
	}
	if sr == nil {
		return nil, 0, nil
	}
	return decodeEntries(sr), sr.Total, nil
}

// Search runs a BM25 query over technology, instruction and rules.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]dominst.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		Index:  indexName(),
		Query:  query,
		Limit:  limit,
		Return: []string{"$"},
	})
	if err != nil {
		return nil, storeErr("search instructions", err)
	}
	if sr == nil {
		return nil, nil
	}

	matches := make([]dominst.Match, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := strings.TrimPrefix(e.Key, keyPrefix())
		t, err := decodeOne(id, e.Fields["$"])
		if err != nil {
			continue
		}
		matches = append(matches, dominst.Match{Template: t, Score: e.Score})
	}
	return matches, nil
}

func decodeEntries(sr *db.SearchResult) []dominst.Template {
	if len(sr.Entries) == 0 {
		return nil
	}
	out := make([]dominst.Template, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := strings.TrimPrefix(e.Key, keyPrefix())
		t, err := decodeOne(id, e.Fields["$"])
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

func storeErr(op string, err error) error {
	return domain.NewTransientUpstream("store", 0, fmt.Errorf("%s: %w", op, err))
}
