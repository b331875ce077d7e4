package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/mediasense/internal/domain"
	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
)

type mockRepo struct {
	findFn   func(ctx context.Context, id string) (dommedia.Document, error)
	listFn   func(ctx context.Context) ([]string, error)
	searchFn func(ctx context.Context, query []float32, limit int) ([]dommedia.Hit, error)
	saveFn   func(ctx context.Context, doc *dommedia.Document) error
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (dommedia.Document, error) {
	return m.findFn(ctx, id)
}

func (m *mockRepo) ListIDs(ctx context.Context) ([]string, error) { return m.listFn(ctx) }

func (m *mockRepo) VectorSearch(ctx context.Context, q []float32, limit int) ([]dommedia.Hit, error) {
	return m.searchFn(ctx, q, limit)
}

func (m *mockRepo) Save(ctx context.Context, doc *dommedia.Document) error {
	return m.saveFn(ctx, doc)
}

type mockEmbedder struct {
	vec    []float32
	urlErr error
}

func (m *mockEmbedder) EmbedText(context.Context, string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func (m *mockEmbedder) EmbedImageFromURL(context.Context, string) (domain.EmbeddingResult, error) {
	if m.urlErr != nil {
		return domain.EmbeddingResult{}, m.urlErr
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type mockClassifier struct {
	got []float32
}

func (m *mockClassifier) ClassifyAgainstLabels(
	_ context.Context, emb []float32, _ []string, _ string,
) ([]rank.Result, error) {
	m.got = emb
	return []rank.Result{rank.NewResult("cat", 99, nil)}, nil
}

func TestSearch_DefaultLimit(t *testing.T) {
	repo := &mockRepo{searchFn: func(_ context.Context, _ []float32, limit int) ([]dommedia.Hit, error) {
		if limit != DefaultLimit {
			t.Errorf("limit = %d, want %d", limit, DefaultLimit)
		}
		return []dommedia.Hit{{Score: 0.9}}, nil
	}}
	svc := New(repo, nil, nil)

	hits, err := svc.Search(context.Background(), []float32{1}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit, got %d", len(hits))
	}
}

func TestSearch_Validation(t *testing.T) {
	svc := New(&mockRepo{}, nil, nil)
	if _, err := svc.Search(context.Background(), nil, 5); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty query: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Search(context.Background(), []float32{1}, MaxLimit+1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("limit too high: expected ErrValidation, got %v", err)
	}
}

func TestSearchByText_EmbedsThenSearches(t *testing.T) {
	var got []float32
	repo := &mockRepo{searchFn: func(_ context.Context, q []float32, _ int) ([]dommedia.Hit, error) {
		got = q
		return nil, nil
	}}
	svc := New(repo, &mockEmbedder{vec: []float32{0.3, 0.4}}, nil)

	if _, err := svc.SearchByText(context.Background(), "sunset", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1] != 0.4 {
		t.Errorf("search received %v", got)
	}
}

func TestEmbeddingInfo(t *testing.T) {
	repo := &mockRepo{findFn: func(_ context.Context, id string) (dommedia.Document, error) {
		return dommedia.Reconstruct(id, "", "", []float32{3, 4}), nil
	}}
	svc := New(repo, nil, nil)

	stats, err := svc.EmbeddingInfo(context.Background(), "doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Dimensions != 2 || math.Abs(stats.Norm-5) > 1e-9 || stats.Max != 4 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestEmbeddingInfo_MissingEmbedding(t *testing.T) {
	repo := &mockRepo{findFn: func(_ context.Context, id string) (dommedia.Document, error) {
		return dommedia.Reconstruct(id, "legacy", "", nil), nil
	}}
	svc := New(repo, nil, nil)

	if _, err := svc.EmbeddingInfo(context.Background(), "doc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMetaInfo_ClassifiesStoredEmbedding(t *testing.T) {
	repo := &mockRepo{findFn: func(_ context.Context, id string) (dommedia.Document, error) {
		return dommedia.Reconstruct(id, "", "", []float32{1, 0}), nil
	}}
	cls := &mockClassifier{}
	svc := New(repo, nil, cls)

	results, err := svc.MetaInfo(context.Background(), "doc", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cls.got) != 2 || results[0].Key() != "cat" {
		t.Errorf("unexpected classification %v %v", cls.got, results)
	}
}

func TestGet_PropagatesNotFound(t *testing.T) {
	repo := &mockRepo{findFn: func(context.Context, string) (dommedia.Document, error) {
		return dommedia.Document{}, domain.ErrNotFound
	}}
	svc := New(repo, nil, nil)

	if _, err := svc.Get(context.Background(), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
