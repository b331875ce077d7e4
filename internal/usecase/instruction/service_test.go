package instruction

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/mediasense/internal/domain"
	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
)

type mockRepo struct {
	findFn   func(ctx context.Context, id string) (dominst.Template, error)
	createFn func(ctx context.Context, t *dominst.Template) error
	idsFn    func(ctx context.Context) ([]string, error)
	listFn   func(ctx context.Context, offset, limit int, technology string) ([]dominst.Template, int, error)
	searchFn func(ctx context.Context, query string, limit int) ([]dominst.Match, error)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (dominst.Template, error) {
	return m.findFn(ctx, id)
}

func (m *mockRepo) Create(ctx context.Context, t *dominst.Template) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return nil
}

func (m *mockRepo) ListIDs(ctx context.Context) ([]string, error) { return m.idsFn(ctx) }

func (m *mockRepo) List(ctx context.Context, offset, limit int, technology string) ([]dominst.Template, int, error) {
	return m.listFn(ctx, offset, limit, technology)
}

func (m *mockRepo) Search(ctx context.Context, query string, limit int) ([]dominst.Match, error) {
	return m.searchFn(ctx, query, limit)
}

func TestCreate_AssignsID(t *testing.T) {
	var stored dominst.Template
	svc := New(&mockRepo{createFn: func(_ context.Context, tpl *dominst.Template) error {
		stored = *tpl
		return nil
	}})

	tpl, err := svc.Create(context.Background(), "Go", "Write tests", []string{"table driven"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dominst.ValidateID(tpl.ID()); err != nil {
		t.Errorf("generated id invalid: %v", err)
	}
	if stored.ID() != tpl.ID() {
		t.Error("stored template differs from returned one")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := New(&mockRepo{createFn: func(context.Context, *dominst.Template) error {
		t.Fatal("invalid template must not be stored")
		return nil
	}})
	if _, err := svc.Create(context.Background(), "", "x", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestList_Paging(t *testing.T) {
	svc := New(&mockRepo{listFn: func(_ context.Context, offset, limit int, tech string) ([]dominst.Template, int, error) {
		if offset != 20 || limit != 10 || tech != "react" {
			t.Errorf("unexpected args %d %d %q", offset, limit, tech)
		}
		return []dominst.Template{dominst.Reconstruct("a", "React", "x", nil)}, 21, nil
	}})

	page, err := svc.List(context.Background(), 3, 10, " react ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 21 || page.TotalPages != 3 || page.Page != 3 || len(page.Items) != 1 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestList_Defaults(t *testing.T) {
	svc := New(&mockRepo{listFn: func(_ context.Context, offset, limit int, _ string) ([]dominst.Template, int, error) {
		if offset != 0 || limit != dominst.DefaultPageSize {
			t.Errorf("unexpected window %d/%d", offset, limit)
		}
		return nil, 0, nil
	}})
	page, err := svc.List(context.Background(), 0, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 0 || page.Page != 1 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestList_Validation(t *testing.T) {
	svc := New(&mockRepo{})
	for _, tc := range []struct{ page, size int }{{-1, 10}, {1, 101}, {1, -5}} {
		if _, err := svc.List(context.Background(), tc.page, tc.size, ""); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("page=%d size=%d: expected ErrValidation, got %v", tc.page, tc.size, err)
		}
	}
}

func TestSearch(t *testing.T) {
	svc := New(&mockRepo{searchFn: func(_ context.Context, q string, limit int) ([]dominst.Match, error) {
		if q != "go" || limit != dominst.DefaultSearchTop {
			t.Errorf("unexpected args %q %d", q, limit)
		}
		return []dominst.Match{{Score: 1}}, nil
	}})

	matches, err := svc.Search(context.Background(), " go ", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(matches))
	}
}

func TestSearch_Validation(t *testing.T) {
	svc := New(&mockRepo{})
	if _, err := svc.Search(context.Background(), "g", 5); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("short query: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Search(context.Background(), "go", 21); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("limit too high: expected ErrValidation, got %v", err)
	}
}

func TestGet_WrapsRepoError(t *testing.T) {
	svc := New(&mockRepo{findFn: func(context.Context, string) (dominst.Template, error) {
		return dominst.Template{}, domain.ErrNotFound
	}})
	if _, err := svc.Get(context.Background(), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
