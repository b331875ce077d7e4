package instruction

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/mediasense/internal/domain"
	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
)

// Service manages the instruction template library.
type Service struct {
	repo Repository
}

// New creates an instruction service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new template under a fresh id.
func (s *Service) Create(ctx context.Context, technology, instruction string, strictRules []string) (dominst.Template, error) {
	tpl, err := dominst.New(dominst.NewID(), technology, instruction, strictRules)
	if err != nil {
		return dominst.Template{}, err
	}
	if err := s.repo.Create(ctx, &tpl); err != nil {
		return dominst.Template{}, fmt.Errorf("create instruction: %w", err)
	}
	return tpl, nil
}

// Get returns a template by id.
func (s *Service) Get(ctx context.Context, id string) (dominst.Template, error) {
	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dominst.Template{}, fmt.Errorf("get instruction: %w", err)
	}
	return tpl, nil
}

// ListIDs returns all template ids.
func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list instruction ids: %w", err)
	}
	return ids, nil
}

// List returns one page of templates, optionally filtered by technology.
// page and pageSize of 0 select the first page and the default size.
func (s *Service) List(ctx context.Context, page, pageSize int, technology string) (dominst.Page, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = dominst.DefaultPageSize
	}
	if page < 1 {
		return dominst.Page{}, domain.Validationf("page must be >= 1")
	}
	if pageSize < 1 || pageSize > dominst.MaxPageSize {
		return dominst.Page{}, domain.Validationf("page_size must be between 1 and %d", dominst.MaxPageSize)
	}

	items, total, err := s.repo.List(ctx, (page-1)*pageSize, pageSize, strings.TrimSpace(technology))
	if err != nil {
		return dominst.Page{}, fmt.Errorf("list instructions: %w", err)
	}
	return dominst.NewPage(items, page, pageSize, total), nil
}

// Search runs a full-text query over the library.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]dominst.Match, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < dominst.MinQueryLen {
		return nil, domain.Validationf("query must be at least %d characters", dominst.MinQueryLen)
	}
	if limit == 0 {
		limit = dominst.DefaultSearchTop
	}
	if limit < 1 || limit > dominst.MaxSearchTop {
		return nil, domain.Validationf("limit must be between 1 and %d", dominst.MaxSearchTop)
	}

	matches, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search instructions: %w", err)
	}
	return matches, nil
}
