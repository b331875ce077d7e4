package mediasense

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// InstructionService manages the instruction library.
type InstructionService struct {
	c *Client
}

// Instructions returns the instruction library service.
func (c *Client) Instructions() *InstructionService {
	return &InstructionService{c: c}
}

// Create stores a new template and returns its id.
func (s *InstructionService) Create(
	ctx context.Context, technology, instruction string, strictRules []string,
) (string, error) {
	if strictRules == nil {
		strictRules = []string{}
	}
	req, err := jsonRequest("instruction_create", http.MethodPost, "/instructions", map[string]any{
		"technology":   technology,
		"instruction":  instruction,
		"strict_rules": strictRules,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		ID string `json:"id"`
	}
	if _, err := s.c.do(ctx, req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Get fetches a template by id.
func (s *InstructionService) Get(ctx context.Context, id string) (Instruction, error) {
	var out Instruction
	req := request{op: "instruction_get", method: http.MethodGet, path: "/instructions/" + url.PathEscape(id)}
	if _, err := s.c.do(ctx, req, &out); err != nil {
		return Instruction{}, err
	}
	return out, nil
}

// IDs lists every template id.
func (s *InstructionService) IDs(ctx context.Context) ([]string, error) {
	var out []string
	req := request{op: "instruction_ids", method: http.MethodGet, path: "/instructions/ids"}
	if _, err := s.c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOptions filters and pages a listing. Zero values use server defaults.
type ListOptions struct {
	Page       int
	PageSize   int
	Technology string
}

// List returns one page of templates.
func (s *InstructionService) List(ctx context.Context, opts ListOptions) (InstructionPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.Technology != "" {
		q.Set("technology", opts.Technology)
	}

	var out InstructionPage
	req := request{op: "instruction_list", method: http.MethodGet, path: "/instructions", query: q}
	if _, err := s.c.do(ctx, req, &out); err != nil {
		return InstructionPage{}, err
	}
	return out, nil
}

// Search runs a full-text query over the library. limit 0 uses the server default.
func (s *InstructionService) Search(ctx context.Context, query string, limit int) ([]InstructionMatch, error) {
	q := url.Values{"query": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Results []InstructionMatch `json:"results"`
	}
	req := request{op: "instruction_search", method: http.MethodGet, path: "/instructions/search", query: q}
	if _, err := s.c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
