package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ListInstructions handles GET /instructions?page=&page_size=&technology=.
func (s *Server) ListInstructions(w http.ResponseWriter, r *http.Request) {
	var (
		page, pageSize *int
		technology     *string
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page_size", q, &pageSize); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "technology", q, &technology); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	if !explicitPositive(w, "page", page) || !explicitPositive(w, "page_size", pageSize) {
		return
	}

	p, err := s.svc.Instructions.List(r.Context(), derefInt(page), derefInt(pageSize), deref(technology))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToAPI(p))
}

// CreateInstruction handles POST /instructions.
func (s *Server) CreateInstruction(w http.ResponseWriter, r *http.Request) {
	var req InstructionCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := s.svc.Instructions.Create(r.Context(), req.Technology, req.Instruction, req.StrictRules)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/instructions/"+t.ID())
	writeJSON(w, http.StatusCreated, InstructionCreateResponse{
		ID:      t.ID(),
		Status:  "success",
		Message: "Instruction created successfully",
	})
}

// ListInstructionIDs handles GET /instructions/ids.
func (s *Server) ListInstructionIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.svc.Instructions.ListIDs(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// SearchInstructions handles GET /instructions/search?query=&limit=.
func (s *Server) SearchInstructions(w http.ResponseWriter, r *http.Request) {
	var (
		query string
		limit *int
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "query", q, &query); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	if !explicitPositive(w, "limit", limit) {
		return
	}

	matches, err := s.svc.Instructions.Search(r.Context(), query, derefInt(limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchesToAPI(query, matches))
}

// GetInstruction handles GET /instructions/{id}.
func (s *Server) GetInstruction(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Instructions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, instructionToAPI(t))
}

// explicitPositive rejects a parameter that is present but below 1; absent means default.
func explicitPositive(w http.ResponseWriter, name string, p *int) bool {
	if p != nil && *p < 1 {
		writeError(w, http.StatusBadRequest, CodeValidation, name+" must be >= 1")
		return false
	}
	return true
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
