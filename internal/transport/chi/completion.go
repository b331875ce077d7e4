package chi

import (
	"net/http"

	"github.com/kailas-cloud/mediasense/internal/domain"
	completionuc "github.com/kailas-cloud/mediasense/internal/usecase/completion"
)

// Complete handles POST /ai/completions.
func (s *Server) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompletionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.svc.Completion.Complete(ctx, completionuc.Input{
		UserPrompt:    req.UserPrompt,
		InstructionID: req.InstructionID,
		Instructions:  req.Instructions,
		StrictRules:   req.StrictRules,
		Model:         req.Model,
		Temperature:   req.Temperature,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var usedID *string
	if resp.InstructionID != "" {
		id := resp.InstructionID
		usedID = &id
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, CompletionResponse{
		Response: resp.Text,
		Model:    resp.Model,
		Usage: CompletionUsage{
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
		},
		Metadata: CompletionMetadata{
			UsedInstructionID:   usedID,
			AppliedInstructions: nonNil(resp.Instructions),
			AppliedRules:        nonNil(resp.Rules),
		},
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
