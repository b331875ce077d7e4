package completion

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/mediasense/internal/domain"
	domcompl "github.com/kailas-cloud/mediasense/internal/domain/completion"
)

// Resolver picks the instruction source of a completion request.
type Resolver struct {
	store InstructionStore
}

// NewResolver creates a resolver over the template store.
func NewResolver(store InstructionStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the instructions and rules to apply. Lists in the result are never nil.
func (r *Resolver) Resolve(ctx context.Context, req domcompl.Request) (domcompl.Resolved, error) {
	instructions := req.Instructions()
	rules := req.StrictRules()

	if req.InstructionID() == "" {
		return domcompl.Resolved{Instructions: instructions, Rules: rules}, nil
	}
	if len(instructions) > 0 || len(rules) > 0 {
		return domcompl.Resolved{}, domain.Validationf("instruction_id is mutually exclusive with instructions/strict_rules")
	}

	tpl, err := r.store.FindByID(ctx, req.InstructionID())
	if err != nil {
		return domcompl.Resolved{}, fmt.Errorf("resolve instruction %s: %w", req.InstructionID(), err)
	}

	return domcompl.Resolved{
		InstructionID: tpl.ID(),
		Instructions:  []string{tpl.Instruction()},
		Rules:         tpl.StrictRules(),
	}, nil
}
