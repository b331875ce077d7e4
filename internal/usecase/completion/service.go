package completion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/domain"
	domcompl "github.com/kailas-cloud/mediasense/internal/domain/completion"
	"github.com/kailas-cloud/mediasense/internal/logger"
)

// Input is a raw completion request as received from a transport.
type Input struct {
	UserPrompt    string
	InstructionID string
	Instructions  []string
	StrictRules   []string
	Model         string
	Temperature   *float64
}

// Service runs completions: resolve instructions, assemble the prompt, dispatch.
type Service struct {
	resolver     *Resolver
	dispatcher   Dispatcher
	defaultModel string
}

// New creates a completion service. defaultModel replaces an empty request model.
func New(store InstructionStore, dispatcher Dispatcher, defaultModel string) *Service {
	return &Service{
		resolver:     NewResolver(store),
		dispatcher:   dispatcher,
		defaultModel: defaultModel,
	}
}

// Complete validates the request and returns the model answer with the applied instructions.
func (s *Service) Complete(ctx context.Context, in Input) (domcompl.Response, error) {
	model := in.Model
	if model == "" {
		model = s.defaultModel
	}

	req, err := domcompl.New(in.UserPrompt, in.InstructionID, in.Instructions, in.StrictRules, model, in.Temperature)
	if err != nil {
		return domcompl.Response{}, err
	}

	resolved, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return domcompl.Response{}, err
	}

	prompt := domcompl.Assemble(resolved.Instructions, resolved.Rules, req.UserPrompt())

	result, err := s.dispatcher.Dispatch(ctx, prompt, req.Model(), req.Temperature())
	if err != nil {
		return domcompl.Response{}, fmt.Errorf("dispatch completion: %w", err)
	}

	domain.UsageFromContext(ctx).AddCompletionTokens(result.PromptTokens, result.CompletionTokens)
	logger.FromContext(ctx).Debug("completion done",
		zap.String("model", req.Model()),
		zap.String("instruction_id", resolved.InstructionID),
		zap.Int("instructions", len(resolved.Instructions)),
		zap.Int("rules", len(resolved.Rules)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
	)

	return domcompl.Response{Result: result, Resolved: resolved, Model: req.Model()}, nil
}
