package completion

import (
	"strings"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// Request defaults.
const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
	MaxTokens          = 2000
)

// Request is a validated completion request (immutable value object).
type Request struct {
	userPrompt    string
	instructionID string
	instructions  []string
	strictRules   []string
	model         string
	temperature   float64
}

// New validates input and applies defaults.
// temperature nil means "not set"; instructionID is exclusive with inline instructions/rules.
func New(
	userPrompt, instructionID string,
	instructions, strictRules []string,
	model string, temperature *float64,
) (Request, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return Request{}, domain.Validationf("user_prompt is required")
	}
	if instructionID != "" && (len(instructions) > 0 || len(strictRules) > 0) {
		return Request{}, domain.Validationf("instruction_id is mutually exclusive with instructions/strict_rules")
	}

	temp := DefaultTemperature
	if temperature != nil {
		temp = *temperature
	}
	if temp < 0 || temp > 1 {
		return Request{}, domain.Validationf("temperature must be between 0 and 1, got %g", temp)
	}

	if model == "" {
		model = DefaultModel
	}

	return Request{
		userPrompt:    userPrompt,
		instructionID: instructionID,
		instructions:  clone(instructions),
		strictRules:   clone(strictRules),
		model:         model,
		temperature:   temp,
	}, nil
}

// UserPrompt returns the verbatim user message.
func (r Request) UserPrompt() string { return r.userPrompt }

// InstructionID returns the stored template reference, if any.
func (r Request) InstructionID() string { return r.instructionID }

// Instructions returns inline instructions; never nil.
func (r Request) Instructions() []string { return clone(r.instructions) }

// StrictRules returns inline rules; never nil.
func (r Request) StrictRules() []string { return clone(r.strictRules) }

// Model returns the language model identifier.
func (r Request) Model() string { return r.model }

// Temperature returns the sampling temperature in [0, 1].
func (r Request) Temperature() float64 { return r.temperature }

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
