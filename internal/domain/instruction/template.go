package instruction

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// Limits for a stored template.
const (
	MaxTechnologyLen  = 128
	MaxInstructionLen = 8192
	MaxRules          = 64
)

// Template is a reusable instruction with strict rules (immutable value object).
type Template struct {
	id          string
	technology  string
	instruction string
	strictRules []string
}

// New validates and creates a Template.
func New(id, technology, instruction string, strictRules []string) (Template, error) {
	if id == "" {
		return Template{}, domain.Validationf("template id is required")
	}
	technology = strings.TrimSpace(technology)
	if technology == "" {
		return Template{}, domain.Validationf("technology is required")
	}
	if len(technology) > MaxTechnologyLen {
		return Template{}, domain.Validationf("technology too long (max %d)", MaxTechnologyLen)
	}
	if strings.TrimSpace(instruction) == "" {
		return Template{}, domain.Validationf("instruction is required")
	}
	if len(instruction) > MaxInstructionLen {
		return Template{}, domain.Validationf("instruction too long (max %d)", MaxInstructionLen)
	}
	if len(strictRules) > MaxRules {
		return Template{}, domain.Validationf("too many strict rules (max %d)", MaxRules)
	}
	for i, r := range strictRules {
		if strings.TrimSpace(r) == "" {
			return Template{}, domain.Validationf("strict rule %d is empty", i)
		}
	}
	return Reconstruct(id, technology, instruction, strictRules), nil
}

// NewID returns a fresh template identifier.
func NewID() string { return uuid.NewString() }

// ValidateID rejects ids that were not produced by NewID.
func ValidateID(id string) error {
	if id == "" {
		return domain.Validationf("instruction id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.Validationf("invalid instruction id %q", id)
	}
	return nil
}

// Reconstruct hydrates a Template from storage without validation.
func Reconstruct(id, technology, instruction string, strictRules []string) Template {
	rules := make([]string, len(strictRules))
	copy(rules, strictRules)
	return Template{id: id, technology: technology, instruction: instruction, strictRules: rules}
}

// ID returns the store-assigned identifier.
func (t Template) ID() string { return t.id }

// Technology returns the technology the template targets.
func (t Template) Technology() string { return t.technology }

// Instruction returns the instruction text.
func (t Template) Instruction() string { return t.instruction }

// StrictRules returns a copy of the rules; never nil.
func (t Template) StrictRules() []string {
	out := make([]string, len(t.strictRules))
	copy(out, t.strictRules)
	return out
}

// Summary returns the instruction truncated to n runes with an ellipsis.
func (t Template) Summary(n int) string {
	return Truncate(t.instruction, n)
}

// Truncate shortens s to n runes and appends "..." when anything was cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
