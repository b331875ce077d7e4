package completion

import "strings"

// Persona lines.
const (
	StrictPersona  = "You are an expert AI assistant that strictly follows rules."
	GenericPersona = "You are a helpful AI assistant."
)

const (
	instructionsHeader = "INSTRUCTIONS:"
	rulesHeader        = "STRICT RULES (MUST FOLLOW):"
)

// Prompt is the assembled pair of chat turns.
type Prompt struct {
	System string
	User   string
}

// Assemble renders the system message from instructions and rules. Output depends only on its inputs.
func Assemble(instructions, rules []string, userPrompt string) Prompt {
	if len(instructions) == 0 && len(rules) == 0 {
		return Prompt{System: GenericPersona, User: userPrompt}
	}

	lines := []string{StrictPersona}
	if len(instructions) > 0 {
		lines = append(lines, "", instructionsHeader)
		for _, i := range instructions {
			lines = append(lines, "- "+i)
		}
	}
	if len(rules) > 0 {
		lines = append(lines, "", rulesHeader)
		for _, r := range rules {
			lines = append(lines, "- "+r)
		}
	}

	return Prompt{System: strings.Join(lines, "\n"), User: userPrompt}
}
