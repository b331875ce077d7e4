package completion

// Result is the normalized language model response.
type Result struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Resolved is the instruction source chosen for a request.
type Resolved struct {
	InstructionID string
	Instructions  []string
	Rules         []string
}

// Response is what a completion returns to the caller.
type Response struct {
	Result
	Resolved
	Model string
}
