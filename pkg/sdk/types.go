package mediasense

// Embedding is a vector produced by the server's embedding backend.
type Embedding struct {
	Embeddings []float32 `json:"embeddings"`
	Dimensions int       `json:"dimensions"`
	Backend    string    `json:"backend,omitempty"`
	Model      string    `json:"model,omitempty"`

	// Usage is read from response headers.
	Usage Usage `json:"-"`
}

// SearchHit is a stored document scored against a query.
type SearchHit struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Score    float64 `json:"score"`
}

// Candidate is a keyed vector to rank.
type Candidate struct {
	Key    string    `json:"key"`
	Vector []float32 `json:"vector"`
}

// Metric selects the similarity strategy. Empty means the server default.
type Metric string

// Metric constants.
const (
	Cosine    Metric = "cosine"
	Euclidean Metric = "euclidean"
)

// Scored is a ranked key. Distance is set for the euclidean metric only.
type Scored struct {
	Key      string   `json:"key"`
	Score    float64  `json:"score"`
	Distance *float64 `json:"distance,omitempty"`
}

// LabelScore is a label ranked against a stored document.
type LabelScore struct {
	Label      string   `json:"label"`
	Similarity float64  `json:"similarity"`
	Distance   *float64 `json:"distance,omitempty"`
}

// EmbeddingInfo summarizes a stored embedding.
type EmbeddingInfo struct {
	Dimensions   int     `json:"dimensions"`
	Norm         float64 `json:"norm"`
	MeanValue    float64 `json:"mean_value"`
	StdDeviation float64 `json:"std_deviation"`
	MaxValue     float64 `json:"max_value"`
}

// Document is a stored media document.
type Document struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	MediaDetails struct {
		ImageEmbeddings []float32 `json:"imageEmbeddings"`
	} `json:"mediaDetails"`
}

// CompletionRequest selects instructions either by stored template id
// or inline; the two are mutually exclusive.
type CompletionRequest struct {
	UserPrompt    string   `json:"user_prompt"`
	InstructionID string   `json:"instruction_id,omitempty"`
	Instructions  []string `json:"instructions,omitempty"`
	StrictRules   []string `json:"strict_rules,omitempty"`
	Model         string   `json:"model,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
}

// Completion is the model answer plus what shaped it.
type Completion struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Usage    struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Metadata struct {
		UsedInstructionID   *string  `json:"used_instruction_id"`
		AppliedInstructions []string `json:"applied_instructions"`
		AppliedRules        []string `json:"applied_rules"`
	} `json:"metadata"`
}

// Instruction is a stored instruction template.
type Instruction struct {
	ID          string   `json:"id"`
	Technology  string   `json:"technology"`
	Instruction string   `json:"instruction"`
	StrictRules []string `json:"strict_rules"`
}

// InstructionSummary is a listing entry with a truncated instruction.
type InstructionSummary struct {
	ID          string   `json:"id"`
	Technology  string   `json:"technology"`
	StrictRules []string `json:"strictRules"`
	Summary     string   `json:"summary"`
}

// InstructionPage is one page of the instruction library.
type InstructionPage struct {
	Page              int                  `json:"page"`
	PageSize          int                  `json:"page_size"`
	TotalInstructions int                  `json:"total_instructions"`
	TotalPages        int                  `json:"total_pages"`
	Instructions      []InstructionSummary `json:"instructions"`
}

// InstructionMatch is a full-text search hit.
type InstructionMatch struct {
	ID         string  `json:"id"`
	Technology string  `json:"technology"`
	Score      float64 `json:"score"`
	Match      string  `json:"match"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded"
	Checks map[string]string `json:"checks"` // component → "ok"/"error"
}
