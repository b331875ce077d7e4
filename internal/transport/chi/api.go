package chi

import (
	"github.com/kailas-cloud/mediasense/internal/domain"
	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
	"github.com/kailas-cloud/mediasense/internal/domain/vector"
)

// ErrorCode is the machine-readable error kind in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeValidation        ErrorCode = "validation_error"
	CodeNotFound          ErrorCode = "not_found"
	CodeDimensionMismatch ErrorCode = "dimension_mismatch"
	CodeDecode            ErrorCode = "decode_error"
	CodeUpstream          ErrorCode = "upstream_error"
	CodeBackend           ErrorCode = "backend_error"
	CodeInternal          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// EmbeddingResponse is returned by the embedding routes.
type EmbeddingResponse struct {
	Embeddings []float32 `json:"embeddings"`
	Dimensions int       `json:"dimensions"`
	Backend    string    `json:"backend,omitempty"`
	Model      string    `json:"model,omitempty"`
}

// ImageURLRequest is the body of /generate-embeddings-from-url.
type ImageURLRequest struct {
	URL string `json:"url"`
}

// SearchRequest is the body of /search.
type SearchRequest struct {
	QueryEmbedding []float32 `json:"query_embedding"`
	Limit          int       `json:"limit"`
}

// SearchByTextRequest is the body of /search-by-text.
type SearchByTextRequest struct {
	QueryText string `json:"query_text"`
	Limit     int    `json:"limit"`
}

// SearchHit is one vector search result.
type SearchHit struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Score    float64 `json:"score"`
}

// SearchResponse lists hits, best first.
type SearchResponse struct {
	QueryText string      `json:"query_text,omitempty"`
	Results   []SearchHit `json:"results"`
}

// Candidate is a keyed vector in a rank request.
type Candidate struct {
	Key    string    `json:"key"`
	Vector []float32 `json:"vector"`
}

// RankRequest is the body of /rank.
type RankRequest struct {
	Query      []float32   `json:"query"`
	Candidates []Candidate `json:"candidates"`
	Metric     string      `json:"metric,omitempty"`
	TopK       int         `json:"top_k,omitempty"`
}

// ClassifyRequest is the body of /classify.
type ClassifyRequest struct {
	Embedding []float32 `json:"embedding"`
	Labels    []string  `json:"labels,omitempty"`
	Metric    string    `json:"metric,omitempty"`
}

// ScoredKey is one ranked candidate or label.
type ScoredKey struct {
	Key      string   `json:"key"`
	Score    float64  `json:"score"`
	Distance *float64 `json:"distance,omitempty"`
}

// RankResponse lists ranked keys, best first.
type RankResponse struct {
	Results []ScoredKey `json:"results"`
}

// LabelScore is one entry of a meta info response.
type LabelScore struct {
	Label      string   `json:"label"`
	Similarity float64  `json:"similarity"`
	Distance   *float64 `json:"distance,omitempty"`
}

// MetaInfoResponse is returned by /get-meta-info.
type MetaInfoResponse struct {
	MetaInfo []LabelScore `json:"meta_info"`
}

// DocumentIDRequest is the body of /get-embedding-info.
type DocumentIDRequest struct {
	ID string `json:"id"`
}

// EmbeddingInfoResponse describes a stored embedding.
type EmbeddingInfoResponse struct {
	Dimensions   int     `json:"dimensions"`
	Norm         float64 `json:"norm"`
	MeanValue    float64 `json:"mean_value"`
	StdDeviation float64 `json:"std_deviation"`
	MaxValue     float64 `json:"max_value"`
}

// MediaDetails nests the stored embedding like the stored document does.
type MediaDetails struct {
	ImageEmbeddings []float32 `json:"imageEmbeddings"`
}

// DocumentResponse is a stored media document.
type DocumentResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	MediaDetails MediaDetails `json:"mediaDetails"`
}

// IngestRequest is the body of POST /documents.
type IngestRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	ImageURL string `json:"image_url"`
}

// CompletionRequest is the body of /ai/completions.
type CompletionRequest struct {
	UserPrompt    string   `json:"user_prompt"`
	InstructionID string   `json:"instruction_id,omitempty"`
	Instructions  []string `json:"instructions,omitempty"`
	StrictRules   []string `json:"strict_rules,omitempty"`
	Model         string   `json:"model,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
}

// CompletionUsage reports language model tokens.
type CompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// CompletionMetadata reports which instructions were applied.
type CompletionMetadata struct {
	UsedInstructionID   *string  `json:"used_instruction_id"`
	AppliedInstructions []string `json:"applied_instructions"`
	AppliedRules        []string `json:"applied_rules"`
}

// CompletionResponse is returned by /ai/completions.
type CompletionResponse struct {
	Response string             `json:"response"`
	Model    string             `json:"model"`
	Usage    CompletionUsage    `json:"usage"`
	Metadata CompletionMetadata `json:"metadata"`
}

// InstructionCreateRequest is the body of POST /instructions.
type InstructionCreateRequest struct {
	Technology  string   `json:"technology"`
	Instruction string   `json:"instruction"`
	StrictRules []string `json:"strict_rules"`
}

// InstructionCreateResponse acknowledges a created template.
type InstructionCreateResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// InstructionResponse is a full template.
type InstructionResponse struct {
	ID          string   `json:"id"`
	Technology  string   `json:"technology"`
	Instruction string   `json:"instruction"`
	StrictRules []string `json:"strict_rules"`
}

// InstructionSummary is a template as listed in a page.
type InstructionSummary struct {
	ID          string   `json:"id"`
	Technology  string   `json:"technology"`
	StrictRules []string `json:"strictRules"`
	Summary     string   `json:"summary"`
}

// InstructionPageResponse is one page of templates.
type InstructionPageResponse struct {
	Page              int                  `json:"page"`
	PageSize          int                  `json:"page_size"`
	TotalInstructions int                  `json:"total_instructions"`
	TotalPages        int                  `json:"total_pages"`
	Instructions      []InstructionSummary `json:"instructions"`
}

// InstructionMatch is one full-text hit.
type InstructionMatch struct {
	ID         string  `json:"id"`
	Technology string  `json:"technology"`
	Score      float64 `json:"score"`
	Match      string  `json:"match"`
}

// InstructionSearchResponse lists full-text hits.
type InstructionSearchResponse struct {
	Query   string             `json:"query"`
	Results []InstructionMatch `json:"results"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func embeddingToAPI(r domain.EmbeddingResult) EmbeddingResponse {
	return EmbeddingResponse{
		Embeddings: r.Embedding,
		Dimensions: r.Dimensions(),
		Backend:    r.Backend,
		Model:      r.Model,
	}
}

func hitsToAPI(hits []dommedia.Hit) []SearchHit {
	out := make([]SearchHit, len(hits))
	for i, h := range hits {
		out[i] = SearchHit{
			ID:       h.Document.ID(),
			Name:     h.Document.Name(),
			ImageURL: h.Document.ImageURL(),
			Score:    h.Score,
		}
	}
	return out
}

func rankResultsToAPI(results []rank.Result) []ScoredKey {
	out := make([]ScoredKey, len(results))
	for i, r := range results {
		out[i] = ScoredKey{Key: r.Key(), Score: r.Score(), Distance: distancePtr(r)}
	}
	return out
}

func labelScoresToAPI(results []rank.Result) []LabelScore {
	out := make([]LabelScore, len(results))
	for i, r := range results {
		out[i] = LabelScore{Label: r.Key(), Similarity: r.Score(), Distance: distancePtr(r)}
	}
	return out
}

func distancePtr(r rank.Result) *float64 {
	d, ok := r.Distance()
	if !ok {
		return nil
	}
	return &d
}

func candidatesFromAPI(cs []Candidate) []rank.Candidate {
	out := make([]rank.Candidate, len(cs))
	for i, c := range cs {
		out[i] = rank.Candidate{Key: c.Key, Vector: c.Vector}
	}
	return out
}

func statsToAPI(s vector.Stats) EmbeddingInfoResponse {
	return EmbeddingInfoResponse{
		Dimensions:   s.Dimensions,
		Norm:         s.Norm,
		MeanValue:    s.Mean,
		StdDeviation: s.StdDeviation,
		MaxValue:     s.Max,
	}
}

func documentToAPI(d dommedia.Document) DocumentResponse {
	emb := d.ImageEmbeddings()
	if emb == nil {
		emb = []float32{}
	}
	return DocumentResponse{
		ID:           d.ID(),
		Name:         d.Name(),
		ImageURL:     d.ImageURL(),
		MediaDetails: MediaDetails{ImageEmbeddings: emb},
	}
}

func instructionToAPI(t dominst.Template) InstructionResponse {
	return InstructionResponse{
		ID:          t.ID(),
		Technology:  t.Technology(),
		Instruction: t.Instruction(),
		StrictRules: t.StrictRules(),
	}
}

func pageToAPI(p dominst.Page) InstructionPageResponse {
	items := make([]InstructionSummary, len(p.Items))
	for i, t := range p.Items {
		items[i] = InstructionSummary{
			ID:          t.ID(),
			Technology:  t.Technology(),
			StrictRules: t.StrictRules(),
			Summary:     t.Summary(dominst.SummaryLen),
		}
	}
	return InstructionPageResponse{
		Page:              p.Page,
		PageSize:          p.PageSize,
		TotalInstructions: p.Total,
		TotalPages:        p.TotalPages,
		Instructions:      items,
	}
}

func matchesToAPI(query string, ms []dominst.Match) InstructionSearchResponse {
	out := make([]InstructionMatch, len(ms))
	for i, m := range ms {
		out[i] = InstructionMatch{
			ID:         m.Template.ID(),
			Technology: m.Template.Technology(),
			Score:      m.Score,
			Match:      dominst.Truncate(m.Template.Instruction(), dominst.MatchLen),
		}
	}
	return InstructionSearchResponse{Query: query, Results: out}
}
