package rank

// Candidate is a keyed vector to score against a query.
type Candidate struct {
	Key    string
	Vector []float32
}

// Result is a single scored candidate.
type Result struct {
	key      string
	score    float64
	distance *float64
}

// NewResult creates a result. distance is nil for metrics that have none.
func NewResult(key string, score float64, distance *float64) Result {
	return Result{key: key, score: score, distance: distance}
}

// Key returns the label or document id.
func (r Result) Key() string { return r.key }

// Score returns the similarity score; higher is more similar.
func (r Result) Score() float64 { return r.score }

// Distance returns the raw distance when the metric produced one.
func (r Result) Distance() (float64, bool) {
	if r.distance == nil {
		return 0, false
	}
	return *r.distance, true
}
