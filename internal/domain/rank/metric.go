package rank

// Metric is the similarity strategy used to score candidates.
type Metric string

// Metric constants.
const (
	// Cosine scores by raw cosine similarity in [-1, 1].
	Cosine Metric = "cosine"
	// Euclidean scores by distance mapped to a percentage of the ones-vector norm.
	Euclidean Metric = "euclidean"
)

// IsValid checks if the metric is one of the supported values.
func (m Metric) IsValid() bool {
	return m == Cosine || m == Euclidean
}

// ParseMetric maps an input string to a Metric. Empty input yields def.
func ParseMetric(s string, def Metric) (Metric, bool) {
	if s == "" {
		return def, true
	}
	m := Metric(s)
	return m, m.IsValid()
}
