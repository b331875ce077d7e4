// Package rank scores candidate vectors against a query and keeps the top K.
package rank

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/domain/vector"
)

// DefaultTopK is used when the caller passes a non-positive topK.
const DefaultTopK = 5

// Rank scores every candidate, stable-sorts by score descending and truncates to topK.
// Truncation happens after the full set is sorted.
func Rank(query []float32, candidates []Candidate, metric Metric, topK int) ([]Result, error) {
	if len(query) == 0 {
		return nil, domain.Validationf("query embedding is empty")
	}
	if !metric.IsValid() {
		return nil, domain.Validationf("unknown metric %q", metric)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		r, err := score(query, c, metric)
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", c.Key, err)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func score(query []float32, c Candidate, metric Metric) (Result, error) {
	switch metric {
	case Cosine:
		s, err := vector.Cosine(query, c.Vector)
		if err != nil {
			return Result{}, err
		}
		return NewResult(c.Key, s, nil), nil
	case Euclidean:
		d, err := vector.Euclidean(query, c.Vector)
		if err != nil {
			return Result{}, err
		}
		pct := vector.DistanceToPercent(d, vector.OnesNorm(len(query)))
		dist := vector.Round(d, 4)
		return NewResult(c.Key, vector.Round(pct, 2), &dist), nil
	default:
		return Result{}, domain.Validationf("unknown metric %q", metric)
	}
}
