// Package vector holds the pure vector math shared by ranking and diagnostics.
// Arithmetic is carried out in float64 regardless of the float32 storage type.
package vector

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// Stats summarizes a single embedding.
type Stats struct {
	Dimensions   int
	Norm         float64
	Mean         float64
	StdDeviation float64
	Max          float64
}

func checkDims(a, b []float32) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	return nil
}

// Cosine returns dot(a,b)/(|a||b|). A zero-norm operand yields 0, not NaN.
func Cosine(a, b []float32) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// Euclidean returns the L2 norm of a-b.
func Euclidean(a, b []float32) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// DistanceToPercent maps a distance to max(0, 100 - distance/referenceNorm*100).
// There is no upper clamp: a negative distance would exceed 100.
func DistanceToPercent(distance, referenceNorm float64) float64 {
	if referenceNorm == 0 {
		return 0
	}
	return math.Max(0, 100-distance/referenceNorm*100)
}

// OnesNorm is the norm of the all-ones vector of the given dimension.
func OnesNorm(dim int) float64 {
	return math.Sqrt(float64(dim))
}

// Norm returns |v|.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Describe computes summary statistics. Standard deviation is the population one.
func Describe(v []float32) (Stats, error) {
	if len(v) == 0 {
		return Stats{}, domain.Validationf("embedding is empty")
	}

	var sum float64
	maxVal := math.Inf(-1)
	for _, x := range v {
		f := float64(x)
		sum += f
		if f > maxVal {
			maxVal = f
		}
	}
	mean := sum / float64(len(v))

	var variance float64
	for _, x := range v {
		d := float64(x) - mean
		variance += d * d
	}
	variance /= float64(len(v))

	return Stats{
		Dimensions:   len(v),
		Norm:         Norm(v),
		Mean:         mean,
		StdDeviation: math.Sqrt(variance),
		Max:          maxVal,
	}, nil
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
