// Package local is an offline embedding backend for development and tests.
// Images become RGB color histograms, text becomes a hashed bag of words.
// Both land in the same 512-dimensional space, but the two modalities are not
// semantically aligned the way CLIP vectors are.
package local

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/domain/vector"
	"github.com/kailas-cloud/mediasense/internal/imaging"
)

// BackendName labels results produced by this backend.
const BackendName = "local"

// Model names the vectorization scheme.
const Model = "histogram-hash-v1"

const (
	// 8 levels per RGB channel.
	levels    = 8
	levelBits = 5
	dims      = levels * levels * levels
)

// Embedder computes deterministic vectors without a model.
type Embedder struct{}

// New creates the local backend.
func New() *Embedder { return &Embedder{} }

// Dimensions is the fixed output size.
func (*Embedder) Dimensions() int { return dims }

// EmbedImage returns the L2-normalized 8x8x8 color histogram of the normalized image.
func (*Embedder) EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmbeddingResult{}, err
	}
	img, err := imaging.Normalize(data)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}

	hist := make([]float32, dims)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := img.PixOffset(x, y)
			r := int(img.Pix[off] >> levelBits)
			g := int(img.Pix[off+1] >> levelBits)
			bl := int(img.Pix[off+2] >> levelBits)
			hist[r*levels*levels+g*levels+bl]++
		}
	}

	normalize(hist)
	return result(hist), nil
}

// EmbedText hashes lower-cased word tokens into buckets with FNV-1a.
func (*Embedder) EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmbeddingResult{}, err
	}
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return domain.EmbeddingResult{}, domain.Validationf("text has no word tokens")
	}

	vec := make([]float32, dims)
	for _, tok := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%dims]++
	}

	normalize(vec)
	return result(vec), nil
}

// HealthCheck always succeeds.
func (*Embedder) HealthCheck(context.Context) error { return nil }

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalize(v []float32) {
	n := vector.Norm(v)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / n)
	}
}

func result(v []float32) domain.EmbeddingResult {
	return domain.EmbeddingResult{Embedding: v, Backend: BackendName, Model: Model}
}
