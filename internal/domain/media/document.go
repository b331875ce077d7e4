package media

import (
	"strings"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// Document is a stored media item with its image embedding.
type Document struct {
	id              string
	name            string
	imageURL        string
	imageEmbeddings []float32
}

// New validates and creates a Document.
func New(id, name, imageURL string, embedding []float32) (Document, error) {
	if err := ValidateID(id); err != nil {
		return Document{}, err
	}
	if len(embedding) == 0 {
		return Document{}, domain.Validationf("image embedding is required")
	}
	return Reconstruct(id, name, imageURL, embedding), nil
}

// ValidateID rejects ids that cannot be used as a store key suffix.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validationf("document id is required")
	}
	if strings.ContainsAny(id, " \t\n*?[]") {
		return domain.Validationf("document id %q contains invalid characters", id)
	}
	return nil
}

// Reconstruct hydrates a Document from storage without validation.
func Reconstruct(id, name, imageURL string, embedding []float32) Document {
	return Document{id: id, name: name, imageURL: imageURL, imageEmbeddings: embedding}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Name returns the display name.
func (d Document) Name() string { return d.name }

// ImageURL returns the source image location.
func (d Document) ImageURL() string { return d.imageURL }

// ImageEmbeddings returns the stored vector; may be empty for legacy documents.
func (d Document) ImageEmbeddings() []float32 { return d.imageEmbeddings }

// Hit is a vector search result over stored documents.
type Hit struct {
	Document Document
	Score    float64
}
