package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
)

// Ingest downloads the image at imageURL, embeds it and stores the document.
// An empty id gets a generated one; an existing id is overwritten.
func (s *Service) Ingest(ctx context.Context, id, name, imageURL string) (dommedia.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	if err := dommedia.ValidateID(id); err != nil {
		return dommedia.Document{}, err
	}

	res, err := s.embed.EmbedImageFromURL(ctx, imageURL)
	if err != nil {
		return dommedia.Document{}, fmt.Errorf("embed %s: %w", id, err)
	}

	doc, err := dommedia.New(id, strings.TrimSpace(name), strings.TrimSpace(imageURL), res.Embedding)
	if err != nil {
		return dommedia.Document{}, err
	}
	if err := s.repo.Save(ctx, &doc); err != nil {
		return dommedia.Document{}, fmt.Errorf("save %s: %w", id, err)
	}
	return doc, nil
}
