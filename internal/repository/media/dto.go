package media

import (
	"encoding/json"
	"fmt"

	dommedia "github.com/kailas-cloud/mediasense/internal/domain/media"
)

// mediaJSON is the stored document layout; field names match the ingested dataset.
type mediaJSON struct {
	ID           string       `json:"id"`
	Name         string       `json:"name,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	MediaDetails mediaDetails `json:"mediaDetails"`
}

type mediaDetails struct {
	ImageEmbeddings []float32 `json:"imageEmbeddings"`
}

func toJSON(d *dommedia.Document) mediaJSON {
	return mediaJSON{
		ID:       d.ID(),
		Name:     d.Name(),
		ImageURL: d.ImageURL(),
		MediaDetails: mediaDetails{
			ImageEmbeddings: d.ImageEmbeddings(),
		},
	}
}

func (m mediaJSON) toDomain(fallbackID string) dommedia.Document {
	id := m.ID
	if id == "" {
		id = fallbackID
	}
	return dommedia.Reconstruct(id, m.Name, m.ImageURL, m.MediaDetails.ImageEmbeddings)
}

// parseJSONGet decodes a JSON.GET $ reply, which wraps the document in an array.
func parseJSONGet(id string, raw []byte) (dommedia.Document, bool, error) {
	var docs []mediaJSON
	if err := json.Unmarshal(raw, &docs); err != nil {
		return dommedia.Document{}, false, fmt.Errorf("unmarshal %s: %w", id, err)
	}
	if len(docs) == 0 {
		return dommedia.Document{}, false, nil
	}
	return docs[0].toDomain(id), true, nil
}

// parseSearchDoc decodes the "$" field returned by FT.SEARCH on a JSON index.
func parseSearchDoc(id, raw string) (dommedia.Document, error) {
	var m mediaJSON
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return dommedia.Document{}, fmt.Errorf("unmarshal %s: %w", id, err)
	}
	return m.toDomain(id), nil
}
