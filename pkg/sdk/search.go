package mediasense

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Search returns stored documents nearest to the query embedding.
// limit 0 uses the server default.
func (c *Client) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchHit, error) {
	req, err := jsonRequest("search", http.MethodPost, "/search", map[string]any{
		"query_embedding": queryEmbedding,
		"limit":           limit,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Results []SearchHit `json:"results"`
	}
	if _, err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// SearchByText embeds text on the server and searches with it.
func (c *Client) SearchByText(ctx context.Context, text string, limit int) ([]SearchHit, error) {
	req, err := jsonRequest("search_by_text", http.MethodPost, "/search-by-text", map[string]any{
		"query_text": text,
		"limit":      limit,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Results []SearchHit `json:"results"`
	}
	if _, err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Rank scores candidates against query on the server. topK 0 uses the server default.
func (c *Client) Rank(
	ctx context.Context, query []float32, candidates []Candidate, metric Metric, topK int,
) ([]Scored, error) {
	req, err := jsonRequest("rank", http.MethodPost, "/rank", map[string]any{
		"query":      query,
		"candidates": candidates,
		"metric":     metric,
		"top_k":      topK,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Results []Scored `json:"results"`
	}
	if _, err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Classify ranks text labels against an embedding. Nil labels use the server's set.
func (c *Client) Classify(ctx context.Context, embedding []float32, labels []string, metric Metric) ([]Scored, error) {
	req, err := jsonRequest("classify", http.MethodPost, "/classify", map[string]any{
		"embedding": embedding,
		"labels":    labels,
		"metric":    metric,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Results []Scored `json:"results"`
	}
	if _, err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// MetaInfo classifies a stored document's image embedding against labels.
func (c *Client) MetaInfo(ctx context.Context, id string, labels []string, metric Metric) ([]LabelScore, error) {
	q := url.Values{"id": {id}}
	if len(labels) > 0 {
		q.Set("labels", strings.Join(labels, ","))
	}
	if metric != "" {
		q.Set("metric", string(metric))
	}

	var out struct {
		MetaInfo []LabelScore `json:"meta_info"`
	}
	_, err := c.do(ctx, request{op: "meta_info", method: http.MethodPost, path: "/get-meta-info", query: q}, &out)
	if err != nil {
		return nil, err
	}
	return out.MetaInfo, nil
}

// EmbeddingInfo returns statistics of a stored embedding.
func (c *Client) EmbeddingInfo(ctx context.Context, id string) (EmbeddingInfo, error) {
	req, err := jsonRequest("embedding_info", http.MethodPost, "/get-embedding-info", map[string]string{"id": id})
	if err != nil {
		return EmbeddingInfo{}, err
	}
	var out EmbeddingInfo
	if _, err := c.do(ctx, req, &out); err != nil {
		return EmbeddingInfo{}, err
	}
	return out, nil
}

// ListIDs returns every stored document id.
func (c *Client) ListIDs(ctx context.Context) ([]string, error) {
	var out []string
	if _, err := c.do(ctx, request{op: "list_ids", method: http.MethodGet, path: "/list-ids"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDocument fetches a stored document.
func (c *Client) GetDocument(ctx context.Context, id string) (Document, error) {
	var out Document
	req := request{op: "get_document", method: http.MethodGet, path: "/get-document/" + url.PathEscape(id)}
	if _, err := c.do(ctx, req, &out); err != nil {
		return Document{}, err
	}
	return out, nil
}

// Ingest downloads imageURL on the server, embeds it and stores the document.
// An empty id lets the server generate one.
func (c *Client) Ingest(ctx context.Context, id, name, imageURL string) (Document, error) {
	req, err := jsonRequest("ingest", http.MethodPost, "/documents", map[string]string{
		"id":        id,
		"name":      name,
		"image_url": imageURL,
	})
	if err != nil {
		return Document{}, err
	}
	var out Document
	if _, err := c.do(ctx, req, &out); err != nil {
		return Document{}, err
	}
	return out, nil
}
