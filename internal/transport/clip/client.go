// Package clip is an HTTP client for the CLIP inference sidecar.
package clip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/imaging"
	"github.com/kailas-cloud/mediasense/internal/version"
)

// BackendName labels results and metrics produced by this client.
const BackendName = "clip"

const (
	imagePath = "/generate-embeddings"
	textPath  = "/generate-query-embedding"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
)

// Config holds the sidecar settings.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements domain.Embedder over the sidecar HTTP API.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

// New creates a sidecar client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
	}
}

type embeddingsResponse struct {
	Embeddings []float32 `json:"embeddings"`
}

// EmbedImage normalizes the image locally and uploads it as multipart "file".
func (c *Client) EmbedImage(ctx context.Context, data []byte) (domain.EmbeddingResult, error) {
	img, err := imaging.Normalize(data)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	jpg, err := imaging.EncodeJPEG(img)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrInternal, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "image.jpg")
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(jpg); err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("close multipart: %w", err)
	}

	return c.post(ctx, imagePath, mw.FormDataContentType(), &body)
}

// EmbedText sends the text as form field "query_text".
func (c *Client) EmbedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.EmbeddingResult{}, domain.Validationf("query text is empty")
	}
	form := url.Values{"query_text": {text}}
	return c.post(ctx, textPath, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

// HealthCheck calls the sidecar root endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: health status %d", domain.ErrBackend, resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (domain.EmbeddingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %s: %w", domain.ErrBackend, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %s: status %d: %s",
			domain.ErrBackend, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var out embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %s: decode response: %w", domain.ErrBackend, path, err)
	}
	if len(out.Embeddings) == 0 {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %s: empty embeddings", domain.ErrBackend, path)
	}

	return domain.EmbeddingResult{
		Embedding: out.Embeddings,
		Backend:   BackendName,
		Model:     c.model,
	}, nil
}
