package mediasense

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// EmbedImage uploads image bytes read from r.
func (c *Client) EmbedImage(ctx context.Context, filename string, r io.Reader) (Embedding, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Embedding{}, fmt.Errorf("mediasense: build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return Embedding{}, fmt.Errorf("mediasense: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Embedding{}, fmt.Errorf("mediasense: build upload: %w", err)
	}

	return c.embed(ctx, request{
		op:          "embed_image",
		method:      http.MethodPost,
		path:        "/generate-embeddings",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
}

// EmbedImageURL asks the server to download and embed an image.
func (c *Client) EmbedImageURL(ctx context.Context, imageURL string) (Embedding, error) {
	req, err := jsonRequest("embed_image_url", http.MethodPost, "/generate-embeddings-from-url",
		map[string]string{"url": imageURL})
	if err != nil {
		return Embedding{}, err
	}
	return c.embed(ctx, req)
}

// EmbedText embeds a text query into the image space.
func (c *Client) EmbedText(ctx context.Context, text string) (Embedding, error) {
	form := url.Values{"query_text": {text}}
	return c.embed(ctx, request{
		op:          "embed_text",
		method:      http.MethodPost,
		path:        "/generate-query-embedding",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
}

func (c *Client) embed(ctx context.Context, req request) (Embedding, error) {
	var out Embedding
	h, err := c.do(ctx, req, &out)
	if err != nil {
		return Embedding{}, err
	}
	out.Usage = usageFromHeader(h)
	return out, nil
}
