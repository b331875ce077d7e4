package mediasense

import (
	"context"
	"net/http"
)

// Complete runs a completion with instructions resolved on the server.
func (c *Client) Complete(ctx context.Context, in CompletionRequest) (Completion, error) {
	req, err := jsonRequest("complete", http.MethodPost, "/ai/completions", in)
	if err != nil {
		return Completion{}, err
	}
	var out Completion
	if _, err := c.do(ctx, req, &out); err != nil {
		return Completion{}, err
	}
	return out, nil
}

// Float64 returns a pointer to v, for CompletionRequest.Temperature.
func Float64(v float64) *float64 { return &v }
