package mediasense

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client is the mediasense API entry point. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	obs     *observer
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &settings{timeout: defaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("mediasense: invalid base URL %q", baseURL)
	}

	hc := cfg.client
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.registry)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		http:    hc,
		obs:     obs,
	}, nil
}

// request is a single API call.
type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	// alsoOK is a non-2xx status whose body is still decoded into out.
	alsoOK int
}

// jsonRequest encodes v as the request body.
func jsonRequest(op, method, path string, v any) (request, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return request{}, fmt.Errorf("mediasense: encode %s: %w", op, err)
	}
	return request{
		op:          op,
		method:      method,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, nil
}

// do sends req, decodes a 2xx body into out (when non-nil) and returns the response headers.
func (c *Client) do(ctx context.Context, req request, out any) (h http.Header, err error) {
	start := time.Now()
	defer func() { c.obs.observe(req.op, start, err) }()

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, req.body)
	if err != nil {
		return nil, fmt.Errorf("mediasense: %s: %w", req.op, err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mediasense: %s: %w", req.op, err)
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok && resp.StatusCode != req.alsoOK {
		return resp.Header, decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.Header, fmt.Errorf("mediasense: decode %s response: %w", req.op, err)
		}
	}
	return resp.Header, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-Request-ID"),
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// IsRetryable reports whether err is an API error worth retrying.
func IsRetryable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Retryable()
}
