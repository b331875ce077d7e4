// Package httpfetch downloads images referenced by URL.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/version"
)

const defaultTimeout = 10 * time.Second

// Fetcher is a size-capped HTTP GET client.
// Download failures are caller errors: the URL was unreachable or did not serve an image.
type Fetcher struct {
	http     *http.Client
	maxBytes int64
}

// New creates a fetcher. timeout <= 0 uses 10s.
func New(timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{http: &http.Client{Timeout: timeout}, maxBytes: maxBytes}
}

// Fetch returns the response body of a successful GET.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Validationf("download image: %v", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := f.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.Validationf("download image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, domain.Validationf("download image: status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, domain.Validationf("download image: %d bytes exceeds limit of %d", resp.ContentLength, f.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, domain.Validationf("download image: %v", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, domain.Validationf("download image: body exceeds limit of %d bytes", f.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: downloaded image is empty", domain.ErrDecode)
	}
	return data, nil
}
