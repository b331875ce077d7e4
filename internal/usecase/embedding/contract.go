package embedding

import "context"

// Fetcher downloads image bytes from a remote URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
