// Package db is the storage contract the repositories are written against:
// JSON documents with RediSearch indexes over them, plus plain keys for the embedding cache.
package db

import (
	"context"
	"time"
)

// Store is the full surface implemented by a backend.
//
//nolint:interfacebloat // repositories depend on the narrow interfaces below
type Store interface {
	Pinger
	DocumentStore
	CacheStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore reads and writes JSON documents by key.
type DocumentStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	// JSONGet returns the JSON.GET reply; a "$" path wraps the document in an array.
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// CacheStore holds opaque values. ttl <= 0 stores without expiry.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IndexManager creates FT indexes.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
}

// Searcher runs FT.SEARCH in its three shapes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
	SearchPage(ctx context.Context, q *PageQuery) (*SearchResult, error)
}
