package media

import (
	"github.com/kailas-cloud/mediasense/internal/db"
	"github.com/kailas-cloud/mediasense/internal/domain"
)

const (
	embeddingPath = "$.mediaDetails.imageEmbeddings"
	vectorAlias   = "vector"
)

// HNSWConfig tunes the vector index.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

func keyPrefix() string { return domain.KeyPrefix + "media:" }

func indexName() string { return domain.KeyPrefix + "media:idx" }

func docKey(id string) string { return keyPrefix() + id }

func buildIndex(dim int, hnsw HNSWConfig) (*db.IndexDefinition, error) {
	return db.NewIndex(indexName(), keyPrefix()).
		Text("$.name", "name").
		Tag("$.id", "id").
		Vector(embeddingPath, vectorAlias, dim, db.DistanceCosine, db.HNSW{M: hnsw.M, EFConstruct: hnsw.EFConstruct}).
		Build()
}
