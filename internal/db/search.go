package db

import "errors"

// ScoreField is the pseudo-field FT.SEARCH reports KNN distances in.
const ScoreField = "__vector_score"

// KNNQuery asks for the K nearest vectors of Field.
type KNNQuery struct {
	Index  string
	Field  string
	Vector []float32
	K      int
	Return []string
}

// Validate rejects queries that cannot be sent.
func (q *KNNQuery) Validate() error {
	switch {
	case q.Index == "":
		return errors.New("index name is required")
	case q.Field == "":
		return errors.New("vector field is required")
	case len(q.Vector) == 0:
		return errors.New("vector is required")
	case q.K <= 0:
		return errors.New("k must be positive")
	}
	return nil
}

// TextQuery is a BM25 search of free text over every TEXT field.
type TextQuery struct {
	Index  string
	Query  string
	Limit  int
	Return []string
}

// Validate rejects queries that cannot be sent.
func (q *TextQuery) Validate() error {
	switch {
	case q.Index == "":
		return errors.New("index name is required")
	case q.Query == "":
		return errors.New("query is required")
	case q.Limit <= 0:
		return errors.New("limit must be positive")
	}
	return nil
}

// PageQuery reads documents [Offset, Offset+Limit) of those matching Filter.
// Filter is a raw query expression; empty means all documents.
type PageQuery struct {
	Index  string
	Filter string
	Offset int
	Limit  int
	Return []string
}

// Validate rejects queries that cannot be sent.
func (q *PageQuery) Validate() error {
	switch {
	case q.Index == "":
		return errors.New("index name is required")
	case q.Offset < 0:
		return errors.New("offset must not be negative")
	case q.Limit <= 0:
		return errors.New("limit must be positive")
	}
	return nil
}

// SearchResult holds one window of hits. Total counts every match, not only the window.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a hit. Score is cosine similarity for KNN and BM25 for text search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
