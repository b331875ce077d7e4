package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/mediasense/internal/db"
)

// SearchKNN returns the K nearest documents. Entry scores are cosine similarity
// (1 - distance, floored at 0) and the raw distance field is dropped.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	args := []string{q.Index, fmt.Sprintf("*=>[KNN %d @%s $BLOB]", q.K, q.Field)}
	args = withReturn(args, q.Return)
	args = append(args, "PARAMS", "2", "BLOB", vectorBlob(q.Vector), "DIALECT", "2")

	res, err := s.search(ctx, args, false)
	if err != nil {
		return nil, err
	}
	for i := range res.Entries {
		e := &res.Entries[i]
		if d, err := strconv.ParseFloat(e.Fields[db.ScoreField], 64); err == nil {
			e.Score = max(0, 1-d)
		}
		delete(e.Fields, db.ScoreField)
	}
	return res, nil
}

// SearchText runs a BM25 query. The query is escaped, so operators in user text are literal.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	args := []string{q.Index, "(" + textEscaper.Replace(q.Query) + ")"}
	args = withReturn(args, q.Return)
	args = append(args, "WITHSCORES", "LIMIT", "0", strconv.Itoa(q.Limit), "DIALECT", "2")
	return s.search(ctx, args, true)
}

// SearchPage reads one window of the documents matching q.Filter in a single round trip.
func (s *Store) SearchPage(ctx context.Context, q *db.PageQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	filter := q.Filter
	if filter == "" {
		filter = "*"
	}
	args := []string{q.Index, filter, "LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit)}
	args = withReturn(args, q.Return)
	return s.search(ctx, args, false)
}

func (s *Store) search(ctx context.Context, args []string, withScores bool) (*db.SearchResult, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return parseReply(raw, withScores)
}

func withReturn(args, fields []string) []string {
	if len(fields) == 0 {
		return args
	}
	args = append(args, "RETURN", strconv.Itoa(len(fields)))
	return append(args, fields...)
}

// parseReply decodes [total, key, fields, ...] or, WITHSCORES, [total, key, score, fields, ...].
// Malformed entries are skipped.
func parseReply(raw []rueidis.RedisMessage, withScores bool) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	stride := 2
	if withScores {
		stride = 3
	}
	res := &db.SearchResult{Total: int(total)}
	for i := 1; i+stride <= len(raw); i += stride {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		entry := db.SearchEntry{Key: key}
		if withScores {
			score, err := raw[i+1].AsFloat64()
			if err != nil {
				continue
			}
			entry.Score = score
		}
		pairs, err := raw[i+stride-1].ToArray()
		if err != nil {
			continue
		}
		entry.Fields = fieldMap(pairs)
		res.Entries = append(res.Entries, entry)
	}
	return res, nil
}

func fieldMap(pairs []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for j := 0; j+1 < len(pairs); j += 2 {
		name, err := pairs[j].ToString()
		if err != nil {
			continue
		}
		if value, err := pairs[j+1].ToString(); err == nil {
			m[name] = value
		}
	}
	return m
}

// textEscaper makes query syntax characters literal.
var textEscaper = strings.NewReplacer(
	`\`, `\\`, `'`, `\'`, `"`, `\"`, `@`, `\@`, `{`, `\{`, `}`, `\}`,
	`(`, `\(`, `)`, `\)`, `|`, `\|`, `-`, `\-`, `~`, `\~`, `*`, `\*`,
	`[`, `\[`, `]`, `\]`, `!`, `\!`, `%`, `\%`, `^`, `\^`, `$`, `\$`,
	`<`, `\<`, `>`, `\>`, `=`, `\=`, `;`, `\;`, `+`, `\+`,
)

// vectorBlob packs v the way FLOAT32 vector fields expect: little-endian IEEE 754.
func vectorBlob(v []float32) string {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return rueidis.BinaryString(buf)
}
