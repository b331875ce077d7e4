package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/mediasense/internal/db"
)

// JSONSet writes data at path of key.
func (s *Store) JSONSet(ctx context.Context, key, path string, data []byte) error {
	cmd := s.b().JsonSet().Key(key).Path(path).Value(string(data)).Build()
	return s.run(ctx, db.OpJSONSet, cmd)
}

// JSONGet reads key at paths, or the whole document when none are given.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	cmd := s.b().JsonGet().Key(key).Path(paths...).Build()
	raw, err := s.client.Do(ctx, cmd).ToString()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, db.ErrKeyNotFound
	case err != nil:
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	case raw == "", raw == "[]":
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}
