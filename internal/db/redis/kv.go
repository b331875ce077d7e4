package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/mediasense/internal/db"
)

// Get reads a plain string value.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Do(ctx, s.b().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set writes value; a positive ttl is applied with whole-second precision via EX.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	set := s.b().Set().Key(key).Value(rueidis.BinaryString(value))
	if ttl > 0 {
		return s.run(ctx, db.OpSet, set.Ex(ttl).Build())
	}
	return s.run(ctx, db.OpSet, set.Build())
}
