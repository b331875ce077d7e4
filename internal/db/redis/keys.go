package redis

import (
	"context"

	"github.com/kailas-cloud/mediasense/internal/db"
)

// scanBatch is the COUNT hint per SCAN round trip.
const scanBatch = 100

// Scan collects every key matching pattern. Keys added during the walk may be missed.
func (s *Store) Scan(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(scanBatch).Build()
		page, err := s.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, page.Elements...)
		if cursor = page.Cursor; cursor == 0 {
			return keys, nil
		}
	}
}
