package redis

import (
	"context"

	"github.com/kailas-cloud/mediasense/internal/db"
)

// CreateIndex issues FT.CREATE; an index of the same name yields db.ErrIndexExists.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	cmd := s.b().Arbitrary("FT.CREATE").Args(def.Args()...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if serverSays(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}
