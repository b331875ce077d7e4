package instruction

import (
	"context"

	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
)

// Repository defines the storage contract for instruction templates.
type Repository interface {
	FindByID(ctx context.Context, id string) (dominst.Template, error)
	Create(ctx context.Context, t *dominst.Template) error
	ListIDs(ctx context.Context) ([]string, error)
	List(ctx context.Context, offset, limit int, technology string) ([]dominst.Template, int, error)
	Search(ctx context.Context, query string, limit int) ([]dominst.Match, error)
}
