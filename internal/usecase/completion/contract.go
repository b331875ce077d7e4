package completion

import (
	"context"

	domcompl "github.com/kailas-cloud/mediasense/internal/domain/completion"
	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
)

// InstructionStore reads stored instruction templates.
type InstructionStore interface {
	FindByID(ctx context.Context, id string) (dominst.Template, error)
}

// Dispatcher sends assembled chat turns to a language model backend.
type Dispatcher interface {
	Dispatch(ctx context.Context, prompt domcompl.Prompt, model string, temperature float64) (domcompl.Result, error)
}
