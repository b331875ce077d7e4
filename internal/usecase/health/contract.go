package health

import "context"

// DBPinger checks store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Checker checks a remote backend (embedding sidecar, language model API).
type Checker interface {
	HealthCheck(ctx context.Context) error
}
