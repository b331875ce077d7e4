package health

import "context"

// Status is the aggregated health status.
type Status string

const (
	// Healthy means every component answered.
	Healthy Status = "ok"
	// Degraded means at least one component failed.
	Degraded Status = "degraded"
)

// CheckResult is a single component outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Component names in Report.Checks.
const (
	ComponentDatabase   = "database"
	ComponentEmbedding  = "embedding"
	ComponentCompletion = "completion"
)

// Report aggregates component results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db         DBPinger
	embedding  Checker
	completion Checker
}

// New creates a Service. embedding and completion may be nil and are then skipped.
func New(db DBPinger, embedding, completion Checker) *Service {
	return &Service{db: db, embedding: embedding, completion: completion}
}

// Check runs every configured check.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		ComponentDatabase: result(s.db.Ping(ctx)),
	}
	if s.embedding != nil {
		checks[ComponentEmbedding] = result(s.embedding.HealthCheck(ctx))
	}
	if s.completion != nil {
		checks[ComponentCompletion] = result(s.completion.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
