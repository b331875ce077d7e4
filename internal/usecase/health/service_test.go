package health

import (
	"context"
	"errors"
	"testing"
)

type mockDBPinger struct{ err error }

func (m *mockDBPinger) Ping(context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(context.Context) error { return m.err }

func TestCheck(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name       string
		db         error
		embedding  Checker
		completion Checker
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "all healthy",
			embedding:  &mockChecker{},
			completion: &mockChecker{},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{
				ComponentDatabase:   CheckOK,
				ComponentEmbedding:  CheckOK,
				ComponentCompletion: CheckOK,
			},
		},
		{
			name:       "database down",
			db:         down,
			embedding:  &mockChecker{},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{
				ComponentDatabase:  CheckError,
				ComponentEmbedding: CheckOK,
			},
		},
		{
			name:       "embedding down",
			embedding:  &mockChecker{err: down},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{
				ComponentDatabase:  CheckOK,
				ComponentEmbedding: CheckError,
			},
		},
		{
			name:       "completion down",
			completion: &mockChecker{err: down},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{
				ComponentDatabase:   CheckOK,
				ComponentCompletion: CheckError,
			},
		},
		{
			name:       "database only",
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{ComponentDatabase: CheckOK},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(&mockDBPinger{err: tc.db}, tc.embedding, tc.completion).Check(context.Background())
			if r.Status != tc.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tc.wantStatus)
			}
			if len(r.Checks) != len(tc.wantChecks) {
				t.Fatalf("checks = %v, want %v", r.Checks, tc.wantChecks)
			}
			for k, v := range tc.wantChecks {
				if r.Checks[k] != v {
					t.Errorf("%s = %q, want %q", k, r.Checks[k], v)
				}
			}
		})
	}
}
