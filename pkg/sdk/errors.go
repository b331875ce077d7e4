package mediasense

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation        = domain.ErrValidation
	ErrNotFound          = domain.ErrNotFound
	ErrDimensionMismatch = domain.ErrDimensionMismatch
	ErrDecode            = domain.ErrDecode
	ErrUpstream          = domain.ErrUpstream
	ErrBackend           = domain.ErrBackend
	ErrInternal          = domain.ErrInternal
	// ErrUnauthorized means the API key was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

var codeSentinels = map[string]error{
	"bad_request":        domain.ErrValidation,
	"validation_error":   domain.ErrValidation,
	"not_found":          domain.ErrNotFound,
	"dimension_mismatch": domain.ErrDimensionMismatch,
	"decode_error":       domain.ErrDecode,
	"upstream_error":     domain.ErrUpstream,
	"backend_error":      domain.ErrBackend,
	"internal_error":     domain.ErrInternal,
	"unauthorized":       ErrUnauthorized,
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("mediasense: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("mediasense: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is matches the sentinel for the error code.
func (e *APIError) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// Retryable reports whether the server asked for a retry (upstream unavailable).
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusServiceUnavailable || e.StatusCode == http.StatusTooManyRequests
}
