package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed or out-of-range input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDimensionMismatch signals vectors of different length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrDecode signals unreadable image bytes.
	ErrDecode = errors.New("decode error")
	// ErrUpstream signals a failure of a remote dependency (store, language model).
	ErrUpstream = errors.New("upstream error")
	// ErrBackend signals an embedding backend failure.
	ErrBackend = errors.New("embedding backend error")
	// ErrInternal signals an unexpected failure.
	ErrInternal = errors.New("internal error")
)

// UpstreamError wraps ErrUpstream with the failing service and whether a retry may help.
type UpstreamError struct {
	Service    string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *UpstreamError) Error() string {
	kind := "fatal"
	if e.Transient {
		kind = "transient"
	}
	msg := fmt.Sprintf("%s: %s %s", ErrUpstream.Error(), e.Service, kind)
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrUpstream so callers can match with errors.Is.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewTransientUpstream builds a retryable upstream failure.
func NewTransientUpstream(service string, status int, err error) error {
	return &UpstreamError{Service: service, StatusCode: status, Transient: true, Err: err}
}

// NewFatalUpstream builds a non-retryable upstream failure.
func NewFatalUpstream(service string, status int, err error) error {
	return &UpstreamError{Service: service, StatusCode: status, Err: err}
}

// IsTransient reports whether err carries a retryable upstream failure.
func IsTransient(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Transient
	}
	return false
}

// Validationf formats a message and wraps it with ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
