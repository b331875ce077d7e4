package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUpstreamError_MatchesSentinel(t *testing.T) {
	err := NewTransientUpstream("openai", 503, errors.New("overloaded"))
	if !errors.Is(err, ErrUpstream) {
		t.Fatal("expected errors.Is(err, ErrUpstream)")
	}
	wrapped := fmt.Errorf("dispatch: %w", err)
	if !errors.Is(wrapped, ErrUpstream) {
		t.Fatal("expected wrapped error to match ErrUpstream")
	}
	if !IsTransient(wrapped) {
		t.Error("expected transient")
	}
}

func TestUpstreamError_Fatal(t *testing.T) {
	err := NewFatalUpstream("openai", 400, errors.New("bad model"))
	if IsTransient(err) {
		t.Error("expected fatal")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("expected status in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "bad model") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestUpstreamError_UnwrapsCause(t *testing.T) {
	err := NewTransientUpstream("store", 0, context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected cause to be reachable")
	}
}

func TestIsTransient_PlainError(t *testing.T) {
	if IsTransient(errors.New("boom")) {
		t.Error("plain error must not be transient")
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("temperature %.1f out of range", 1.5)
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected ErrValidation")
	}
	if !strings.Contains(err.Error(), "1.5") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
