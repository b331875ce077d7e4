package domain

import (
	"context"
	"sync"
)

type requestUsageKey struct{}

// RequestUsage collects backend usage for a single HTTP request.
// The handler puts a pointer into the context before calling the service;
// services record after each backend call; the handler reads it for response headers.
type RequestUsage struct {
	mu               sync.Mutex
	embeddingCalls   int
	promptTokens     int
	completionTokens int
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *RequestUsage) {
	u := &RequestUsage{}
	return context.WithValue(ctx, requestUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *RequestUsage {
	u, _ := ctx.Value(requestUsageKey{}).(*RequestUsage)
	return u
}

// AddEmbeddingCall records one embedding backend call. Label embedding runs in parallel, hence the lock.
func (u *RequestUsage) AddEmbeddingCall() {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.embeddingCalls++
	u.mu.Unlock()
}

// AddCompletionTokens records language model token usage.
func (u *RequestUsage) AddCompletionTokens(prompt, completion int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.promptTokens += prompt
	u.completionTokens += completion
	u.mu.Unlock()
}

// EmbeddingCalls returns the number of recorded embedding calls.
func (u *RequestUsage) EmbeddingCalls() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.embeddingCalls
}

// Tokens returns prompt and completion token totals.
func (u *RequestUsage) Tokens() (prompt, completion int) {
	if u == nil {
		return 0, 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.promptTokens, u.completionTokens
}
