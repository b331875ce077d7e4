package mediasense

import (
	"net/http"
	"strconv"
)

// Usage is the backend work a single request caused, as reported in response headers.
type Usage struct {
	EmbeddingCalls   int
	PromptTokens     int
	CompletionTokens int
}

func usageFromHeader(h http.Header) Usage {
	return Usage{
		EmbeddingCalls:   headerInt(h, "X-Embedding-Calls"),
		PromptTokens:     headerInt(h, "X-Prompt-Tokens"),
		CompletionTokens: headerInt(h, "X-Completion-Tokens"),
	}
}

func headerInt(h http.Header, key string) int {
	n, _ := strconv.Atoi(h.Get(key))
	return n
}
