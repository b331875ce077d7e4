// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric the service exports.
const Namespace = "mediasense"

var registerOnce sync.Once

// Register adds every collector to the default registry. Later calls do nothing.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			EmbeddingErrorsTotal,
			EmbeddingQueueWait,
			EmbeddingCacheTotal,
			CompletionRequestsTotal,
			CompletionRequestDuration,
			CompletionTokensTotal,
		)
	})
}
