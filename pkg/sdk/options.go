package mediasense

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// A completion round trip can take most of a minute.
const defaultTimeout = 90 * time.Second

// Option customizes a Client built by New.
type Option func(*settings)

type settings struct {
	apiKey   string
	client   *http.Client
	timeout  time.Duration
	logger   *slog.Logger
	registry prometheus.Registerer
}

// WithAPIKey authenticates every call with "Authorization: Bearer key".
func WithAPIKey(key string) Option {
	return func(s *settings) { s.apiKey = key }
}

// WithHTTPClient uses hc for transport. The client's own Timeout then applies instead of WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) { s.client = hc }
}

// WithTimeout bounds each call. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger logs failed calls at Warn and successful ones at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithPrometheus records per-operation call counts and latency on reg.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(s *settings) { s.registry = reg }
}
