package mediasense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Call outcomes used as the "outcome" label.
const (
	outcomeOK          = "ok"
	outcomeClientError = "client_error"
	outcomeServerError = "server_error"
	outcomeCanceled    = "canceled"
	outcomeTimeout     = "timeout"
	outcomeTransport   = "transport"
)

type callMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func newCallMetrics(reg prometheus.Registerer) (*callMetrics, error) {
	calls, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediasense",
		Subsystem: "sdk",
		Name:      "calls_total",
		Help:      "Client calls by operation and outcome.",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}
	latency, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mediasense",
		Subsystem: "sdk",
		Name:      "call_duration_seconds",
		Help:      "Client call latency in seconds.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}
	return &callMetrics{calls: calls, latency: latency}, nil
}

// register adds c to reg. A collector already registered under the same
// descriptor is returned instead, so several clients can share one registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var dup prometheus.AlreadyRegisteredError
	if !errors.As(err, &dup) {
		return c, fmt.Errorf("mediasense: register metric: %w", err)
	}
	existing, ok := dup.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("mediasense: metric registered as %T", dup.ExistingCollector)
	}
	return existing, nil
}

type observer struct {
	logger  *slog.Logger
	metrics *callMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newCallMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

// outcome buckets err for the metrics label.
func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 500:
		return outcomeServerError
	case errors.As(err, &apiErr):
		return outcomeClientError
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	default:
		return outcomeTransport
	}
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	result := outcome(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, result).Inc()
		o.metrics.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	if o.logger == nil {
		return
	}
	if err == nil {
		o.logger.Debug("mediasense call", "op", op, "elapsed", elapsed)
		return
	}

	attrs := []any{"op", op, "outcome", result, "elapsed", elapsed, "error", err}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs, "http_status", apiErr.StatusCode, "request_id", apiErr.RequestID)
	}
	o.logger.Warn("mediasense call failed", attrs...)
}
