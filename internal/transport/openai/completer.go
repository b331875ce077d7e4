package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/domain"
	domcompl "github.com/kailas-cloud/mediasense/internal/domain/completion"
	"github.com/kailas-cloud/mediasense/internal/metrics"
)

const (
	serviceName    = "openai"
	defaultTimeout = 60 * time.Second
)

// Completer dispatches chat completions to an OpenAI-compatible API.
type Completer struct {
	client    *openai.Client
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger
}

// Config holds the completion backend settings.
type Config struct {
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
	Logger    *zap.Logger
}

// NewCompleter creates a completion dispatcher.
func NewCompleter(cfg *Config) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domcompl.MaxTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Completer{
		client:    openai.NewClientWithConfig(clientCfg),
		maxTokens: maxTokens,
		timeout:   timeout,
		logger:    logger,
	}
}

// Dispatch sends the system and user turns and returns the first choice.
func (c *Completer) Dispatch(
	ctx context.Context, prompt domcompl.Prompt, model string, temperature float64,
) (domcompl.Result, error) {
	if prompt.User == "" {
		return domcompl.Result{}, domain.Validationf("user prompt is empty")
	}
	if temperature < 0 || temperature > 1 {
		return domcompl.Result{}, domain.Validationf("temperature must be between 0 and 1, got %g", temperature)
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		MaxTokens:   c.maxTokens,
		Temperature: wireTemperature(temperature),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)
	metrics.CompletionRequestDuration.WithLabelValues(model).Observe(duration.Seconds())

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(model, "error").Inc()
		c.logger.Warn("Completion request failed",
			zap.String("model", model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domcompl.Result{}, classifyError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.CompletionRequestsTotal.WithLabelValues(model, "error").Inc()
		return domcompl.Result{}, domain.NewFatalUpstream(serviceName, 0, errors.New("empty choices in completion response"))
	}

	metrics.CompletionRequestsTotal.WithLabelValues(model, "success").Inc()
	metrics.CompletionTokensTotal.WithLabelValues(model, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.CompletionTokensTotal.WithLabelValues(model, "completion").Add(float64(resp.Usage.CompletionTokens))

	return domcompl.Result{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// wireTemperature keeps an explicit 0 on the wire: the request encoder drops zero floats.
func wireTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// classifyError maps client errors to upstream errors. 5xx, 429 and transport failures are transient.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return upstream(apiErr.HTTPStatusCode, errors.New(apiErr.Message))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return upstream(reqErr.HTTPStatusCode, err)
	}

	// No HTTP status: timeout, cancellation, network failure or a non-JSON error body.
	return domain.NewTransientUpstream(serviceName, 0, err)
}

func upstream(status int, err error) error {
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests || status == 0 {
		return domain.NewTransientUpstream(serviceName, status, err)
	}
	return domain.NewFatalUpstream(serviceName, status, err)
}
