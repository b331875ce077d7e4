package mediasense

import (
	"context"
	"net/http"
)

// Health checks the health of all server components.
// A degraded server answers 503 with a body; that is reported as status, not as an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	req := request{
		op:     "health",
		method: http.MethodGet,
		path:   "/health",
		alsoOK: http.StatusServiceUnavailable,
	}
	if _, err := c.do(ctx, req, &out); err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}
