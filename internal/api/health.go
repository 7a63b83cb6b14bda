package api

import (
	"context"
	"net/http"

	"github.com/manav03panchal/lifedash/internal/model"
)

// Health checks the backend within the health timeout. Value is true only for
// an HTTP 200 answer.
func (c *Client) Health(ctx context.Context) Result[bool] {
	_, f := c.do(ctx, call{
		op:      "health",
		method:  http.MethodGet,
		path:    "/health",
		timeout: c.cfg.HealthTimeout,
		expect:  http.StatusOK,
	})
	return Result[bool]{Value: f.OK(), Failure: f}
}

// Reachable reports whether the backend answered the health check.
func (c *Client) Reachable(ctx context.Context) bool {
	return c.Health(ctx).Value
}

// HealthMetrics lists every recorded health metric.
func (c *Client) HealthMetrics(ctx context.Context) Result[[]model.HealthMetric] {
	return list[model.HealthMetric](ctx, c, call{
		op:     "health_metrics",
		method: http.MethodGet,
		path:   "/health-metrics",
	})
}

// HealthMetricsBetween lists metrics recorded within [from, to].
func (c *Client) HealthMetricsBetween(ctx context.Context, from, to model.Date) Result[[]model.HealthMetric] {
	return list[model.HealthMetric](ctx, c, call{
		op:     "health_metrics_between",
		method: http.MethodGet,
		path:   "/health-metrics",
		query:  dateRange(from, to),
	})
}

// LogHealth records one day's health metric.
func (c *Client) LogHealth(ctx context.Context, metric model.NewHealthMetric) CommandResult[model.HealthMetric] {
	return command[model.HealthMetric](ctx, c, call{
		op:     "log_health",
		method: http.MethodPost,
		path:   "/health-metrics",
		body:   metric,
	})
}
