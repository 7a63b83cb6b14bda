package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/model"
)

// HealthTrend returns averages over the backend's default window.
func (c *Client) HealthTrend(ctx context.Context) Result[model.HealthTrend] {
	return aggregate[model.HealthTrend](ctx, c, call{
		op:     "health_trend",
		method: http.MethodGet,
		path:   "/analytics/health/trend",
	})
}

// HealthTrendDays returns averages over the last days days. Non-positive
// values fall back to the backend default.
func (c *Client) HealthTrendDays(ctx context.Context, days int) Result[model.HealthTrend] {
	cl := call{
		op:     "health_trend_days",
		method: http.MethodGet,
		path:   "/analytics/health/trend",
	}
	if days > 0 {
		cl.query = url.Values{"days": {strconv.Itoa(days)}}
	}
	return aggregate[model.HealthTrend](ctx, c, cl)
}

// WeeklyHabits returns the current week's habit completion report.
func (c *Client) WeeklyHabits(ctx context.Context) Result[model.WeeklyReport] {
	return aggregate[model.WeeklyReport](ctx, c, call{
		op:     "weekly_habits",
		method: http.MethodGet,
		path:   "/analytics/habits/weekly",
	})
}

// Insights asks the backend's coach for a summary.
func (c *Client) Insights(ctx context.Context) Result[model.Insight] {
	return aggregate[model.Insight](ctx, c, call{
		op:     "insights",
		method: http.MethodGet,
		path:   "/analytics/ai-insights",
	})
}

// Dashboard returns the backend's dashboard summary unchanged. Any valid JSON
// value except null passes through; on failure Value is an empty object.
func (c *Client) Dashboard(ctx context.Context) Result[json.RawMessage] {
	var raw json.RawMessage
	_, f := c.do(ctx, call{
		op:          "dashboard",
		method:      http.MethodGet,
		path:        "/analytics/dashboard",
		requireBody: true,
		decode: func(b []byte) error {
			trimmed := bytes.TrimSpace(b)
			if !json.Valid(trimmed) {
				return errors.New("dashboard response is not valid JSON")
			}
			if bytes.Equal(trimmed, []byte("null")) {
				return errEmptyBody
			}
			raw = append(json.RawMessage(nil), trimmed...)
			return nil
		},
	})
	if !f.OK() {
		return Result[json.RawMessage]{Value: json.RawMessage("{}"), Failure: f}
	}
	return Result[json.RawMessage]{Value: raw}
}

// Info returns the backend's self-description.
func (c *Client) Info(ctx context.Context) Result[model.BackendInfo] {
	return aggregate[model.BackendInfo](ctx, c, call{
		op:     "info",
		method: http.MethodGet,
		path:   "/info",
	})
}
