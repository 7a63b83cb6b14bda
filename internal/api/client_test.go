package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/model"
)

// =============================================================================
// Helpers
// =============================================================================

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/api", RequestTimeout: 2 * time.Second}, opts...)
	require.NoError(t, err)
	return c
}

// downClient points at a server that has already been shut down.
func downClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url + "/api", RequestTimeout: time.Second}, opts...)
	require.NoError(t, err)
	return c
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

type recordedCall struct {
	op      string
	status  int
	failure string
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *fakeRecorder) ObserveCall(op string, status int, failure string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{op, status, failure})
}

// =============================================================================
// Construction
// =============================================================================

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := New(Config{BaseURL: "http://localhost:8080/api/"})
		require.NoError(t, err)

		cfg := c.Config()
		assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
		assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
		assert.Equal(t, DefaultHealthTimeout, cfg.HealthTimeout)
		assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	})

	t.Run("health_timeout_clamped", func(t *testing.T) {
		c, err := New(Config{BaseURL: "http://localhost:8080/api", HealthTimeout: time.Minute})
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, c.Config().HealthTimeout)
	})

	t.Run("shorter_health_timeout_kept", func(t *testing.T) {
		c, err := New(Config{BaseURL: "http://localhost:8080/api", HealthTimeout: 500 * time.Millisecond})
		require.NoError(t, err)
		assert.Equal(t, 500*time.Millisecond, c.Config().HealthTimeout)
	})

	for _, bad := range []string{"", "   ", "localhost:8080", "ftp://host/api", "http://"} {
		t.Run("rejects_"+bad, func(t *testing.T) {
			_, err := New(Config{BaseURL: bad})
			require.Error(t, err)
			assert.True(t, errors.IsUserError(err))
			assert.ErrorIs(t, err, errors.ErrInvalidURL)
		})
	}
}

// =============================================================================
// Health
// =============================================================================

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		res := c.Health(context.Background())
		assert.True(t, res.Value)
		assert.True(t, res.OK())
		assert.True(t, c.Reachable(context.Background()))
	})

	t.Run("non_200_is_false", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusNoContent, ""))
		res := c.Health(context.Background())
		assert.False(t, res.Value)
		assert.Equal(t, FailureHTTP, res.Kind)
		assert.Equal(t, http.StatusNoContent, res.StatusCode)
	})

	t.Run("server_error", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusServiceUnavailable, `{"status":"DOWN"}`))
		assert.False(t, c.Reachable(context.Background()))
	})

	t.Run("slow_backend_times_out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		c, err := New(Config{BaseURL: srv.URL + "/api", HealthTimeout: 50 * time.Millisecond})
		require.NoError(t, err)

		start := time.Now()
		res := c.Health(context.Background())
		assert.False(t, res.Value)
		assert.True(t, res.Unreachable())
		assert.ErrorIs(t, res.Err, errors.ErrTimeout)
		assert.Less(t, time.Since(start), 900*time.Millisecond)
	})

	t.Run("unreachable", func(t *testing.T) {
		res := downClient(t).Health(context.Background())
		assert.False(t, res.Value)
		assert.Equal(t, FailureTransport, res.Kind)
		assert.ErrorIs(t, res.Err, errors.ErrBackendUnavailable)
	})
}

// =============================================================================
// Queries
// =============================================================================

func TestHabits(t *testing.T) {
	t.Run("decodes_list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/habits", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
			_, _ = io.WriteString(w, `[{"id":1,"name":"Run","category":"HEALTH","targetPerWeek":5,"active":true},
				{"id":2,"name":"Read","category":"LEARNING","targetPerWeek":3,"active":false}]`)
		})

		res := c.Habits(context.Background())
		require.True(t, res.OK())
		require.Len(t, res.Value, 2)
		assert.Equal(t, "Run", res.Value[0].Name)
		assert.Equal(t, model.CategoryLearning, res.Value[1].Category)
		assert.False(t, res.Value[1].Active)
	})

	t.Run("empty_but_reachable", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusOK, `[]`))
		res := c.Habits(context.Background())
		assert.True(t, res.OK())
		assert.NotNil(t, res.Value)
		assert.Empty(t, res.Value)
	})

	t.Run("unreachable_returns_empty_slice", func(t *testing.T) {
		res := downClient(t).Habits(context.Background())
		assert.False(t, res.OK())
		assert.True(t, res.Unreachable())
		assert.NotNil(t, res.Value)
		assert.Empty(t, res.Value)
	})

	t.Run("http_error_returns_empty_slice", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusInternalServerError, `{"error":"boom"}`))
		res := c.Habits(context.Background())
		assert.Equal(t, FailureHTTP, res.Kind)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.ErrorIs(t, res.Err, errors.ErrRequestFailed)
		assert.NotNil(t, res.Value)
		assert.Empty(t, res.Value)
	})
}

func TestQueriesFailClosedOnBadBodies(t *testing.T) {
	bodies := map[string]string{
		"object_not_array": `{"id":1}`,
		"null":             `null`,
		"empty":            ``,
		"truncated":        `[{"id":1,`,
		"trailing_data":    `[] []`,
		"wrong_field_type": `[{"id":"one"}]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, respond(http.StatusOK, body))
			res := c.Habits(context.Background())
			assert.Equal(t, FailureDecode, res.Kind)
			assert.NotNil(t, res.Value)
			assert.Empty(t, res.Value)
		})
	}
}

func TestOversizedBodyIsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `["`+strings.Repeat("x", maxBodyBytes)+`"]`)
	})

	res := c.Dashboard(context.Background())
	assert.Equal(t, FailureDecode, res.Kind)
	assert.JSONEq(t, `{}`, string(res.Value))
}

func TestHabitsInCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/habits", r.URL.Path)
		assert.Equal(t, "MINDFULNESS", r.URL.Query().Get("category"))
		_, _ = io.WriteString(w, `[{"id":3,"name":"Meditate","category":"MINDFULNESS","targetPerWeek":7,"active":true}]`)
	})

	res := c.HabitsInCategory(context.Background(), model.CategoryMindfulness)
	require.True(t, res.OK())
	require.Len(t, res.Value, 1)
	assert.Equal(t, "Meditate", res.Value[0].Name)
}

func TestHabitLogs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/habits/7/logs", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"habitId":7,"value":1,"note":"easy","logDate":"2025-03-02"}]`)
	})

	res := c.HabitLogs(context.Background(), 7)
	require.True(t, res.OK())
	require.Len(t, res.Value, 1)
	assert.Equal(t, "2025-03-02", res.Value[0].LogDate.String())
	assert.Equal(t, "easy", res.Value[0].Note)
}

func TestHabitLogsBetween(t *testing.T) {
	from, err := model.ParseDate("2025-03-01")
	require.NoError(t, err)
	to, err := model.ParseDate("2025-03-07")
	require.NoError(t, err)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/habits/7/logs", r.URL.Path)
		assert.Equal(t, "2025-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2025-03-07", r.URL.Query().Get("to"))
		_, _ = io.WriteString(w, `[]`)
	})

	res := c.HabitLogsBetween(context.Background(), 7, from, to)
	assert.True(t, res.OK())
	assert.Empty(t, res.Value)
}

func TestHealthMetrics(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/health-metrics", r.URL.Path)
			_, _ = io.WriteString(w, `[{"id":1,"sleepHours":7.5,"moodScore":8,"stressLevel":3,"energyLevel":7,"recordedAt":"2025-03-02"}]`)
		})

		res := c.HealthMetrics(context.Background())
		require.True(t, res.OK())
		require.Len(t, res.Value, 1)
		assert.InDelta(t, 7.5, res.Value[0].SleepHours, 0.001)
		assert.Equal(t, 8, res.Value[0].MoodScore)
	})

	t.Run("between_skips_zero_dates", func(t *testing.T) {
		from, err := model.ParseDate("2025-03-01")
		require.NoError(t, err)

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2025-03-01", r.URL.Query().Get("from"))
			assert.False(t, r.URL.Query().Has("to"))
			_, _ = io.WriteString(w, `[]`)
		})

		res := c.HealthMetricsBetween(context.Background(), from, model.Date{})
		assert.True(t, res.OK())
	})

	t.Run("unreachable", func(t *testing.T) {
		res := downClient(t).HealthMetrics(context.Background())
		assert.NotNil(t, res.Value)
		assert.Empty(t, res.Value)
	})
}

// =============================================================================
// Commands
// =============================================================================

func TestCreateHabit(t *testing.T) {
	const created = `{"id":1,"name":"Run","category":"HEALTH","targetPerWeek":5,"active":true,"createdAt":"2025-03-02T08:00:00"}`

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/habits", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Run","category":"HEALTH","targetPerWeek":5,"active":true}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, created)
	})

	res := c.CreateHabit(context.Background(), "Run", model.CategoryHealth, 5)
	require.True(t, res.OK())
	assert.Equal(t, created, string(res.Body))
	require.NotNil(t, res.Value)
	assert.Equal(t, int64(1), res.Value.ID)
	assert.Equal(t, "Run", res.Value.Name)
	assert.Equal(t, model.CategoryHealth, res.Value.Category)
	assert.Equal(t, 5, res.Value.TargetPerWeek)
}

func TestCreateHabitFailure(t *testing.T) {
	t.Run("bad_request", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusBadRequest, `{"error":"name is required"}`))
		res := c.CreateHabit(context.Background(), "", model.CategoryHealth, 5)
		assert.False(t, res.OK())
		assert.False(t, res.Accepted)
		assert.Nil(t, res.Value)
		assert.Nil(t, res.Body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("unreachable", func(t *testing.T) {
		res := downClient(t).CreateHabit(context.Background(), "Run", model.CategoryHealth, 5)
		assert.False(t, res.OK())
		assert.Nil(t, res.Value)
		assert.True(t, res.Unreachable())
	})

	t.Run("undecodable_body", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusCreated, `<html>created</html>`))
		res := c.CreateHabit(context.Background(), "Run", model.CategoryHealth, 5)
		assert.False(t, res.OK())
		assert.Equal(t, FailureDecode, res.Kind)
		assert.Nil(t, res.Body)
	})
}

func TestDeleteHabit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/habits/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	res := c.DeleteHabit(context.Background(), 42)
	assert.True(t, res.OK())
	assert.True(t, res.Accepted)
	assert.Nil(t, res.Value)
	assert.Nil(t, res.Body)
}

func TestDeleteHabitNotFound(t *testing.T) {
	c := newTestClient(t, respond(http.StatusNotFound, ""))
	res := c.DeleteHabit(context.Background(), 42)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestLogHabit(t *testing.T) {
	today := model.Today()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/habits/1/logs", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":1,"note":"","logDate":"`+today.String()+`"}`, string(body))

		_, _ = io.WriteString(w, `{"id":10,"habitId":1,"value":1,"logDate":"`+today.String()+`"}`)
	})

	res := c.LogHabit(context.Background(), 1, "", today)
	require.True(t, res.OK())
	require.NotNil(t, res.Value)
	assert.Equal(t, int64(10), res.Value.ID)
	assert.Equal(t, today.String(), res.Value.LogDate.String())
}

func TestQuickLogHabit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/habits/3/logs/quick", r.URL.Path)
		assert.Empty(t, r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Empty(t, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":11,"habitId":3,"value":1,"logDate":"2025-03-02"}`)
	})

	res := c.QuickLogHabit(context.Background(), 3)
	require.True(t, res.OK())
	assert.Equal(t, int64(3), res.Value.HabitID)
}

func TestLogHealth(t *testing.T) {
	date, err := model.ParseDate("2025-03-02")
	require.NoError(t, err)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health-metrics", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"sleepHours":7.5,"moodScore":8,"stressLevel":3,"energyLevel":6,"note":"","recordedAt":"2025-03-02"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":5,"sleepHours":7.5,"moodScore":8,"stressLevel":3,"energyLevel":6,"recordedAt":"2025-03-02"}`)
	})

	res := c.LogHealth(context.Background(), model.NewHealthMetric{
		SleepHours:  7.5,
		MoodScore:   8,
		StressLevel: 3,
		EnergyLevel: 6,
		RecordedAt:  date,
	})
	require.True(t, res.OK())
	assert.Equal(t, int64(5), res.Value.ID)
}

// =============================================================================
// Aggregates
// =============================================================================

func TestHealthTrend(t *testing.T) {
	t.Run("short_keys", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/analytics/health/trend", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			_, _ = io.WriteString(w, `{"totalRecords":3,"avgSleep":7.2,"avgMood":6.5,"avgStress":4,"avgEnergy":7}`)
		})

		res := c.HealthTrend(context.Background())
		require.True(t, res.OK())
		assert.InDelta(t, 7.2, res.Value.AvgSleep, 0.001)
		assert.Equal(t, 3, res.Value.TotalRecords)
	})

	t.Run("long_keys_with_days", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "14", r.URL.Query().Get("days"))
			_, _ = io.WriteString(w, `{"totalRecords":2,"avgSleepHours":6.5,"avgMoodScore":7,"avgStressLevel":5,"avgEnergyLevel":6}`)
		})

		res := c.HealthTrendDays(context.Background(), 14)
		require.True(t, res.OK())
		assert.InDelta(t, 6.5, res.Value.AvgSleep, 0.001)
		assert.InDelta(t, 7, res.Value.AvgMood, 0.001)
	})

	t.Run("non_positive_days_omitted", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("days"))
			_, _ = io.WriteString(w, `{}`)
		})
		assert.True(t, c.HealthTrendDays(context.Background(), 0).OK())
	})

	t.Run("http_error_is_empty", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusBadGateway, ""))
		res := c.HealthTrend(context.Background())
		assert.False(t, res.OK())
		assert.True(t, res.Value.IsEmpty())
		assert.NotNil(t, res.Value.Averages())
	})
}

func TestWeeklyHabits(t *testing.T) {
	t.Run("report", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/analytics/habits/weekly", r.URL.Path)
			_, _ = io.WriteString(w, `{"weekStart":"2025-03-03","weekEnd":"2025-03-09","totalHabits":2,
				"overallCompletionRate":62.5,"habits":[
				{"habitId":1,"habitName":"Run","category":"HEALTH","targetPerWeek":5,"completedThisWeek":3,"completionRate":60,"currentStreak":2},
				{"habitId":2,"habitName":"Read","category":"LEARNING","targetPerWeek":3,"completedThisWeek":2,"completionRate":66.7,"currentStreak":1}]}`)
		})

		res := c.WeeklyHabits(context.Background())
		require.True(t, res.OK())
		assert.Equal(t, map[string]int{"Run": 3, "Read": 2}, res.Value.Completions())
		assert.Equal(t, "2025-03-03", res.Value.WeekStart.String())
	})

	t.Run("backend_down_is_empty_mapping", func(t *testing.T) {
		res := downClient(t).WeeklyHabits(context.Background())
		assert.True(t, res.Unreachable())
		completions := res.Value.Completions()
		assert.NotNil(t, completions)
		assert.Empty(t, completions)
	})

	t.Run("non_2xx_is_empty_mapping", func(t *testing.T) {
		c := newTestClient(t, respond(http.StatusInternalServerError, `{"error":"db"}`))
		res := c.WeeklyHabits(context.Background())
		assert.Equal(t, FailureHTTP, res.Kind)
		assert.Empty(t, res.Value.Completions())
		assert.Empty(t, res.Value.Habits)
	})
}

func TestInsights(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/analytics/ai-insights", r.URL.Path)
			_, _ = io.WriteString(w, `{"insight":"Sleep improves on days you run."}`)
		})
		res := c.Insights(context.Background())
		require.True(t, res.OK())
		assert.Equal(t, "Sleep improves on days you run.", res.Value.Insight)
	})

	t.Run("failure", func(t *testing.T) {
		res := downClient(t).Insights(context.Background())
		assert.False(t, res.OK())
		assert.Empty(t, res.Value.Insight)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("passthrough", func(t *testing.T) {
		const body = `{"habits":{"total":2},"health":{"avgSleep":7.1},"extra":[1,2,3]}`
		c := newTestClient(t, respond(http.StatusOK, body))

		res := c.Dashboard(context.Background())
		require.True(t, res.OK())
		assert.JSONEq(t, body, string(res.Value))
	})

	t.Run("any_json_value_passes_through", func(t *testing.T) {
		for _, body := range []string{`[{"a":1}]`, `"ready"`, `42`} {
			c := newTestClient(t, respond(http.StatusOK, body))
			res := c.Dashboard(context.Background())
			require.True(t, res.OK(), "body %s", body)
			assert.JSONEq(t, body, string(res.Value))
		}
	})

	t.Run("invalid_json_is_empty_object", func(t *testing.T) {
		for _, body := range []string{`{"habits":`, `null`} {
			c := newTestClient(t, respond(http.StatusOK, body))
			res := c.Dashboard(context.Background())
			assert.Equal(t, FailureDecode, res.Kind, "body %s", body)
			assert.JSONEq(t, `{}`, string(res.Value))
		}
	})

	t.Run("failure_is_empty_object", func(t *testing.T) {
		res := downClient(t).Dashboard(context.Background())
		assert.JSONEq(t, `{}`, string(res.Value))
	})
}

func TestInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/info", r.URL.Path)
		_, _ = io.WriteString(w, `{"application":"habit-tracker","status":"running","timestamp":"2025-03-02T10:00:00","owner":"dali"}`)
	})

	res := c.Info(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, "habit-tracker", res.Value.Application)
	assert.Equal(t, "running", res.Value.Status)
}

// =============================================================================
// Observability
// =============================================================================

func TestRecorderSeesEveryCall(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/habits" {
			_, _ = io.WriteString(w, `[]`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}, WithRecorder(rec))

	c.Habits(context.Background())
	c.WeeklyHabits(context.Background())

	require.Len(t, rec.calls, 2)
	assert.Equal(t, recordedCall{"habits", http.StatusOK, "none"}, rec.calls[0])
	assert.Equal(t, recordedCall{"weekly_habits", http.StatusInternalServerError, "http"}, rec.calls[1])
}

func TestFailuresAreLoggedAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	c := newTestClient(t, respond(http.StatusInternalServerError, `{"secret":"do not log"}`), WithLogger(logger))
	c.Habits(context.Background())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "habits", entry["op"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/habits", entry["path"])
	assert.Equal(t, float64(500), entry["status"])
	assert.Equal(t, "http", entry["failure"])
	assert.NotEmpty(t, entry["request_id"])
	assert.Contains(t, entry, "duration_ms")
	assert.NotContains(t, buf.String(), "do not log")
}

func TestSuccessIsNotLoggedAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	c := newTestClient(t, respond(http.StatusOK, `[]`), WithLogger(logger))
	c.Habits(context.Background())
	assert.Empty(t, buf.String())
}

func TestCancelledContextIsTransportFailure(t *testing.T) {
	c := newTestClient(t, respond(http.StatusOK, `[]`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Habits(ctx)
	assert.True(t, res.Unreachable())
	assert.NotNil(t, res.Value)
}

func TestFailureError(t *testing.T) {
	assert.Empty(t, Failure{}.Error())
	assert.Equal(t, "backend returned HTTP 503", Failure{Kind: FailureHTTP, StatusCode: 503}.Error())
	assert.Equal(t, "decode failure", Failure{Kind: FailureDecode}.Error())
	assert.Contains(t, Failure{Kind: FailureTransport, Err: errors.ErrBackendUnavailable}.Error(), "transport failure")
	assert.Equal(t, "unknown", FailureKind(99).String())
}
