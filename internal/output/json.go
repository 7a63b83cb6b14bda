package output

import (
	"encoding/json"

	"github.com/manav03panchal/lifedash/internal/api"
	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/telemetry"
)

// Response statuses.
const (
	StatusOK          = "ok"
	StatusUnreachable = "unreachable"
	StatusError       = "error"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// StatusOf maps a call outcome to a response status.
func StatusOf(f api.Failure) string {
	switch {
	case f.OK():
		return StatusOK
	case f.Unreachable():
		return StatusUnreachable
	default:
		return StatusError
	}
}

// failureDetail returns the failure text, or "" on success.
func failureDetail(f api.Failure) string {
	if f.OK() {
		return ""
	}
	return f.Error()
}

// StatusResponse represents the status output in JSON.
type StatusResponse struct {
	Status    string              `json:"status"`
	BaseURL   string              `json:"base_url"`
	Reachable bool                `json:"reachable"`
	LatencyMs int64               `json:"latency_ms"`
	Error     string              `json:"error,omitempty"`
	Backend   *model.BackendInfo  `json:"backend,omitempty"`
	Calls     *telemetry.Snapshot `json:"calls,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HabitsResponse represents the habit list output in JSON.
type HabitsResponse struct {
	Status string        `json:"status"`
	Error  string        `json:"error,omitempty"`
	Count  int           `json:"count"`
	Habits []model.Habit `json:"habits"`
}

// HabitLogsResponse represents habit logs in JSON.
type HabitLogsResponse struct {
	Status  string           `json:"status"`
	Error   string           `json:"error,omitempty"`
	HabitID int64            `json:"habit_id,omitempty"`
	Count   int              `json:"count"`
	Logs    []model.HabitLog `json:"logs"`
}

// HealthMetricsResponse represents health metrics in JSON.
type HealthMetricsResponse struct {
	Status  string               `json:"status"`
	Error   string               `json:"error,omitempty"`
	Count   int                  `json:"count"`
	Metrics []model.HealthMetric `json:"metrics"`
}

// TrendResponse represents the health trend in JSON.
type TrendResponse struct {
	Status   string             `json:"status"`
	Error    string             `json:"error,omitempty"`
	Averages map[string]float64 `json:"averages"`
	Trend    *model.HealthTrend `json:"trend,omitempty"`
}

// WeeklyResponse represents the weekly report in JSON.
type WeeklyResponse struct {
	Status      string              `json:"status"`
	Error       string              `json:"error,omitempty"`
	Completions map[string]int      `json:"completions"`
	Report      *model.WeeklyReport `json:"report,omitempty"`
}

// InsightResponse represents the coach insight in JSON.
type InsightResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Insight string `json:"insight"`
}

// CommandResponse represents the outcome of a create, log or delete.
type CommandResponse struct {
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// PrintStatus outputs backend status in JSON format.
func (j *JSONFormatter) PrintStatus(s BackendStatus) error {
	resp := StatusResponse{
		Status:    StatusOK,
		BaseURL:   s.BaseURL,
		Reachable: s.Reachable,
		LatencyMs: s.Latency.Milliseconds(),
		Error:     s.Failure,
		Backend:   s.Info,
		Calls:     s.Calls,
	}
	if !s.Reachable {
		resp.Status = StatusUnreachable
	}
	return j.JSON(resp)
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}

// PrintHabits outputs habits in JSON format.
func (j *JSONFormatter) PrintHabits(res api.Result[[]model.Habit]) error {
	return j.JSON(HabitsResponse{
		Status: StatusOf(res.Failure),
		Error:  failureDetail(res.Failure),
		Count:  len(res.Value),
		Habits: res.Value,
	})
}

// PrintHabitLogs outputs habit logs in JSON format.
func (j *JSONFormatter) PrintHabitLogs(habitID int64, f api.Failure, logs []model.HabitLog) error {
	if logs == nil {
		logs = []model.HabitLog{}
	}
	return j.JSON(HabitLogsResponse{
		Status:  StatusOf(f),
		Error:   failureDetail(f),
		HabitID: habitID,
		Count:   len(logs),
		Logs:    logs,
	})
}

// PrintHealthMetrics outputs health metrics in JSON format.
func (j *JSONFormatter) PrintHealthMetrics(res api.Result[[]model.HealthMetric]) error {
	return j.JSON(HealthMetricsResponse{
		Status:  StatusOf(res.Failure),
		Error:   failureDetail(res.Failure),
		Count:   len(res.Value),
		Metrics: res.Value,
	})
}

// PrintTrend outputs the health trend in JSON format.
func (j *JSONFormatter) PrintTrend(res api.Result[model.HealthTrend]) error {
	resp := TrendResponse{
		Status:   StatusOf(res.Failure),
		Error:    failureDetail(res.Failure),
		Averages: res.Value.Averages(),
	}
	if res.OK() {
		trend := res.Value
		resp.Trend = &trend
	}
	return j.JSON(resp)
}

// PrintWeekly outputs the weekly report in JSON format.
func (j *JSONFormatter) PrintWeekly(res api.Result[model.WeeklyReport]) error {
	resp := WeeklyResponse{
		Status:      StatusOf(res.Failure),
		Error:       failureDetail(res.Failure),
		Completions: res.Value.Completions(),
	}
	if res.OK() {
		report := res.Value
		resp.Report = &report
	}
	return j.JSON(resp)
}

// PrintInsight outputs the coach insight in JSON format. The fallback text is
// used when no insight arrived.
func (j *JSONFormatter) PrintInsight(res api.Result[model.Insight]) error {
	text := res.Value.Insight
	if !res.OK() || text == "" {
		text = InsightsUnavailable
	}
	return j.JSON(InsightResponse{
		Status:  StatusOf(res.Failure),
		Error:   failureDetail(res.Failure),
		Insight: text,
	})
}

// PrintCommand outputs a command outcome in JSON format. The backend's body
// is embedded unchanged.
func (j *JSONFormatter) PrintCommand(accepted bool, f api.Failure, body json.RawMessage) error {
	resp := CommandResponse{
		Status: StatusOf(f),
		Error:  failureDetail(f),
		Result: body,
	}
	if !accepted && f.OK() {
		resp.Status = StatusError
	}
	return j.JSON(resp)
}
