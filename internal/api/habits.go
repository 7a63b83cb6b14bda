package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/manav03panchal/lifedash/internal/model"
)

// Habits lists every habit.
func (c *Client) Habits(ctx context.Context) Result[[]model.Habit] {
	return list[model.Habit](ctx, c, call{op: "habits", method: http.MethodGet, path: "/habits"})
}

// HabitsInCategory lists habits in one category.
func (c *Client) HabitsInCategory(ctx context.Context, category model.Category) Result[[]model.Habit] {
	return list[model.Habit](ctx, c, call{
		op:     "habits_in_category",
		method: http.MethodGet,
		path:   "/habits",
		query:  url.Values{"category": {category.String()}},
	})
}

// CreateHabit creates an active habit. The backend answers 201 with the stored habit.
func (c *Client) CreateHabit(ctx context.Context, name string, category model.Category, targetPerWeek int) CommandResult[model.Habit] {
	return command[model.Habit](ctx, c, call{
		op:     "create_habit",
		method: http.MethodPost,
		path:   "/habits",
		body:   model.NewHabitRequest(name, category, targetPerWeek),
	})
}

// DeleteHabit removes a habit. The backend answers 204.
func (c *Client) DeleteHabit(ctx context.Context, id int64) CommandResult[struct{}] {
	return command[struct{}](ctx, c, call{
		op:     "delete_habit",
		method: http.MethodDelete,
		path:   habitPath(id),
	})
}

// HabitLogs lists every log of a habit.
func (c *Client) HabitLogs(ctx context.Context, id int64) Result[[]model.HabitLog] {
	return list[model.HabitLog](ctx, c, call{
		op:     "habit_logs",
		method: http.MethodGet,
		path:   habitPath(id) + "/logs",
	})
}

// HabitLogsBetween lists logs of a habit dated within [from, to].
func (c *Client) HabitLogsBetween(ctx context.Context, id int64, from, to model.Date) Result[[]model.HabitLog] {
	return list[model.HabitLog](ctx, c, call{
		op:     "habit_logs_between",
		method: http.MethodGet,
		path:   habitPath(id) + "/logs",
		query:  dateRange(from, to),
	})
}

// LogHabit records one completion of a habit on date.
func (c *Client) LogHabit(ctx context.Context, id int64, note string, date model.Date) CommandResult[model.HabitLog] {
	return command[model.HabitLog](ctx, c, call{
		op:     "log_habit",
		method: http.MethodPost,
		path:   habitPath(id) + "/logs",
		body:   model.CheckIn(note, date),
	})
}

// QuickLogHabit records a completion for today without a note.
func (c *Client) QuickLogHabit(ctx context.Context, id int64) CommandResult[model.HabitLog] {
	return command[model.HabitLog](ctx, c, call{
		op:     "quick_log_habit",
		method: http.MethodPost,
		path:   habitPath(id) + "/logs/quick",
	})
}

func habitPath(id int64) string {
	return "/habits/" + strconv.FormatInt(id, 10)
}

// dateRange builds from/to query parameters, skipping zero dates.
func dateRange(from, to model.Date) url.Values {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	if !to.IsZero() {
		q.Set("to", to.String())
	}
	return q
}
