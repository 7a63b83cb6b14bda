// Package parser turns command-line input into dates and habit IDs.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/lifedash/internal/model"
)

// DateResult holds the parsed date and any error.
type DateResult struct {
	Date  model.Date
	Error error
}

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(week|month|year)$`)

// ParseDate parses a calendar date relative to now. An empty input means today.
func ParseDate(input string) DateResult {
	return ParseDateAt(input, time.Now())
}

// ParseDateAt parses a calendar date relative to now. Supports:
//   - "", "today", "yesterday", "tomorrow"
//   - "2025-03-02" (ISO)
//   - "this week", "last month" (first day of the period)
//   - natural language such as "3 days ago" or "last friday"
func ParseDateAt(input string, now time.Time) DateResult {
	input = strings.TrimSpace(input)
	today := model.NewDate(now)

	switch strings.ToLower(input) {
	case "", "today", "now":
		return DateResult{Date: today}
	case "yesterday":
		return DateResult{Date: today.AddDays(-1)}
	case "tomorrow":
		return DateResult{Date: today.AddDays(1)}
	}

	if d, err := model.ParseDate(input); err == nil {
		return DateResult{Date: d}
	}

	if match := periodRegex.FindStringSubmatch(input); match != nil {
		return DateResult{Date: periodStart(match[1], match[2], now)}
	}

	// Use go-dateparser for natural language parsing
	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Past,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return DateResult{Error: NewDateError("date", input, "could not parse date")}
	}

	return DateResult{Date: model.NewDate(result.Time)}
}

// periodStart returns the first day of the named period.
func periodStart(modifier, period string, now time.Time) model.Date {
	previous := strings.EqualFold(modifier, "last") || strings.EqualFold(modifier, "previous")

	var t time.Time
	switch strings.ToLower(period) {
	case "week":
		// Weeks start on Monday
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		t = time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, 0, -7)
		}
	case "month":
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -1, 0)
		}
	default:
		t = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(-1, 0, 0)
		}
	}

	return model.NewDate(t)
}

// ParseRange parses optional --from and --to values. Empty inputs stay zero so
// the backend applies its own bounds. A range whose start is after its end is
// rejected.
func ParseRange(from, to string, now time.Time) (model.Date, model.Date, error) {
	var start, end model.Date

	if strings.TrimSpace(from) != "" {
		r := ParseDateAt(from, now)
		if r.Error != nil {
			return model.Date{}, model.Date{}, withField(r.Error, "from")
		}
		start = r.Date
	}
	if strings.TrimSpace(to) != "" {
		r := ParseDateAt(to, now)
		if r.Error != nil {
			return model.Date{}, model.Date{}, withField(r.Error, "to")
		}
		end = r.Date
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return model.Date{}, model.Date{}, NewDateError("date range", from+".."+to, "start is after end")
	}
	return start, end, nil
}

func withField(err error, field string) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Field = field + " date"
		return pe
	}
	return err
}
