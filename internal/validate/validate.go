// Package validate checks command-line input before it is sent to the backend.
package validate

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/model"
)

const (
	// MaxURLLength is the maximum length for a backend URL.
	MaxURLLength = 2048
	// MaxHabitNameLength is the maximum length for a habit name.
	MaxHabitNameLength = 100
	// MaxNoteLength is the maximum length for a note.
	MaxNoteLength = 500

	// MinTarget and MaxTarget bound a habit's completions per week.
	MinTarget = 1
	MaxTarget = 7

	// MinScore and MaxScore bound mood, stress and energy scores.
	MinScore = 1
	MaxScore = 10

	// MaxSleepHours bounds a night's sleep.
	MaxSleepHours = 24
)

// HabitName validates a habit name.
func HabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewUserError("Habit name cannot be empty", "Provide a name, e.g. 'Morning run'")
	}
	if utf8.RuneCountInString(name) > MaxHabitNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Habit name too long",
			"Habit names must be "+strconv.Itoa(MaxHabitNameLength)+" characters or fewer")
	}
	return nil
}

// Note validates a habit log or health note.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewUserError(
			"Note too long",
			"Notes must be "+strconv.Itoa(MaxNoteLength)+" characters or fewer")
	}
	return nil
}

// Category parses and validates a habit category.
func Category(s string) (model.Category, error) {
	c, err := model.ParseCategory(s)
	if err != nil {
		return "", errors.NewUserErrorWithField("category", s,
			"Unknown category",
			"Use one of: "+categoryList()).Because(errors.ErrInvalidCategory)
	}
	return c, nil
}

func categoryList() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// TargetPerWeek validates a weekly target.
func TargetPerWeek(target int) error {
	if err := InRange("target", target, MinTarget, MaxTarget); err != nil {
		return err.(*errors.UserError).Because(errors.ErrInvalidTarget)
	}
	return nil
}

// Score validates a 1-10 score such as mood, stress or energy.
func Score(field string, score int) error {
	if err := InRange(field, score, MinScore, MaxScore); err != nil {
		return err.(*errors.UserError).Because(errors.ErrInvalidScore)
	}
	return nil
}

// SleepHours validates a night's sleep.
func SleepHours(hours float64) error {
	if math.IsNaN(hours) || hours < 0 || hours > MaxSleepHours {
		return errors.NewUserErrorWithField("sleep", strconv.FormatFloat(hours, 'f', -1, 64),
			"Sleep hours out of range",
			"Must be between 0 and 24").Because(errors.ErrInvalidSleep)
	}
	return nil
}

// HealthMetric validates every field of a new health metric.
func HealthMetric(m model.NewHealthMetric) error {
	if err := SleepHours(m.SleepHours); err != nil {
		return err
	}
	if err := Score("mood", m.MoodScore); err != nil {
		return err
	}
	if err := Score("stress", m.StressLevel); err != nil {
		return err
	}
	if err := Score("energy", m.EnergyLevel); err != nil {
		return err
	}
	return Note(m.Note)
}

// BaseURL validates the backend API root.
func BaseURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return errors.NewUserError("Backend URL cannot be empty", "Provide a URL like http://localhost:8080/api").
			Because(errors.ErrInvalidURL)
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer").
			Because(errors.ErrInvalidURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewUserErrorWithField("api-url", rawURL,
			"Invalid URL format",
			"Provide a URL like http://localhost:8080/api").Because(errors.ErrInvalidURL)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.NewUserErrorWithField("api-url", rawURL,
			"Invalid URL scheme",
			"Backend URLs must start with http:// or https://").Because(errors.ErrInvalidURL)
	}
	if parsed.Hostname() == "" {
		return errors.NewUserErrorWithField("api-url", rawURL,
			"Invalid URL: missing hostname",
			"Provide a URL like http://localhost:8080/api").Because(errors.ErrInvalidURL)
	}
	return nil
}

// InRange validates that an integer is within [min, max]. It returns a
// *errors.UserError on failure.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, strconv.Itoa(value),
			"Value out of range",
			"Must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
	}
	return nil
}
