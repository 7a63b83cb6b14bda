package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/parser"
	"github.com/manav03panchal/lifedash/internal/validate"
)

// habitFormModel holds the values of the create-habit form.
type habitFormModel struct {
	Name     string
	Category model.Category
	Target   string
}

// checkInFormModel holds the values of the log-habit form.
type checkInFormModel struct {
	HabitID int64
	Note    string
	Date    string
}

// healthFormModel holds the values of the health check-in form.
type healthFormModel struct {
	Sleep  string
	Mood   string
	Stress string
	Energy string
	Note   string
	Date   string
}

// newHabitForm creates a form for adding a habit.
func newHabitForm(fm *habitFormModel) *huh.Form {
	options := make([]huh.Option[model.Category], 0, len(model.Categories()))
	for _, c := range model.Categories() {
		options = append(options, huh.NewOption(c.Label(), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(validate.HabitName),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Target per week").
				Description("Days per week, 1 to 7").
				Value(&fm.Target).
				Validate(func(s string) error {
					_, err := parseTarget(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// newCheckInForm creates a form for logging one of the given habits.
func newCheckInForm(fm *checkInFormModel, habits []model.Habit) *huh.Form {
	options := make([]huh.Option[int64], 0, len(habits))
	for _, h := range habits {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", h.Name, h.Category.Label()), h.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Habit").
				Options(options...).
				Value(&fm.HabitID),
			huh.NewInput().
				Title("Note").
				Description("Optional").
				Value(&fm.Note).
				Validate(validate.Note),
			huh.NewInput().
				Title("Date").
				Description("Leave empty for today").
				Value(&fm.Date).
				Validate(validateDateInput),
		),
	).WithTheme(huh.ThemeDracula())
}

// newHealthForm creates a form for a daily health check-in.
func newHealthForm(fm *healthFormModel) *huh.Form {
	score := func(field string) func(string) error {
		return func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("enter a number from 1 to 10")
			}
			return validate.Score(field, n)
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sleep (hours)").
				Value(&fm.Sleep).
				Validate(func(s string) error {
					h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("enter hours, e.g. 7.5")
					}
					return validate.SleepHours(h)
				}),
			huh.NewInput().
				Title("Mood (1-10)").
				Value(&fm.Mood).
				Validate(score("mood")),
			huh.NewInput().
				Title("Stress (1-10)").
				Value(&fm.Stress).
				Validate(score("stress")),
			huh.NewInput().
				Title("Energy (1-10)").
				Value(&fm.Energy).
				Validate(score("energy")),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Note").
				Description("Optional").
				Value(&fm.Note).
				Validate(validate.Note),
			huh.NewInput().
				Title("Date").
				Description("Leave empty for today").
				Value(&fm.Date).
				Validate(validateDateInput),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateDateInput(s string) error {
	return parser.ParseDate(s).Error
}
