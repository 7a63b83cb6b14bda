package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/api"
	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/validate"
)

// Defaults offered by the health check-in form and flags.
const (
	defaultSleep  = 7.0
	defaultMood   = 7
	defaultStress = 3
	defaultEnergy = 6
)

// healthCmd represents the health command.
var healthCmd = &cobra.Command{
	Use:     "health",
	Aliases: []string{"hm"},
	Short:   "Log and review daily health metrics",
	Long: `Log daily health check-ins and review history and trends.

Without a subcommand, lists recorded metrics.

Examples:
  lifedash health log --sleep 7.5 --mood 8 --stress 3 --energy 7
  lifedash health list --from "last week"
  lifedash health trend --days 14`,
	Args: cobra.NoArgs,
	RunE: runHealthList,
}

// Health subcommand flags.
var (
	healthLogFlagSleep    float64
	healthLogFlagMood     int
	healthLogFlagStress   int
	healthLogFlagEnergy   int
	healthLogFlagNote     string
	healthLogFlagDate     string
	healthLogFlagInteract bool
	healthListFlagFrom    string
	healthListFlagTo      string
	healthTrendFlagDays   int
)

// healthLogCmd records a daily check-in.
var healthLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a daily health check-in",
	Long: `Record sleep, mood, stress and energy for a day. Scores range from 1 to 10.

Examples:
  lifedash health log --sleep 7.5 --mood 8 --stress 3 --energy 7
  lifedash health log --sleep 6 --mood 5 --stress 7 --energy 4 --note "deadline" --date yesterday
  lifedash health log -i`,
	Args: cobra.NoArgs,
	RunE: runHealthLog,
}

// healthListCmd lists recorded metrics.
var healthListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "history"},
	Short:   "List recorded health metrics",
	Args:    cobra.NoArgs,
	RunE:    runHealthList,
}

// healthTrendCmd shows averages over recent days.
var healthTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show health averages over recent days",
	Long: `Show average sleep, mood, stress and energy computed by the backend.

Without --days the backend's default window is used.

Examples:
  lifedash health trend
  lifedash health trend --days 30`,
	Args: cobra.NoArgs,
	RunE: runHealthTrend,
}

func init() {
	// Log flags
	healthLogCmd.Flags().Float64VarP(&healthLogFlagSleep, "sleep", "s", defaultSleep, "Hours slept (0-24)")
	healthLogCmd.Flags().IntVarP(&healthLogFlagMood, "mood", "m", defaultMood, "Mood score (1-10)")
	healthLogCmd.Flags().IntVar(&healthLogFlagStress, "stress", defaultStress, "Stress level (1-10)")
	healthLogCmd.Flags().IntVarP(&healthLogFlagEnergy, "energy", "e", defaultEnergy, "Energy level (1-10)")
	healthLogCmd.Flags().StringVarP(&healthLogFlagNote, "note", "n", "", "Optional note")
	healthLogCmd.Flags().StringVarP(&healthLogFlagDate, "date", "d", "", "Date of the check-in (default today)")
	healthLogCmd.Flags().BoolVarP(&healthLogFlagInteract, "interactive", "i", false, "Fill in a form")

	// List flags
	healthListCmd.Flags().StringVar(&healthListFlagFrom, "from", "", "Start date")
	healthListCmd.Flags().StringVar(&healthListFlagTo, "to", "", "End date")

	// Trend flags
	healthTrendCmd.Flags().IntVar(&healthTrendFlagDays, "days", 0, "Number of days to average (backend default when 0)")

	healthCmd.AddCommand(healthLogCmd)
	healthCmd.AddCommand(healthListCmd)
	healthCmd.AddCommand(healthTrendCmd)
	rootCmd.AddCommand(healthCmd)
}

func runHealthLog(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	metric := model.NewHealthMetric{
		SleepHours:  healthLogFlagSleep,
		MoodScore:   healthLogFlagMood,
		StressLevel: healthLogFlagStress,
		EnergyLevel: healthLogFlagEnergy,
		Note:        healthLogFlagNote,
	}
	when := healthLogFlagDate

	if healthLogFlagInteract {
		if err := requireInteractive(); err != nil {
			return err
		}
		fm := &healthFormModel{
			Sleep:  strconv.FormatFloat(defaultSleep, 'f', 1, 64),
			Mood:   strconv.Itoa(defaultMood),
			Stress: strconv.Itoa(defaultStress),
			Energy: strconv.Itoa(defaultEnergy),
			Note:   healthLogFlagNote,
			Date:   healthLogFlagDate,
		}
		if err := newHealthForm(fm).RunWithContext(cmd.Context()); err != nil {
			return formError(err)
		}
		if metric, err = healthFromForm(fm); err != nil {
			return err
		}
		when = fm.Date
	}

	metric.Note = validate.SanitizeNote(metric.Note)
	if metric.RecordedAt, err = parseDateFlag("date", when); err != nil {
		return err
	}
	if err := validate.HealthMetric(metric); err != nil {
		return err
	}

	res := rc.Client.LogHealth(cmd.Context(), metric)
	if !res.OK() {
		return reportCommand(rc, "log health metrics", 0, res.Failure, res.Body)
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintCommand(res.Accepted, res.Failure, res.Body)
	}
	rc.CLIFormatter().PrintHealthLogged(res.Value, metric.RecordedAt)
	return nil
}

// healthFromForm converts the form's text fields. The form has already
// validated them; this only fails if it was bypassed.
func healthFromForm(fm *healthFormModel) (model.NewHealthMetric, error) {
	sleep, err := strconv.ParseFloat(strings.TrimSpace(fm.Sleep), 64)
	if err != nil {
		return model.NewHealthMetric{}, errors.NewUserErrorWithField("sleep", fm.Sleep, "Sleep must be a number", "").
			Because(errors.ErrInvalidSleep)
	}

	scores := make([]int, 0, 3)
	for _, f := range []struct{ name, value string }{
		{"mood", fm.Mood},
		{"stress", fm.Stress},
		{"energy", fm.Energy},
	} {
		n, err := strconv.Atoi(strings.TrimSpace(f.value))
		if err != nil {
			return model.NewHealthMetric{}, errors.NewUserErrorWithField(f.name, f.value, "Score must be a number", "").
				Because(errors.ErrInvalidScore)
		}
		scores = append(scores, n)
	}

	return model.NewHealthMetric{
		SleepHours:  sleep,
		MoodScore:   scores[0],
		StressLevel: scores[1],
		EnergyLevel: scores[2],
		Note:        fm.Note,
	}, nil
}

func runHealthList(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	from, to, err := parseRangeFlags(healthListFlagFrom, healthListFlagTo)
	if err != nil {
		return err
	}

	var res api.Result[[]model.HealthMetric]
	if from.IsZero() && to.IsZero() {
		res = rc.Client.HealthMetrics(cmd.Context())
	} else {
		res = rc.Client.HealthMetricsBetween(cmd.Context(), from, to)
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintHealthMetrics(res)
	}
	rc.CLIFormatter().PrintHealthMetrics(res.Value)
	return nil
}

func runHealthTrend(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	if healthTrendFlagDays != 0 {
		if err := validate.InRange("days", healthTrendFlagDays, 1, 365); err != nil {
			return err
		}
	}

	res := rc.Client.HealthTrendDays(cmd.Context(), healthTrendFlagDays)

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintTrend(res)
	}
	rc.CLIFormatter().PrintTrend(res.Value)
	return nil
}
