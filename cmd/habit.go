package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/api"
	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/output"
	"github.com/manav03panchal/lifedash/internal/validate"
)

// Defaults offered by the create-habit form and flags.
const (
	defaultCategory = model.CategoryHealth
	defaultTarget   = 5
)

// habitCmd represents the habit command.
var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits", "h"},
	Short:   "Manage and log habits",
	Long: `List, create, log and delete habits.

Without a subcommand, lists all habits.

Examples:
  lifedash habit
  lifedash habit create "Morning run" --category health --target 5
  lifedash habit log 1 --note "5k before work"
  lifedash habit logs 1 --from "last week"`,
	Args: cobra.NoArgs,
	RunE: runHabitList,
}

// Habit subcommand flags.
var (
	habitListFlagCategory   string
	habitListFlagActive     bool
	habitCreateFlagCategory string
	habitCreateFlagTarget   int
	habitCreateFlagInteract bool
	habitLogFlagNote        string
	habitLogFlagDate        string
	habitLogFlagInteract    bool
	habitLogsFlagFrom       string
	habitLogsFlagTo         string
	habitDeleteFlagYes      bool
)

// habitListCmd lists habits.
var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	Args:    cobra.NoArgs,
	RunE:    runHabitList,
}

// habitCreateCmd creates a habit.
var habitCreateCmd = &cobra.Command{
	Use:   "create [NAME]",
	Short: "Create a new habit",
	Long: `Create a new habit. New habits are always active.

Examples:
  lifedash habit create "Morning run" --category health --target 5
  lifedash habit create "Read 20 pages" -c learning -t 7
  lifedash habit create -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHabitCreate,
}

// habitLogCmd records a check-in.
var habitLogCmd = &cobra.Command{
	Use:   "log [HABIT_ID]",
	Short: "Log a habit completion",
	Long: `Log one completion of a habit. The date defaults to today.

Examples:
  lifedash habit log 1
  lifedash habit log 1 --note "felt great" --date yesterday
  lifedash habit log -i`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeHabitIDs,
	RunE:              runHabitLog,
}

// habitQuickCmd records a check-in with the backend's defaults.
var habitQuickCmd = &cobra.Command{
	Use:               "quick HABIT_ID",
	Aliases:           []string{"q", "done"},
	Short:             "Log a habit for today using the backend's quick log",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHabitIDs,
	RunE:              runHabitQuick,
}

// habitLogsCmd lists check-ins of one habit.
var habitLogsCmd = &cobra.Command{
	Use:   "logs HABIT_ID",
	Short: "Show a habit's log history",
	Long: `Show a habit's log history, optionally limited to a date range.

Examples:
  lifedash habit logs 1
  lifedash habit logs 1 --from 2025-12-01 --to 2025-12-07
  lifedash habit logs 1 --from "last month"`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHabitIDs,
	RunE:              runHabitLogs,
}

// habitDeleteCmd deletes a habit.
var habitDeleteCmd = &cobra.Command{
	Use:               "delete HABIT_ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a habit",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHabitIDs,
	RunE:              runHabitDelete,
}

func init() {
	// List flags
	habitListCmd.Flags().StringVarP(&habitListFlagCategory, "category", "c", "", "Only show habits in this category")
	habitListCmd.Flags().BoolVarP(&habitListFlagActive, "active", "a", false, "Only show active habits")
	_ = habitListCmd.RegisterFlagCompletionFunc("category", completeCategories)

	// Create flags
	habitCreateCmd.Flags().StringVarP(&habitCreateFlagCategory, "category", "c", defaultCategory.String(),
		"Category: health, productivity, mindfulness, learning, other")
	habitCreateCmd.Flags().IntVarP(&habitCreateFlagTarget, "target", "t", defaultTarget, "Target days per week (1-7)")
	habitCreateCmd.Flags().BoolVarP(&habitCreateFlagInteract, "interactive", "i", false, "Fill in a form")
	_ = habitCreateCmd.RegisterFlagCompletionFunc("category", completeCategories)

	// Log flags
	habitLogCmd.Flags().StringVarP(&habitLogFlagNote, "note", "n", "", "Optional note")
	habitLogCmd.Flags().StringVarP(&habitLogFlagDate, "date", "d", "", "Date of the completion (default today)")
	habitLogCmd.Flags().BoolVarP(&habitLogFlagInteract, "interactive", "i", false, "Pick the habit from a form")

	// Logs flags
	habitLogsCmd.Flags().StringVar(&habitLogsFlagFrom, "from", "", "Start date")
	habitLogsCmd.Flags().StringVar(&habitLogsFlagTo, "to", "", "End date")

	// Delete flags
	habitDeleteCmd.Flags().BoolVarP(&habitDeleteFlagYes, "yes", "y", false, "Do not ask for confirmation")

	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitCreateCmd)
	habitCmd.AddCommand(habitLogCmd)
	habitCmd.AddCommand(habitQuickCmd)
	habitCmd.AddCommand(habitLogsCmd)
	habitCmd.AddCommand(habitDeleteCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitList(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	var res api.Result[[]model.Habit]
	if habitListFlagCategory != "" {
		category, err := validate.Category(habitListFlagCategory)
		if err != nil {
			return err
		}
		res = rc.Client.HabitsInCategory(cmd.Context(), category)
	} else {
		res = rc.Client.Habits(cmd.Context())
	}

	empty := output.EmptyHabits
	if habitListFlagActive {
		res.Value = activeHabits(res.Value)
		empty = output.EmptyActiveHabits
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintHabits(res)
	}
	rc.CLIFormatter().PrintHabits(res.Value, empty)
	return nil
}

// activeHabits filters habits down to the active ones. The result is never nil.
func activeHabits(habits []model.Habit) []model.Habit {
	out := make([]model.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Active {
			out = append(out, h)
		}
	}
	return out
}

func runHabitCreate(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	var (
		name     string
		category model.Category
		target   = habitCreateFlagTarget
	)

	if habitCreateFlagInteract {
		if err := requireInteractive(); err != nil {
			return err
		}
		fm := &habitFormModel{Category: defaultCategory, Target: strconv.Itoa(defaultTarget)}
		if len(args) > 0 {
			fm.Name = args[0]
		}
		if err := newHabitForm(fm).RunWithContext(cmd.Context()); err != nil {
			return formError(err)
		}
		name = fm.Name
		category = fm.Category
		if target, err = parseTarget(fm.Target); err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return errors.NewUserError("Habit name is required",
				"Pass a name or use -i, e.g. lifedash habit create \"Morning run\"")
		}
		name = args[0]
		if category, err = validate.Category(habitCreateFlagCategory); err != nil {
			return err
		}
	}

	name = validate.SanitizeName(name)
	if err := validate.HabitName(name); err != nil {
		return err
	}
	if err := validate.TargetPerWeek(target); err != nil {
		return err
	}

	res := rc.Client.CreateHabit(cmd.Context(), name, category, target)
	if !res.OK() {
		return reportCommand(rc, "create habit", 0, res.Failure, res.Body)
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintCommand(res.Accepted, res.Failure, res.Body)
	}
	rc.CLIFormatter().PrintHabitCreated(res.Value)
	return nil
}

func runHabitLog(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	var (
		id   int64
		note = habitLogFlagNote
		when = habitLogFlagDate
	)

	switch {
	case habitLogFlagInteract:
		if err := requireInteractive(); err != nil {
			return err
		}
		habits := rc.Client.Habits(cmd.Context())
		active := activeHabits(habits.Value)
		if len(active) == 0 {
			if !habits.OK() {
				return reportCommand(rc, "load habits", 0, habits.Failure, nil)
			}
			rc.CLIFormatter().Muted(output.EmptyActiveHabits)
			return nil
		}
		fm := &checkInFormModel{HabitID: active[0].ID, Note: note, Date: when}
		if len(args) > 0 {
			if fm.HabitID, err = parseID(args[0]); err != nil {
				return err
			}
		}
		if err := newCheckInForm(fm, active).RunWithContext(cmd.Context()); err != nil {
			return formError(err)
		}
		id, note, when = fm.HabitID, fm.Note, fm.Date
	case len(args) == 0:
		return errors.NewUserError("Habit ID is required",
			"Pass an ID or use -i, e.g. lifedash habit log 1").Because(errors.ErrInvalidID)
	default:
		if id, err = parseID(args[0]); err != nil {
			return err
		}
	}

	note = validate.SanitizeNote(note)
	if err := validate.Note(note); err != nil {
		return err
	}
	date, err := parseDateFlag("date", when)
	if err != nil {
		return err
	}

	res := rc.Client.LogHabit(cmd.Context(), id, note, date)
	if !res.OK() {
		return reportCommand(rc, "log habit", id, res.Failure, res.Body)
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintCommand(res.Accepted, res.Failure, res.Body)
	}
	rc.CLIFormatter().PrintHabitLogged(id, res.Value, date)
	return nil
}

func runHabitQuick(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	res := rc.Client.QuickLogHabit(cmd.Context(), id)
	if !res.OK() {
		return reportCommand(rc, "log habit", id, res.Failure, res.Body)
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintCommand(res.Accepted, res.Failure, res.Body)
	}
	rc.CLIFormatter().PrintHabitLogged(id, res.Value, model.Today())
	return nil
}

func runHabitLogs(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	from, to, err := parseRangeFlags(habitLogsFlagFrom, habitLogsFlagTo)
	if err != nil {
		return err
	}

	var res api.Result[[]model.HabitLog]
	if from.IsZero() && to.IsZero() {
		res = rc.Client.HabitLogs(cmd.Context(), id)
	} else {
		res = rc.Client.HabitLogsBetween(cmd.Context(), id, from, to)
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintHabitLogs(id, res.Failure, res.Value)
	}
	rc.CLIFormatter().PrintHabitLogs(res.Value)
	return nil
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !habitDeleteFlagYes && !rc.IsJSON() && isInteractive() {
		confirmed := false
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("Delete habit #%d and its logs?", id)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed)
		if err := huh.NewForm(huh.NewGroup(confirm)).WithTheme(huh.ThemeDracula()).RunWithContext(cmd.Context()); err != nil {
			return formError(err)
		}
		if !confirmed {
			rc.CLIFormatter().Muted("Cancelled.")
			return nil
		}
	}

	res := rc.Client.DeleteHabit(cmd.Context(), id)
	if !res.OK() {
		return reportCommand(rc, "delete habit", id, res.Failure, res.Body)
	}

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintCommand(res.Accepted, res.Failure, res.Body)
	}
	rc.CLIFormatter().Success(fmt.Sprintf("Deleted habit #%d", id))
	return nil
}

// parseTarget reads a weekly target typed into a form and checks its range.
func parseTarget(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.NewUserErrorWithField("target", s, "Target must be a number of days",
			"Use a whole number from 1 to 7").Because(errors.ErrInvalidTarget)
	}
	if err := validate.TargetPerWeek(n); err != nil {
		return 0, err
	}
	return n, nil
}

// formError maps an aborted form to a quiet cancellation.
func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return reported(errors.NewUserError("Cancelled", ""))
	}
	return errors.Wrap(err, "run form")
}
