package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/logging"
	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/output"
	"github.com/manav03panchal/lifedash/internal/runtime"
)

// browseCmd lists raw records from the backend.
var browseCmd = &cobra.Command{
	Use:       "browse [habits|logs|metrics]",
	Aliases:   []string{"db", "records"},
	Short:     "Browse every record stored in the backend",
	ValidArgs: []string{"habits", "logs", "metrics"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	Long: `Browse the records stored in the backend.

  habits   every habit, active or not (default)
  logs     check-ins across all habits, newest first
  metrics  every health check-in

Examples:
  lifedash browse
  lifedash browse logs
  lifedash browse metrics -f json`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	table := "habits"
	if len(args) > 0 {
		table = args[0]
	}

	switch table {
	case "logs":
		return browseLogs(cmd, rc)
	case "metrics":
		res := rc.Client.HealthMetrics(cmd.Context())
		if rc.IsJSON() {
			return rc.JSONFormatter().PrintHealthMetrics(res)
		}
		rc.CLIFormatter().PrintHealthMetrics(res.Value)
		return nil
	default:
		res := rc.Client.Habits(cmd.Context())
		if rc.IsJSON() {
			return rc.JSONFormatter().PrintHabits(res)
		}
		rc.CLIFormatter().PrintHabits(res.Value, output.EmptyHabits)
		return nil
	}
}

// browseLogs joins the logs of every habit, annotated with the habit name.
// Habits whose logs cannot be fetched are skipped. Every call of one join
// shares a request ID.
func browseLogs(cmd *cobra.Command, rc *runtime.Context) error {
	ctx, _ := logging.EnsureRequestID(cmd.Context())
	habits := rc.Client.Habits(ctx)

	logs := []model.HabitLog{}
	for _, h := range habits.Value {
		res := rc.Client.HabitLogs(ctx, h.ID)
		if !res.OK() {
			logging.WarnContext(ctx, "skipping habit logs", logging.KeyHabitID, h.ID, logging.KeyFailure, res.Failure.Error())
			continue
		}
		for _, l := range res.Value {
			l.HabitName = h.Name
			if l.HabitID == 0 {
				l.HabitID = h.ID
			}
			logs = append(logs, l)
		}
	}

	logging.DebugLog("joined habit logs", logging.KeyCount, len(logs))

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[j].LogDate.Before(logs[i].LogDate)
	})

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintHabitLogs(0, habits.Failure, logs)
	}
	rc.CLIFormatter().PrintHabitLogs(logs)
	return nil
}
