package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/output"
)

// statusCmd shows backend connectivity.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st", "ping"},
	Short:   "Check that the backend is reachable",
	Long: `Check the backend's health endpoint and show its info.

The health check never waits longer than two seconds.

Examples:
  lifedash status
  lifedash status --api-url http://analytics.local:8080/api
  lifedash status -f json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus shows whether the backend answers, and its info when it does.
func runStatus(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	start := time.Now()
	health := rc.Client.Health(ctx)
	status := output.BackendStatus{
		BaseURL:   rc.Client.BaseURL(),
		Reachable: health.Value,
		Latency:   time.Since(start),
		Failure:   health.Failure.Error(),
	}

	if status.Reachable {
		if info := rc.Client.Info(ctx); info.OK() {
			status.Info = &info.Value
		}
	}

	calls := rc.Metrics.Snapshot()
	status.Calls = &calls

	if rc.IsJSON() {
		if err := rc.JSONFormatter().PrintStatus(status); err != nil {
			return err
		}
	} else {
		rc.CLIFormatter().PrintStatus(status)
	}

	if !status.Reachable {
		return reported(failureError("check backend", 0, health.Failure))
	}
	return nil
}
