package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/output"
	"github.com/manav03panchal/lifedash/internal/tui"
)

var dashboardFlagRaw bool

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard showing backend status, health
trend, this week's habit progress and AI coach insights.

With --raw, print the backend's dashboard summary as JSON instead.

Keyboard Controls:
  r - Refresh data
  i - Ask the AI coach for insights
  q - Quit dashboard

Examples:
  lifedash dashboard
  lifedash dash
  lifedash dashboard --raw`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardFlagRaw, "raw", false, "Print the backend's dashboard summary as JSON")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	if dashboardFlagRaw || rc.IsJSON() || !isInteractive() {
		res := rc.Client.Dashboard(cmd.Context())
		if !res.OK() && !rc.IsJSON() {
			rc.CLIFormatter().Muted(output.EmptyDashboard)
			return nil
		}
		return rc.Formatter.RawJSON(res.Value)
	}

	// Configure the dashboard
	config := tui.DashboardConfig{
		Source:          rc.Client,
		RefreshInterval: rc.Config.Dashboard.RefreshInterval,
		TrendDays:       rc.Config.Dashboard.TrendDays,
	}

	// Run the TUI dashboard
	return tui.Run(cmd.Context(), config)
}
