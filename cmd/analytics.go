package cmd

import (
	"github.com/spf13/cobra"
)

// weeklyCmd shows this week's habit progress.
var weeklyCmd = &cobra.Command{
	Use:     "weekly",
	Aliases: []string{"week", "w"},
	Short:   "Show this week's habit completions",
	Long: `Show how many times each habit was completed this week, with progress
toward its weekly target and the current streak.

Examples:
  lifedash weekly
  lifedash weekly -f json`,
	Args: cobra.NoArgs,
	RunE: runWeekly,
}

// insightsCmd asks the backend's AI coach for an insight.
var insightsCmd = &cobra.Command{
	Use:     "insights",
	Aliases: []string{"coach", "ai"},
	Short:   "Get personalized insights from the AI coach",
	Long: `Ask the backend's AI wellness coach for insights based on this week's data.

This can take a while; raise --timeout if the backend is slow to answer.

Examples:
  lifedash insights
  lifedash insights --timeout 30s`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

func init() {
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(insightsCmd)
}

func runWeekly(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	res := rc.Client.WeeklyHabits(cmd.Context())

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintWeekly(res)
	}
	rc.CLIFormatter().PrintWeekly(res.Value)
	return nil
}

func runInsights(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	res := rc.Client.Insights(cmd.Context())

	if rc.IsJSON() {
		return rc.JSONFormatter().PrintInsight(res)
	}
	rc.CLIFormatter().PrintInsight(res.Value.Insight)
	return nil
}
