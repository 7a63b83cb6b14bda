package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/config"
	"github.com/manav03panchal/lifedash/internal/logging"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Show the resolved configuration",
	Long: `Show the configuration lifedash is running with, after applying the config
file, .env, LIFEDASH_* environment variables and command-line flags.

Settings:
  api.base_url               Backend API root
  api.request_timeout        Timeout for backend calls
  api.health_timeout         Timeout for the health check (max 2s)
  log.level                  debug, info, warn or error
  log.format                 text or json
  log.file                   Rotated log file, empty to disable
  telemetry.endpoint         OTLP/gRPC collector, empty to disable
  dashboard.refresh_interval Dashboard auto-refresh, 0 to disable
  dashboard.trend_days       Days in the dashboard health trend

Examples:
  lifedash config
  lifedash config -f json
  LIFEDASH_API_BASE_URL=http://backend:8080/api lifedash config`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configPathCmd prints the default file locations.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print default config and log file paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("config: %s\n", config.DefaultFile())
		cmd.Printf("log:    %s\n", config.DefaultLogFile())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configView is the JSON form of the resolved configuration.
type configView struct {
	BaseURL          string `json:"base_url"`
	RequestTimeout   string `json:"request_timeout"`
	HealthTimeout    string `json:"health_timeout"`
	LogLevel         string `json:"log_level"`
	LogFormat        string `json:"log_format"`
	LogFile          string `json:"log_file,omitempty"`
	TelemetryEnabled bool   `json:"telemetry_enabled"`
	RefreshInterval  string `json:"refresh_interval"`
	TrendDays        int    `json:"trend_days"`
	Source           string `json:"source,omitempty"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	rc, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	cfg := rc.Config

	view := configView{
		BaseURL:          logging.RedactURL(cfg.API.BaseURL),
		RequestTimeout:   cfg.API.RequestTimeout.String(),
		HealthTimeout:    cfg.API.HealthTimeout.String(),
		LogLevel:         cfg.Log.Level,
		LogFormat:        cfg.Log.Format,
		LogFile:          cfg.Log.File,
		TelemetryEnabled: cfg.Telemetry.Endpoint != "",
		RefreshInterval:  cfg.Dashboard.RefreshInterval.String(),
		TrendDays:        cfg.Dashboard.TrendDays,
		Source:           cfg.Source,
	}

	if rc.IsJSON() {
		return rc.Formatter.JSON(view)
	}

	cli := rc.CLIFormatter()
	cli.Title("Configuration")
	rows := []struct{ key, value string }{
		{"api.base_url", view.BaseURL},
		{"api.request_timeout", view.RequestTimeout},
		{"api.health_timeout", view.HealthTimeout},
		{"log.level", view.LogLevel},
		{"log.format", view.LogFormat},
		{"log.file", orNone(view.LogFile)},
		{"telemetry.endpoint", orNone(logging.RedactURL(cfg.Telemetry.Endpoint))},
		{"dashboard.refresh_interval", refreshLabel(cfg.Dashboard.RefreshInterval)},
		{"dashboard.trend_days", fmt.Sprintf("%d", view.TrendDays)},
	}
	for _, r := range rows {
		rc.Formatter.Printf("  %-27s %s\n", r.key, cli.Value(r.value))
	}

	if cfg.Telemetry.Endpoint != "" && cfg.Telemetry.Insecure {
		cli.Warning("Telemetry is exported without TLS")
	}

	if view.Source != "" {
		cli.Muted("\nLoaded from " + view.Source)
	} else {
		cli.Muted("\nNo config file, using defaults and environment")
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func refreshLabel(d time.Duration) string {
	if d == 0 {
		return "off"
	}
	return d.String()
}
