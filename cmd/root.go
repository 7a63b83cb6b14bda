// Package cmd provides the CLI commands for lifedash.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/output"
	"github.com/manav03panchal/lifedash/internal/runtime"
	"github.com/manav03panchal/lifedash/internal/validate"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagAPIURL  string
	flagTimeout time.Duration
	flagConfig  string
	flagEnvFile string
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagLogFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lifedash",
	Short: "Track habits and health against the Life Analytics backend",
	Long: `lifedash is a command-line client for the Life Analytics backend. It logs
habits and daily health check-ins and shows weekly progress, health trends,
and AI coach insights.

Examples:
  lifedash status
  lifedash habit create "Morning run" --category health --target 5
  lifedash habit log 1 --note "5k"
  lifedash health log --sleep 7.5 --mood 8 --stress 3 --energy 7
  lifedash weekly
  lifedash dashboard`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupRuntime,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show backend status
		return runStatus(cmd, args)
	},
}

// setupRuntime builds the runtime context for the command being executed and
// attaches it to the command's context.
func setupRuntime(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that never talk to the backend
	switch cmd.Name() {
	case "completion", "help", "version", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}

	rc, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	cmd.SetContext(runtime.Attach(cmd.Context(), rc))
	return nil
}

// newRuntime resolves the global flags into runtime options.
func newRuntime(cmd *cobra.Command) (*runtime.Context, error) {
	if cmd.Flags().Changed("api-url") {
		if err := validate.BaseURL(flagAPIURL); err != nil {
			return nil, err
		}
	}
	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return nil, errors.NewUserErrorWithField("format", flagFormat, "unknown output format",
			"Use one of: cli, json, plain")
	}
	colorMode, err := output.ParseColorMode(flagColor)
	if err != nil {
		return nil, errors.NewUserErrorWithField("color", flagColor, "unknown color mode",
			"Use one of: auto, always, never")
	}

	opts := runtime.DefaultOptions()
	opts.ConfigFile = flagConfig
	opts.EnvFile = flagEnvFile
	opts.Overrides = flagOverrides(cmd)
	opts.Format = format
	opts.ColorMode = colorMode
	opts.Debug = flagDebug
	opts.Version = Version
	opts.Writer = cmd.OutOrStdout()
	opts.LogOutput = cmd.ErrOrStderr()

	return runtime.New(commandContext(cmd), opts)
}

// flagOverrides returns config overrides for the global flags the user set.
// Unset flags leave the config file and environment in charge.
func flagOverrides(cmd *cobra.Command) map[string]any {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		overrides["api.base_url"] = flagAPIURL
	}
	if flags.Changed("timeout") {
		overrides["api.request_timeout"] = flagTimeout
	}
	if flags.Changed("log-file") {
		overrides["log.file"] = flagLogFile
	}
	return overrides
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runtimeFor returns the runtime context attached by setupRuntime.
func runtimeFor(cmd *cobra.Command) (*runtime.Context, error) {
	rc, ok := runtime.From(cmd.Context())
	if !ok {
		return nil, errors.NewSystemErrorWithOp(cmd.Name(), "runtime not initialized", nil)
	}
	return rc, nil
}

// Execute runs the root command with ctx. The runtime of the command that
// ran is closed whether or not it failed, so telemetry is flushed either way.
func Execute(ctx context.Context) error {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if cmd != nil {
		if rc, ok := runtime.From(cmd.Context()); ok {
			if cerr := rc.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}
	return err
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIURL, "api-url", "",
		"Backend API base URL (default http://localhost:8080/api)")
	pf.DurationVar(&flagTimeout, "timeout", 0,
		"Request timeout, e.g. 5s (default 10s)")
	pf.StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/lifedash/config.yaml)")
	pf.StringVar(&flagEnvFile, "env-file", "",
		"Dotenv file to load (default .env)")
	pf.StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	pf.StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	pf.BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	pf.StringVar(&flagLogFile, "log-file", "",
		"Also write logs to this file, rotated by size")

	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"cli", "json", "plain"}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("lifedash %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// reportedError marks a failure whose notice has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported wraps err so Die only sets the exit code.
func reported(err error) error {
	return &reportedError{err: err}
}

// Die prints an error and exits.
func Die(err error) {
	var re *reportedError
	if !errors.As(err, &re) {
		printError(err)
	}
	os.Exit(errors.ExitCode(err))
}

func printError(err error) {
	if format, _ := output.ParseFormat(flagFormat); format == output.FormatJSON {
		f := output.NewFormatter()
		f.Writer = os.Stdout
		_ = output.NewJSONFormatter(f).PrintError(output.StatusError, err.Error(), errors.GetSuggestion(err))
		return
	}

	if flagDebug {
		os.Stderr.WriteString(errors.FormatDebugError(err) + "\n")
		return
	}
	os.Stderr.WriteString("Error: " + errors.FormatUserError(err) + "\n")
}
