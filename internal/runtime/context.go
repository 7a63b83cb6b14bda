// Package runtime provides the application runtime context for lifedash.
package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/manav03panchal/lifedash/internal/api"
	"github.com/manav03panchal/lifedash/internal/config"
	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/logging"
	"github.com/manav03panchal/lifedash/internal/output"
	"github.com/manav03panchal/lifedash/internal/telemetry"
)

// flushTimeout bounds the final telemetry push on Close.
const flushTimeout = 3 * time.Second

// Context holds the application runtime context for one command invocation.
type Context struct {
	Config    *config.Config
	Client    *api.Client
	Formatter *output.Formatter
	Metrics   *telemetry.Metrics

	// Debug mode
	Debug bool

	exporter *telemetry.Exporter
}

// Options configures the runtime context.
type Options struct {
	ConfigFile string
	EnvFile    string
	Overrides  map[string]any

	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	Version   string

	// Writer receives command output. Default: stdout.
	Writer io.Writer

	// LogOutput receives log records. Default: stderr.
	LogOutput io.Writer

	// HTTPClient replaces the client's default transport.
	HTTPClient *http.Client
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Version:   "dev",
	}
}

// New resolves configuration, sets up logging and telemetry, and builds the
// backend client.
func New(ctx context.Context, opts Options) (*Context, error) {
	cfg, err := config.Load(config.Options{
		File:      opts.ConfigFile,
		EnvFile:   opts.EnvFile,
		Overrides: opts.Overrides,
	})
	if err != nil {
		return nil, errors.NewUserError(err.Error(), "").Because(errors.ErrInvalidConfig)
	}

	logCfg, err := logConfig(cfg.Log, opts)
	if err != nil {
		return nil, err
	}
	logging.Init(logCfg)

	rc := &Context{
		Config:  cfg,
		Metrics: telemetry.NewMetrics(),
		Debug:   opts.Debug,
	}

	if cfg.Telemetry.Endpoint != "" {
		exp, err := telemetry.NewExporter(ctx, telemetry.Config{
			Endpoint: cfg.Telemetry.Endpoint,
			Insecure: cfg.Telemetry.Insecure,
			Version:  opts.Version,
		})
		if err != nil {
			logging.Warn("telemetry disabled", logging.KeyError, err.Error())
		} else {
			rc.exporter = exp
		}
	}

	clientOpts := []api.Option{
		api.WithRecorder(rc.recorder()),
		api.WithLogger(logging.Logger().With(slog.String("component", "api"))),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(opts.HTTPClient))
	}

	client, err := api.New(api.Config{
		BaseURL:        cfg.API.BaseURL,
		RequestTimeout: cfg.API.RequestTimeout,
		HealthTimeout:  cfg.API.HealthTimeout,
		UserAgent:      "lifedash/" + opts.Version,
	}, clientOpts...)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	rc.Client = client

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode
	if opts.Writer != nil {
		formatter.Writer = opts.Writer
	}
	rc.Formatter = formatter

	rc.Debugf("config source: %s", sourceName(cfg.Source))
	logging.DebugLog("backend configured", logging.KeyURL, logging.RedactURL(cfg.API.BaseURL))
	return rc, nil
}

// recorder returns every active observer. A nil exporter must never reach
// the Tee as a typed nil.
func (c *Context) recorder() telemetry.Tee {
	tee := telemetry.Tee{c.Metrics}
	if c.exporter != nil {
		tee = append(tee, c.exporter)
	}
	return tee
}

func logConfig(lc config.LogConfig, opts Options) (logging.Config, error) {
	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return logging.Config{}, errors.NewUserErrorWithField("log.level", lc.Level, "unknown log level",
			"Use one of: debug, info, warn, error").Because(errors.ErrInvalidConfig)
	}
	cfg := logging.Config{
		Level:  level,
		JSON:   lc.Format == "json",
		Output: opts.LogOutput,
		File:   lc.File,
	}
	if opts.Debug {
		cfg.Level = slog.LevelDebug
		cfg.AddSource = true
	}
	return cfg, nil
}

func sourceName(path string) string {
	if path == "" {
		return "defaults and environment"
	}
	return path
}

// Close flushes telemetry and closes the log file. In debug mode the call
// counters of this invocation are logged first.
func (c *Context) Close() error {
	if c.Debug && c.Metrics != nil {
		snap := c.Metrics.Snapshot()
		logging.DebugLog("backend calls",
			logging.KeyCalls, snap.CallsTotal,
			logging.KeyFailures, snap.FailuresTotal,
			logging.KeyFailure, snap.LastFailure)
	}

	var firstErr error
	if c.exporter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := c.exporter.Close(ctx); err != nil {
			logging.Warn("telemetry flush failed", logging.KeyError, err.Error())
			firstErr = err
		}
		c.exporter = nil
	}
	if err := logging.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Debugf logs at debug level when debug mode is enabled.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		logging.DebugLog(fmt.Sprintf(format, args...))
	}
}

type contextKey struct{}

// Attach returns a copy of ctx carrying rc.
func Attach(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// From returns the runtime context attached to ctx, if any.
func From(ctx context.Context) (*Context, bool) {
	if ctx == nil {
		return nil, false
	}
	rc, ok := ctx.Value(contextKey{}).(*Context)
	return rc, ok && rc != nil
}
