// Package config loads lifedash settings from defaults, an optional YAML file,
// a .env file, LIFEDASH_* environment variables, and command-line overrides.
//
// Load returns an immutable value; nothing in this package holds global state.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config and state directories.
	AppName = "lifedash"

	// EnvPrefix prefixes every environment override, e.g. LIFEDASH_API_BASE_URL.
	EnvPrefix = "LIFEDASH"

	// MaxHealthTimeout caps the health check so a dead backend never stalls the UI.
	MaxHealthTimeout = 2 * time.Second
)

// Config is the resolved lifedash configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	// BaseURL is the backend API root, e.g. http://localhost:8080/api.
	BaseURL string `mapstructure:"base_url"`

	// RequestTimeout bounds every backend call except the health check.
	// Default: 10s
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// HealthTimeout bounds the health check. Values above 2s are clamped.
	// Default: 2s
	HealthTimeout time.Duration `mapstructure:"health_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	// Endpoint is an OTLP/gRPC collector address; empty disables export.
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

// DashboardConfig holds TUI dashboard settings.
type DashboardConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	TrendDays       int           `mapstructure:"trend_days"`
}

// Options controls where Load looks and which values the caller forces.
type Options struct {
	// File is an explicit config file. Empty means the XDG default, if present.
	File string

	// EnvFile is a dotenv file loaded before reading the environment.
	// Empty means ".env" in the working directory, if present.
	EnvFile string

	// Overrides are applied last, keyed like "api.base_url".
	Overrides map[string]any
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080/api",
			RequestTimeout: 10 * time.Second,
			HealthTimeout:  2 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Dashboard: DashboardConfig{
			RefreshInterval: 30 * time.Second,
			TrendDays:       7,
		},
	}
}

// DefaultFile returns the default config file path under the XDG config home.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultLogFile returns the default log file path under the XDG state home.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// Load resolves the configuration. A missing default file or .env is not an
// error; a missing explicit file is.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := ""
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
		source = opts.File
	} else if path := DefaultFile(); fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		source = path
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Source = source
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.request_timeout", d.API.RequestTimeout)
	v.SetDefault("api.health_timeout", d.API.HealthTimeout)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("telemetry.insecure", d.Telemetry.Insecure)

	v.SetDefault("dashboard.refresh_interval", d.Dashboard.RefreshInterval)
	v.SetDefault("dashboard.trend_days", d.Dashboard.TrendDays)
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// normalize trims values and clamps the health timeout.
func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.HealthTimeout > MaxHealthTimeout {
		c.API.HealthTimeout = MaxHealthTimeout
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://, got %q", c.API.BaseURL)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("api.request_timeout must be positive, got %s", c.API.RequestTimeout)
	}
	if c.API.HealthTimeout <= 0 {
		return fmt.Errorf("api.health_timeout must be positive, got %s", c.API.HealthTimeout)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Dashboard.RefreshInterval < 0 {
		return fmt.Errorf("dashboard.refresh_interval must not be negative")
	}
	if c.Dashboard.TrendDays < 1 || c.Dashboard.TrendDays > 365 {
		return fmt.Errorf("dashboard.trend_days must be between 1 and 365, got %d", c.Dashboard.TrendDays)
	}
	return nil
}
