// Package api is the synchronous façade over the habit and health analytics
// backend. Every operation returns a value; failures are reported through
// Result and CommandResult rather than as Go errors.
package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/manav03panchal/lifedash/internal/errors"
)

const (
	// DefaultRequestTimeout bounds every call except the health check.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultHealthTimeout bounds the health check and is also its ceiling.
	DefaultHealthTimeout = 2 * time.Second

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "lifedash/1.0"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// Config is the immutable client configuration.
type Config struct {
	// BaseURL is the backend API root, e.g. http://localhost:8080/api.
	BaseURL string

	// RequestTimeout bounds each call. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration

	// HealthTimeout bounds the health check. Zero or values above
	// DefaultHealthTimeout are replaced by DefaultHealthTimeout.
	HealthTimeout time.Duration

	// UserAgent overrides DefaultUserAgent.
	UserAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for failure reports.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRecorder attaches a telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Client talks to the analytics backend. It is safe for concurrent use and
// holds no state that changes between calls.
type Client struct {
	base     *url.URL
	cfg      Config
	http     *http.Client
	logger   *slog.Logger
	recorder Recorder
}

// New validates cfg and returns a client.
func New(cfg Config, opts ...Option) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.NewUserError("backend URL is required", "Set --api-url or api.base_url in the config file").
			Because(errors.ErrInvalidURL)
	}
	base, err := url.Parse(raw)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, errors.NewUserErrorWithField("api-url", cfg.BaseURL, "invalid backend URL", "").
			Because(errors.ErrInvalidURL)
	}

	cfg.BaseURL = raw
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.HealthTimeout <= 0 || cfg.HealthTimeout > DefaultHealthTimeout {
		cfg.HealthTimeout = DefaultHealthTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	c := &Client{
		base:     base,
		cfg:      cfg,
		http:     &http.Client{},
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// BaseURL returns the backend API root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}
