// Package output provides output formatting for lifedash.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Format represents the output format type.
type Format string

const (
	FormatCLI   Format = "cli"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ColorMode represents the color output mode.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Empty states and fallbacks shown when the backend has nothing to show or
// could not be reached.
const (
	EmptyHabits         = "No habits found."
	EmptyActiveHabits   = "No active habits found."
	EmptyHabitLogs      = "No habit logs found."
	EmptyHealthMetrics  = "No health metrics recorded yet."
	EmptyHealthTrend    = "No health data available yet."
	EmptyWeekly         = "No habit data available."
	InsightsUnavailable = "Unable to generate insights."
	EmptyDashboard      = "Dashboard summary unavailable."
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 80

// Formatter handles output formatting.
type Formatter struct {
	Writer    io.Writer
	Format    Format
	ColorMode ColorMode
	NoNewline bool
}

// NewFormatter creates a new formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		Writer:    os.Stdout,
		Format:    FormatCLI,
		ColorMode: ColorAuto,
	}
}

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCLI, FormatJSON, FormatPlain:
		return f, nil
	case "":
		return FormatCLI, nil
	default:
		return "", fmt.Errorf("unknown format %q: use cli, json or plain", s)
	}
}

// ParseColorMode parses a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("unknown color mode %q: use auto, always or never", s)
	}
}

// IsJSON reports whether output should be JSON.
func (f *Formatter) IsJSON() bool {
	return f.Format == FormatJSON
}

// IsColorEnabled returns true if color output is enabled.
func (f *Formatter) IsColorEnabled() bool {
	if f.Format == FormatPlain {
		return false
	}
	switch f.ColorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Auto-detect based on terminal
		if w, ok := f.Writer.(*os.File); ok {
			return isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
		}
		return false
	}
}

// IsTerminal reports whether the writer is an interactive terminal.
func (f *Formatter) IsTerminal() bool {
	if w, ok := f.Writer.(*os.File); ok {
		return isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
	}
	return false
}

// Width returns the terminal width, or DefaultWidth when not on a terminal.
func (f *Formatter) Width() int {
	if w, ok := f.Writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(w.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultWidth
}

// Print outputs formatted text.
func (f *Formatter) Print(a ...interface{}) {
	fmt.Fprint(f.Writer, a...)
}

// Println outputs formatted text with newline.
func (f *Formatter) Println(a ...interface{}) {
	fmt.Fprintln(f.Writer, a...)
}

// Printf outputs formatted text.
func (f *Formatter) Printf(format string, a ...interface{}) {
	fmt.Fprintf(f.Writer, format, a...)
}

// JSON outputs data as JSON.
func (f *Formatter) JSON(v interface{}) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// RawJSON writes an already-encoded JSON document, indented.
func (f *Formatter) RawJSON(data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	f.Println(buf.String())
	return nil
}

// FormatLatency formats a request duration.
func FormatLatency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatHours formats sleep hours with one decimal.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// FormatScore formats an average score out of 10.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.1f/10", v)
}

// FormatPercent formats a percentage with no decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}
