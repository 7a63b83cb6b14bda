// Package tui provides the terminal dashboard for lifedash.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/lifedash/internal/model"
)

// Color palette for the TUI dashboard.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorValue     = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for subtitles and secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleHabit is used for habit names.
	StyleHabit = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleCategory is used for habit categories.
	StyleCategory = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// StyleValue is used for metric values.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorValue)

	// StyleNote is used for notes and insight text.
	StyleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)

	// StyleOnline is used when the backend answers.
	StyleOnline = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleOffline is used when the backend is unreachable.
	StyleOffline = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// StyleWarning is used for warning messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Box styles for different sections.
var (
	// StyleStatusBox is used for the backend status when it is unreachable.
	StyleStatusBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 2).
			MarginBottom(1)

	// StyleOnlineStatusBox is used for the backend status when it answers.
	StyleOnlineStatusBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSuccess).
				Padding(0, 2).
				MarginBottom(1)

	// StyleSectionBox is used for the trend, weekly and insight sections.
	StyleSectionBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleCard is used for a single metric card in the trend section.
	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)
)

// ProgressBar creates a progress bar string.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) + // Full block
		emptyStyle.Render(strings.Repeat("░", empty)) // Light shade
}

// FormatHabit formats a habit name with its category.
func FormatHabit(name string, category model.Category) string {
	if category == "" {
		return StyleHabit.Render(name)
	}
	return StyleHabit.Render(name) + " " + StyleCategory.Render(category.Label())
}
