package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/output"
)

// StatusComponent displays backend connectivity.
type StatusComponent struct {
	BaseURL   string
	Reachable bool
	Latency   time.Duration
	Failure   string
	Width     int
}

// NewStatusComponent creates a new status component from a snapshot.
func NewStatusComponent(s Snapshot, baseURL string, width int) *StatusComponent {
	return &StatusComponent{
		BaseURL:   baseURL,
		Reachable: s.Reachable,
		Latency:   s.Latency,
		Failure:   s.Failure,
		Width:     width,
	}
}

// View renders the status component.
func (sc *StatusComponent) View() string {
	var content strings.Builder

	if !sc.Reachable {
		content.WriteString(StyleOffline.Render("● OFFLINE"))
		content.WriteString("  ")
		content.WriteString(StyleSubtitle.Render(sc.BaseURL))
		if sc.Failure != "" {
			content.WriteString("\n")
			content.WriteString(StyleSubtitle.Render(sc.Failure))
		}
		return StyleStatusBox.Width(boxWidth(sc.Width)).Render(content.String())
	}

	content.WriteString(StyleOnline.Render("● ONLINE"))
	content.WriteString("  ")
	content.WriteString(StyleSubtitle.Render(sc.BaseURL))
	content.WriteString("  ")
	content.WriteString(StyleValue.Render(output.FormatLatency(sc.Latency)))

	return StyleOnlineStatusBox.Width(boxWidth(sc.Width)).Render(content.String())
}

// TrendComponent displays health averages as cards.
type TrendComponent struct {
	Trend model.HealthTrend
	Days  int
	Width int
}

// NewTrendComponent creates a new trend component.
func NewTrendComponent(trend model.HealthTrend, days, width int) *TrendComponent {
	return &TrendComponent{Trend: trend, Days: days, Width: width}
}

// View renders the trend component.
func (tc *TrendComponent) View() string {
	var content strings.Builder

	title := "Health"
	if tc.Days > 0 {
		title = fmt.Sprintf("Health, last %d days", tc.Days)
	}
	content.WriteString(StyleTitle.Render(title))
	content.WriteString("\n")

	if tc.Trend.IsEmpty() {
		content.WriteString(StyleSubtitle.Render(output.EmptyHealthTrend))
		return StyleSectionBox.Width(boxWidth(tc.Width)).Render(content.String())
	}

	cards := []struct{ label, value string }{
		{"Sleep", output.FormatHours(tc.Trend.AvgSleep)},
		{"Mood", output.FormatScore(tc.Trend.AvgMood)},
		{"Stress", output.FormatScore(tc.Trend.AvgStress)},
		{"Energy", output.FormatScore(tc.Trend.AvgEnergy)},
	}
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, StyleCard.Render(
			StyleSubtitle.Render(c.label)+"\n"+StyleValue.Render(c.value)))
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	if tc.Trend.TotalRecords > 0 {
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d records", tc.Trend.TotalRecords)))
	}

	return StyleSectionBox.Width(boxWidth(tc.Width)).Render(content.String())
}

// WeeklyComponent displays this week's habit progress.
type WeeklyComponent struct {
	Report model.WeeklyReport
	Width  int
}

// NewWeeklyComponent creates a new weekly component.
func NewWeeklyComponent(report model.WeeklyReport, width int) *WeeklyComponent {
	return &WeeklyComponent{Report: report, Width: width}
}

// View renders the weekly component.
func (wc *WeeklyComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("This Week"))
	content.WriteString("\n")

	if len(wc.Report.Habits) == 0 {
		content.WriteString(StyleSubtitle.Render(output.EmptyWeekly))
		return StyleSectionBox.Width(boxWidth(wc.Width)).Render(content.String())
	}

	names := make([]string, len(wc.Report.Habits))
	nameWidth := 0
	for i, h := range wc.Report.Habits {
		names[i] = FormatHabit(h.HabitName, h.Category)
		if w := lipgloss.Width(names[i]); w > nameWidth {
			nameWidth = w
		}
	}
	barWidth := wc.Width - nameWidth - 30
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}

	for i, h := range wc.Report.Habits {
		if i > 0 {
			content.WriteString("\n")
		}
		pct := h.CompletionRate
		progress := fmt.Sprintf("%d", h.CompletedThisWeek)
		if h.TargetPerWeek > 0 {
			pct = float64(h.CompletedThisWeek) * 100 / float64(h.TargetPerWeek)
			progress += fmt.Sprintf("/%d", h.TargetPerWeek)
		}

		content.WriteString(names[i] + strings.Repeat(" ", nameWidth-lipgloss.Width(names[i])))
		content.WriteString("  ")
		content.WriteString(ProgressBar(pct, barWidth))
		content.WriteString("  ")
		content.WriteString(StyleValue.Render(progress))
		if h.CurrentStreak > 1 {
			content.WriteString(StyleSubtitle.Render(fmt.Sprintf("  streak %d", h.CurrentStreak)))
		}
	}

	if wc.Report.TotalHabits > 0 {
		content.WriteString("\n\n")
		content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d habits, %s overall",
			wc.Report.TotalHabits, output.FormatPercent(wc.Report.OverallCompletionRate))))
	}

	return StyleSectionBox.Width(boxWidth(wc.Width)).Render(content.String())
}

// InsightComponent displays the AI coach insight.
type InsightComponent struct {
	Text    string
	Loaded  bool
	Loading string
	Width   int
}

// View renders the insight component. Nothing is shown until insights were
// requested.
func (ic *InsightComponent) View() string {
	if !ic.Loaded && ic.Loading == "" {
		return ""
	}

	var content strings.Builder
	content.WriteString(StyleTitle.Render("Insights"))
	content.WriteString("\n")

	switch {
	case ic.Loading != "":
		content.WriteString(ic.Loading + " " + StyleSubtitle.Render("Analyzing your data..."))
	case strings.TrimSpace(ic.Text) == "":
		content.WriteString(StyleSubtitle.Render(output.InsightsUnavailable))
	default:
		content.WriteString(StyleNote.Width(boxWidth(ic.Width) - 6).Render(strings.TrimSpace(ic.Text)))
	}

	return StyleSectionBox.Width(boxWidth(ic.Width)).Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"r", "refresh"},
		{"i", "insights"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

// boxWidth leaves room for the border.
func boxWidth(width int) int {
	if width < 24 {
		return 20
	}
	return width - 4
}
