package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/telemetry"
	"github.com/manav03panchal/lifedash/internal/validate"
)

// noteColumnWidth caps the NOTE column in tables.
const noteColumnWidth = 40

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red
	colorSuccess   = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleHabit = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleCategory = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleValue = lipgloss.NewStyle().
			Bold(true)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// BackendStatus summarizes a health check for display.
type BackendStatus struct {
	BaseURL   string
	Reachable bool
	Latency   time.Duration
	Failure   string
	Info      *model.BackendInfo
	Calls     *telemetry.Snapshot
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// HabitName formats a habit name.
func (c *CLIFormatter) HabitName(name string) string {
	return c.render(styleHabit, name)
}

// Category formats a category label.
func (c *CLIFormatter) Category(cat model.Category) string {
	return c.render(styleCategory, cat.Label())
}

// Value formats an emphasized value.
func (c *CLIFormatter) Value(text string) string {
	return c.render(styleValue, text)
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	return c.render(styleNote, text)
}

// PrintStatus prints backend connectivity.
func (c *CLIFormatter) PrintStatus(s BackendStatus) {
	if !s.Reachable {
		c.Error("Backend unreachable at " + s.BaseURL)
		if s.Failure != "" {
			c.Muted("  " + s.Failure)
		}
		c.Muted("Start the backend or pass --api-url.")
		return
	}

	c.Success("Backend reachable at " + s.BaseURL)
	c.Printf("  Latency: %s\n", c.Value(FormatLatency(s.Latency)))
	if s.Info != nil {
		if s.Info.Application != "" {
			c.Printf("  Application: %s\n", s.Info.Application)
		}
		if s.Info.Status != "" {
			c.Printf("  Status: %s\n", s.Info.Status)
		}
		if s.Info.Owner != "" {
			c.Printf("  Owner: %s\n", s.Info.Owner)
		}
		if s.Info.Timestamp != "" {
			c.Printf("  Server time: %s\n", s.Info.Timestamp)
		}
	}
}

// PrintFailure prints a generic notice for a failed command.
func (c *CLIFormatter) PrintFailure(action string, unreachable bool) {
	c.Error("Failed to " + action + ".")
	if unreachable {
		c.Muted("The backend could not be reached. Run 'lifedash status' to check.")
	}
}

// PrintHabits prints habits as a table, or empty when there are none.
func (c *CLIFormatter) PrintHabits(habits []model.Habit, empty string) {
	if len(habits) == 0 {
		c.Muted(empty)
		return
	}

	rows := make([]TableRow, 0, len(habits))
	for _, h := range habits {
		active := "yes"
		if !h.Active {
			active = "no"
		}
		rows = append(rows, TableRow{Columns: []string{
			strconv.FormatInt(h.ID, 10),
			h.Name,
			h.Category.Label(),
			strconv.Itoa(h.TargetPerWeek) + "/week",
			active,
		}})
	}
	c.PrintTable([]string{"ID", "NAME", "CATEGORY", "TARGET", "ACTIVE"}, rows)
}

// PrintHabitCreated prints a created habit.
func (c *CLIFormatter) PrintHabitCreated(h *model.Habit) {
	if h == nil {
		c.Success("Habit created")
		return
	}
	c.Success(fmt.Sprintf("Created habit %s (#%d)", c.HabitName(h.Name), h.ID))
	c.Printf("  Category: %s\n", c.Category(h.Category))
	c.Printf("  Target: %d per week\n", h.TargetPerWeek)
}

// PrintHabitLogged prints a recorded check-in.
func (c *CLIFormatter) PrintHabitLogged(id int64, log *model.HabitLog, fallbackDate model.Date) {
	date := fallbackDate
	if log != nil && !log.LogDate.IsZero() {
		date = log.LogDate
	}
	c.Success(fmt.Sprintf("Logged habit #%d for %s", id, date))
	if log != nil && log.Note != "" {
		c.Printf("  Note: %s\n", c.Note(log.Note))
	}
}

// PrintHabitLogs prints habit logs. A HABIT column is added when any log
// carries a habit name.
func (c *CLIFormatter) PrintHabitLogs(logs []model.HabitLog) {
	if len(logs) == 0 {
		c.Muted(EmptyHabitLogs)
		return
	}

	withHabit := false
	for _, l := range logs {
		if l.HabitName != "" {
			withHabit = true
			break
		}
	}

	headers := []string{"DATE", "VALUE", "NOTE"}
	if withHabit {
		headers = []string{"DATE", "HABIT", "VALUE", "NOTE"}
	}

	rows := make([]TableRow, 0, len(logs))
	for _, l := range logs {
		cols := []string{l.LogDate.String()}
		if withHabit {
			cols = append(cols, l.HabitName)
		}
		cols = append(cols, strconv.Itoa(l.Value), validate.Truncate(l.Note, noteColumnWidth))
		rows = append(rows, TableRow{Columns: cols})
	}
	c.PrintTable(headers, rows)
}

// PrintHealthMetrics prints recorded health metrics.
func (c *CLIFormatter) PrintHealthMetrics(metrics []model.HealthMetric) {
	if len(metrics) == 0 {
		c.Muted(EmptyHealthMetrics)
		return
	}

	rows := make([]TableRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, TableRow{Columns: []string{
			m.RecordedAt.String(),
			FormatHours(m.SleepHours),
			strconv.Itoa(m.MoodScore),
			strconv.Itoa(m.StressLevel),
			strconv.Itoa(m.EnergyLevel),
			validate.Truncate(m.Note, noteColumnWidth),
		}})
	}
	c.PrintTable([]string{"DATE", "SLEEP", "MOOD", "STRESS", "ENERGY", "NOTE"}, rows)
}

// PrintHealthLogged prints a recorded health metric.
func (c *CLIFormatter) PrintHealthLogged(m *model.HealthMetric, fallbackDate model.Date) {
	date := fallbackDate
	if m != nil && !m.RecordedAt.IsZero() {
		date = m.RecordedAt
	}
	c.Success("Logged health metrics for " + date.String())
}

// PrintTrend prints health averages as cards, followed by daily data when present.
func (c *CLIFormatter) PrintTrend(trend model.HealthTrend) {
	if trend.IsEmpty() {
		c.Muted(EmptyHealthTrend)
		return
	}

	c.Title("Health trend")
	if !trend.StartDate.IsZero() && !trend.EndDate.IsZero() {
		c.Muted(fmt.Sprintf("%s to %s, %d records", trend.StartDate, trend.EndDate, trend.TotalRecords))
	} else if trend.TotalRecords > 0 {
		c.Muted(fmt.Sprintf("%d records", trend.TotalRecords))
	}
	c.Println()

	cards := []struct{ label, value string }{
		{"Sleep", FormatHours(trend.AvgSleep)},
		{"Mood", FormatScore(trend.AvgMood)},
		{"Stress", FormatScore(trend.AvgStress)},
		{"Energy", FormatScore(trend.AvgEnergy)},
	}
	parts := make([]string, 0, len(cards))
	for _, card := range cards {
		parts = append(parts, card.label+" "+c.Value(card.value))
	}
	c.Println("  " + strings.Join(parts, "   "))

	if len(trend.DailyData) == 0 {
		return
	}

	c.Println()
	rows := make([]TableRow, 0, len(trend.DailyData))
	for _, d := range trend.DailyData {
		rows = append(rows, TableRow{Columns: []string{
			d.Date.String(),
			optionalFloat(d.SleepHours),
			optionalInt(d.MoodScore),
			optionalInt(d.StressLevel),
			optionalInt(d.EnergyLevel),
		}})
	}
	c.PrintTable([]string{"DATE", "SLEEP", "MOOD", "STRESS", "ENERGY"}, rows)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatHours(*v)
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// PrintWeekly prints the weekly report as a bar chart sized to the terminal.
func (c *CLIFormatter) PrintWeekly(report model.WeeklyReport) {
	if len(report.Habits) == 0 {
		c.Muted(EmptyWeekly)
		return
	}

	title := "This week"
	if !report.WeekStart.IsZero() && !report.WeekEnd.IsZero() {
		title = fmt.Sprintf("Week of %s to %s", report.WeekStart, report.WeekEnd)
	}
	c.Title(title)
	if report.TotalHabits > 0 {
		c.Muted(fmt.Sprintf("%d habits, %s overall", report.TotalHabits, FormatPercent(report.OverallCompletionRate)))
	}
	c.Println()

	nameWidth := 0
	for _, h := range report.Habits {
		if w := lipgloss.Width(h.HabitName); w > nameWidth {
			nameWidth = w
		}
	}
	barWidth := c.Width() - nameWidth - 24
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}

	for _, h := range report.Habits {
		pct := h.CompletionRate
		progress := strconv.Itoa(h.CompletedThisWeek)
		if h.TargetPerWeek > 0 {
			pct = float64(h.CompletedThisWeek) * 100 / float64(h.TargetPerWeek)
			progress += "/" + strconv.Itoa(h.TargetPerWeek)
		}

		line := fmt.Sprintf("%s  %s  %-5s %4s",
			padRight(h.HabitName, nameWidth),
			ProgressBar(pct, barWidth),
			progress,
			FormatPercent(pct))
		if h.CurrentStreak > 1 {
			line += fmt.Sprintf("  streak %d", h.CurrentStreak)
		}
		c.Println(line)
	}
}

// PrintInsight prints the coach insight, or the fallback when none arrived.
func (c *CLIFormatter) PrintInsight(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.Muted(InsightsUnavailable)
		return
	}
	c.Title("Insights")
	c.Println(text)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

// TableRow is one row of a table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table. Plain output is tab separated without a header rule.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	if c.Format == FormatPlain {
		c.Println(strings.Join(headers, "\t"))
		for _, row := range rows {
			c.Println(strings.Join(row.Columns, "\t"))
		}
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) {
				if w := lipgloss.Width(col); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(padRight(h, widths[i]) + "  ")
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(padRight(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

// padRight pads s with spaces to a display width of n.
func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
