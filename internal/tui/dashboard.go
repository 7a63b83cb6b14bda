package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/lifedash/internal/api"
	"github.com/manav03panchal/lifedash/internal/model"
)

// Source is the part of the backend client the dashboard reads from.
// *api.Client satisfies it.
type Source interface {
	BaseURL() string
	Health(ctx context.Context) api.Result[bool]
	HealthTrendDays(ctx context.Context, days int) api.Result[model.HealthTrend]
	WeeklyHabits(ctx context.Context) api.Result[model.WeeklyReport]
	Insights(ctx context.Context) api.Result[model.Insight]
}

// Snapshot is everything one refresh fetched.
type Snapshot struct {
	Reachable bool
	Latency   time.Duration
	Failure   string
	Trend     model.HealthTrend
	Weekly    model.WeeklyReport
	FetchedAt time.Time
}

// tickMsg is sent when the auto-refresh timer fires.
type tickMsg time.Time

// snapshotMsg carries the result of a refresh.
type snapshotMsg Snapshot

// insightMsg carries the AI coach response.
type insightMsg struct {
	text string
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	snapshot      Snapshot
	insight       string
	insightLoaded bool

	source Source
	ctx    context.Context

	// UI state
	spinner        spinner.Model
	loading        bool
	loadingInsight bool
	width          int
	height         int
	message        string
	messageExp     time.Time

	// Configuration
	refreshInterval time.Duration
	trendDays       int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Source          Source
	RefreshInterval time.Duration
	TrendDays       int
}

// NewDashboardModel creates a new dashboard model. A zero refresh interval
// disables auto-refresh.
func NewDashboardModel(ctx context.Context, config DashboardConfig) *DashboardModel {
	if ctx == nil {
		ctx = context.Background()
	}
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorPrimary)),
	)

	return &DashboardModel{
		source:          config.Source,
		ctx:             ctx,
		spinner:         s,
		loading:         true,
		refreshInterval: config.RefreshInterval,
		trendDays:       config.TrendDays,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchCmd(),
		m.tickCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.loadingInsight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.loading {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.startRefresh(), m.tickCmd())

	case snapshotMsg:
		m.snapshot = Snapshot(msg)
		m.loading = false
		return m, nil

	case insightMsg:
		m.insight = msg.text
		m.insightLoaded = true
		m.loadingInsight = false
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "r":
		if m.loading {
			return m, nil
		}
		m.setMessage("Refreshing", 2*time.Second)
		return m, m.startRefresh()

	case "i":
		if m.loadingInsight {
			return m, nil
		}
		if !m.snapshot.Reachable && !m.loading {
			m.setMessage("Backend unreachable, insights need the backend", 3*time.Second)
			return m, nil
		}
		m.loadingInsight = true
		return m, tea.Batch(m.spinner.Tick, m.insightCmd())
	}

	return m, nil
}

func (m *DashboardModel) startRefresh() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Status message
	if m.message != "" && time.Now().Before(m.messageExp) {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	if m.loading && m.snapshot.FetchedAt.IsZero() {
		sections = append(sections, m.spinner.View()+" "+StyleSubtitle.Render("Contacting backend..."))
		sections = append(sections, HelpBar())
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, NewStatusComponent(m.snapshot, m.source.BaseURL(), m.width).View())
	sections = append(sections, NewTrendComponent(m.snapshot.Trend, m.trendDays, m.width).View())
	sections = append(sections, NewWeeklyComponent(m.snapshot.Weekly, m.width).View())

	insight := &InsightComponent{Text: m.insight, Loaded: m.insightLoaded, Width: m.width}
	if m.loadingInsight {
		insight.Loading = m.spinner.View()
	}
	if view := insight.View(); view != "" {
		sections = append(sections, view)
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Life Analytics Dashboard")

	status := time.Now().Format("Mon Jan 2, 15:04")
	if m.loading {
		status = m.spinner.View() + " refreshing"
	} else if !m.snapshot.FetchedAt.IsZero() {
		status = "updated " + m.snapshot.FetchedAt.Format("15:04:05")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", StyleSubtitle.Render(status)) + "\n"
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// fetchCmd loads every section one call after another. When the health check
// fails the remaining calls are skipped and their sections show empty states.
func (m *DashboardModel) fetchCmd() tea.Cmd {
	source, ctx, days := m.source, m.ctx, m.trendDays
	return func() tea.Msg {
		return snapshotMsg(Fetch(ctx, source, days))
	}
}

// Fetch runs one sequential refresh against source.
func Fetch(ctx context.Context, source Source, trendDays int) Snapshot {
	start := time.Now()
	health := source.Health(ctx)
	snap := Snapshot{
		Reachable: health.Value,
		Latency:   time.Since(start),
		Failure:   health.Failure.Error(),
	}

	if snap.Reachable {
		snap.Trend = source.HealthTrendDays(ctx, trendDays).Value
		snap.Weekly = source.WeeklyHabits(ctx).Value
	}
	snap.FetchedAt = time.Now()
	return snap
}

// insightCmd asks the AI coach for an insight.
func (m *DashboardModel) insightCmd() tea.Cmd {
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		return insightMsg{text: source.Insights(ctx).Value.Insight}
	}
}

// tickCmd returns a command that fires the next auto-refresh.
func (m *DashboardModel) tickCmd() tea.Cmd {
	if m.refreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the dashboard TUI.
func Run(ctx context.Context, config DashboardConfig) error {
	model := NewDashboardModel(ctx, config)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
