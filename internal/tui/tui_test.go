package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/lifedash/internal/api"
	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/output"
)

// fakeSource records the order of calls and answers from fixed values.
type fakeSource struct {
	mu        sync.Mutex
	calls     []string
	reachable bool
	trend     model.HealthTrend
	weekly    model.WeeklyReport
	insight   string
	trendDays int
}

func (f *fakeSource) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeSource) BaseURL() string { return "http://localhost:8080/api" }

func (f *fakeSource) Health(ctx context.Context) api.Result[bool] {
	f.record("health")
	if !f.reachable {
		return api.Result[bool]{Failure: api.Failure{Kind: api.FailureTransport}}
	}
	return api.Result[bool]{Value: true}
}

func (f *fakeSource) HealthTrendDays(ctx context.Context, days int) api.Result[model.HealthTrend] {
	f.record("trend")
	f.trendDays = days
	return api.Result[model.HealthTrend]{Value: f.trend}
}

func (f *fakeSource) WeeklyHabits(ctx context.Context) api.Result[model.WeeklyReport] {
	f.record("weekly")
	return api.Result[model.WeeklyReport]{Value: f.weekly}
}

func (f *fakeSource) Insights(ctx context.Context) api.Result[model.Insight] {
	f.record("insights")
	return api.Result[model.Insight]{Value: model.Insight{Insight: f.insight}}
}

func sampleSource() *fakeSource {
	return &fakeSource{
		reachable: true,
		trend: model.HealthTrend{
			TotalRecords: 5,
			AvgSleep:     7.2,
			AvgMood:      6.8,
			AvgStress:    3.4,
			AvgEnergy:    6.1,
		},
		weekly: model.WeeklyReport{
			TotalHabits:           1,
			OverallCompletionRate: 60,
			Habits: []model.WeeklyHabit{
				{HabitName: "Run", TargetPerWeek: 5, CompletedThisWeek: 3, CurrentStreak: 2},
			},
		},
		insight: "Sleep more on weeknights.",
	}
}

// =============================================================================
// Fetch Tests
// =============================================================================

func TestFetchRunsSequentially(t *testing.T) {
	src := sampleSource()

	snap := Fetch(context.Background(), src, 14)

	assert.Equal(t, []string{"health", "trend", "weekly"}, src.calls)
	assert.Equal(t, 14, src.trendDays)
	assert.True(t, snap.Reachable)
	assert.Equal(t, 7.2, snap.Trend.AvgSleep)
	assert.Len(t, snap.Weekly.Habits, 1)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestFetchSkipsWhenUnreachable(t *testing.T) {
	src := sampleSource()
	src.reachable = false

	snap := Fetch(context.Background(), src, 7)

	assert.Equal(t, []string{"health"}, src.calls)
	assert.False(t, snap.Reachable)
	assert.NotEmpty(t, snap.Failure)
	assert.True(t, snap.Trend.IsEmpty())
	assert.Empty(t, snap.Weekly.Completions())
}

// =============================================================================
// Model Tests
// =============================================================================

func newTestModel(src Source) *DashboardModel {
	m := NewDashboardModel(context.Background(), DashboardConfig{Source: src, TrendDays: 7})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestNewDashboardModel(t *testing.T) {
	//nolint:staticcheck // nil context is handled on purpose
	m := NewDashboardModel(nil, DashboardConfig{Source: sampleSource(), RefreshInterval: time.Minute, TrendDays: 7})

	assert.True(t, m.loading)
	assert.Equal(t, time.Minute, m.refreshInterval)
	assert.NotNil(t, m.Init())
}

func TestTickDisabledWithoutInterval(t *testing.T) {
	m := NewDashboardModel(context.Background(), DashboardConfig{Source: sampleSource()})
	assert.Nil(t, m.tickCmd())
}

func TestViewBeforeSize(t *testing.T) {
	m := NewDashboardModel(context.Background(), DashboardConfig{Source: sampleSource()})
	assert.Equal(t, "Loading...", m.View())
}

func TestViewWhileFirstLoad(t *testing.T) {
	m := newTestModel(sampleSource())
	assert.Contains(t, m.View(), "Contacting backend")
}

func TestSnapshotUpdatesView(t *testing.T) {
	src := sampleSource()
	m := newTestModel(src)

	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))
	assert.False(t, m.loading)

	view := m.View()
	assert.Contains(t, view, "ONLINE")
	assert.Contains(t, view, "7.2h")
	assert.Contains(t, view, "Run")
	assert.Contains(t, view, "3/5")
	assert.NotContains(t, view, "Insights")
}

func TestOfflineView(t *testing.T) {
	src := sampleSource()
	src.reachable = false
	m := newTestModel(src)

	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))

	view := m.View()
	assert.Contains(t, view, "OFFLINE")
	assert.Contains(t, view, output.EmptyHealthTrend)
	assert.Contains(t, view, output.EmptyWeekly)
}

func TestRefreshKey(t *testing.T) {
	src := sampleSource()
	m := newTestModel(src)
	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	// A second refresh while one is running is ignored.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd)
}

func TestInsightKey(t *testing.T) {
	src := sampleSource()
	m := newTestModel(src)
	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	require.NotNil(t, cmd)
	assert.True(t, m.loadingInsight)
	assert.Contains(t, m.View(), "Analyzing your data")

	msg := m.insightCmd()()
	m.Update(msg)
	assert.False(t, m.loadingInsight)
	assert.Contains(t, m.View(), "Sleep more on weeknights.")
}

func TestInsightUnavailable(t *testing.T) {
	src := sampleSource()
	src.insight = ""
	m := newTestModel(src)
	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))

	m.Update(insightMsg{text: ""})
	assert.Contains(t, m.View(), output.InsightsUnavailable)
}

func TestInsightKeyOffline(t *testing.T) {
	src := sampleSource()
	src.reachable = false
	m := newTestModel(src)
	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	assert.Nil(t, cmd)
	assert.False(t, m.loadingInsight)
	assert.Contains(t, m.View(), "Backend unreachable")
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(sampleSource())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAutoRefreshTick(t *testing.T) {
	src := sampleSource()
	m := NewDashboardModel(context.Background(), DashboardConfig{Source: src, RefreshInterval: time.Minute})
	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))

	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.True(t, m.loading)
}

func TestSpinnerIgnoredWhenIdle(t *testing.T) {
	src := sampleSource()
	m := newTestModel(src)
	m.Update(snapshotMsg(Fetch(context.Background(), src, 7)))

	_, cmd := m.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

// =============================================================================
// Component Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
	}{
		{"zero", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.NotEmpty(t, bar)
		})
	}
}

func TestProgressBarWidth(t *testing.T) {
	bar10 := ProgressBar(50, 10)
	bar20 := ProgressBar(50, 20)
	assert.Greater(t, len(bar20), len(bar10))
}

func TestFormatHabit(t *testing.T) {
	assert.Contains(t, FormatHabit("Run", ""), "Run")

	result := FormatHabit("Run", model.CategoryHealth)
	assert.Contains(t, result, "Run")
	assert.Contains(t, result, model.CategoryHealth.Label())
}

func TestWeeklyComponentStreak(t *testing.T) {
	view := NewWeeklyComponent(sampleSource().weekly, 80).View()
	assert.Contains(t, view, "streak 2")
	assert.Contains(t, view, "1 habits, 60% overall")
}

func TestTrendComponentTitle(t *testing.T) {
	assert.Contains(t, NewTrendComponent(model.HealthTrend{}, 14, 80).View(), "last 14 days")
	assert.Contains(t, NewTrendComponent(model.HealthTrend{}, 0, 80).View(), "Health")
}

func TestInsightComponentHiddenUntilRequested(t *testing.T) {
	ic := &InsightComponent{Width: 80}
	assert.Empty(t, ic.View())
}

func TestHelpBar(t *testing.T) {
	help := HelpBar()
	assert.Contains(t, help, "refresh")
	assert.Contains(t, help, "insights")
	assert.Contains(t, help, "quit")
}
