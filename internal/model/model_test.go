package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Category Tests
// =============================================================================

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{"HEALTH", CategoryHealth, false},
		{"health", CategoryHealth, false},
		{"  Mindfulness ", CategoryMindfulness, false},
		{"learning", CategoryLearning, false},
		{"other", CategoryOther, false},
		{"productivity", CategoryProductivity, false},
		{"study", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Health", CategoryHealth.Label())
	assert.Equal(t, "Productivity", CategoryProductivity.Label())
	assert.Equal(t, "", Category("").Label())
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, CategoryHealth, cats[0])
	assert.Equal(t, CategoryOther, cats[4])
	for _, c := range cats {
		assert.True(t, c.IsValid())
	}
}

// =============================================================================
// Date Tests
// =============================================================================

func TestDateMarshal(t *testing.T) {
	d := NewDate(time.Date(2025, 12, 4, 18, 30, 0, 0, time.Local))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-04"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDateUnmarshal(t *testing.T) {
	t.Run("plain_date", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-12-04"`), &d))
		assert.Equal(t, "2025-12-04", d.String())
	})

	t.Run("local_date_time", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-12-04T07:15:00.123456"`), &d))
		assert.Equal(t, "2025-12-04", d.String())
	})

	t.Run("rfc3339", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-12-04T07:15:00Z"`), &d))
		assert.Equal(t, "2025-12-04", d.String())
	})

	t.Run("null", func(t *testing.T) {
		d := Today()
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("not_a_date", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`42`), &d))
	})
}

func TestDateAddDays(t *testing.T) {
	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
}

// =============================================================================
// Request Body Tests
// =============================================================================

func TestCheckInBody(t *testing.T) {
	date, err := ParseDate("2025-12-04")
	require.NoError(t, err)

	data, err := json.Marshal(CheckIn("", date))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":1,"note":"","logDate":"2025-12-04"}`, string(data))
}

func TestNewHabitRequest(t *testing.T) {
	data, err := json.Marshal(NewHabitRequest("Run", CategoryHealth, 5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Run","category":"HEALTH","targetPerWeek":5,"active":true}`, string(data))
}

// =============================================================================
// Analytics Tests
// =============================================================================

func TestHealthTrendAliases(t *testing.T) {
	t.Run("short_names", func(t *testing.T) {
		var trend HealthTrend
		require.NoError(t, json.Unmarshal([]byte(`{"avgSleep":7.5,"avgMood":6,"avgStress":3.25,"avgEnergy":5}`), &trend))
		assert.Equal(t, 7.5, trend.AvgSleep)
		assert.Equal(t, 6.0, trend.AvgMood)
		assert.Equal(t, 3.25, trend.AvgStress)
		assert.Equal(t, 5.0, trend.AvgEnergy)
	})

	t.Run("long_names", func(t *testing.T) {
		var trend HealthTrend
		body := `{"startDate":"2025-11-28","endDate":"2025-12-04","totalRecords":3,
			"avgSleepHours":6.5,"avgMoodScore":4,"avgStressLevel":2,"avgEnergyLevel":3.5,
			"dailyData":[{"date":"2025-12-04","sleepHours":7.0,"moodScore":4,"stressLevel":null,"energyLevel":3}]}`
		require.NoError(t, json.Unmarshal([]byte(body), &trend))
		assert.Equal(t, 6.5, trend.AvgSleep)
		assert.Equal(t, 3.5, trend.AvgEnergy)
		assert.Equal(t, 3, trend.TotalRecords)
		require.Len(t, trend.DailyData, 1)
		assert.Nil(t, trend.DailyData[0].StressLevel)
		assert.Equal(t, "2025-11-28", trend.StartDate.String())
	})

	t.Run("wrong_shape", func(t *testing.T) {
		var trend HealthTrend
		assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &trend))
	})
}

func TestHealthTrendAverages(t *testing.T) {
	assert.Empty(t, HealthTrend{}.Averages())
	assert.NotNil(t, HealthTrend{}.Averages())

	avgs := HealthTrend{AvgSleep: 7, AvgMood: 6}.Averages()
	assert.Len(t, avgs, 4)
	assert.Equal(t, 7.0, avgs["avgSleep"])
}

func TestWeeklyReportCompletions(t *testing.T) {
	var report WeeklyReport
	body := `{"habits":[{"habitName":"Run","completedThisWeek":3},{"habitName":"Read","completedThisWeek":0}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &report))

	assert.Equal(t, map[string]int{"Run": 3, "Read": 0}, report.Completions())

	empty := WeeklyReport{}.Completions()
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
