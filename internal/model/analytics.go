package model

import "encoding/json"

// HealthTrend holds averages computed by the backend over a window of days.
type HealthTrend struct {
	StartDate    Date       `json:"startDate"`
	EndDate      Date       `json:"endDate"`
	TotalRecords int        `json:"totalRecords"`
	AvgSleep     float64    `json:"avgSleep"`
	AvgMood      float64    `json:"avgMood"`
	AvgStress    float64    `json:"avgStress"`
	AvgEnergy    float64    `json:"avgEnergy"`
	DailyData    []TrendDay `json:"dailyData,omitempty"`
}

// TrendDay is the latest reading of one day inside a trend window.
type TrendDay struct {
	Date        Date     `json:"date"`
	SleepHours  *float64 `json:"sleepHours"`
	MoodScore   *int     `json:"moodScore"`
	StressLevel *int     `json:"stressLevel"`
	EnergyLevel *int     `json:"energyLevel"`
}

// trendWire mirrors both spellings the backend has used for the averages.
type trendWire struct {
	StartDate    Date       `json:"startDate"`
	EndDate      Date       `json:"endDate"`
	TotalRecords int        `json:"totalRecords"`
	AvgSleep     *float64   `json:"avgSleep"`
	AvgMood      *float64   `json:"avgMood"`
	AvgStress    *float64   `json:"avgStress"`
	AvgEnergy    *float64   `json:"avgEnergy"`
	SleepHours   *float64   `json:"avgSleepHours"`
	MoodScore    *float64   `json:"avgMoodScore"`
	StressLevel  *float64   `json:"avgStressLevel"`
	EnergyLevel  *float64   `json:"avgEnergyLevel"`
	DailyData    []TrendDay `json:"dailyData"`
}

// UnmarshalJSON accepts avgSleep/avgMood/avgStress/avgEnergy and the longer
// avgSleepHours/avgMoodScore/avgStressLevel/avgEnergyLevel names.
func (t *HealthTrend) UnmarshalJSON(data []byte) error {
	var w trendWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = HealthTrend{
		StartDate:    w.StartDate,
		EndDate:      w.EndDate,
		TotalRecords: w.TotalRecords,
		AvgSleep:     firstOf(w.AvgSleep, w.SleepHours),
		AvgMood:      firstOf(w.AvgMood, w.MoodScore),
		AvgStress:    firstOf(w.AvgStress, w.StressLevel),
		AvgEnergy:    firstOf(w.AvgEnergy, w.EnergyLevel),
		DailyData:    w.DailyData,
	}
	return nil
}

func firstOf(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// IsEmpty reports whether the trend carries no data at all.
func (t HealthTrend) IsEmpty() bool {
	return t.TotalRecords == 0 && t.AvgSleep == 0 && t.AvgMood == 0 &&
		t.AvgStress == 0 && t.AvgEnergy == 0 && len(t.DailyData) == 0
}

// Averages returns the four averages keyed by their short wire names.
// The map is never nil.
func (t HealthTrend) Averages() map[string]float64 {
	if t.IsEmpty() {
		return map[string]float64{}
	}
	return map[string]float64{
		"avgSleep":  t.AvgSleep,
		"avgMood":   t.AvgMood,
		"avgStress": t.AvgStress,
		"avgEnergy": t.AvgEnergy,
	}
}

// WeeklyHabit is one habit's progress in the current week.
type WeeklyHabit struct {
	HabitID           int64    `json:"habitId,omitempty"`
	HabitName         string   `json:"habitName"`
	Category          Category `json:"category,omitempty"`
	TargetPerWeek     int      `json:"targetPerWeek,omitempty"`
	CompletedThisWeek int      `json:"completedThisWeek"`
	CompletionRate    float64  `json:"completionRate,omitempty"`
	CurrentStreak     int      `json:"currentStreak,omitempty"`
}

// WeeklyReport is the backend's weekly habit summary.
type WeeklyReport struct {
	WeekStart             Date          `json:"weekStart"`
	WeekEnd               Date          `json:"weekEnd"`
	TotalHabits           int           `json:"totalHabits"`
	OverallCompletionRate float64       `json:"overallCompletionRate"`
	Habits                []WeeklyHabit `json:"habits"`
}

// Completions maps habit name to completions this week. The map is never nil.
func (r WeeklyReport) Completions() map[string]int {
	out := make(map[string]int, len(r.Habits))
	for _, h := range r.Habits {
		out[h.HabitName] = h.CompletedThisWeek
	}
	return out
}

// Insight is the AI coach response.
type Insight struct {
	Insight string `json:"insight"`
}

// BackendInfo is returned by the backend's info endpoint.
type BackendInfo struct {
	Application string `json:"application"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Owner       string `json:"owner,omitempty"`
}
