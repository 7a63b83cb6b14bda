package model

// HealthMetric is one daily health check-in.
type HealthMetric struct {
	ID          int64   `json:"id,omitempty"`
	SleepHours  float64 `json:"sleepHours"`
	MoodScore   int     `json:"moodScore"`
	StressLevel int     `json:"stressLevel"`
	EnergyLevel int     `json:"energyLevel"`
	Note        string  `json:"note,omitempty"`
	RecordedAt  Date    `json:"recordedAt"`
}

// NewHealthMetric is the request body for logging health metrics.
type NewHealthMetric struct {
	SleepHours  float64 `json:"sleepHours"`
	MoodScore   int     `json:"moodScore"`
	StressLevel int     `json:"stressLevel"`
	EnergyLevel int     `json:"energyLevel"`
	Note        string  `json:"note"`
	RecordedAt  Date    `json:"recordedAt"`
}
