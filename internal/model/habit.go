package model

// Habit is a trackable habit definition.
type Habit struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	TargetPerWeek int      `json:"targetPerWeek"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// NewHabit is the request body for creating a habit.
type NewHabit struct {
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	TargetPerWeek int      `json:"targetPerWeek"`
	Active        bool     `json:"active"`
}

// NewHabitRequest builds a create request. New habits are always active.
func NewHabitRequest(name string, category Category, targetPerWeek int) NewHabit {
	return NewHabit{
		Name:          name,
		Category:      category,
		TargetPerWeek: targetPerWeek,
		Active:        true,
	}
}

// HabitLog is one check-in of a habit.
type HabitLog struct {
	ID        int64  `json:"id,omitempty"`
	HabitID   int64  `json:"habitId,omitempty"`
	Value     int    `json:"value"`
	Note      string `json:"note,omitempty"`
	LogDate   Date   `json:"logDate"`
	CreatedAt string `json:"createdAt,omitempty"`

	// HabitName is filled in by callers that join logs across habits.
	HabitName string `json:"habitName,omitempty"`
}

// NewHabitLog is the request body for logging a habit. Note is always sent,
// as "" when empty.
type NewHabitLog struct {
	Value   int    `json:"value"`
	Note    string `json:"note"`
	LogDate Date   `json:"logDate"`
}

// CheckIn builds a single completion for the given date.
func CheckIn(note string, date Date) NewHabitLog {
	return NewHabitLog{
		Value:   1,
		Note:    note,
		LogDate: date,
	}
}
