package model

// Stats is derived on every read, never stored.
type Stats struct {
	TasksCompleted int `json:"tasksCompleted"`
	// TotalFocus is the sum of requested session durations in seconds.
	// Sessions stopped early still count with their full requested length.
	TotalFocus int `json:"totalFocus"`
	// CurrentStreak counts consecutive UTC calendar days, ending today,
	// with at least one session end falling on the day.
	CurrentStreak int `json:"currentStreak"`
}
