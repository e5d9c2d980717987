package model

import "time"

const (
	// Session length bounds in seconds: 5 minutes to 4 hours.
	SessionDurationMin = 300
	SessionDurationMax = 14400

	ActionStart = "start"
	ActionStop  = "stop"
)

type FocusSession struct {
	SessionID string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Duration  int       `bson:"duration" json:"duration"`
	StartTime time.Time `bson:"start_time" json:"start_time"`
	EndTime   time.Time `bson:"end_time" json:"end_time"`
}

// Open reports whether the session is still in progress at the given time.
// A session stopped early has its end time rewritten to the stop moment,
// so this holds for at most one wall-clock window per session.
func (s *FocusSession) Open(at time.Time) bool {
	return s.EndTime.After(at)
}
