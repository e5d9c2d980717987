package usecase

import (
	"context"
	"time"

	"tempo/model"
)

// StatsService derives summary values from stored tasks and sessions.
// Nothing is cached: every call recomputes from two independent reads.
type StatsService struct {
	tasks    TasksRepository
	sessions SessionsRepository
	now      func() time.Time
}

func NewStatsService(tasks TasksRepository, sessions SessionsRepository) *StatsService {
	return &StatsService{
		tasks:    tasks,
		sessions: sessions,
		now:      time.Now,
	}
}

// ComputeStats returns the completed-task count, total focus seconds and
// current daily streak for a user. Both reads must succeed; there are no
// partial results.
func (svc *StatsService) ComputeStats(ctx context.Context, userID string) (*model.Stats, error) {
	completed, err := svc.tasks.CountCompletedTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions, err := svc.sessions.GetUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.Stats{TasksCompleted: completed}

	// Streak days are UTC calendar days taken from session end times.
	days := make(map[time.Time]struct{}, len(sessions))
	for _, session := range sessions {
		stats.TotalFocus += session.Duration
		days[dayOf(session.EndTime)] = struct{}{}
	}

	// Walk backward from today while each day has at least one session.
	for day := dayOf(svc.now()); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		stats.CurrentStreak++
	}

	return stats, nil
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
