package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/model"
)

func newStatsServiceForTest(tasks *fakeTasksRepo, sessions *fakeSessionsRepo, now time.Time) *StatsService {
	svc := NewStatsService(tasks, sessions)
	svc.now = func() time.Time { return now }
	return svc
}

func sessionEndingAt(id, userID string, end time.Time, duration int) *model.FocusSession {
	return &model.FocusSession{
		SessionID: id,
		UserID:    userID,
		Duration:  duration,
		StartTime: end.Add(-time.Duration(duration) * time.Second),
		EndTime:   end,
	}
}

func TestComputeStats(t *testing.T) {
	// Mid-day UTC so day arithmetic stays away from midnight edges
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	t.Run("EmptyUser", func(t *testing.T) {
		svc := newStatsServiceForTest(newFakeTasksRepo(), newFakeSessionsRepo(), now)

		stats, err := svc.ComputeStats(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TasksCompleted)
		assert.Equal(t, 0, stats.TotalFocus)
		assert.Equal(t, 0, stats.CurrentStreak)
	})

	t.Run("StreakBreaksAtFirstGap", func(t *testing.T) {
		sessions := newFakeSessionsRepo()
		// Sessions on today, -1, -2 and -4: the gap at -3 caps the streak at 3
		for i, daysAgo := range []int{0, 1, 2, 4} {
			end := now.AddDate(0, 0, -daysAgo)
			s := sessionEndingAt(string(rune('a'+i)), "user-1", end, 600)
			sessions.sessions[s.SessionID] = s
		}
		svc := newStatsServiceForTest(newFakeTasksRepo(), sessions, now)

		stats, err := svc.ComputeStats(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, stats.CurrentStreak)
	})

	t.Run("StreakZeroWithoutToday", func(t *testing.T) {
		sessions := newFakeSessionsRepo()
		s := sessionEndingAt("y", "user-1", now.AddDate(0, 0, -1), 600)
		sessions.sessions[s.SessionID] = s
		svc := newStatsServiceForTest(newFakeTasksRepo(), sessions, now)

		stats, err := svc.ComputeStats(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.CurrentStreak, "yesterday alone does not start a streak")
	})

	t.Run("MultipleSessionsOneDayCountOnce", func(t *testing.T) {
		sessions := newFakeSessionsRepo()
		for i := 0; i < 3; i++ {
			s := sessionEndingAt(string(rune('a'+i)), "user-1", now.Add(-time.Duration(i)*time.Hour), 600)
			sessions.sessions[s.SessionID] = s
		}
		svc := newStatsServiceForTest(newFakeTasksRepo(), sessions, now)

		stats, err := svc.ComputeStats(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.CurrentStreak)
		assert.Equal(t, 1800, stats.TotalFocus)
	})

	t.Run("TotalFocusUsesRequestedDurations", func(t *testing.T) {
		sessions := newFakeSessionsRepo()
		full := sessionEndingAt("full", "user-1", now.Add(-time.Hour), 600)
		// Stopped early after a minute; duration stays the requested 1500
		early := sessionEndingAt("early", "user-1", now, 1500)
		early.StartTime = now.Add(-time.Minute)
		sessions.sessions[full.SessionID] = full
		sessions.sessions[early.SessionID] = early
		svc := newStatsServiceForTest(newFakeTasksRepo(), sessions, now)

		stats, err := svc.ComputeStats(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 2100, stats.TotalFocus)
	})

	t.Run("CompletedTaskCount", func(t *testing.T) {
		tasks := newFakeTasksRepo()
		tasks.tasks["1"] = &model.Task{TaskID: "1", UserID: "user-1", Title: "done", Completed: true}
		tasks.tasks["2"] = &model.Task{TaskID: "2", UserID: "user-1", Title: "open", Completed: false}
		tasks.tasks["3"] = &model.Task{TaskID: "3", UserID: "user-2", Title: "other", Completed: true}
		svc := newStatsServiceForTest(tasks, newFakeSessionsRepo(), now)

		stats, err := svc.ComputeStats(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TasksCompleted)
	})

	t.Run("OwnershipIsolation", func(t *testing.T) {
		sessions := newFakeSessionsRepo()
		s := sessionEndingAt("a", "user-a", now, 600)
		sessions.sessions[s.SessionID] = s
		svc := newStatsServiceForTest(newFakeTasksRepo(), sessions, now)

		stats, err := svc.ComputeStats(context.Background(), "user-b")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalFocus)
		assert.Equal(t, 0, stats.CurrentStreak)
	})

	t.Run("NoPartialResultsOnFailure", func(t *testing.T) {
		tasks := newFakeTasksRepo()
		sessions := newFakeSessionsRepo()
		sessions.err = errors.New("query failed")
		svc := newStatsServiceForTest(tasks, sessions, now)

		stats, err := svc.ComputeStats(context.Background(), "user-1")
		assert.Error(t, err)
		assert.Nil(t, stats)

		tasks.err = errors.New("count failed")
		sessions.err = nil
		stats, err = svc.ComputeStats(context.Background(), "user-1")
		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}

func TestDayOfUsesUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2025, 6, 10, 23, 30, 0, 0, loc)

	day := dayOf(local)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), day)
}
