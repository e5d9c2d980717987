package usecase

import (
	"context"
	"time"

	"tempo/model"
)

// Storage contracts implemented by the mongo repositories. The services
// depend on these so tests can swap in in-memory fakes.

type TasksRepository interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, taskID, userID string) error
	CountCompletedTasks(ctx context.Context, userID string) (int, error)
}

type SessionsRepository interface {
	CreateSession(ctx context.Context, session *model.FocusSession) error
	GetUserSessions(ctx context.Context, userID string) ([]*model.FocusSession, error)
	GetOpenSession(ctx context.Context, userID string, now time.Time) (*model.FocusSession, error)
	CloseSession(ctx context.Context, sessionID, userID string, endTime time.Time) error
}

// Notifier signals connected clients that persisted data changed.
// Called exactly once per successful mutation, after the write commits.
type Notifier interface {
	Notify()
}
