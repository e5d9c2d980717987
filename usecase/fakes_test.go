package usecase

import (
	"context"
	"time"

	"tempo/model"
	"tempo/repository"
)

// In-memory stand-ins for the mongo repositories. Owner scoping mirrors the
// real filters: records for other users are invisible, not forbidden.

type fakeTasksRepo struct {
	tasks map[string]*model.Task
	err   error // when set, every call fails with it
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{tasks: make(map[string]*model.Task)}
}

func (r *fakeTasksRepo) CreateTask(_ context.Context, task *model.Task) error {
	if r.err != nil {
		return r.err
	}
	clone := *task
	r.tasks[task.TaskID] = &clone
	return nil
}

func (r *fakeTasksRepo) GetUserTasks(_ context.Context, userID string) ([]*model.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*model.Task
	for _, task := range r.tasks {
		if task.UserID == userID {
			clone := *task
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeTasksRepo) GetTask(_ context.Context, taskID, userID string) (*model.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, repository.ErrNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTasksRepo) UpdateTask(_ context.Context, task *model.Task) error {
	if r.err != nil {
		return r.err
	}
	existing, ok := r.tasks[task.TaskID]
	if !ok || existing.UserID != task.UserID {
		return repository.ErrNotFound
	}
	clone := *task
	r.tasks[task.TaskID] = &clone
	return nil
}

func (r *fakeTasksRepo) DeleteTask(_ context.Context, taskID, userID string) error {
	if r.err != nil {
		return r.err
	}
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func (r *fakeTasksRepo) CountCompletedTasks(_ context.Context, userID string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, task := range r.tasks {
		if task.UserID == userID && task.Completed {
			count++
		}
	}
	return count, nil
}

type fakeSessionsRepo struct {
	sessions map[string]*model.FocusSession
	err      error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{sessions: make(map[string]*model.FocusSession)}
}

func (r *fakeSessionsRepo) CreateSession(_ context.Context, session *model.FocusSession) error {
	if r.err != nil {
		return r.err
	}
	clone := *session
	r.sessions[session.SessionID] = &clone
	return nil
}

func (r *fakeSessionsRepo) GetUserSessions(_ context.Context, userID string) ([]*model.FocusSession, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*model.FocusSession
	for _, session := range r.sessions {
		if session.UserID == userID {
			clone := *session
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeSessionsRepo) GetOpenSession(_ context.Context, userID string, now time.Time) (*model.FocusSession, error) {
	if r.err != nil {
		return nil, r.err
	}
	var latest *model.FocusSession
	for _, session := range r.sessions {
		if session.UserID != userID || !session.Open(now) {
			continue
		}
		if latest == nil || session.StartTime.After(latest.StartTime) {
			latest = session
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeSessionsRepo) CloseSession(_ context.Context, sessionID, userID string, endTime time.Time) error {
	if r.err != nil {
		return r.err
	}
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return repository.ErrNotFound
	}
	session.EndTime = endTime
	return nil
}

type fakeNotifier struct {
	notifications int
}

func (n *fakeNotifier) Notify() {
	n.notifications++
}
