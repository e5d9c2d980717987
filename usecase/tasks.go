package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tempo/model"
)

type TaskService struct {
	repo     TasksRepository
	notifier Notifier
	now      func() time.Time
}

func NewTaskService(repo TasksRepository, notifier Notifier) *TaskService {
	return &TaskService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateTaskInput carries the fields a client may set on creation.
// Importance is a pointer so "absent" and "zero" stay distinguishable.
type CreateTaskInput struct {
	Title       string
	Description string
	Importance  *int
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Importance  *int
	Completed   *bool
}

func (u *TaskUpdate) empty() bool {
	return u.Title == nil && u.Description == nil && u.Importance == nil && u.Completed == nil
}

// CreateTask validates and persists a new task for the user
func (svc *TaskService) CreateTask(ctx context.Context, userID string, input CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	// Bounds are in characters, not bytes
	if n := utf8.RuneCountInString(title); n < model.TitleMinLength || n > model.TitleMaxLength {
		return nil, ErrInvalidTitle
	}
	if utf8.RuneCountInString(input.Description) > model.DescriptionMaxLength {
		return nil, ErrInvalidDescription
	}

	importance := model.ImportanceDefault
	if input.Importance != nil {
		importance = model.ClampImportance(*input.Importance)
	}

	now := svc.now()
	task := &model.Task{
		TaskID:      uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Importance:  importance,
		Completed:   false,
		DueDate:     now.Add(model.DefaultDueOffset),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := svc.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	svc.notifier.Notify()
	return task, nil
}

// GetUserTasks returns the user's tasks. The empty case is an empty slice,
// not nil, so clients always get a JSON array.
func (svc *TaskService) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}
	return tasks, nil
}

// UpdateTask applies a partial update to an owned task and persists it
func (svc *TaskService) UpdateTask(ctx context.Context, userID, taskID string, update TaskUpdate) (*model.Task, error) {
	if update.empty() {
		return nil, ErrEmptyUpdate
	}

	task, err := svc.repo.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if n := utf8.RuneCountInString(title); n < model.TitleMinLength || n > model.TitleMaxLength {
			return nil, ErrInvalidTitle
		}
		task.Title = title
	}
	if update.Description != nil {
		if utf8.RuneCountInString(*update.Description) > model.DescriptionMaxLength {
			return nil, ErrInvalidDescription
		}
		task.Description = *update.Description
	}
	if update.Importance != nil {
		task.Importance = model.ClampImportance(*update.Importance)
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	task.UpdatedAt = svc.now()

	if err := svc.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	svc.notifier.Notify()
	return task, nil
}

// DeleteTask removes an owned task. Sessions are never touched.
func (svc *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := svc.repo.DeleteTask(ctx, taskID, userID); err != nil {
		return err
	}

	svc.notifier.Notify()
	return nil
}
