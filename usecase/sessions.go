package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tempo/model"
	"tempo/repository"
)

// FocusService owns the session state machine. A user is "running" when a
// stored session's end time is still in the future; the state is derived
// from storage on every call, never held in memory.
type FocusService struct {
	repo     SessionsRepository
	notifier Notifier
	// singleSession rejects a start while another session is open.
	// Off by default: overlapping sessions are historically allowed.
	singleSession bool
	now           func() time.Time
}

func NewFocusService(repo SessionsRepository, notifier Notifier, singleSession bool) *FocusService {
	return &FocusService{
		repo:          repo,
		notifier:      notifier,
		singleSession: singleSession,
		now:           time.Now,
	}
}

// HandleAction dispatches a timer action. Anything other than start/stop
// (the UI also emits pause, resume and reset) is rejected.
func (svc *FocusService) HandleAction(ctx context.Context, userID, action string, duration int) (*model.FocusSession, error) {
	switch action {
	case model.ActionStart:
		return svc.Start(ctx, userID, duration)
	case model.ActionStop:
		return svc.Stop(ctx, userID)
	default:
		return nil, ErrInvalidAction
	}
}

// Start opens a new session of the requested length. The end time is fixed
// up front: start + duration.
func (svc *FocusService) Start(ctx context.Context, userID string, duration int) (*model.FocusSession, error) {
	if duration < model.SessionDurationMin || duration > model.SessionDurationMax {
		return nil, ErrInvalidDuration
	}

	now := svc.now()
	if svc.singleSession {
		_, err := svc.repo.GetOpenSession(ctx, userID, now)
		if err == nil {
			return nil, ErrSessionRunning
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	session := &model.FocusSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Duration:  duration,
		StartTime: now,
		EndTime:   now.Add(time.Duration(duration) * time.Second),
	}

	if err := svc.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	svc.notifier.Notify()
	return session, nil
}

// Stop ends the open session early by rewriting its end time to now.
// The stored duration keeps the originally requested value.
func (svc *FocusService) Stop(ctx context.Context, userID string) (*model.FocusSession, error) {
	now := svc.now()
	session, err := svc.repo.GetOpenSession(ctx, userID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	if err := svc.repo.CloseSession(ctx, session.SessionID, userID, now); err != nil {
		return nil, err
	}
	session.EndTime = now

	svc.notifier.Notify()
	return session, nil
}
