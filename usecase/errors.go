package usecase

import "errors"

var (
	ErrInvalidTitle       = errors.New("title must be between 3 and 100 characters")
	ErrInvalidDescription = errors.New("description cannot exceed 500 characters")
	ErrEmptyUpdate        = errors.New("update contains no fields")

	ErrInvalidAction   = errors.New("action must be start or stop")
	ErrInvalidDuration = errors.New("duration must be between 300 and 14400 seconds")
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionRunning  = errors.New("a session is already running")
)
