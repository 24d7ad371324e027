package domain

import "errors"

var (
	// ErrTaskClosed is returned when a command targets a task that is already
	// completed for the day.
	ErrTaskClosed = errors.New("task already closed for today")

	// ErrPenaltyClosed is returned when a command targets a resolved penalty.
	ErrPenaltyClosed = errors.New("penalty already resolved")

	// ErrInvalidMinutes is returned for non-positive minute arguments. The
	// command is dropped without touching state.
	ErrInvalidMinutes = errors.New("minutes must be a positive integer")
)
