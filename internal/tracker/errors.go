package tracker

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrPenaltyNotFound  = errors.New("penalty not found")
	ErrAmbiguousTask    = errors.New("ambiguous task")
	ErrAmbiguousPenalty = errors.New("ambiguous penalty")
	ErrNotOpen          = errors.New("tracker is not open")
	ErrQueueClosed      = errors.New("write queue is closed")
)
