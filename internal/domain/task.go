package domain

import (
	"fmt"

	"github.com/alexanderramin/protocol/internal/duration"
)

// TaskTemplate is one entry of the recurring base schedule.
type TaskTemplate struct {
	Label    string `json:"label" yaml:"label"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
	Duration int    `json:"duration" yaml:"duration,omitempty"`
}

// NewTaskTemplate builds a template with its duration derived from start and end.
func NewTaskTemplate(label, start, end string) TaskTemplate {
	t := TaskTemplate{Label: label, Start: start, End: end}
	t.RecomputeDuration()
	return t
}

// RecomputeDuration derives Duration from Start and End.
func (t *TaskTemplate) RecomputeDuration() {
	t.Duration = duration.Between(t.Start, t.End)
}

// Instantiate returns a fresh daily task with completion state reset.
func (t TaskTemplate) Instantiate() Task {
	return Task{
		Label:    t.Label,
		Start:    t.Start,
		End:      t.End,
		Duration: t.Duration,
	}
}

// TaskKey identifies a task within one day.
type TaskKey struct {
	Label string
	Start string
}

func (k TaskKey) String() string {
	return fmt.Sprintf("%s@%s", k.Label, k.Start)
}

// Task is a scheduled task instance for one calendar day.
type Task struct {
	Label              string `json:"label"`
	Start              string `json:"start"`
	End                string `json:"end"`
	Duration           int    `json:"duration"`
	Completed          bool   `json:"completed"`
	PartiallyCompleted bool   `json:"partiallyCompleted"`
	Remaining          int    `json:"remaining"`
}

// Key returns the (label, start) identity of the task.
func (t Task) Key() TaskKey {
	return TaskKey{Label: t.Label, Start: t.Start}
}

// IsClosed reports whether the task is resolved for the day. Both completion
// paths are terminal.
func (t Task) IsClosed() bool {
	return t.Completed
}

// Complete closes the task without generating debt.
func (t *Task) Complete() error {
	if t.Completed {
		return fmt.Errorf("completing %s: %w", t.Key(), ErrTaskClosed)
	}
	t.Completed = true
	return nil
}

// PartialComplete records completedMinutes of work and closes the task. When
// less than the scheduled duration was done, the shortfall is returned as a
// new open penalty with an id from newID; the task itself keeps Remaining at
// zero. newID is only called when a penalty is created.
func (t *Task) PartialComplete(completedMinutes int, newID func() string) (*Penalty, error) {
	if completedMinutes <= 0 {
		return nil, ErrInvalidMinutes
	}
	if t.Completed {
		return nil, fmt.Errorf("partially completing %s: %w", t.Key(), ErrTaskClosed)
	}

	remaining := t.Duration - completedMinutes
	if remaining <= 0 {
		t.Completed = true
		return nil, nil
	}

	t.PartiallyCompleted = true
	t.Remaining = 0
	t.Completed = true
	p := NewPenalty(newID(), t.Label, remaining)
	return &p, nil
}

// OutstandingMinutes is the debt an unresolved task contributes at rollover.
// Closed tasks owe nothing. A partially completed task that is still open
// owes its Remaining; every other open task owes its full duration.
func (t Task) OutstandingMinutes() int {
	if t.Completed {
		return 0
	}
	if t.PartiallyCompleted {
		return t.Remaining
	}
	return t.Duration
}
