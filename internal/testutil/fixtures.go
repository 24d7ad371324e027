package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/google/uuid"
)

var testIDCounter atomic.Int64

// SeqIDs returns a deterministic penalty id generator: prefix-1, prefix-2, ...
func SeqIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithPartial(remaining int) TaskOption {
	return func(t *domain.Task) {
		t.PartiallyCompleted = true
		t.Remaining = remaining
	}
}

func WithDuration(min int) TaskOption {
	return func(t *domain.Task) {
		t.Duration = min
	}
}

// NewTestTask builds an open task from start/end with a derived duration.
func NewTestTask(label, start, end string, opts ...TaskOption) domain.Task {
	t := domain.NewTaskTemplate(label, start, end).Instantiate()
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Penalty options
type PenaltyOption func(*domain.Penalty)

func WithPenaltyID(id string) PenaltyOption {
	return func(p *domain.Penalty) {
		p.ID = id
	}
}

func WithPenaltyCompleted() PenaltyOption {
	return func(p *domain.Penalty) {
		p.Completed = true
	}
}

// NewTestPenalty builds an open penalty with a unique id.
func NewTestPenalty(label string, minutes int, opts ...PenaltyOption) domain.Penalty {
	p := domain.NewPenalty(fmt.Sprintf("pen-%d-%s", testIDCounter.Add(1), uuid.NewString()[:8]), label, minutes)
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestSchedule builds a base schedule from label/start/end triples.
func NewTestSchedule(entries ...[3]string) domain.BaseSchedule {
	s := domain.BaseSchedule{Tasks: []domain.TaskTemplate{}}
	for _, e := range entries {
		s.Tasks = append(s.Tasks, domain.NewTaskTemplate(e[0], e[1], e[2]))
	}
	return s
}

// DefaultSchedule is a small weekday plan used across tests.
func DefaultSchedule() domain.BaseSchedule {
	return NewTestSchedule(
		[3]string{"Gym", "07:00", "08:00"},
		[3]string{"Code", "09:00", "12:00"},
		[3]string{"Read", "20:00", "21:00"},
	)
}

// NewTestRecord builds a daily record for day.
func NewTestRecord(day clock.DayKey, tasks []domain.Task, penalties []domain.Penalty) *domain.DailyRecord {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	if penalties == nil {
		penalties = []domain.Penalty{}
	}
	return &domain.DailyRecord{Date: day, LastRun: day, Tasks: tasks, Penalties: penalties}
}
