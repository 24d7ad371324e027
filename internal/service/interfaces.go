package service

import (
	"context"

	"github.com/alexanderramin/protocol/internal/domain"
)

// ImportMode selects how imported tasks combine with the saved schedule.
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportAppend  ImportMode = "append"
)

// TaskPatch carries the fields UpdateTask should change. Nil fields are kept.
type TaskPatch struct {
	Label *string
	Start *string
	End   *string
}

// ImportResult summarises a successful schedule import.
type ImportResult struct {
	Schedule *domain.BaseSchedule
	Imported int
	Mode     ImportMode
}

// ScheduleService edits the recurring base schedule. Indexes are 0-based
// positions in the saved, start-sorted schedule.
type ScheduleService interface {
	Get(ctx context.Context) (*domain.BaseSchedule, error)
	Save(ctx context.Context, tasks []domain.TaskTemplate) (*domain.BaseSchedule, error)
	AddTask(ctx context.Context, label, start, end string) (*domain.BaseSchedule, error)
	UpdateTask(ctx context.Context, index int, patch TaskPatch) (*domain.BaseSchedule, error)
	RemoveTask(ctx context.Context, index int) (*domain.BaseSchedule, error)
	Import(ctx context.Context, path string, mode ImportMode) (*ImportResult, error)
}
