package tracker

import (
	"context"

	"github.com/alexanderramin/protocol/internal/domain"
)

// Persistence is the storage the store reads at start and day change and
// writes behind every mutation.
type Persistence interface {
	// LoadRecord returns nil without error when nothing is stored.
	LoadRecord(ctx context.Context) (*domain.DailyRecord, error)
	// LoadSchedule returns an empty schedule when nothing is stored.
	LoadSchedule(ctx context.Context) (domain.BaseSchedule, error)
	SaveRecord(ctx context.Context, rec domain.DailyRecord) error
	SaveTasks(ctx context.Context, tasks []domain.Task) error
	SavePenalties(ctx context.Context, penalties []domain.Penalty) error
}

// Change marks which parts of a record a mutation touched.
type Change uint8

const (
	ChangeTasks Change = 1 << iota
	ChangePenalties

	ChangeRecord = ChangeTasks | ChangePenalties
)
