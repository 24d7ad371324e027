// Package app declares the use cases the command line drives. The tracker
// and service packages provide the implementations.
package app

import (
	"context"
	"time"

	"github.com/alexanderramin/protocol/internal/domain"
)

type TaskUseCase interface {
	CompleteTask(ctx context.Context, key domain.TaskKey) (domain.DailyRecord, error)
	PartialCompleteTask(ctx context.Context, key domain.TaskKey, completedMinutes int) (domain.DailyRecord, error)
}

type PenaltyUseCase interface {
	ResolvePenalty(ctx context.Context, id string) (domain.DailyRecord, error)
	ReducePenalty(ctx context.Context, id string, minutes int) (domain.DailyRecord, error)
}

// DayUseCase covers the lifecycle of the live record.
type DayUseCase interface {
	Open(ctx context.Context) error
	Current() domain.DailyRecord
	ApplyBaseToToday(ctx context.Context, base domain.BaseSchedule) (domain.DailyRecord, error)
	CheckDayChange(ctx context.Context) (bool, error)
	Run(ctx context.Context, interval time.Duration) error
	Flush(ctx context.Context) error
}

type DailyTracker interface {
	TaskUseCase
	PenaltyUseCase
	DayUseCase
}
