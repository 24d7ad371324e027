package repository

import (
	"context"

	"github.com/alexanderramin/protocol/internal/domain"
)

// DailyRecordRepo stores the single active daily record per user.
type DailyRecordRepo interface {
	Get(ctx context.Context, userID string) (*domain.DailyRecord, error)
	Save(ctx context.Context, userID string, rec *domain.DailyRecord) error
	UpdateTasks(ctx context.Context, userID string, tasks []domain.Task) error
	UpdatePenalties(ctx context.Context, userID string, penalties []domain.Penalty) error
	Delete(ctx context.Context, userID string) error
}

// BaseScheduleRepo stores the recurring base schedule per user.
type BaseScheduleRepo interface {
	Get(ctx context.Context, userID string) (*domain.BaseSchedule, error)
	Save(ctx context.Context, userID string, s *domain.BaseSchedule) error
}
