package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/protocol/internal/db"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/repository"
)

// DailyStatePersistence stores one user's daily record and reads their
// base schedule. Every call runs in its own transaction.
type DailyStatePersistence struct {
	userID string
	uow    db.UnitOfWork
}

func NewDailyStatePersistence(userID string, uow db.UnitOfWork) *DailyStatePersistence {
	return &DailyStatePersistence{userID: userID, uow: uow}
}

// LoadRecord returns nil without error when the user has no record yet.
func (p *DailyStatePersistence) LoadRecord(ctx context.Context) (*domain.DailyRecord, error) {
	var rec *domain.DailyRecord
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		got, err := repository.NewSQLiteDailyRecordRepo(tx).Get(ctx, p.userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading daily record: %w", err)
		}
		rec = got
		return nil
	})
	return rec, err
}

func (p *DailyStatePersistence) LoadSchedule(ctx context.Context) (domain.BaseSchedule, error) {
	var out domain.BaseSchedule
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		s, err := loadSchedule(ctx, repository.NewSQLiteBaseScheduleRepo(tx), p.userID)
		if err != nil {
			return err
		}
		out = *s
		return nil
	})
	return out, err
}

func (p *DailyStatePersistence) SaveRecord(ctx context.Context, rec domain.DailyRecord) error {
	return p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDailyRecordRepo(tx).Save(ctx, p.userID, &rec); err != nil {
			return fmt.Errorf("saving daily record: %w", err)
		}
		return nil
	})
}

func (p *DailyStatePersistence) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	return p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDailyRecordRepo(tx).UpdateTasks(ctx, p.userID, tasks); err != nil {
			return fmt.Errorf("saving daily tasks: %w", err)
		}
		return nil
	})
}

func (p *DailyStatePersistence) SavePenalties(ctx context.Context, penalties []domain.Penalty) error {
	return p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDailyRecordRepo(tx).UpdatePenalties(ctx, p.userID, penalties); err != nil {
			return fmt.Errorf("saving penalties: %w", err)
		}
		return nil
	})
}
