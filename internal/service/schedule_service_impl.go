package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/db"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/importer"
	"github.com/alexanderramin/protocol/internal/repository"
	"github.com/alexanderramin/protocol/internal/scheduler"
)

type scheduleService struct {
	userID   string
	uow      db.UnitOfWork
	clock    clock.Clock
	observer UseCaseObserver
}

func NewScheduleService(
	userID string,
	uow db.UnitOfWork,
	clk clock.Clock,
	observers ...UseCaseObserver,
) ScheduleService {
	if clk == nil {
		clk = clock.System{}
	}
	return &scheduleService{
		userID:   userID,
		uow:      uow,
		clock:    clk,
		observer: UseCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Get(ctx context.Context) (*domain.BaseSchedule, error) {
	var out *domain.BaseSchedule
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = loadSchedule(ctx, repository.NewSQLiteBaseScheduleRepo(tx), s.userID)
		return err
	})
	return out, err
}

func (s *scheduleService) Save(ctx context.Context, tasks []domain.TaskTemplate) (saved *domain.BaseSchedule, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": s.userID, "task_count": len(tasks)}
	defer func() { ObserveSince(ctx, s.observer, "save-schedule", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		saved, err = s.store(ctx, repository.NewSQLiteBaseScheduleRepo(tx), tasks)
		return err
	})
	return saved, err
}

func (s *scheduleService) AddTask(ctx context.Context, label, start, end string) (*domain.BaseSchedule, error) {
	return s.edit(ctx, "add-schedule-task", map[string]any{"label": label},
		func(tasks []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
			return append(tasks, domain.TaskTemplate{Label: label, Start: start, End: end}), nil
		})
}

func (s *scheduleService) UpdateTask(ctx context.Context, index int, patch TaskPatch) (*domain.BaseSchedule, error) {
	return s.edit(ctx, "update-schedule-task", map[string]any{"index": index},
		func(tasks []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
			if index < 0 || index >= len(tasks) {
				return nil, fmt.Errorf("schedule task %d: %w", index+1, ErrIndexOutOfRange)
			}
			t := &tasks[index]
			if patch.Label != nil {
				t.Label = *patch.Label
			}
			if patch.Start != nil {
				t.Start = *patch.Start
			}
			if patch.End != nil {
				t.End = *patch.End
			}
			return tasks, nil
		})
}

func (s *scheduleService) RemoveTask(ctx context.Context, index int) (*domain.BaseSchedule, error) {
	return s.edit(ctx, "remove-schedule-task", map[string]any{"index": index},
		func(tasks []domain.TaskTemplate) ([]domain.TaskTemplate, error) {
			if index < 0 || index >= len(tasks) {
				return nil, fmt.Errorf("schedule task %d: %w", index+1, ErrIndexOutOfRange)
			}
			return append(tasks[:index], tasks[index+1:]...), nil
		})
}

func (s *scheduleService) Import(ctx context.Context, path string, mode ImportMode) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": s.userID, "path": path, "mode": string(mode)}
	defer func() { ObserveSince(ctx, s.observer, "import-schedule", startedAt, fields, err) }()

	if mode == "" {
		mode = ImportReplace
	}
	if mode != ImportReplace && mode != ImportAppend {
		return nil, fmt.Errorf("unknown import mode %q", mode)
	}

	parsed, err := importer.LoadScheduleImport(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	if errs := importer.ValidateScheduleImport(parsed); len(errs) > 0 {
		return nil, formatValidationErrors("import", errs)
	}
	imported := importer.Convert(parsed)
	fields["imported"] = len(imported)

	var saved *domain.BaseSchedule
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteBaseScheduleRepo(tx)
		tasks := imported
		if mode == ImportAppend {
			current, err := loadSchedule(ctx, repo, s.userID)
			if err != nil {
				return err
			}
			tasks = append(current.Tasks, imported...)
		}
		var err error
		saved, err = s.store(ctx, repo, tasks)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ImportResult{Schedule: saved, Imported: len(imported), Mode: mode}, nil
}

// edit applies fn to the saved task list and stores the result in one
// transaction.
func (s *scheduleService) edit(
	ctx context.Context,
	name string,
	fields map[string]any,
	fn func([]domain.TaskTemplate) ([]domain.TaskTemplate, error),
) (saved *domain.BaseSchedule, err error) {
	startedAt := time.Now()
	fields["user"] = s.userID
	defer func() { ObserveSince(ctx, s.observer, name, startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteBaseScheduleRepo(tx)
		current, err := loadSchedule(ctx, repo, s.userID)
		if err != nil {
			return err
		}
		tasks, err := fn(current.Clone().Tasks)
		if err != nil {
			return err
		}
		saved, err = s.store(ctx, repo, tasks)
		return err
	})
	return saved, err
}

func (s *scheduleService) store(ctx context.Context, repo repository.BaseScheduleRepo, tasks []domain.TaskTemplate) (*domain.BaseSchedule, error) {
	normalized := normalizeTemplates(tasks)
	if errs := validateTemplates(normalized); len(errs) > 0 {
		return nil, formatValidationErrors("schedule", errs)
	}
	scheduler.SortTemplates(normalized)

	schedule := &domain.BaseSchedule{Tasks: normalized, UpdatedAt: s.clock.Now().UTC()}
	if err := repo.Save(ctx, s.userID, schedule); err != nil {
		return nil, fmt.Errorf("saving base schedule: %w", err)
	}
	return schedule, nil
}

// loadSchedule returns the saved schedule, or an empty one when none exists.
func loadSchedule(ctx context.Context, repo repository.BaseScheduleRepo, userID string) (*domain.BaseSchedule, error) {
	s, err := repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.BaseSchedule{Tasks: []domain.TaskTemplate{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading base schedule: %w", err)
	}
	return s, nil
}
