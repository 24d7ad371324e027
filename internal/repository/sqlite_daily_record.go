package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/protocol/internal/db"
	"github.com/alexanderramin/protocol/internal/domain"
)

// SQLiteDailyRecordRepo implements DailyRecordRepo. Writes touch several
// tables; pass a transaction as conn when they must be atomic.
type SQLiteDailyRecordRepo struct {
	db db.DBTX
}

// NewSQLiteDailyRecordRepo creates a new SQLiteDailyRecordRepo.
func NewSQLiteDailyRecordRepo(conn db.DBTX) *SQLiteDailyRecordRepo {
	return &SQLiteDailyRecordRepo{db: conn}
}

func (r *SQLiteDailyRecordRepo) Get(ctx context.Context, userID string) (*domain.DailyRecord, error) {
	var dateStr, lastRunStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT date, last_run FROM daily_records WHERE user_id = ?`, userID,
	).Scan(&dateStr, &lastRunStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("daily record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily record: %w", err)
	}

	rec := &domain.DailyRecord{}
	if rec.Date, err = parseDay("date", dateStr); err != nil {
		return nil, err
	}
	if rec.LastRun, err = parseDay("last_run", lastRunStr); err != nil {
		return nil, err
	}
	if rec.Tasks, err = r.listTasks(ctx, userID); err != nil {
		return nil, err
	}
	if rec.Penalties, err = r.listPenalties(ctx, userID); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save replaces the user's record wholesale.
func (r *SQLiteDailyRecordRepo) Save(ctx context.Context, userID string, rec *domain.DailyRecord) error {
	query := `INSERT INTO daily_records (user_id, date, last_run, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE
		SET date = excluded.date, last_run = excluded.last_run, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, userID, rec.Date.String(), rec.LastRun.String(), nowUTC()); err != nil {
		return fmt.Errorf("upserting daily record: %w", err)
	}
	if err := r.replaceTasks(ctx, userID, rec.Tasks); err != nil {
		return err
	}
	return r.replacePenalties(ctx, userID, rec.Penalties)
}

// UpdateTasks rewrites only the task list of an existing record.
func (r *SQLiteDailyRecordRepo) UpdateTasks(ctx context.Context, userID string, tasks []domain.Task) error {
	if err := r.touch(ctx, userID); err != nil {
		return err
	}
	return r.replaceTasks(ctx, userID, tasks)
}

// UpdatePenalties rewrites only the penalty ledger of an existing record.
func (r *SQLiteDailyRecordRepo) UpdatePenalties(ctx context.Context, userID string, penalties []domain.Penalty) error {
	if err := r.touch(ctx, userID); err != nil {
		return err
	}
	return r.replacePenalties(ctx, userID, penalties)
}

func (r *SQLiteDailyRecordRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_records WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting daily record: %w", err)
	}
	return nil
}

func (r *SQLiteDailyRecordRepo) touch(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE daily_records SET updated_at = ? WHERE user_id = ?`, nowUTC(), userID)
	if err != nil {
		return fmt.Errorf("touching daily record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking daily record update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("daily record: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteDailyRecordRepo) replaceTasks(ctx context.Context, userID string, tasks []domain.Task) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_tasks WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing daily tasks: %w", err)
	}
	query := `INSERT INTO daily_tasks (user_id, position, label, start_time, end_time, duration,
		completed, partially_completed, remaining)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, t := range tasks {
		_, err := r.db.ExecContext(ctx, query,
			userID, i, t.Label, t.Start, t.End, t.Duration,
			boolToInt(t.Completed), boolToInt(t.PartiallyCompleted), t.Remaining,
		)
		if err != nil {
			return fmt.Errorf("inserting daily task %q: %w", t.Label, err)
		}
	}
	return nil
}

func (r *SQLiteDailyRecordRepo) replacePenalties(ctx context.Context, userID string, penalties []domain.Penalty) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM penalties WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing penalties: %w", err)
	}
	query := `INSERT INTO penalties (id, user_id, position, label, duration, completed)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, p := range penalties {
		if _, err := r.db.ExecContext(ctx, query, p.ID, userID, i, p.Label, p.Duration, boolToInt(p.Completed)); err != nil {
			return fmt.Errorf("inserting penalty %s: %w", p.ID, err)
		}
	}
	return nil
}

func (r *SQLiteDailyRecordRepo) listTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT label, start_time, end_time, duration, completed, partially_completed, remaining
		FROM daily_tasks WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing daily tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		var completed, partial int
		if err := rows.Scan(&t.Label, &t.Start, &t.End, &t.Duration, &completed, &partial, &t.Remaining); err != nil {
			return nil, fmt.Errorf("scanning daily task row: %w", err)
		}
		t.Completed = intToBool(completed)
		t.PartiallyCompleted = intToBool(partial)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteDailyRecordRepo) listPenalties(ctx context.Context, userID string) ([]domain.Penalty, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, duration, completed FROM penalties WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing penalties: %w", err)
	}
	defer rows.Close()

	penalties := []domain.Penalty{}
	for rows.Next() {
		var p domain.Penalty
		var completed int
		if err := rows.Scan(&p.ID, &p.Label, &p.Duration, &completed); err != nil {
			return nil, fmt.Errorf("scanning penalty row: %w", err)
		}
		p.Completed = intToBool(completed)
		penalties = append(penalties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating penalties: %w", err)
	}
	return penalties, nil
}

func errBadColumn(column string, err error) error {
	return fmt.Errorf("decoding %s: %w", column, err)
}
