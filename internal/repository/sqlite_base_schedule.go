package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/protocol/internal/db"
	"github.com/alexanderramin/protocol/internal/domain"
)

// SQLiteBaseScheduleRepo implements BaseScheduleRepo using a SQLite database.
type SQLiteBaseScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteBaseScheduleRepo creates a new SQLiteBaseScheduleRepo.
func NewSQLiteBaseScheduleRepo(conn db.DBTX) *SQLiteBaseScheduleRepo {
	return &SQLiteBaseScheduleRepo{db: conn}
}

func (r *SQLiteBaseScheduleRepo) Get(ctx context.Context, userID string) (*domain.BaseSchedule, error) {
	var updatedAtStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT updated_at FROM base_schedules WHERE user_id = ?`, userID,
	).Scan(&updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("base schedule: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning base schedule: %w", err)
	}

	s := &domain.BaseSchedule{}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, errBadColumn("updated_at", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT label, start_time, end_time, duration FROM base_tasks WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing base tasks: %w", err)
	}
	defer rows.Close()

	s.Tasks = []domain.TaskTemplate{}
	for rows.Next() {
		var t domain.TaskTemplate
		if err := rows.Scan(&t.Label, &t.Start, &t.End, &t.Duration); err != nil {
			return nil, fmt.Errorf("scanning base task row: %w", err)
		}
		s.Tasks = append(s.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating base tasks: %w", err)
	}
	return s, nil
}

// Save replaces the user's schedule. Tasks are stored in slice order.
func (r *SQLiteBaseScheduleRepo) Save(ctx context.Context, userID string, s *domain.BaseSchedule) error {
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	query := `INSERT INTO base_schedules (user_id, updated_at) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, userID, updatedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upserting base schedule: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM base_tasks WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing base tasks: %w", err)
	}
	insert := `INSERT INTO base_tasks (user_id, position, label, start_time, end_time, duration)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, t := range s.Tasks {
		if _, err := r.db.ExecContext(ctx, insert, userID, i, t.Label, t.Start, t.End, t.Duration); err != nil {
			return fmt.Errorf("inserting base task %q: %w", t.Label, err)
		}
	}
	return nil
}
