package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/protocol/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertRecord = `INSERT INTO daily_records (user_id, date, last_run, updated_at) VALUES (?, '2026-10-14', '2026-10-14', '')`
	insertTask   = `INSERT INTO daily_tasks (user_id, position, label) VALUES (?, 0, 'Gym')`
)

func newUoW(t *testing.T) (*db.SQLiteUnitOfWork, func(table, user string) int) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	count := func(table, user string) int {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE user_id = ?`, user).Scan(&n))
		return n
	}
	return db.NewSQLiteUnitOfWork(database), count
}

func writeRecordWithTask(ctx context.Context, tx db.DBTX, user string) error {
	if _, err := tx.ExecContext(ctx, insertRecord, user); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, insertTask, user)
	return err
}

func TestWithinTx_CommitsAllWrites(t *testing.T) {
	uow, count := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return writeRecordWithTask(ctx, tx, "alice")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, count("daily_records", "alice"))
	assert.Equal(t, 1, count("daily_tasks", "alice"))
}

func TestWithinTx_ErrorRollsBackEveryWrite(t *testing.T) {
	uow, count := newUoW(t)
	errStop := errors.New("stop after children")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := writeRecordWithTask(ctx, tx, "bob"); err != nil {
			return err
		}
		return errStop
	})
	assert.ErrorIs(t, err, errStop)

	assert.Zero(t, count("daily_records", "bob"))
	assert.Zero(t, count("daily_tasks", "bob"))
}

func TestWithinTx_PanicRollsBackAndRepanics(t *testing.T) {
	uow, count := newUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = writeRecordWithTask(ctx, tx, "carol")
			panic("boom")
		})
	})

	assert.Zero(t, count("daily_records", "carol"))
}

func TestWithinTx_ConstraintFailureIsReturned(t *testing.T) {
	uow, count := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		// Child row without its record violates the foreign key.
		_, err := tx.ExecContext(ctx, insertTask, "dave")
		return err
	})
	require.Error(t, err)
	assert.Zero(t, count("daily_tasks", "dave"))
}
