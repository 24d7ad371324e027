package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/protocol/internal/db"
)

// FailingUoW injects Err on the FailOn-th write issued inside a transaction,
// counting from 1. Reads pass through. FailOn <= 0 disables injection so the
// same value can be shared by passing and failing cases.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	writes atomic.Int32
}

// Writes reports how many ExecContext calls the last transaction attempted.
func (u *FailingUoW) Writes() int {
	return int(u.writes.Load())
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	u.writes.Store(0)
	wrapped := &failingTx{DBTX: tx, owner: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	owner *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.owner.writes.Add(1)
	if f.owner.FailOn > 0 && n == f.owner.FailOn {
		return nil, f.owner.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
