package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so the
// whole list runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS daily_records (
		user_id    TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		last_run   TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS daily_tasks (
		user_id             TEXT NOT NULL REFERENCES daily_records(user_id) ON DELETE CASCADE,
		position            INTEGER NOT NULL,
		label               TEXT NOT NULL,
		start_time          TEXT NOT NULL DEFAULT '',
		end_time            TEXT NOT NULL DEFAULT '',
		duration            INTEGER NOT NULL DEFAULT 0,
		completed           INTEGER NOT NULL DEFAULT 0,
		partially_completed INTEGER NOT NULL DEFAULT 0,
		remaining           INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS penalties (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES daily_records(user_id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		label      TEXT NOT NULL,
		duration   INTEGER NOT NULL DEFAULT 0,
		completed  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_penalties_user ON penalties(user_id, position)`,

	`CREATE TABLE IF NOT EXISTS base_schedules (
		user_id    TEXT PRIMARY KEY,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS base_tasks (
		user_id    TEXT NOT NULL REFERENCES base_schedules(user_id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		label      TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		duration   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, position)
	)`,
}
