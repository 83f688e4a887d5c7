package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                  TEXT PRIMARY KEY,
		sprint_id           INTEGER NOT NULL,
		sprint_name         TEXT NOT NULL DEFAULT '',
		spent_by            TEXT NOT NULL CHECK (spent_by IN ('started', 'created')),
		remaining_mode      TEXT NOT NULL CHECK (remaining_mode IN ('burn_only', 'with_reestimate')),
		timezone            TEXT NOT NULL,
		window_start        TEXT NOT NULL,
		window_end          TEXT NOT NULL,
		window_open         INTEGER NOT NULL DEFAULT 0,
		baseline_original   INTEGER NOT NULL DEFAULT 0,
		baseline_remaining  INTEGER NOT NULL DEFAULT 0,
		item_count          INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_sprint ON runs(sprint_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS run_items (
		run_id              TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		item_key            TEXT NOT NULL,
		original_seconds    INTEGER NOT NULL DEFAULT 0,
		remaining_seconds   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, item_key)
	)`,

	`CREATE TABLE IF NOT EXISTS run_rows (
		run_id                      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		day                         TEXT NOT NULL,
		baseline_original           INTEGER NOT NULL,
		baseline_remaining          INTEGER NOT NULL,
		spent                       INTEGER NOT NULL,
		cumulative_spent            INTEGER NOT NULL,
		delta_remaining             INTEGER NOT NULL,
		cumulative_delta_remaining  INTEGER NOT NULL,
		remaining                   INTEGER NOT NULL,
		PRIMARY KEY (run_id, day)
	)`,

	// Added after the first release; tolerated as a duplicate on re-run.
	`ALTER TABLE runs ADD COLUMN warnings TEXT NOT NULL DEFAULT ''`,
}

// Migrate applies every schema statement. Statements are idempotent, so it
// is safe to run on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
