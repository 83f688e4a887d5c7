package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/sprintburn/internal/db"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

// SQLiteRunRepo implements RunRepo using a SQLite database. Create issues
// several statements; wrap it in a UnitOfWork to make it atomic.
type SQLiteRunRepo struct {
	db db.DBTX
}

func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

const runColumns = `id, sprint_id, sprint_name, spent_by, remaining_mode, timezone,
	window_start, window_end, window_open, baseline_original, baseline_remaining,
	item_count, warnings, created_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.SprintID,
		run.SprintName,
		string(run.SpentBy),
		string(run.RemainingMode),
		run.Timezone,
		formatTime(run.WindowStart),
		formatTime(run.WindowEnd),
		boolToInt(run.WindowOpen),
		run.Baseline.Original,
		run.Baseline.Remaining,
		run.ItemCount,
		joinLines(run.Warnings),
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, it := range run.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO run_items (run_id, item_key, original_seconds, remaining_seconds) VALUES (?, ?, ?, ?)`,
			run.ID, it.ItemKey, it.Original, it.Remaining)
		if err != nil {
			return fmt.Errorf("inserting run item %s: %w", it.ItemKey, err)
		}
	}

	for _, row := range run.Rows {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO run_rows (run_id, day, baseline_original, baseline_remaining, spent, cumulative_spent,
				delta_remaining, cumulative_delta_remaining, remaining)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, row.Date.String(), row.BaselineOriginal, row.BaselineRemaining, row.Spent,
			row.CumulativeSpent, row.DeltaRemaining, row.CumulativeDeltaRemaining, row.Remaining)
		if err != nil {
			return fmt.Errorf("inserting run row %s: %w", row.Date, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if run.Items, err = r.listItems(ctx, id); err != nil {
		return nil, err
	}
	if run.Rows, err = r.listRows(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *SQLiteRunRepo) List(ctx context.Context, sprintID *int64, limit int) ([]*domain.Run, error) {
	var (
		where []string
		args  []any
	)
	if sprintID != nil {
		where = append(where, "sprint_id = ?")
		args = append(args, *sprintID)
	}
	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRunRepo) listItems(ctx context.Context, runID string) ([]domain.ItemBaseline, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_key, original_seconds, remaining_seconds FROM run_items WHERE run_id = ? ORDER BY item_key`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing run items: %w", err)
	}
	defer rows.Close()

	var items []domain.ItemBaseline
	for rows.Next() {
		var it domain.ItemBaseline
		if err := rows.Scan(&it.ItemKey, &it.Original, &it.Remaining); err != nil {
			return nil, fmt.Errorf("scanning run item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run items: %w", err)
	}
	return items, nil
}

func (r *SQLiteRunRepo) listRows(ctx context.Context, runID string) ([]domain.DailyRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day, baseline_original, baseline_remaining, spent, cumulative_spent,
			delta_remaining, cumulative_delta_remaining, remaining
		FROM run_rows WHERE run_id = ? ORDER BY day`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing run rows: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyRow
	for rows.Next() {
		var (
			row domain.DailyRow
			day string
		)
		err := rows.Scan(&day, &row.BaselineOriginal, &row.BaselineRemaining, &row.Spent,
			&row.CumulativeSpent, &row.DeltaRemaining, &row.CumulativeDeltaRemaining, &row.Remaining)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if row.Date, err = domain.ParseDate(day); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*domain.Run, error) {
	var (
		run                             domain.Run
		spentBy, mode, warnings         string
		windowStart, windowEnd, created string
		open                            int
	)
	err := s.Scan(
		&run.ID, &run.SprintID, &run.SprintName, &spentBy, &mode, &run.Timezone,
		&windowStart, &windowEnd, &open, &run.Baseline.Original, &run.Baseline.Remaining,
		&run.ItemCount, &warnings, &created,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.SpentBy = domain.SpentBy(spentBy)
	run.RemainingMode = domain.RemainingMode(mode)
	run.WindowOpen = open != 0
	run.Warnings = splitLines(warnings)
	if run.WindowStart, err = parseTime(windowStart, "window_start"); err != nil {
		return nil, err
	}
	if run.WindowEnd, err = parseTime(windowEnd, "window_end"); err != nil {
		return nil, err
	}
	if run.CreatedAt, err = parseTime(created, "created_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
