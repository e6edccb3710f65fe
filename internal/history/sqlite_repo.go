package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fath2boinc/internal/models"
)

const runColumns = `id, run_at, loaded, merged, users, skipped, total_credit, total_rac, mean_rac, median_rac, max_rac`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, run *Run, users models.Users) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	err := withTx(ctx, r.db, func(tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO runs (`+runColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID.String(), run.At.Unix(), run.Loaded, run.Merged, run.Users, run.Skipped,
			run.TotalCredit, run.TotalRAC, run.MeanRAC, run.MedianRAC, run.MaxRAC)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, u := range users.Sorted() {
			_, err := tx.ExecContext(ctx, `INSERT INTO run_users
				(run_id, cpid, total_credit, expavg_credit, expavg_time)
				VALUES (?, ?, ?, ?, ?)`,
				run.ID.String(), u.CPID, u.TotalCredit, u.ExpavgCredit, u.ExpavgTime)
			if err != nil {
				return fmt.Errorf("insert run user %s: %w", u.CPID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Last(ctx context.Context) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY run_at DESC, rowid DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}
	return run, nil
}

// list returns up to limit runs, newest first.
func (r *SQLiteRepository) list(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY run_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		out = append(out, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}
	return out, nil
}

// snapshot returns the users recorded for a run.
func (r *SQLiteRepository) snapshot(ctx context.Context, runID uuid.UUID) (models.Users, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cpid, total_credit, expavg_credit, expavg_time
		FROM run_users WHERE run_id = ?`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", runID, err)
	}
	defer rows.Close()

	users := models.Users{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.CPID, &u.TotalCredit, &u.ExpavgCredit, &u.ExpavgTime); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		users[u.CPID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		run Run
		id  string
		at  int64
	)
	err := s.Scan(&id, &at, &run.Loaded, &run.Merged, &run.Users, &run.Skipped,
		&run.TotalCredit, &run.TotalRAC, &run.MeanRAC, &run.MedianRAC, &run.MaxRAC)
	if err != nil {
		return nil, err
	}
	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("run id %q: %w", id, err)
	}
	run.At = time.Unix(at, 0).UTC()
	return &run, nil
}
