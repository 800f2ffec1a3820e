package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"zhbatch/internal/filelist"
)

var (
	// ErrNotFound reports an unknown run id.
	ErrNotFound = errors.New("run not found")
	// ErrAmbiguousID reports a run id prefix matching several runs.
	ErrAmbiguousID = errors.New("run id prefix is ambiguous")
)

// Run is one finished task.
type Run struct {
	ID           string
	Kind         string
	Direction    string
	Operation    string
	OutputFolder string
	StartedAt    time.Time
	FinishedAt   time.Time
	Cancelled    bool
	Success      int
	Fail         int
	Items        []RunItem
}

// Duration returns the wall time the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunItem is the recorded outcome for one processed item.
type RunItem struct {
	Index   int
	Path    string
	Status  filelist.Status
	NewPath string
}

// timeLayout has fixed-width fractions so stored values sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordRun stores run and its items in a single transaction.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	ctx = ensureContext(ctx)
	if run.ID == "" {
		return errors.New("record run: empty id")
	}
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin run tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `INSERT INTO runs
			(id, kind, direction, operation, output_folder, started_at, finished_at, cancelled, success, fail)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Kind, run.Direction, run.Operation, run.OutputFolder,
			run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
			boolToInt(run.Cancelled), run.Success, run.Fail)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_items (run_id, idx, path, status, new_path) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare run items: %w", err)
		}
		defer stmt.Close()
		for _, item := range run.Items {
			if _, err := stmt.ExecContext(ctx, run.ID, item.Index, item.Path, string(item.Status), item.NewPath); err != nil {
				return fmt.Errorf("insert run item %d: %w", item.Index, err)
			}
		}
		return tx.Commit()
	})
}

// ListRuns returns the most recent runs first, without items. A limit of
// zero or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, kind, direction, operation, output_folder, started_at, finished_at, cancelled, success, fail
		FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads the run whose id equals or starts with id, including items.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	if id == "" {
		return Run{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, direction, operation, output_folder, started_at, finished_at, cancelled, success, fail
		FROM runs WHERE substr(id, 1, length(?)) = ? ORDER BY (id = ?) DESC, id LIMIT 2`, id, id, id)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, err
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}

	var run Run
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		run = matches[0]
	default:
		exact := false
		for _, m := range matches {
			if m.ID == id {
				run, exact = m, true
			}
		}
		if !exact {
			return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
		}
	}
	run.Items, err = s.RunItems(ctx, run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// RunItems returns the recorded items of a run in processing order.
func (s *Store) RunItems(ctx context.Context, runID string) ([]RunItem, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT idx, path, status, new_path FROM run_items WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run items: %w", err)
	}
	defer rows.Close()

	var items []RunItem
	for rows.Next() {
		var (
			item   RunItem
			status string
		)
		if err := rows.Scan(&item.Index, &item.Path, &status, &item.NewPath); err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		item.Status = filelist.Status(status)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear deletes every recorded run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var removed int64
	err := retryOnBusy(ctx, func() error {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM run_items"); err != nil {
			return err
		}
		res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run               Run
		started, finished string
		cancelled         int
	)
	if err := row.Scan(&run.ID, &run.Kind, &run.Direction, &run.Operation, &run.OutputFolder,
		&started, &finished, &cancelled, &run.Success, &run.Fail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.Cancelled = cancelled != 0
	return run, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
