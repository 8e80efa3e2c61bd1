package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CalendarRepo struct {
	db DBTX
}

func NewCalendarRepo(db DBTX) *CalendarRepo {
	return &CalendarRepo{db: db}
}

func (r *CalendarRepo) Get(ctx context.Context, date string) (*DayActivity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date, exercises, first_visit, last_visit FROM daily_activity WHERE date = ?
	`, date)
	var d DayActivity
	if err := row.Scan(&d.Date, &d.Exercises, &d.FirstVisit, &d.LastVisit); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("activity get: %w", err)
	}
	return &d, nil
}

func (r *CalendarRepo) Upsert(ctx context.Context, d *DayActivity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_activity (date, exercises, first_visit, last_visit)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			exercises = excluded.exercises,
			last_visit = excluded.last_visit
	`, d.Date, d.Exercises, d.FirstVisit, d.LastVisit)
	if err != nil {
		return fmt.Errorf("activity upsert: %w", err)
	}
	return nil
}

// ListSince returns all activity rows with date >= since, keyed by date.
func (r *CalendarRepo) ListSince(ctx context.Context, since string) (map[string]DayActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, exercises, first_visit, last_visit
		FROM daily_activity
		WHERE date >= ?
	`, since)
	if err != nil {
		return nil, fmt.Errorf("activity list: %w", err)
	}
	defer rows.Close()

	out := map[string]DayActivity{}
	for rows.Next() {
		var d DayActivity
		if err := rows.Scan(&d.Date, &d.Exercises, &d.FirstVisit, &d.LastVisit); err != nil {
			return nil, fmt.Errorf("activity scan: %w", err)
		}
		out[d.Date] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}
	return out, nil
}
