package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type RecordRepo struct {
	db DBTX
}

func NewRecordRepo(db DBTX) *RecordRepo {
	return &RecordRepo{db: db}
}

func (r *RecordRepo) Get(ctx context.Context, key string) (*Records, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, best_time, best_combo, session_date, session_count FROM records WHERE key = ?
	`, key)

	var (
		rec  Records
		best sql.NullFloat64
	)
	if err := row.Scan(&rec.Key, &best, &rec.BestCombo, &rec.SessionDate, &rec.SessionCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("records get: %w", err)
	}
	if best.Valid {
		v := best.Float64
		rec.BestTime = &v
	}
	return &rec, nil
}

func (r *RecordRepo) GetOrCreateMain(ctx context.Context) (*Records, error) {
	rec, err := r.Get(ctx, MainKey)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO records (key) VALUES (?)`, MainKey); err != nil {
		return nil, fmt.Errorf("records insert: %w", err)
	}
	return r.Get(ctx, MainKey)
}

func (r *RecordRepo) Update(ctx context.Context, rec *Records) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE records
		SET best_time = ?, best_combo = ?, session_date = ?, session_count = ?
		WHERE key = ?
	`, nullFloat(rec.BestTime), rec.BestCombo, rec.SessionDate, rec.SessionCount, rec.Key)
	if err != nil {
		return fmt.Errorf("records update: %w", err)
	}
	return nil
}
