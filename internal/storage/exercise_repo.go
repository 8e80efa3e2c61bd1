package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type ExerciseRepo struct {
	db DBTX
}

func NewExerciseRepo(db DBTX) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

func (r *ExerciseRepo) GetLog(ctx context.Context, key string) (*ExerciseLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, total_completed, fastest_time, best_streak, early_bird, night_owl, last_completed_at
		FROM exercise_log WHERE key = ?
	`, key)

	var (
		l        ExerciseLog
		fastest  sql.NullFloat64
		early    int
		night    int
		lastDone sql.NullTime
	)
	if err := row.Scan(&l.Key, &l.TotalCompleted, &fastest, &l.BestStreak, &early, &night, &lastDone); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("exercise log get: %w", err)
	}
	if fastest.Valid {
		v := fastest.Float64
		l.FastestTime = &v
	}
	l.EarlyBird = early != 0
	l.NightOwl = night != 0
	if lastDone.Valid {
		v := lastDone.Time
		l.LastCompletedAt = &v
	}
	return &l, nil
}

func (r *ExerciseRepo) GetOrCreateLog(ctx context.Context) (*ExerciseLog, error) {
	l, err := r.GetLog(ctx, MainKey)
	if err != nil {
		return nil, err
	}
	if l != nil {
		return l, nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO exercise_log (key) VALUES (?)`, MainKey); err != nil {
		return nil, fmt.Errorf("exercise log insert: %w", err)
	}
	return r.GetLog(ctx, MainKey)
}

func (r *ExerciseRepo) UpdateLog(ctx context.Context, l *ExerciseLog) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE exercise_log
		SET total_completed = ?, fastest_time = ?, best_streak = ?, early_bird = ?, night_owl = ?, last_completed_at = ?
		WHERE key = ?
	`, l.TotalCompleted, nullFloat(l.FastestTime), l.BestStreak, boolToInt(l.EarlyBird), boolToInt(l.NightOwl), nullTime(l.LastCompletedAt), l.Key)
	if err != nil {
		return fmt.Errorf("exercise log update: %w", err)
	}
	return nil
}

// UpsertCompletion records an exercise's latest completion metadata.
// Completing the same exercise again overwrites the previous record.
func (r *ExerciseRepo) UpsertCompletion(ctx context.Context, c ExerciseCompletion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exercise_completions (exercise_id, completed_at, difficulty, time_taken)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(exercise_id) DO UPDATE SET
			completed_at = excluded.completed_at,
			difficulty = excluded.difficulty,
			time_taken = excluded.time_taken
	`, c.ExerciseID, c.CompletedAt, c.Difficulty, c.TimeTaken)
	if err != nil {
		return fmt.Errorf("completion upsert: %w", err)
	}
	return nil
}

func (r *ExerciseRepo) GetCompletion(ctx context.Context, exerciseID string) (*ExerciseCompletion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT exercise_id, completed_at, difficulty, time_taken
		FROM exercise_completions WHERE exercise_id = ?
	`, exerciseID)
	var c ExerciseCompletion
	if err := row.Scan(&c.ExerciseID, &c.CompletedAt, &c.Difficulty, &c.TimeTaken); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("completion get: %w", err)
	}
	return &c, nil
}

func (r *ExerciseRepo) ListCompletions(ctx context.Context) ([]ExerciseCompletion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT exercise_id, completed_at, difficulty, time_taken
		FROM exercise_completions
		ORDER BY completed_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []ExerciseCompletion
	for rows.Next() {
		var c ExerciseCompletion
		if err := rows.Scan(&c.ExerciseID, &c.CompletedAt, &c.Difficulty, &c.TimeTaken); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
