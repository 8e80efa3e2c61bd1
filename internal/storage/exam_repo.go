package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ExamRepo struct {
	db DBTX
}

func NewExamRepo(db DBTX) *ExamRepo {
	return &ExamRepo{db: db}
}

func (r *ExamRepo) Get(ctx context.Context, examID string) (*ExamRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT exam_id, grade, score, total, completed_at, time_taken, best_grade, cooldown_until
		FROM exam_records WHERE exam_id = ?
	`, examID)

	var (
		rec      ExamRecord
		cooldown sql.NullTime
	)
	if err := row.Scan(&rec.ExamID, &rec.Grade, &rec.Score, &rec.Total, &rec.CompletedAt, &rec.TimeTaken, &rec.BestGrade, &cooldown); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("exam record get: %w", err)
	}
	if cooldown.Valid {
		v := cooldown.Time
		rec.CooldownUntil = &v
	}
	return &rec, nil
}

func (r *ExamRepo) Upsert(ctx context.Context, rec *ExamRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exam_records (exam_id, grade, score, total, completed_at, time_taken, best_grade, cooldown_until)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(exam_id) DO UPDATE SET
			grade = excluded.grade,
			score = excluded.score,
			total = excluded.total,
			completed_at = excluded.completed_at,
			time_taken = excluded.time_taken,
			best_grade = excluded.best_grade,
			cooldown_until = excluded.cooldown_until
	`, rec.ExamID, rec.Grade, rec.Score, rec.Total, rec.CompletedAt, rec.TimeTaken, rec.BestGrade, nullTime(rec.CooldownUntil))
	if err != nil {
		return fmt.Errorf("exam record upsert: %w", err)
	}
	return nil
}

func (r *ExamRepo) ListAll(ctx context.Context) ([]ExamRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT exam_id, grade, score, total, completed_at, time_taken, best_grade, cooldown_until
		FROM exam_records ORDER BY exam_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("exam record list: %w", err)
	}
	defer rows.Close()

	var out []ExamRecord
	for rows.Next() {
		var (
			rec      ExamRecord
			cooldown sql.NullTime
		)
		if err := rows.Scan(&rec.ExamID, &rec.Grade, &rec.Score, &rec.Total, &rec.CompletedAt, &rec.TimeTaken, &rec.BestGrade, &cooldown); err != nil {
			return nil, fmt.Errorf("exam record scan: %w", err)
		}
		if cooldown.Valid {
			v := cooldown.Time
			rec.CooldownUntil = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exam record rows: %w", err)
	}
	return out, nil
}
