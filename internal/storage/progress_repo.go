package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainKey = "main_user"

type ProgressRepo struct {
	db DBTX
}

func NewProgressRepo(db DBTX) *ProgressRepo {
	return &ProgressRepo{db: db}
}

func (r *ProgressRepo) Get(ctx context.Context, key string) (*Progress, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, balance, combo_current, combo_best, combo_total
		FROM progress WHERE key = ?
	`, key)

	var p Progress
	if err := row.Scan(&p.Key, &p.Balance, &p.ComboCurrent, &p.ComboBest, &p.ComboTotal); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("progress get: %w", err)
	}
	return &p, nil
}

func (r *ProgressRepo) GetOrCreateMain(ctx context.Context) (*Progress, error) {
	p, err := r.Get(ctx, MainKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO progress (key) VALUES (?)`, MainKey); err != nil {
		return nil, fmt.Errorf("progress insert: %w", err)
	}
	return r.Get(ctx, MainKey)
}

func (r *ProgressRepo) Update(ctx context.Context, p *Progress) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE progress
		SET balance = ?, combo_current = ?, combo_best = ?, combo_total = ?
		WHERE key = ?
	`, p.Balance, p.ComboCurrent, p.ComboBest, p.ComboTotal, p.Key)
	if err != nil {
		return fmt.Errorf("progress update: %w", err)
	}
	return nil
}
