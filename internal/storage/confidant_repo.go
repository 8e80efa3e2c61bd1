package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ConfidantRepo struct {
	db DBTX
}

func NewConfidantRepo(db DBTX) *ConfidantRepo {
	return &ConfidantRepo{db: db}
}

func (r *ConfidantRepo) Get(ctx context.Context, name string) (*Confidant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT name, rank, xp, total_xp FROM confidants WHERE name = ?`, name)
	var c Confidant
	if err := row.Scan(&c.Name, &c.Rank, &c.XP, &c.TotalXP); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("confidant get: %w", err)
	}
	return &c, nil
}

func (r *ConfidantRepo) GetOrCreate(ctx context.Context, name string) (*Confidant, error) {
	c, err := r.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO confidants (name) VALUES (?)`, name); err != nil {
		return nil, fmt.Errorf("confidant insert: %w", err)
	}
	return r.Get(ctx, name)
}

func (r *ConfidantRepo) Upsert(ctx context.Context, c *Confidant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO confidants (name, rank, xp, total_xp) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET rank = excluded.rank, xp = excluded.xp, total_xp = excluded.total_xp
	`, c.Name, c.Rank, c.XP, c.TotalXP)
	if err != nil {
		return fmt.Errorf("confidant upsert: %w", err)
	}
	return nil
}

func (r *ConfidantRepo) ListAll(ctx context.Context) ([]Confidant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, rank, xp, total_xp FROM confidants ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("confidant list: %w", err)
	}
	defer rows.Close()

	var out []Confidant
	for rows.Next() {
		var c Confidant
		if err := rows.Scan(&c.Name, &c.Rank, &c.XP, &c.TotalXP); err != nil {
			return nil, fmt.Errorf("confidant scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("confidant rows: %w", err)
	}
	return out, nil
}
