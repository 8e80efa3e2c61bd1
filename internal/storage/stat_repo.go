package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type StatRepo struct {
	db DBTX
}

func NewStatRepo(db DBTX) *StatRepo {
	return &StatRepo{db: db}
}

func (r *StatRepo) Get(ctx context.Context, name string) (*Stat, error) {
	row := r.db.QueryRowContext(ctx, `SELECT name, xp, level FROM stats WHERE name = ?`, name)
	var s Stat
	if err := row.Scan(&s.Name, &s.XP, &s.Level); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stat get: %w", err)
	}
	return &s, nil
}

func (r *StatRepo) GetOrCreate(ctx context.Context, name string) (*Stat, error) {
	s, err := r.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO stats (name) VALUES (?)`, name); err != nil {
		return nil, fmt.Errorf("stat insert: %w", err)
	}
	return r.Get(ctx, name)
}

func (r *StatRepo) Upsert(ctx context.Context, s *Stat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stats (name, xp, level) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET xp = excluded.xp, level = excluded.level
	`, s.Name, s.XP, s.Level)
	if err != nil {
		return fmt.Errorf("stat upsert: %w", err)
	}
	return nil
}

func (r *StatRepo) ListAll(ctx context.Context) ([]Stat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, xp, level FROM stats ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("stat list: %w", err)
	}
	defer rows.Close()

	var out []Stat
	for rows.Next() {
		var s Stat
		if err := rows.Scan(&s.Name, &s.XP, &s.Level); err != nil {
			return nil, fmt.Errorf("stat scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stat rows: %w", err)
	}
	return out, nil
}
