package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CardRepo struct {
	db DBTX
}

func NewCardRepo(db DBTX) *CardRepo {
	return &CardRepo{db: db}
}

func (r *CardRepo) Insert(ctx context.Context, c *CallingCard) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO calling_cards (module_id, label, created_at, deadline, completed, reward, reward_paid)
		VALUES (?, ?, ?, ?, 0, ?, 0)
	`, c.ModuleID, c.Label, c.CreatedAt, c.Deadline, c.Reward)
	if err != nil {
		return 0, fmt.Errorf("card insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("card last insert id: %w", err)
	}
	return id, nil
}

func (r *CardRepo) Get(ctx context.Context, id int64) (*CallingCard, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, module_id, label, created_at, deadline, completed, completed_at, reward, reward_paid
		FROM calling_cards WHERE id = ?
	`, id)
	return scanCard(row)
}

func (r *CardRepo) MarkCompleted(ctx context.Context, id int64, at time.Time, rewardPaid bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE calling_cards SET completed = 1, completed_at = ?, reward_paid = ? WHERE id = ?
	`, at, boolToInt(rewardPaid), id)
	if err != nil {
		return fmt.Errorf("card mark completed: %w", err)
	}
	return nil
}

func (r *CardRepo) ListAll(ctx context.Context) ([]CallingCard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, module_id, label, created_at, deadline, completed, completed_at, reward, reward_paid
		FROM calling_cards ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("card list: %w", err)
	}
	defer rows.Close()

	var out []CallingCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("card rows: %w", err)
	}
	return out, nil
}

func (r *CardRepo) CountCompleted(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calling_cards WHERE completed = 1`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("card count: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (*CallingCard, error) {
	var (
		c         CallingCard
		completed int
		compAt    sql.NullTime
		paid      int
	)
	if err := row.Scan(&c.ID, &c.ModuleID, &c.Label, &c.CreatedAt, &c.Deadline, &completed, &compAt, &c.Reward, &paid); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("card scan: %w", err)
	}
	c.Completed = completed != 0
	c.RewardPaid = paid != 0
	if compAt.Valid {
		v := compAt.Time
		c.CompletedAt = &v
	}
	return &c, nil
}
