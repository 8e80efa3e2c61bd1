package storage

import (
	"context"
	"fmt"
	"time"
)

// Unlock kinds.
const (
	UnlockAchievement = "achievement"
	UnlockFusion      = "fusion"
	UnlockItem        = "item"
)

type UnlockRepo struct {
	db DBTX
}

func NewUnlockRepo(db DBTX) *UnlockRepo {
	return &UnlockRepo{db: db}
}

// Insert adds an unlock if absent. Returns true when the row was newly
// inserted; unlock sets are write-once.
func (r *UnlockRepo) Insert(ctx context.Context, kind, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO unlocks (kind, id, unlocked_at) VALUES (?, ?, ?)
	`, kind, id, at)
	if err != nil {
		return false, fmt.Errorf("unlock insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlock rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *UnlockRepo) ListByKind(ctx context.Context, kind string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM unlocks WHERE kind = ?`, kind)
	if err != nil {
		return nil, fmt.Errorf("unlock list: %w", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unlock scan: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unlock rows: %w", err)
	}
	return out, nil
}
