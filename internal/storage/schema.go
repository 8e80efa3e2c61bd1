package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Wallet balance plus combo counters live on a single row.
		`CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			balance INTEGER DEFAULT 0,
			combo_current INTEGER DEFAULT 0,
			combo_best INTEGER DEFAULT 0,
			combo_total INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS stats (
			name TEXT PRIMARY KEY,
			xp INTEGER DEFAULT 0,
			level INTEGER DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS confidants (
			name TEXT PRIMARY KEY,
			rank INTEGER DEFAULT 1,
			xp INTEGER DEFAULT 0,
			total_xp INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS exercise_log (
			key TEXT PRIMARY KEY,
			total_completed INTEGER DEFAULT 0,
			fastest_time REAL,
			best_streak INTEGER DEFAULT 0,
			early_bird INTEGER DEFAULT 0,
			night_owl INTEGER DEFAULT 0,
			last_completed_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS exercise_completions (
			exercise_id TEXT PRIMARY KEY,
			completed_at DATETIME NOT NULL,
			difficulty INTEGER NOT NULL,
			time_taken REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS daily_activity (
			date TEXT PRIMARY KEY,
			exercises INTEGER DEFAULT 0,
			first_visit DATETIME NOT NULL,
			last_visit DATETIME NOT NULL
		);`,
		// Write-once unlock sets: achievements, fusions, shop items.
		`CREATE TABLE IF NOT EXISTS unlocks (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			unlocked_at DATETIME NOT NULL,
			PRIMARY KEY (kind, id)
		);`,
		`CREATE TABLE IF NOT EXISTS calling_cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			module_id TEXT NOT NULL,
			label TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			deadline DATETIME NOT NULL,
			completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			reward INTEGER NOT NULL,
			reward_paid INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS exam_records (
			exam_id TEXT PRIMARY KEY,
			grade TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			completed_at DATETIME NOT NULL,
			time_taken REAL NOT NULL,
			best_grade TEXT NOT NULL,
			cooldown_until DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			best_time REAL,
			best_combo INTEGER DEFAULT 0,
			session_date TEXT DEFAULT '',
			session_count INTEGER DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_calling_cards_completed ON calling_cards(completed);`,
		`CREATE INDEX IF NOT EXISTS idx_unlocks_kind ON unlocks(kind);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
