package storage

import "time"

// Progress holds the wallet balance and combo counters.
type Progress struct {
	Key          string
	Balance      int
	ComboCurrent int
	ComboBest    int
	ComboTotal   int
}

type Stat struct {
	Name  string
	XP    int
	Level int
}

type Confidant struct {
	Name    string
	Rank    int
	XP      int
	TotalXP int
}

// ExerciseLog is the single-row summary of all completions.
type ExerciseLog struct {
	Key             string
	TotalCompleted  int
	FastestTime     *float64
	BestStreak      int
	EarlyBird       bool
	NightOwl        bool
	LastCompletedAt *time.Time
}

type ExerciseCompletion struct {
	ExerciseID  string
	CompletedAt time.Time
	Difficulty  int
	TimeTaken   float64
}

type DayActivity struct {
	Date       string // "2006-01-02"
	Exercises  int
	FirstVisit time.Time
	LastVisit  time.Time
}

type Unlock struct {
	Kind       string
	ID         string
	UnlockedAt time.Time
}

type CallingCard struct {
	ID          int64
	ModuleID    string
	Label       string
	CreatedAt   time.Time
	Deadline    time.Time
	Completed   bool
	CompletedAt *time.Time
	Reward      int
	RewardPaid  bool
}

type ExamRecord struct {
	ExamID        string
	Grade         string
	Score         int
	Total         int
	CompletedAt   time.Time
	TimeTaken     float64
	BestGrade     string
	CooldownUntil *time.Time
}

// Records is the single-row leaderboard: personal bests plus the rolling
// per-day session counter.
type Records struct {
	Key          string
	BestTime     *float64
	BestCombo    int
	SessionDate  string
	SessionCount int
}
