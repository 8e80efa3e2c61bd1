package engine

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"studyquest/internal/config"
	"studyquest/internal/storage"
)

type Service struct {
	db    *sql.DB
	log   *slog.Logger
	exams *config.ExamCatalog

	// now is swappable in tests.
	now func() time.Time

	progress   *storage.ProgressRepo
	stats      *storage.StatRepo
	confidants *storage.ConfidantRepo
	exercises  *storage.ExerciseRepo
	calendar   *storage.CalendarRepo
	unlocks    *storage.UnlockRepo
	cards      *storage.CardRepo
	examRecs   *storage.ExamRepo
	records    *storage.RecordRepo
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithExamCatalog(c *config.ExamCatalog) Option {
	return func(s *Service) { s.exams = c }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:         db,
		log:        slog.Default(),
		exams:      config.DefaultExamCatalog(),
		now:        time.Now,
		progress:   storage.NewProgressRepo(db),
		stats:      storage.NewStatRepo(db),
		confidants: storage.NewConfidantRepo(db),
		exercises:  storage.NewExerciseRepo(db),
		calendar:   storage.NewCalendarRepo(db),
		unlocks:    storage.NewUnlockRepo(db),
		cards:      storage.NewCardRepo(db),
		examRecs:   storage.NewExamRepo(db),
		records:    storage.NewRecordRepo(db),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ExamCatalog() *config.ExamCatalog { return s.exams }

func (s *Service) getStat(ctx context.Context, name Stat) (*storage.Stat, error) {
	return s.stats.GetOrCreate(ctx, string(name))
}

func (s *Service) getConfidant(ctx context.Context, name Stat) (*storage.Confidant, error) {
	return s.confidants.GetOrCreate(ctx, string(name))
}

// StatLevels returns the level of every skill track, defaulting to 1 for
// tracks with no stored row yet.
func (s *Service) StatLevels(ctx context.Context) (map[Stat]int, error) {
	rows, err := s.stats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := map[Stat]int{}
	for _, st := range AllStats() {
		out[st] = 1
	}
	for _, row := range rows {
		out[Stat(row.Name)] = row.Level
	}
	return out, nil
}
