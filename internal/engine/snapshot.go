package engine

import (
	"context"

	"studyquest/internal/storage"
)

// Snapshot is a read-only view of all progression state. Achievement and
// fusion predicates evaluate against it, which keeps them pure: they can
// read anything and mutate nothing. It doubles as the UI refresh surface.
type Snapshot struct {
	Progress   storage.Progress
	Stats      map[Stat]storage.Stat
	Confidants map[Stat]storage.Confidant
	Log        storage.ExerciseLog
	Records    storage.Records
	Streak     int

	Achievements map[string]bool // unlocked achievement ids
	Fusions      map[string]bool // unlocked fusion results
	Items        map[string]bool // owned shop items

	CardsCompleted int
	BestGrades     map[string]Grade // exam id → best grade
}

// StatLevel returns the level of a track, defaulting to 1.
func (sn *Snapshot) StatLevel(name Stat) int {
	if st, ok := sn.Stats[name]; ok {
		return st.Level
	}
	return 1
}

// AnyExamGraded reports whether any exam's best grade is at least g.
func (sn *Snapshot) AnyExamGraded(g Grade) bool {
	for _, got := range sn.BestGrades {
		if gradeRank[got] >= gradeRank[g] {
			return true
		}
	}
	return false
}

// Snapshot assembles the full progression view.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	p, err := s.progress.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	log, err := s.exercises.GetOrCreateLog(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.records.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	statRows, err := s.stats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	confRows, err := s.confidants.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	streak, err := s.CurrentStreak(ctx)
	if err != nil {
		return nil, err
	}
	achievements, err := s.unlocks.ListByKind(ctx, storage.UnlockAchievement)
	if err != nil {
		return nil, err
	}
	fusions, err := s.unlocks.ListByKind(ctx, storage.UnlockFusion)
	if err != nil {
		return nil, err
	}
	items, err := s.unlocks.ListByKind(ctx, storage.UnlockItem)
	if err != nil {
		return nil, err
	}
	cardsDone, err := s.cards.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}
	examRows, err := s.examRecs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sn := &Snapshot{
		Progress:       *p,
		Stats:          map[Stat]storage.Stat{},
		Confidants:     map[Stat]storage.Confidant{},
		Log:            *log,
		Records:        *recs,
		Streak:         streak,
		Achievements:   achievements,
		Fusions:        fusions,
		Items:          items,
		CardsCompleted: cardsDone,
		BestGrades:     map[string]Grade{},
	}
	for _, row := range statRows {
		sn.Stats[Stat(row.Name)] = row
	}
	for _, row := range confRows {
		sn.Confidants[Stat(row.Name)] = row
	}
	for _, rec := range examRows {
		sn.BestGrades[rec.ExamID] = Grade(rec.BestGrade)
	}
	return sn, nil
}
