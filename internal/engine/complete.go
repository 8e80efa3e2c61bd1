package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studyquest/internal/storage"
)

type CompleteInput struct {
	ExerciseID string
	Difficulty Difficulty
	Concept    string
	Elapsed    float64 // seconds since the exercise was opened
	UsedHint   bool
}

type CompleteResult struct {
	ExerciseID  string
	Stat        Stat
	Credited    int
	StatLeveled bool
	Combo       int
	Streak      int
	FirstEver   bool
	Events      []Event
}

// CompleteExercise is the single entry point for "exercise completed".
// The step order is fixed: later steps read state mutated by earlier
// ones. All mutations happen in memory first; persistence at the end is
// best-effort (a storage failure is logged, never fatal to the cascade).
func (s *Service) CompleteExercise(ctx context.Context, in CompleteInput) (*CompleteResult, error) {
	if in.ExerciseID == "" {
		return nil, errors.New("exercise id is required")
	}
	if !in.Difficulty.IsValid() {
		return nil, fmt.Errorf("invalid difficulty tier: %d", in.Difficulty)
	}

	now := s.now()
	statName := StatForConcept(in.Concept)

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
	st, err := s.getStat(ctx, statName)
	if err != nil {
		return nil, err
	}
	conf, err := s.getConfidant(ctx, statName)
	if err != nil {
		return nil, err
	}
	days, err := s.calendar.ListSince(ctx, dayKey(now.AddDate(0, 0, -streakLookback)))
	if err != nil {
		return nil, err
	}

	var events []Event

	// 1. Exercise log.
	log.TotalCompleted++
	if in.Elapsed > 0 && (log.FastestTime == nil || in.Elapsed < *log.FastestTime) {
		v := in.Elapsed
		log.FastestTime = &v
	}
	if now.Hour() < 8 {
		log.EarlyBird = true
	}
	if now.Hour() >= 22 {
		log.NightOwl = true
	}
	done := now
	log.LastCompletedAt = &done
	completion := storage.ExerciseCompletion{
		ExerciseID:  in.ExerciseID,
		CompletedAt: now,
		Difficulty:  int(in.Difficulty),
		TimeTaken:   in.Elapsed,
	}

	// 2. Streak before today's entry is written; a missing today does
	// not break it.
	streak := streakFrom(days, now)
	if streak > log.BestStreak {
		log.BestStreak = streak
	}

	// 3. Today's calendar entry.
	key := dayKey(now)
	day, ok := days[key]
	if !ok {
		day = storage.DayActivity{Date: key, FirstVisit: now}
	}
	day.Exercises++
	day.LastVisit = now
	days[key] = day

	// 4. Combo: hint-assisted completions break momentum. The payout
	// multiplier is judged against the streak going into this completion;
	// a hint zeroes it.
	payoutCombo := p.ComboCurrent
	if in.UsedHint {
		comboMiss(p)
		payoutCombo = 0
	} else {
		events = append(events, comboSuccess(p)...)
	}

	// 5. Coins.
	credited, coinEv := earn(p, BaseReward(in.Difficulty), payoutCombo)
	events = append(events, coinEv)

	// 6. Stat and confidant XP (independent multipliers, same trigger).
	leveled, levelEvents := addStatXP(st, int(in.Difficulty)*StatXPPerTier)
	events = append(events, levelEvents...)
	events = append(events, addConfidantXP(conf, int(in.Difficulty)*ConfidantXPPerTier)...)

	// 7. Leaderboard records. Session boundary is the calendar day.
	if in.Elapsed > 0 && (recs.BestTime == nil || in.Elapsed < *recs.BestTime) {
		v := in.Elapsed
		recs.BestTime = &v
	}
	if p.ComboBest > recs.BestCombo {
		recs.BestCombo = p.ComboBest
	}
	if recs.SessionDate != key {
		recs.SessionDate = key
		recs.SessionCount = 0
	}
	recs.SessionCount++

	// 8-9. Fusion then achievement evaluation over the mutated state.
	sn, err := s.pendingSnapshot(ctx, p, st, conf, log, recs, streakFrom(days, now))
	if err != nil {
		return nil, err
	}
	newFusions := evaluateFusions(sn)
	for _, r := range newFusions {
		sn.Fusions[r.Result] = true
		events = append(events, Event{Kind: EventFusionUnlocked, ID: r.Result, Name: r.Result})
	}
	newAchievements := evaluateAchievements(sn)
	for _, a := range newAchievements {
		events = append(events, Event{Kind: EventAchievementUnlocked, ID: a.ID, Name: a.Name})
	}

	// 10. First-ever completion schedules the onboarding tooltip.
	firstEver := log.TotalCompleted == 1
	if firstEver {
		events = append(events, Event{Kind: EventWelcome})
	}

	if err := s.persistCompletion(ctx, p, st, conf, log, recs, day, completion, newFusions, newAchievements, now); err != nil {
		s.log.Warn("progress not saved", "exercise", in.ExerciseID, "error", err)
	}

	return &CompleteResult{
		ExerciseID:  in.ExerciseID,
		Stat:        statName,
		Credited:    credited,
		StatLeveled: leveled,
		Combo:       p.ComboCurrent,
		Streak:      streakFrom(days, now),
		FirstEver:   firstEver,
		Events:      events,
	}, nil
}

// pendingSnapshot builds a Snapshot from aggregates mutated in memory,
// so evaluators see this completion's effects before anything is saved.
func (s *Service) pendingSnapshot(ctx context.Context, p *storage.Progress, st *storage.Stat, conf *storage.Confidant, log *storage.ExerciseLog, recs *storage.Records, streak int) (*Snapshot, error) {
	statRows, err := s.stats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	confRows, err := s.confidants.ListAll(ctx)
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
	sn.Stats[Stat(st.Name)] = *st
	sn.Confidants[Stat(conf.Name)] = *conf
	for _, rec := range examRows {
		sn.BestGrades[rec.ExamID] = Grade(rec.BestGrade)
	}
	return sn, nil
}

func (s *Service) persistCompletion(
	ctx context.Context,
	p *storage.Progress,
	st *storage.Stat,
	conf *storage.Confidant,
	log *storage.ExerciseLog,
	recs *storage.Records,
	day storage.DayActivity,
	completion storage.ExerciseCompletion,
	newFusions []FusionRecipe,
	newAchievements []Achievement,
	now time.Time,
) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewProgressRepo(tx).Update(ctx, p); err != nil {
			return err
		}
		if err := storage.NewStatRepo(tx).Upsert(ctx, st); err != nil {
			return err
		}
		if err := storage.NewConfidantRepo(tx).Upsert(ctx, conf); err != nil {
			return err
		}
		exercises := storage.NewExerciseRepo(tx)
		if err := exercises.UpdateLog(ctx, log); err != nil {
			return err
		}
		if err := exercises.UpsertCompletion(ctx, completion); err != nil {
			return err
		}
		if err := storage.NewCalendarRepo(tx).Upsert(ctx, &day); err != nil {
			return err
		}
		if err := storage.NewRecordRepo(tx).Update(ctx, recs); err != nil {
			return err
		}
		unlocks := storage.NewUnlockRepo(tx)
		for _, r := range newFusions {
			if _, err := unlocks.Insert(ctx, storage.UnlockFusion, r.Result, now); err != nil {
				return err
			}
		}
		for _, a := range newAchievements {
			if _, err := unlocks.Insert(ctx, storage.UnlockAchievement, a.ID, now); err != nil {
				return err
			}
		}
		return nil
	})
}
