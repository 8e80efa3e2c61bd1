package engine

import (
	"context"

	"studyquest/internal/storage"
)

// Achievement is a badge gated by a predicate over the Snapshot.
// Predicates must be pure reads; the unlock flag itself is the only state
// an evaluation pass may change.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      func(*Snapshot) bool
}

// achievementCatalog is the fixed badge list. Order is display/priority
// order; unlock events fire in this order.
func achievementCatalog() []Achievement {
	return []Achievement{
		{
			ID: "first_blood", Name: "First Blood", Icon: "🩸",
			Description: "Complete your first exercise",
			Earned:      func(sn *Snapshot) bool { return sn.Log.TotalCompleted >= 1 },
		},
		{
			ID: "combo_3", Name: "Warming Up", Icon: "🔥",
			Description: "Reach a 3-exercise combo",
			Earned:      func(sn *Snapshot) bool { return sn.Progress.ComboBest >= 3 },
		},
		{
			ID: "combo_5", Name: "All-Out Attack", Icon: "⚔️",
			Description: "Reach a 5-exercise combo",
			Earned:      func(sn *Snapshot) bool { return sn.Progress.ComboBest >= 5 },
		},
		{
			ID: "combo_10", Name: "Unstoppable", Icon: "💥",
			Description: "Reach a 10-exercise combo",
			Earned:      func(sn *Snapshot) bool { return sn.Progress.ComboBest >= 10 },
		},
		{
			ID: "ten_done", Name: "Getting Serious", Icon: "📋",
			Description: "Complete 10 exercises",
			Earned:      func(sn *Snapshot) bool { return sn.Log.TotalCompleted >= 10 },
		},
		{
			ID: "fifty_done", Name: "Dedicated", Icon: "🏅",
			Description: "Complete 50 exercises",
			Earned:      func(sn *Snapshot) bool { return sn.Log.TotalCompleted >= 50 },
		},
		{
			ID: "hundred_done", Name: "Centurion", Icon: "🏆",
			Description: "Complete 100 exercises",
			Earned:      func(sn *Snapshot) bool { return sn.Log.TotalCompleted >= 100 },
		},
		{
			ID: "speedrunner", Name: "Speedrunner", Icon: "⚡",
			Description: "Finish an exercise in under 30 seconds",
			Earned: func(sn *Snapshot) bool {
				return sn.Log.FastestTime != nil && *sn.Log.FastestTime < 30
			},
		},
		{
			ID: "saver", Name: "Piggy Bank", Icon: "🪙",
			Description: "Hold 1,000 coins",
			Earned:      func(sn *Snapshot) bool { return sn.Progress.Balance >= 1000 },
		},
		{
			ID: "tycoon", Name: "Tycoon", Icon: "💰",
			Description: "Hold 10,000 coins",
			Earned:      func(sn *Snapshot) bool { return sn.Progress.Balance >= 10000 },
		},
		{
			ID: "week_streak", Name: "Seven Days", Icon: "📅",
			Description: "Keep a 7-day streak",
			Earned:      func(sn *Snapshot) bool { return sn.Log.BestStreak >= 7 },
		},
		{
			ID: "month_streak", Name: "Iron Will", Icon: "🗓️",
			Description: "Keep a 30-day streak",
			Earned:      func(sn *Snapshot) bool { return sn.Log.BestStreak >= 30 },
		},
		{
			ID: "well_rounded", Name: "Well Rounded", Icon: "⭐",
			Description: "All five stats at level 5",
			Earned:      func(sn *Snapshot) bool { return allStatsAtLeast(sn, 5) },
		},
		{
			ID: "polymath", Name: "Polymath", Icon: "🌟",
			Description: "All five stats at level 10",
			Earned:      func(sn *Snapshot) bool { return allStatsAtLeast(sn, 10) },
		},
		{
			ID: "first_fusion", Name: "Alchemist", Icon: "⚗️",
			Description: "Unlock a fusion",
			Earned:      func(sn *Snapshot) bool { return len(sn.Fusions) >= 1 },
		},
		{
			ID: "all_fusions", Name: "Grand Alchemist", Icon: "🔮",
			Description: "Unlock every fusion",
			Earned:      func(sn *Snapshot) bool { return len(sn.Fusions) >= len(fusionCatalog()) },
		},
		{
			ID: "true_bond", Name: "True Bond", Icon: "🤝",
			Description: "Max out a confidant",
			Earned: func(sn *Snapshot) bool {
				for _, c := range sn.Confidants {
					if c.Rank >= MaxConfidantRank {
						return true
					}
				}
				return false
			},
		},
		{
			ID: "card_delivered", Name: "Card Delivered", Icon: "🃏",
			Description: "Complete a calling card",
			Earned:      func(sn *Snapshot) bool { return sn.CardsCompleted >= 1 },
		},
		{
			ID: "perfect_exam", Name: "Honor Student", Icon: "🎓",
			Description: "Score an S on any exam",
			Earned:      func(sn *Snapshot) bool { return sn.AnyExamGraded(GradeS) },
		},
	}
}

// AchievementCount is the size of the badge catalog.
func AchievementCount() int {
	return len(achievementCatalog())
}

func allStatsAtLeast(sn *Snapshot, level int) bool {
	for _, st := range AllStats() {
		if sn.StatLevel(st) < level {
			return false
		}
	}
	return true
}

// evaluateAchievements returns catalog entries that are satisfied but not
// yet unlocked, in catalog order. It mutates nothing.
func evaluateAchievements(sn *Snapshot) []Achievement {
	var newly []Achievement
	for _, a := range achievementCatalog() {
		if sn.Achievements[a.ID] {
			continue
		}
		if a.Earned(sn) {
			newly = append(newly, a)
		}
	}
	return newly
}

// CheckAchievements unlocks every newly satisfied badge and returns one
// event per unlock. Running it twice with no state change unlocks nothing
// the second time.
func (s *Service) CheckAchievements(ctx context.Context) ([]Event, error) {
	sn, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	newly := evaluateAchievements(sn)
	return s.recordAchievements(ctx, newly)
}

func (s *Service) recordAchievements(ctx context.Context, newly []Achievement) ([]Event, error) {
	now := s.now()
	var events []Event
	for _, a := range newly {
		inserted, err := s.unlocks.Insert(ctx, storage.UnlockAchievement, a.ID, now)
		if err != nil {
			return events, err
		}
		if inserted {
			events = append(events, Event{Kind: EventAchievementUnlocked, ID: a.ID, Name: a.Name})
		}
	}
	return events, nil
}

// AchievementStatus pairs a catalog entry with its unlocked flag for
// display.
type AchievementStatus struct {
	Achievement
	Unlocked bool
}

func (s *Service) Achievements(ctx context.Context) ([]AchievementStatus, error) {
	sn, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var out []AchievementStatus
	for _, a := range achievementCatalog() {
		out = append(out, AchievementStatus{Achievement: a, Unlocked: sn.Achievements[a.ID]})
	}
	return out, nil
}
