package engine

import "fmt"

// EventKind names a one-shot celebration cue for the presentation layer.
// The engine mutates state and returns events; it never renders or plays
// anything itself.
type EventKind string

const (
	EventCoinEarned          EventKind = "coin_earned"
	EventLevelUp             EventKind = "level_up"
	EventRankUp              EventKind = "rank_up"
	EventComboMilestone      EventKind = "combo_milestone"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventFusionUnlocked      EventKind = "fusion_unlocked"
	EventExamFinished        EventKind = "exam_finished"
	EventWelcome             EventKind = "welcome"
)

// Event carries the minimal payload for one visual/audio cue.
type Event struct {
	Kind   EventKind
	Stat   Stat   // level_up, rank_up
	Level  int    // level_up
	Rank   int    // rank_up
	Amount int    // coin_earned
	Combo  int    // combo_milestone
	ID     string // achievement/fusion/exam id
	Name   string // display name
	Grade  Grade  // exam_finished
}

func (e Event) String() string {
	switch e.Kind {
	case EventCoinEarned:
		return fmt.Sprintf("+%d coins", e.Amount)
	case EventLevelUp:
		return fmt.Sprintf("%s reached level %d", e.Stat, e.Level)
	case EventRankUp:
		return fmt.Sprintf("%s confidant reached rank %d", e.Stat, e.Rank)
	case EventComboMilestone:
		return fmt.Sprintf("All-out attack! %d in a row", e.Combo)
	case EventAchievementUnlocked:
		return fmt.Sprintf("Achievement unlocked: %s", e.Name)
	case EventFusionUnlocked:
		return fmt.Sprintf("Fusion revealed: %s", e.Name)
	case EventExamFinished:
		return fmt.Sprintf("Exam %s finished: grade %s", e.ID, e.Grade)
	case EventWelcome:
		return "First exercise complete — welcome aboard!"
	default:
		return string(e.Kind)
	}
}
