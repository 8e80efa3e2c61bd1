package engine

import "studyquest/internal/storage"

const (
	// StatXPPerTier is the stat XP granted per completion, scaled by tier.
	StatXPPerTier = 25
	// ConfidantXPPerTier is the confidant XP per completion, scaled by tier.
	ConfidantXPPerTier = 15
	// MaxConfidantRank caps a confidant track; further XP is dropped.
	MaxConfidantRank = 10
)

// statThreshold is the XP a stat must consume to leave the given level.
func statThreshold(level int) int {
	return level * 100
}

// rankXP[r] is the XP consumed to advance to rank r. Rank 1 is free;
// rank 10 costs 5000.
var rankXP = [MaxConfidantRank + 1]int{
	0,    // unused
	0,    // rank 1
	100,  // rank 2
	250,  // rank 3
	500,  // rank 4
	900,  // rank 5
	1400, // rank 6
	2000, // rank 7
	2800, // rank 8
	3800, // rank 9
	5000, // rank 10
}

// RankXP exposes the gate table for display (rank in [1,10]).
func RankXP(rank int) int {
	if rank < 1 || rank > MaxConfidantRank {
		return 0
	}
	return rankXP[rank]
}

// addStatXP grants XP to a skill track, consuming thresholds for as many
// level-ups as the grant covers. Returns whether at least one level-up
// occurred plus one event per level gained.
func addStatXP(st *storage.Stat, amount int) (bool, []Event) {
	if amount <= 0 {
		return false, nil
	}
	st.XP += amount

	var events []Event
	for st.XP >= statThreshold(st.Level) {
		st.XP -= statThreshold(st.Level)
		st.Level++
		events = append(events, Event{Kind: EventLevelUp, Stat: Stat(st.Name), Level: st.Level})
	}
	return len(events) > 0, events
}

// addConfidantXP grants XP to a confidant track. No-op at the rank cap.
// Emits one rank-up event per rank gained; a large grant can cross
// several gates in one call.
func addConfidantXP(c *storage.Confidant, amount int) []Event {
	if amount <= 0 || c.Rank >= MaxConfidantRank {
		return nil
	}
	c.XP += amount
	c.TotalXP += amount

	var events []Event
	for c.Rank < MaxConfidantRank && c.XP >= rankXP[c.Rank+1] {
		c.XP -= rankXP[c.Rank+1]
		c.Rank++
		events = append(events, Event{Kind: EventRankUp, Stat: Stat(c.Name), Rank: c.Rank})
	}
	return events
}
