package engine

import (
	"context"
	"testing"

	"studyquest/internal/storage"
)

func TestStatLevelUp(t *testing.T) {
	st := &storage.Stat{Name: "Syntax", XP: 90, Level: 1}

	leveled, events := addStatXP(st, 30)

	if !leveled {
		t.Fatalf("expected a level-up")
	}
	if st.Level != 2 || st.XP != 20 {
		t.Fatalf("got level=%d xp=%d, want level=2 xp=20", st.Level, st.XP)
	}
	if len(events) != 1 || events[0].Kind != EventLevelUp || events[0].Level != 2 {
		t.Fatalf("events=%v, want one level-up to 2", events)
	}
}

func TestStatMultiLevelUp(t *testing.T) {
	st := &storage.Stat{Name: "Data", Level: 1}

	// 100 leaves level 1, 200 leaves level 2; 350 covers both with 50 spare.
	leveled, events := addStatXP(st, 350)

	if !leveled || st.Level != 3 || st.XP != 50 {
		t.Fatalf("got level=%d xp=%d leveled=%v, want 3/50/true", st.Level, st.XP, leveled)
	}
	if len(events) != 2 {
		t.Fatalf("events=%v, want two level-ups", events)
	}
}

func TestStatXPPostCondition(t *testing.T) {
	st := &storage.Stat{Name: "Logic", Level: 1}
	for _, grant := range []int{30, 100, 999, 1, 2500} {
		addStatXP(st, grant)
		if st.XP >= statThreshold(st.Level) {
			t.Fatalf("xp=%d >= threshold(%d)=%d after grant %d", st.XP, st.Level, statThreshold(st.Level), grant)
		}
	}
}

func TestStatXPIgnoresNonPositive(t *testing.T) {
	st := &storage.Stat{Name: "Syntax", XP: 40, Level: 1}
	if leveled, events := addStatXP(st, 0); leveled || events != nil {
		t.Fatalf("zero grant must be a no-op")
	}
	if leveled, events := addStatXP(st, -5); leveled || events != nil {
		t.Fatalf("negative grant must be a no-op")
	}
	if st.XP != 40 {
		t.Fatalf("xp=%d, want 40 untouched", st.XP)
	}
}

func TestConfidantFinalRankUp(t *testing.T) {
	c := &storage.Confidant{Name: "Concurrency", Rank: 9, XP: 3400}

	events := addConfidantXP(c, 2000)

	if c.Rank != 10 || c.XP != 400 {
		t.Fatalf("got rank=%d xp=%d, want rank=10 xp=400", c.Rank, c.XP)
	}
	if len(events) != 1 || events[0].Kind != EventRankUp || events[0].Rank != 10 {
		t.Fatalf("events=%v, want one rank-up to 10", events)
	}

	// Capped track drops further grants entirely.
	if events := addConfidantXP(c, 500); events != nil {
		t.Fatalf("expected no-op at rank cap, got %v", events)
	}
	if c.XP != 400 || c.TotalXP != 2000 {
		t.Fatalf("capped track mutated: xp=%d totalXP=%d", c.XP, c.TotalXP)
	}
}

func TestConfidantMultiRankUp(t *testing.T) {
	c := &storage.Confidant{Name: "Logic", Rank: 1}

	// Crossing 100 then 250 in a single grant yields two rank-ups.
	events := addConfidantXP(c, 400)

	if c.Rank != 3 {
		t.Fatalf("rank=%d, want 3", c.Rank)
	}
	if c.XP != 50 {
		t.Fatalf("xp=%d, want 50", c.XP)
	}
	if len(events) != 2 {
		t.Fatalf("events=%v, want two rank-ups", events)
	}
	if c.TotalXP != 400 {
		t.Fatalf("totalXP=%d, want 400", c.TotalXP)
	}
}

func TestConfidantXPPostCondition(t *testing.T) {
	c := &storage.Confidant{Name: "Debugging", Rank: 1}
	for _, grant := range []int{15, 60, 900, 45} {
		addConfidantXP(c, grant)
		if c.Rank < MaxConfidantRank && c.XP >= rankXP[c.Rank+1] {
			t.Fatalf("xp=%d >= gate(%d)=%d", c.XP, c.Rank+1, rankXP[c.Rank+1])
		}
	}
}

func TestXPGrantsScaleWithTier(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CompleteExercise(ctx, CompleteInput{
		ExerciseID: "m4-e1",
		Difficulty: TierExpert,
		Concept:    "goroutines",
	}); err != nil {
		t.Fatalf("CompleteExercise: %v", err)
	}

	sn, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	st := sn.Stats[StatConcurrency]
	if st.XP != 4*StatXPPerTier {
		t.Fatalf("stat xp=%d, want %d", st.XP, 4*StatXPPerTier)
	}
	conf := sn.Confidants[StatConcurrency]
	if conf.TotalXP != 4*ConfidantXPPerTier {
		t.Fatalf("confidant totalXP=%d, want %d", conf.TotalXP, 4*ConfidantXPPerTier)
	}
}
