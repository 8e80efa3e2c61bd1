package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquest/internal/storage"
)

func setStatLevel(t *testing.T, svc *Service, name Stat, level int) {
	t.Helper()
	ctx := context.Background()
	st, err := svc.getStat(ctx, name)
	if err != nil {
		t.Fatalf("get stat: %v", err)
	}
	st.Level = level
	if err := svc.stats.Upsert(ctx, st); err != nil {
		t.Fatalf("upsert stat: %v", err)
	}
}

func TestCheckAchievementsIdempotent(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	log, err := svc.exercises.GetOrCreateLog(ctx)
	require.NoError(t, err)
	log.TotalCompleted = 10
	require.NoError(t, svc.exercises.UpdateLog(ctx, log))

	events, err := svc.CheckAchievements(ctx)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, ev := range events {
		ids[ev.ID] = true
	}
	assert.True(t, ids["first_blood"])
	assert.True(t, ids["ten_done"])

	// No state change, no new unlocks.
	again, err := svc.CheckAchievements(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestFusionUnlock(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	events, err := svc.CheckFusions(ctx)
	require.NoError(t, err)
	assert.Empty(t, events, "fresh state satisfies no recipe")

	setStatLevel(t, svc, StatSyntax, 2)
	setStatLevel(t, svc, StatLogic, 2)

	events, err = svc.CheckFusions(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Script Kiddie", events[0].ID)

	again, err := svc.CheckFusions(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	// The fusion itself satisfies the first-fusion badge.
	achEvents, err := svc.CheckAchievements(ctx)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, ev := range achEvents {
		ids[ev.ID] = true
	}
	assert.True(t, ids["first_fusion"])
}

func TestAllStatsBadges(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	for _, st := range AllStats() {
		setStatLevel(t, svc, st, 5)
	}
	events, err := svc.CheckAchievements(ctx)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, ev := range events {
		ids[ev.ID] = true
	}
	assert.True(t, ids["well_rounded"])
	assert.False(t, ids["polymath"])

	for _, st := range AllStats() {
		setStatLevel(t, svc, st, 10)
	}
	events, err = svc.CheckAchievements(ctx)
	require.NoError(t, err)
	found := false
	for _, ev := range events {
		if ev.ID == "polymath" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFusionUnlockDuringCompletion(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// One expert exercise away from Script Kiddie: Syntax already at 2,
	// Logic at 1 with 99 XP banked.
	setStatLevel(t, svc, StatSyntax, 2)
	st, err := svc.getStat(ctx, StatLogic)
	require.NoError(t, err)
	st.XP = 99
	require.NoError(t, svc.stats.Upsert(ctx, st))

	res, err := svc.CompleteExercise(ctx, CompleteInput{
		ExerciseID: "m2-e9",
		Difficulty: TierIntro,
		Concept:    "loops",
	})
	require.NoError(t, err)

	assert.True(t, hasEvent(res.Events, EventLevelUp))
	assert.True(t, hasEvent(res.Events, EventFusionUnlocked), "fusion must be seen in the same completion")

	sn, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, sn.Fusions["Script Kiddie"])
	assert.True(t, sn.Achievements["first_fusion"], "badge sees the fusion unlocked in the same pass")
}

func TestTrueBondBadge(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	conf, err := svc.getConfidant(ctx, StatData)
	require.NoError(t, err)
	conf.Rank = MaxConfidantRank
	require.NoError(t, svc.confidants.Upsert(ctx, conf))

	events, err := svc.CheckAchievements(ctx)
	require.NoError(t, err)
	found := false
	for _, ev := range events {
		if ev.ID == "true_bond" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAchievementListing(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	all, err := svc.Achievements(ctx)
	require.NoError(t, err)
	assert.Len(t, all, AchievementCount())
	for _, a := range all {
		assert.False(t, a.Unlocked)
	}

	_, err = svc.unlocks.Insert(ctx, storage.UnlockAchievement, "first_blood", svc.now())
	require.NoError(t, err)

	all, err = svc.Achievements(ctx)
	require.NoError(t, err)
	for _, a := range all {
		assert.Equal(t, a.ID == "first_blood", a.Unlocked)
	}
}
