package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"studyquest/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func setCombo(t *testing.T, svc *Service, current, best, total int) {
	t.Helper()
	ctx := context.Background()
	p, err := svc.progress.GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	p.ComboCurrent = current
	p.ComboBest = best
	p.ComboTotal = total
	if err := svc.progress.Update(ctx, p); err != nil {
		t.Fatalf("update progress: %v", err)
	}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestFirstCompletion(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := svc.CompleteExercise(ctx, CompleteInput{
		ExerciseID: "m1-e1",
		Difficulty: TierIntro,
		Concept:    "variables",
		Elapsed:    45,
	})
	if err != nil {
		t.Fatalf("CompleteExercise: %v", err)
	}

	if res.Credited != 100 {
		t.Fatalf("credited=%d, want 100", res.Credited)
	}
	if res.Combo != 1 {
		t.Fatalf("combo=%d, want 1", res.Combo)
	}
	if res.Streak != 1 {
		t.Fatalf("streak=%d, want 1", res.Streak)
	}
	if res.Stat != StatSyntax {
		t.Fatalf("stat=%s, want Syntax", res.Stat)
	}
	if !res.FirstEver {
		t.Fatalf("expected first-ever completion")
	}
	if !hasEvent(res.Events, EventWelcome) {
		t.Fatalf("expected welcome event, got %v", res.Events)
	}
	if !hasEvent(res.Events, EventAchievementUnlocked) {
		t.Fatalf("expected first_blood unlock, got %v", res.Events)
	}

	sn, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if sn.Progress.Balance != 100 {
		t.Fatalf("persisted balance=%d, want 100", sn.Progress.Balance)
	}
	if sn.Log.TotalCompleted != 1 {
		t.Fatalf("persisted totalCompleted=%d, want 1", sn.Log.TotalCompleted)
	}
	if !sn.Achievements["first_blood"] {
		t.Fatalf("first_blood not persisted")
	}
}

func TestComboMilestonePayout(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setCombo(t, svc, 4, 4, 8)

	res, err := svc.CompleteExercise(ctx, CompleteInput{
		ExerciseID: "m2-e3",
		Difficulty: TierCore,
		Concept:    "loops",
		Elapsed:    60,
	})
	if err != nil {
		t.Fatalf("CompleteExercise: %v", err)
	}

	// Payout is judged against the streak going in (4 → x2), while the
	// milestone fires on the transition to 5.
	if res.Credited != 500 {
		t.Fatalf("credited=%d, want 500", res.Credited)
	}
	if res.Combo != 5 {
		t.Fatalf("combo=%d, want 5", res.Combo)
	}
	if !hasEvent(res.Events, EventComboMilestone) {
		t.Fatalf("expected all-out-attack event, got %v", res.Events)
	}
}

func TestHintBreaksCombo(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setCombo(t, svc, 4, 4, 8)

	res, err := svc.CompleteExercise(ctx, CompleteInput{
		ExerciseID: "m1-e2",
		Difficulty: TierIntro,
		Concept:    "types",
		UsedHint:   true,
	})
	if err != nil {
		t.Fatalf("CompleteExercise: %v", err)
	}

	if res.Combo != 0 {
		t.Fatalf("combo=%d, want 0 after hint", res.Combo)
	}
	if res.Credited != 100 {
		t.Fatalf("credited=%d, want flat 100 after hint", res.Credited)
	}
	if hasEvent(res.Events, EventComboMilestone) {
		t.Fatalf("milestone must not fire on a miss")
	}

	sn, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if sn.Progress.ComboBest != 4 {
		t.Fatalf("best=%d, want 4 preserved across miss", sn.Progress.ComboBest)
	}
	if sn.Progress.ComboTotal != 8 {
		t.Fatalf("total=%d, want 8 unchanged by miss", sn.Progress.ComboTotal)
	}
}

func TestComboInvariants(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	inputs := []CompleteInput{
		{ExerciseID: "a", Difficulty: TierIntro, Concept: "loops"},
		{ExerciseID: "b", Difficulty: TierIntro, Concept: "loops"},
		{ExerciseID: "c", Difficulty: TierIntro, Concept: "loops", UsedHint: true},
		{ExerciseID: "d", Difficulty: TierIntro, Concept: "loops"},
	}
	for _, in := range inputs {
		if _, err := svc.CompleteExercise(ctx, in); err != nil {
			t.Fatalf("CompleteExercise(%s): %v", in.ExerciseID, err)
		}
		sn, err := svc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		p := sn.Progress
		if p.ComboBest < p.ComboCurrent {
			t.Fatalf("best=%d < current=%d", p.ComboBest, p.ComboCurrent)
		}
		if p.ComboTotal < p.ComboBest {
			t.Fatalf("total=%d < best=%d", p.ComboTotal, p.ComboBest)
		}
	}
}

func TestEarnSpendRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CompleteExercise(ctx, CompleteInput{
		ExerciseID: "m1-e1",
		Difficulty: TierIntro,
		Concept:    "variables",
	}); err != nil {
		t.Fatalf("CompleteExercise: %v", err)
	}

	if err := svc.Spend(ctx, 100); err != nil {
		t.Fatalf("Spend: %v", err)
	}
	balance, err := svc.Balance(ctx)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance=%d, want 0 after earn/spend round trip", balance)
	}

	err = svc.Spend(ctx, 50)
	var funds InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("Spend on empty wallet: got %v, want InsufficientFundsError", err)
	}
	if funds.Balance != 0 || funds.Needed != 50 {
		t.Fatalf("funds error=%+v", funds)
	}
}

func TestCompleteValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CompleteExercise(ctx, CompleteInput{Difficulty: TierIntro}); err == nil {
		t.Fatalf("expected error for missing exercise id")
	}
	if _, err := svc.CompleteExercise(ctx, CompleteInput{ExerciseID: "x", Difficulty: 7}); err == nil {
		t.Fatalf("expected error for invalid tier")
	}
}

func TestSessionCountRollsOverAtMidnight(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	day1 := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day1 }

	for _, id := range []string{"a", "b"} {
		if _, err := svc.CompleteExercise(ctx, CompleteInput{ExerciseID: id, Difficulty: TierIntro, Concept: "maps"}); err != nil {
			t.Fatalf("CompleteExercise(%s): %v", id, err)
		}
	}
	sn, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if sn.Records.SessionCount != 2 {
		t.Fatalf("sessionCount=%d, want 2", sn.Records.SessionCount)
	}

	day2 := day1.AddDate(0, 0, 1)
	svc.now = func() time.Time { return day2 }
	if _, err := svc.CompleteExercise(ctx, CompleteInput{ExerciseID: "c", Difficulty: TierIntro, Concept: "maps"}); err != nil {
		t.Fatalf("CompleteExercise(c): %v", err)
	}
	sn, err = svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if sn.Records.SessionCount != 1 {
		t.Fatalf("sessionCount=%d, want 1 after day change", sn.Records.SessionCount)
	}
}

func TestStatForConcept(t *testing.T) {
	cases := []struct {
		concept string
		want    Stat
	}{
		{"loops", StatLogic},
		{"Channels", StatConcurrency},
		{"  TESTING ", StatDebugging},
		{"Debugging", StatDebugging},
		{"", DefaultStat},
		{"quantum", DefaultStat},
	}
	for _, tc := range cases {
		if got := StatForConcept(tc.concept); got != tc.want {
			t.Fatalf("StatForConcept(%q)=%s, want %s", tc.concept, got, tc.want)
		}
	}
}
