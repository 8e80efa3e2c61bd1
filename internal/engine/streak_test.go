package engine

import (
	"context"
	"testing"
	"time"

	"studyquest/internal/storage"
)

func dayMap(now time.Time, offsets ...int) map[string]storage.DayActivity {
	days := map[string]storage.DayActivity{}
	for _, off := range offsets {
		d := now.AddDate(0, 0, off)
		days[dayKey(d)] = storage.DayActivity{Date: dayKey(d), Exercises: 1}
	}
	return days
}

func TestStreakFrom(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"empty", nil, 0},
		{"today only", []int{0}, 1},
		{"three days ending today", []int{0, -1, -2}, 3},
		{"missing today tolerated", []int{-1, -2, -3}, 3},
		{"gap breaks the walk", []int{0, -1, -3, -4}, 2},
		{"two day gap kills it", []int{-2, -3}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := streakFrom(dayMap(now, tc.offsets...), now); got != tc.want {
				t.Fatalf("streak=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestStreakAcrossCompletions(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := day.AddDate(0, 0, i)
		svc.now = func() time.Time { return at }
		res, err := svc.CompleteExercise(ctx, CompleteInput{
			ExerciseID: "daily",
			Difficulty: TierIntro,
			Concept:    "loops",
		})
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if res.Streak != i+1 {
			t.Fatalf("day %d: streak=%d, want %d", i, res.Streak, i+1)
		}
	}

	streak, err := svc.CurrentStreak(ctx)
	if err != nil {
		t.Fatalf("CurrentStreak: %v", err)
	}
	if streak != 3 {
		t.Fatalf("streak=%d, want 3", streak)
	}
}

func TestStreakBreaksAfterSkippedDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }
	if err := svc.RecordToday(ctx); err != nil {
		t.Fatalf("RecordToday: %v", err)
	}

	later := day.AddDate(0, 0, 2)
	svc.now = func() time.Time { return later }
	streak, err := svc.CurrentStreak(ctx)
	if err != nil {
		t.Fatalf("CurrentStreak: %v", err)
	}
	if streak != 0 {
		t.Fatalf("streak=%d, want 0 after a skipped day", streak)
	}
}

func TestCalendarEntryPerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	at := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	for _, id := range []string{"a", "b"} {
		if _, err := svc.CompleteExercise(ctx, CompleteInput{ExerciseID: id, Difficulty: TierIntro, Concept: "maps"}); err != nil {
			t.Fatalf("CompleteExercise(%s): %v", id, err)
		}
	}

	day, err := svc.calendar.Get(ctx, dayKey(at))
	if err != nil {
		t.Fatalf("calendar get: %v", err)
	}
	if day == nil {
		t.Fatalf("no calendar entry for today")
	}
	if day.Exercises != 2 {
		t.Fatalf("exercises=%d, want 2", day.Exercises)
	}
}
