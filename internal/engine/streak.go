package engine

import (
	"context"
	"time"

	"studyquest/internal/storage"
)

// streakLookback bounds the backward walk when deriving the streak.
const streakLookback = 365

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// recordDay ensures today's calendar entry exists and bumps its exercise
// count. The calendar is append-only.
func recordDay(ctx context.Context, cal *storage.CalendarRepo, now time.Time) error {
	key := dayKey(now)
	d, err := cal.Get(ctx, key)
	if err != nil {
		return err
	}
	if d == nil {
		d = &storage.DayActivity{Date: key, FirstVisit: now}
	}
	d.Exercises++
	d.LastVisit = now
	return cal.Upsert(ctx, d)
}

// streakFrom counts consecutive active days ending today. A missing
// *today* entry does not break the streak; the walk then starts from
// yesterday. The first gap after that stops the count.
func streakFrom(days map[string]storage.DayActivity, now time.Time) int {
	day := now
	if _, ok := days[dayKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < streakLookback; i++ {
		if _, ok := days[dayKey(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// RecordToday bumps today's calendar entry.
func (s *Service) RecordToday(ctx context.Context) error {
	return recordDay(ctx, s.calendar, s.now())
}

// CurrentStreak derives the consecutive-day streak from the calendar.
func (s *Service) CurrentStreak(ctx context.Context) (int, error) {
	now := s.now()
	since := dayKey(now.AddDate(0, 0, -streakLookback))
	days, err := s.calendar.ListSince(ctx, since)
	if err != nil {
		return 0, err
	}
	return streakFrom(days, now), nil
}
