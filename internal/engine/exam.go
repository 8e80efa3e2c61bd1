package engine

import (
	"context"
	"fmt"
	"time"

	"studyquest/internal/config"
	"studyquest/internal/storage"
)

// ExamCooldown is the wait enforced after an F grade before a retake.
const ExamCooldown = time.Hour

// examRewards maps a grade to its payout: coins plus XP for the exam's
// stat and confidant tracks.
var examRewards = map[Grade]struct {
	Coins int
	XP    int
}{
	GradeS: {Coins: 3000, XP: 500},
	GradeA: {Coins: 2000, XP: 300},
	GradeB: {Coins: 1000, XP: 100},
	GradeC: {Coins: 500, XP: 0},
	GradeF: {Coins: 0, XP: 0},
}

// Answer records one question outcome.
type Answer struct {
	Chosen  int
	Correct bool
}

// ExamSession is the transient in-progress state of one exam attempt.
// It is never persisted; abandoning mid-exam leaves no record.
type ExamSession struct {
	exam      *config.Exam
	index     int
	score     int
	answers   []Answer
	startedAt time.Time
	finished  bool
}

func (sess *ExamSession) ExamID() string        { return sess.exam.ID }
func (sess *ExamSession) Title() string         { return sess.exam.Title }
func (sess *ExamSession) QuestionIndex() int    { return sess.index }
func (sess *ExamSession) TotalQuestions() int   { return len(sess.exam.Questions) }
func (sess *ExamSession) Score() int            { return sess.score }
func (sess *ExamSession) Answers() []Answer     { return sess.answers }
func (sess *ExamSession) StartedAt() time.Time  { return sess.startedAt }
func (sess *ExamSession) Finished() bool        { return sess.finished }

// Question returns the current question, or nil once the exam is over.
func (sess *ExamSession) Question() *config.Question {
	if sess.finished || sess.index >= len(sess.exam.Questions) {
		return nil
	}
	return &sess.exam.Questions[sess.index]
}

func (sess *ExamSession) TimeLimit() time.Duration {
	return time.Duration(sess.exam.TimeLimit) * time.Second
}

func (sess *ExamSession) TimeLeft(now time.Time) time.Duration {
	left := sess.TimeLimit() - now.Sub(sess.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired is the authoritative deadline check. Callers re-check it both
// on timer ticks and before rendering each question, so a long-idle
// session still finishes on the next interaction.
func (sess *ExamSession) Expired(now time.Time) bool {
	return now.Sub(sess.startedAt) >= sess.TimeLimit()
}

type ExamResult struct {
	ExamID    string
	Grade     Grade
	BestGrade Grade
	Score     int
	Total     int
	TimeTaken float64
	Credited  int
	StatXP    int
	Stat      Stat
	Events    []Event
}

// CanStartExam reports whether a new attempt may begin. Only a prior F
// inside its cooldown window blocks a retake.
func (s *Service) CanStartExam(ctx context.Context, examID string) (bool, time.Duration, error) {
	rec, err := s.examRecs.Get(ctx, examID)
	if err != nil {
		return false, 0, err
	}
	if rec == nil || rec.CooldownUntil == nil || Grade(rec.Grade) != GradeF {
		return true, 0, nil
	}
	now := s.now()
	if now.Before(*rec.CooldownUntil) {
		return false, rec.CooldownUntil.Sub(now), nil
	}
	return true, 0, nil
}

// StartExam begins a new attempt, rejecting it during a cooldown.
func (s *Service) StartExam(ctx context.Context, examID string) (*ExamSession, error) {
	exam := s.exams.Get(examID)
	if exam == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExam, examID)
	}
	ok, remaining, err := s.CanStartExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, CooldownError{ExamID: examID, Remaining: remaining}
	}
	return &ExamSession{exam: exam, startedAt: s.now()}, nil
}

// AnswerQuestion records a choice for the current question and advances.
// It returns a non-nil result when the exam finished (last question
// answered, or the time limit hit first).
func (s *Service) AnswerQuestion(ctx context.Context, sess *ExamSession, choice int) (*ExamResult, error) {
	if sess.finished {
		return nil, ErrExamFinished
	}
	now := s.now()
	if sess.Expired(now) {
		return s.finishExam(ctx, sess, now)
	}

	q := sess.Question()
	if q == nil {
		return s.finishExam(ctx, sess, now)
	}
	correct := choice == q.Answer
	if correct {
		sess.score++
	}
	sess.answers = append(sess.answers, Answer{Chosen: choice, Correct: correct})
	sess.index++

	if sess.index >= len(sess.exam.Questions) || sess.Expired(now) {
		return s.finishExam(ctx, sess, now)
	}
	return nil, nil
}

// TickExam force-finishes an expired session. Ticks against an already
// finished session are ignored so a stale timer cannot double-finish.
func (s *Service) TickExam(ctx context.Context, sess *ExamSession) (*ExamResult, error) {
	if sess.finished {
		return nil, nil
	}
	now := s.now()
	if !sess.Expired(now) {
		return nil, nil
	}
	return s.finishExam(ctx, sess, now)
}

func (s *Service) finishExam(ctx context.Context, sess *ExamSession, now time.Time) (*ExamResult, error) {
	if sess.finished {
		return nil, ErrExamFinished
	}
	sess.finished = true

	total := len(sess.exam.Questions)
	grade := GradeForScore(sess.score, total)
	timeTaken := now.Sub(sess.startedAt).Seconds()

	prev, err := s.examRecs.Get(ctx, sess.exam.ID)
	if err != nil {
		return nil, err
	}
	best := grade
	if prev != nil {
		best = BetterGrade(Grade(prev.BestGrade), grade)
	}

	rec := &storage.ExamRecord{
		ExamID:      sess.exam.ID,
		Grade:       string(grade),
		Score:       sess.score,
		Total:       total,
		CompletedAt: now,
		TimeTaken:   timeTaken,
		BestGrade:   string(best),
	}
	if grade == GradeF {
		until := now.Add(ExamCooldown)
		rec.CooldownUntil = &until
	}
	if err := s.examRecs.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	statName := StatForConcept(sess.exam.Stat)
	payout := examRewards[grade]
	events := []Event{{Kind: EventExamFinished, ID: sess.exam.ID, Grade: grade}}

	credited := 0
	if payout.Coins > 0 {
		p, err := s.progress.GetOrCreateMain(ctx)
		if err != nil {
			return nil, err
		}
		var coinEv Event
		credited, coinEv = earn(p, payout.Coins, p.ComboCurrent)
		if err := s.progress.Update(ctx, p); err != nil {
			return nil, err
		}
		events = append(events, coinEv)
	}
	if payout.XP > 0 {
		st, err := s.getStat(ctx, statName)
		if err != nil {
			return nil, err
		}
		_, levelEvents := addStatXP(st, payout.XP)
		if err := s.stats.Upsert(ctx, st); err != nil {
			return nil, err
		}
		events = append(events, levelEvents...)

		conf, err := s.getConfidant(ctx, statName)
		if err != nil {
			return nil, err
		}
		rankEvents := addConfidantXP(conf, payout.XP)
		if err := s.confidants.Upsert(ctx, conf); err != nil {
			return nil, err
		}
		events = append(events, rankEvents...)
	}

	// The perfect-score badge rides the normal catalog; no special-cased
	// unlock path, so it cannot fire twice.
	fusionEvents, err := s.CheckFusions(ctx)
	if err != nil {
		return nil, err
	}
	events = append(events, fusionEvents...)
	achievementEvents, err := s.CheckAchievements(ctx)
	if err != nil {
		return nil, err
	}
	events = append(events, achievementEvents...)

	return &ExamResult{
		ExamID:    sess.exam.ID,
		Grade:     grade,
		BestGrade: best,
		Score:     sess.score,
		Total:     total,
		TimeTaken: timeTaken,
		Credited:  credited,
		StatXP:    payout.XP,
		Stat:      statName,
		Events:    events,
	}, nil
}

// ExamRecords lists stored attempt summaries for display.
func (s *Service) ExamRecords(ctx context.Context) ([]storage.ExamRecord, error) {
	return s.examRecs.ListAll(ctx)
}
