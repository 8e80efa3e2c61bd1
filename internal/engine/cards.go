package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"studyquest/internal/storage"
)

// Calling-card reward tiers are fixed at creation time from the chosen
// deadline window.
func cardReward(deadlineDays int) int {
	switch {
	case deadlineDays <= 3:
		return 1000
	case deadlineDays <= 7:
		return 500
	default:
		return 250
	}
}

// CreateCard issues a self-imposed deadline challenge against a module.
func (s *Service) CreateCard(ctx context.Context, moduleID, label string, deadlineDays int) (*storage.CallingCard, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errors.New("label is required")
	}
	if deadlineDays < 1 {
		return nil, errors.New("deadline must be at least 1 day")
	}

	now := s.now()
	card := &storage.CallingCard{
		ModuleID:  moduleID,
		Label:     label,
		CreatedAt: now,
		Deadline:  now.AddDate(0, 0, deadlineDays),
		Reward:    cardReward(deadlineDays),
	}
	id, err := s.cards.Insert(ctx, card)
	if err != nil {
		return nil, err
	}
	card.ID = id
	return card, nil
}

type CardResult struct {
	Card     storage.CallingCard
	OnTime   bool
	Credited int
	Events   []Event
}

// CompleteCard marks a card done. On-time completion credits the reward;
// a late one is marked completed without payout. Completing an absent or
// already-completed card is a no-op (nil result).
func (s *Service) CompleteCard(ctx context.Context, id int64) (*CardResult, error) {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil || card.Completed {
		return nil, nil
	}

	now := s.now()
	onTime := !now.After(card.Deadline)

	res := &CardResult{OnTime: onTime}
	if onTime {
		p, err := s.progress.GetOrCreateMain(ctx)
		if err != nil {
			return nil, err
		}
		credited, ev := earn(p, card.Reward, p.ComboCurrent)
		if err := s.progress.Update(ctx, p); err != nil {
			return nil, err
		}
		res.Credited = credited
		res.Events = append(res.Events, ev)
	}

	if err := s.cards.MarkCompleted(ctx, id, now, onTime); err != nil {
		return nil, err
	}
	card.Completed = true
	card.CompletedAt = &now
	card.RewardPaid = onTime
	res.Card = *card

	unlockEvents, err := s.CheckAchievements(ctx)
	if err != nil {
		return nil, err
	}
	res.Events = append(res.Events, unlockEvents...)
	return res, nil
}

// ActiveCards returns open cards whose deadline has not passed.
func (s *Service) ActiveCards(ctx context.Context) ([]storage.CallingCard, error) {
	return s.filterCards(ctx, false)
}

// ExpiredCards returns open cards whose deadline has passed. The count
// feeds the one-shot "N cards expired" notice at session start.
func (s *Service) ExpiredCards(ctx context.Context) ([]storage.CallingCard, error) {
	return s.filterCards(ctx, true)
}

func (s *Service) filterCards(ctx context.Context, expired bool) ([]storage.CallingCard, error) {
	all, err := s.cards.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var out []storage.CallingCard
	for _, c := range all {
		if c.Completed {
			continue
		}
		if now.After(c.Deadline) == expired {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) ListCards(ctx context.Context) ([]storage.CallingCard, error) {
	return s.cards.ListAll(ctx)
}

// TimeLeft is a display helper for open cards.
func TimeLeft(c storage.CallingCard, now time.Time) time.Duration {
	return c.Deadline.Sub(now)
}
