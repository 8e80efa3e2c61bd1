package engine

import (
	"context"

	"studyquest/internal/storage"
)

// baseRewards is the coin payout per difficulty tier.
var baseRewards = map[Difficulty]int{
	TierIntro:    100,
	TierCore:     250,
	TierAdvanced: 500,
	TierExpert:   750,
}

// BaseReward returns the coin payout for a tier (0 for invalid tiers).
func BaseReward(d Difficulty) int {
	return baseRewards[d]
}

// comboMultiplier scales earnings by current combo momentum.
func comboMultiplier(current int) int {
	switch {
	case current >= 5:
		return 3
	case current >= 3:
		return 2
	default:
		return 1
	}
}

// earn credits base * the multiplier for the given combo value and
// returns the amount actually credited plus the coin event. Callers pass
// the combo the payout should be judged against: the streak going into a
// completion, or zero after a hint broke it.
func earn(p *storage.Progress, base, combo int) (int, Event) {
	if base < 0 {
		base = 0
	}
	credited := base * comboMultiplier(combo)
	p.Balance += credited
	return credited, Event{Kind: EventCoinEarned, Amount: credited}
}

// spend deducts amount from the balance. It fails without mutation when
// the balance is too low.
func spend(p *storage.Progress, amount int) error {
	if p.Balance < amount {
		return InsufficientFundsError{Balance: p.Balance, Needed: amount}
	}
	p.Balance -= amount
	return nil
}

// Balance reads the current wallet balance.
func (s *Service) Balance(ctx context.Context) (int, error) {
	p, err := s.progress.GetOrCreateMain(ctx)
	if err != nil {
		return 0, err
	}
	return p.Balance, nil
}

// Spend is the standalone spend operation used by the shop.
func (s *Service) Spend(ctx context.Context, amount int) error {
	p, err := s.progress.GetOrCreateMain(ctx)
	if err != nil {
		return err
	}
	if err := spend(p, amount); err != nil {
		return err
	}
	return s.progress.Update(ctx, p)
}
