package engine

import (
	"context"

	"studyquest/internal/storage"
)

// FusionRecipe gates a named unlock behind minimum stat levels. The
// ingredient pair is display flavor only; Requires is AND-combined.
type FusionRecipe struct {
	First    string
	Second   string
	Result   string
	Requires map[Stat]int
}

func fusionCatalog() []FusionRecipe {
	return []FusionRecipe{
		{
			First: "Variables", Second: "Conditionals", Result: "Script Kiddie",
			Requires: map[Stat]int{StatSyntax: 2, StatLogic: 2},
		},
		{
			First: "Loops", Second: "Slices", Result: "Iterator",
			Requires: map[Stat]int{StatLogic: 3, StatData: 3},
		},
		{
			First: "Structs", Second: "Interfaces", Result: "Architect",
			Requires: map[Stat]int{StatData: 5, StatSyntax: 3},
		},
		{
			First: "Errors", Second: "Testing", Result: "Bug Hunter",
			Requires: map[Stat]int{StatDebugging: 4, StatLogic: 3},
		},
		{
			First: "Goroutines", Second: "Channels", Result: "Juggler",
			Requires: map[Stat]int{StatConcurrency: 5, StatDebugging: 3},
		},
		{
			First: "Everything", Second: "Everything Else", Result: "Compiler Whisperer",
			Requires: map[Stat]int{StatSyntax: 8, StatLogic: 8, StatData: 8, StatConcurrency: 8, StatDebugging: 8},
		},
	}
}

func (r FusionRecipe) satisfied(sn *Snapshot) bool {
	for stat, min := range r.Requires {
		if sn.StatLevel(stat) < min {
			return false
		}
	}
	return true
}

// evaluateFusions returns recipes whose requirements are newly met, in
// catalog order. It mutates nothing.
func evaluateFusions(sn *Snapshot) []FusionRecipe {
	var newly []FusionRecipe
	for _, r := range fusionCatalog() {
		if sn.Fusions[r.Result] {
			continue
		}
		if r.satisfied(sn) {
			newly = append(newly, r)
		}
	}
	return newly
}

// CheckFusions unlocks every newly satisfied recipe and returns one
// reveal event per unlock.
func (s *Service) CheckFusions(ctx context.Context) ([]Event, error) {
	sn, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	newly := evaluateFusions(sn)
	return s.recordFusions(ctx, newly)
}

func (s *Service) recordFusions(ctx context.Context, newly []FusionRecipe) ([]Event, error) {
	now := s.now()
	var events []Event
	for _, r := range newly {
		inserted, err := s.unlocks.Insert(ctx, storage.UnlockFusion, r.Result, now)
		if err != nil {
			return events, err
		}
		if inserted {
			events = append(events, Event{Kind: EventFusionUnlocked, ID: r.Result, Name: r.Result})
		}
	}
	return events, nil
}

// FusionStatus pairs a recipe with its unlocked flag for display.
type FusionStatus struct {
	FusionRecipe
	Unlocked bool
}

func (s *Service) Fusions(ctx context.Context) ([]FusionStatus, error) {
	sn, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var out []FusionStatus
	for _, r := range fusionCatalog() {
		out = append(out, FusionStatus{FusionRecipe: r, Unlocked: sn.Fusions[r.Result]})
	}
	return out, nil
}
