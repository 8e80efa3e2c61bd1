package engine

import "studyquest/internal/storage"

// AllOutAttackCombo is the streak length that triggers the one-time
// celebration. It fires on the transition to exactly this value, so it
// cannot re-fire until the combo resets and regrows.
const AllOutAttackCombo = 5

// comboSuccess advances the combo counters. Returns a milestone event
// when the combo reaches exactly AllOutAttackCombo.
func comboSuccess(p *storage.Progress) []Event {
	p.ComboCurrent++
	p.ComboTotal++
	if p.ComboCurrent > p.ComboBest {
		p.ComboBest = p.ComboCurrent
	}
	if p.ComboCurrent == AllOutAttackCombo {
		return []Event{{Kind: EventComboMilestone, Combo: p.ComboCurrent}}
	}
	return nil
}

// comboMiss resets only the running counter; best and total are permanent
// high-water marks.
func comboMiss(p *storage.Progress) {
	p.ComboCurrent = 0
}
