package engine

import "strings"

// Stat is one of the five skill tracks a learner levels up.
type Stat string

const (
	StatSyntax      Stat = "Syntax"
	StatLogic       Stat = "Logic"
	StatData        Stat = "Data"
	StatConcurrency Stat = "Concurrency"
	StatDebugging   Stat = "Debugging"
)

func AllStats() []Stat {
	return []Stat{StatSyntax, StatLogic, StatData, StatConcurrency, StatDebugging}
}

func (s Stat) IsValid() bool {
	switch s {
	case StatSyntax, StatLogic, StatData, StatConcurrency, StatDebugging:
		return true
	default:
		return false
	}
}

// DefaultStat is used when an exercise concept is missing/unrecognized.
const DefaultStat Stat = StatSyntax

// Difficulty is the exercise star-rating tier.
type Difficulty int

const (
	TierIntro    Difficulty = 1
	TierCore     Difficulty = 2
	TierAdvanced Difficulty = 3
	TierExpert   Difficulty = 4
)

func (d Difficulty) IsValid() bool {
	return d >= TierIntro && d <= TierExpert
}

// conceptStats maps exercise concept tags to skill tracks.
var conceptStats = map[string]Stat{
	"variables":    StatSyntax,
	"types":        StatSyntax,
	"syntax":       StatSyntax,
	"operators":    StatSyntax,
	"conditionals": StatLogic,
	"loops":        StatLogic,
	"functions":    StatLogic,
	"recursion":    StatLogic,
	"slices":       StatData,
	"maps":         StatData,
	"structs":      StatData,
	"interfaces":   StatData,
	"goroutines":   StatConcurrency,
	"channels":     StatConcurrency,
	"sync":         StatConcurrency,
	"errors":       StatDebugging,
	"testing":      StatDebugging,
	"debugging":    StatDebugging,
	"panics":       StatDebugging,
}

// moduleStats maps course module numbers to skill tracks.
var moduleStats = map[int]Stat{
	1: StatSyntax,
	2: StatLogic,
	3: StatData,
	4: StatDebugging,
	5: StatConcurrency,
}

// StatForConcept resolves an exercise concept tag to exactly one stat.
// Unrecognized concepts fall back to DefaultStat.
func StatForConcept(concept string) Stat {
	c := strings.TrimSpace(strings.ToLower(concept))
	if c == "" {
		return DefaultStat
	}
	if s, ok := conceptStats[c]; ok {
		return s
	}
	// Allow the stat name itself as a tag.
	for _, s := range AllStats() {
		if strings.EqualFold(string(s), c) {
			return s
		}
	}
	return DefaultStat
}

// StatForModule resolves a course module number to a stat.
func StatForModule(module int) Stat {
	if s, ok := moduleStats[module]; ok {
		return s
	}
	return DefaultStat
}

// Grade is an exam letter grade, ranked S > A > B > C > F.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeF Grade = "F"
)

var gradeRank = map[Grade]int{GradeS: 4, GradeA: 3, GradeB: 2, GradeC: 1, GradeF: 0}

// BetterGrade returns the higher-ranked of two grades.
func BetterGrade(a, b Grade) Grade {
	if gradeRank[a] >= gradeRank[b] {
		return a
	}
	return b
}

// GradeForScore maps a correct-answer count to a letter grade. The
// thresholds reproduce the canonical 5-question table (5→S, 4→A, 3→B,
// 2→C, ≤1→F) and generalize by fraction for other question counts.
func GradeForScore(score, total int) Grade {
	if total <= 0 {
		return GradeF
	}
	frac := float64(score) / float64(total)
	switch {
	case frac >= 1.0:
		return GradeS
	case frac >= 0.8:
		return GradeA
	case frac >= 0.6:
		return GradeB
	case frac >= 0.4:
		return GradeC
	default:
		return GradeF
	}
}
