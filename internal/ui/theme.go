package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StudyQuest theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSparkle = "✨"
	IconCoin    = "🪙"
	IconFlame   = "🔥"
	IconBolt    = "⚡"
	IconBook    = "📚"
	IconMask    = "🎭"
	IconCard    = "🃏"
	IconTrophy  = "🏆"
	IconScroll  = "📜"
	IconTimer   = "⏱️"
	IconDone    = "✅"
	IconLock    = "🔒"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeRankUp  = lipgloss.NewStyle().Bold(true).Foreground(cAccent).Render("RANK UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// GradeText colors an exam letter grade.
func GradeText(grade string) string {
	switch grade {
	case "S":
		return Gold.Render("S")
	case "A":
		return Good.Render("A")
	case "B":
		return H2.Render("B")
	case "C":
		return Warn.Render("C")
	case "F":
		return Bad.Render("F")
	default:
		return Muted.Render(grade)
	}
}

// StatIcon maps a skill track to its emoji.
func StatIcon(stat string) string {
	switch stat {
	case "Syntax":
		return "✏️"
	case "Logic":
		return "🧠"
	case "Data":
		return "🗂️"
	case "Concurrency":
		return "🔀"
	case "Debugging":
		return "🐞"
	default:
		return IconBook
	}
}
