package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studyquest/internal/engine"
	"studyquest/internal/storage"
	"studyquest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	snapshot *engine.Snapshot
	cards    []storage.CallingCard

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snapshot *engine.Snapshot
	cards    []storage.CallingCard
	err      error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		sn, err := m.svc.Snapshot(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		cards, err := m.svc.ActiveCards(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{snapshot: sn, cards: cards}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.cards = msg.cards
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading || m.snapshot == nil {
		return "Loading…\n"
	}

	sn := m.snapshot

	var left strings.Builder
	left.WriteString(ui.Heading(ui.IconSparkle, "StudyQuest") + "\n\n")
	left.WriteString(ui.LabelValue("Coins", fmt.Sprintf("%s %d", ui.IconCoin, sn.Progress.Balance)) + "\n")
	left.WriteString(ui.LabelValue("Combo", fmt.Sprintf("%s %d (best %d)", ui.IconFlame, sn.Progress.ComboCurrent, sn.Progress.ComboBest)) + "\n")
	left.WriteString(ui.LabelValue("Streak", fmt.Sprintf("%d days", sn.Streak)) + "\n")
	left.WriteString(ui.LabelValue("Done", sn.Log.TotalCompleted) + "\n")
	left.WriteString("\n" + ui.H2.Render("Unlocks") + "\n")
	left.WriteString(fmt.Sprintf("%s %d  %s %d\n", ui.IconTrophy, len(sn.Achievements), ui.IconMask, len(sn.Fusions)))

	var right strings.Builder
	right.WriteString(ui.H2.Render("Stats") + "\n")
	for _, st := range engine.AllStats() {
		row := sn.Stats[st]
		conf := sn.Confidants[st]
		level := row.Level
		if level == 0 {
			level = 1
		}
		rank := conf.Rank
		if rank == 0 {
			rank = 1
		}
		right.WriteString(fmt.Sprintf("%s %-12s lvl %-3d rank %d/%d\n",
			ui.StatIcon(string(st)), st, level, rank, engine.MaxConfidantRank))
	}
	if len(m.cards) > 0 {
		right.WriteString("\n" + ui.H2.Render("Calling Cards") + "\n")
		sorted := append([]storage.CallingCard(nil), m.cards...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Deadline.Before(sorted[j].Deadline) })
		for _, c := range sorted {
			left := engine.TimeLeft(c, time.Now())
			right.WriteString(fmt.Sprintf("%s #%d %s %s\n",
				ui.IconCard, c.ID, c.Label, ui.Muted.Render(fmt.Sprintf("(%s left)", left.Round(time.Hour)))))
		}
	}

	body := joinColumns(ui.Panel.Render(left.String()), ui.Panel.Render(right.String()))
	footer := ui.Muted.Render("r refresh · q quit") + "\n" + ui.Muted.Render(m.lastLog)
	return body + "\n" + footer + "\n"
}

func joinColumns(left, right string) string {
	linesLeft := strings.Split(left, "\n")
	linesRight := strings.Split(right, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	widest := 0
	for _, l := range linesLeft {
		if w := len([]rune(l)); w > widest {
			widest = w
		}
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(l)
		body.WriteString(strings.Repeat(" ", widest-len([]rune(l))+2))
		body.WriteString(r)
		body.WriteString("\n")
	}
	return body.String()
}
