package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

type examModel struct {
	ctx  context.Context
	svc  *engine.Service
	sess *engine.ExamSession

	selected int
	result   *engine.ExamResult
	err      error
}

type tickMsg time.Time

type answeredMsg struct {
	result *engine.ExamResult
	err    error
}

func newExamModel(ctx context.Context, svc *engine.Service, sess *engine.ExamSession) examModel {
	return examModel{ctx: ctx, svc: svc, sess: sess}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m examModel) Init() tea.Cmd {
	return tickCmd()
}

func (m examModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.result != nil {
			return m, nil
		}
		// The engine owns the deadline decision; the tick only prompts it.
		res, err := m.svc.TickExam(m.ctx, m.sess)
		if err != nil {
			m.err = err
			return m, nil
		}
		if res != nil {
			m.result = res
			return m, nil
		}
		return m, tickCmd()
	case answeredMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.result != nil {
			m.result = msg.result
			return m, nil
		}
		m.selected = 0
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if q := m.sess.Question(); q != nil && m.selected < len(q.Choices)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.result != nil {
				return m, tea.Quit
			}
			choice := m.selected
			return m, func() tea.Msg {
				res, err := m.svc.AnswerQuestion(m.ctx, m.sess, choice)
				return answeredMsg{result: res, err: err}
			}
		}
	}
	return m, nil
}

func (m examModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.result != nil {
		return m.renderResult()
	}

	q := m.sess.Question()
	if q == nil {
		return "Finishing…\n"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconScroll, m.sess.Title()) + "\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("Question %d/%d · %s %s left",
		m.sess.QuestionIndex()+1, m.sess.TotalQuestions(),
		ui.IconTimer, m.sess.TimeLeft(time.Now()).Round(time.Second))) + "\n\n")
	b.WriteString(q.Prompt + "\n\n")
	for i, choice := range q.Choices {
		cursor := "  "
		line := fmt.Sprintf("%d) %s", i+1, choice)
		if i == m.selected {
			cursor = "> "
			line = ui.SelectedRow.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + ui.Muted.Render("↑/↓ select · enter answer · q abandon") + "\n")
	return b.String()
}

func (m examModel) renderResult() string {
	res := m.result
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconDone, "Exam finished") + "\n\n")
	b.WriteString(ui.LabelValue("Grade", ui.GradeText(string(res.Grade))) + "\n")
	b.WriteString(ui.LabelValue("Score", fmt.Sprintf("%d/%d", res.Score, res.Total)) + "\n")
	b.WriteString(ui.LabelValue("Time", fmt.Sprintf("%.0fs", res.TimeTaken)) + "\n")
	if res.Credited > 0 {
		b.WriteString(ui.LabelValue("Coins", fmt.Sprintf("%s +%d", ui.IconCoin, res.Credited)) + "\n")
	}
	if res.StatXP > 0 {
		b.WriteString(ui.LabelValue("XP", fmt.Sprintf("+%d %s", res.StatXP, res.Stat)) + "\n")
	}
	if res.Grade == engine.GradeF {
		b.WriteString(ui.Bad.Render("Failed — retake available in 1 hour.") + "\n")
	}
	for _, ev := range res.Events {
		switch ev.Kind {
		case engine.EventLevelUp, engine.EventRankUp, engine.EventAchievementUnlocked, engine.EventFusionUnlocked:
			b.WriteString(ui.Gold.Render("★ "+ev.String()) + "\n")
		}
	}
	b.WriteString("\n" + ui.Muted.Render("enter/q to close") + "\n")
	return b.String()
}
