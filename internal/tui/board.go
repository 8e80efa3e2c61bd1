package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"studyquest/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func RunExam(ctx context.Context, svc *engine.Service, examID string, out io.Writer) error {
	sess, err := svc.StartExam(ctx, examID)
	if err != nil {
		return err
	}
	m := newExamModel(ctx, svc, sess)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err = p.Run()
	return err
}
