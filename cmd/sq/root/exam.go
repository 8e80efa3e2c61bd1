package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyquest/internal/tui"
	"studyquest/internal/ui"
)

func newExamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Timed multiple-choice exams",
	}
	cmd.AddCommand(newExamListCmd(), newExamTakeCmd())
	return cmd
}

func newExamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available exams with best grades",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := svc.ExamRecords(ctx)
			if err != nil {
				return err
			}
			best := map[string]string{}
			for _, r := range records {
				best[r.ExamID] = r.BestGrade
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Exams"))
			for _, ex := range svc.ExamCatalog().Exams {
				grade := ui.Muted.Render("—")
				if g, ok := best[ex.ID]; ok {
					grade = ui.GradeText(g)
				}
				ok, remaining, err := svc.CanStartExam(ctx, ex.ID)
				if err != nil {
					return err
				}
				line := fmt.Sprintf("- %-14s %s (%d questions, %s, best %s)",
					ex.ID, ex.Title, len(ex.Questions), ex.Stat, grade)
				if !ok {
					line += " " + ui.Warn.Render(fmt.Sprintf("%s cooldown %s", ui.IconTimer, remaining.Round(time.Second)))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newExamTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <exam-id>",
		Short: "Take an exam against the clock",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("exam id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunExam(ctx, svc, args[0], cmd.OutOrStdout())
		},
	}
}
