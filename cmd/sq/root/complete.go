package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newCompleteCmd() *cobra.Command {
	var diff int
	var concept string
	var elapsed float64
	var usedHint bool

	cmd := &cobra.Command{
		Use:   "complete <exercise-id>",
		Short: "Mark an exercise completed",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("exercise id is required")
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

			res, err := svc.CompleteExercise(ctx, engine.CompleteInput{
				ExerciseID: args[0],
				Difficulty: engine.Difficulty(diff),
				Concept:    concept,
				Elapsed:    elapsed,
				UsedHint:   usedHint,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Completed"), args[0])
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s +%d", ui.IconCoin, res.Credited)))
			fmt.Fprintln(out, ui.LabelValue("Combo", fmt.Sprintf("%s %d", ui.IconFlame, res.Combo)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d days", res.Streak)))
			if res.StatLeveled {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.StatIcon(string(res.Stat))+" "+string(res.Stat))
			} else {
				fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("+%d %s", int(engine.Difficulty(diff))*engine.StatXPPerTier, res.Stat)))
			}
			for _, ev := range res.Events {
				switch ev.Kind {
				case engine.EventComboMilestone, engine.EventRankUp,
					engine.EventAchievementUnlocked, engine.EventFusionUnlocked,
					engine.EventWelcome:
					fmt.Fprintln(out, ui.Gold.Render("★ "+ev.String()))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&diff, "diff", "d", 1, "Difficulty tier (1-4)")
	cmd.Flags().StringVarP(&concept, "concept", "c", "", "Concept tag (e.g. loops, channels)")
	cmd.Flags().Float64VarP(&elapsed, "time", "t", 0, "Seconds spent on the exercise")
	cmd.Flags().BoolVar(&usedHint, "hints", false, "Hints were used (breaks the combo)")

	return cmd
}
