package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progression: coins, combo, streak, stats, confidants",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sn, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "StudyQuest Status"))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s %d", ui.IconCoin, sn.Progress.Balance)))
			fmt.Fprintln(out, ui.LabelValue("Combo", fmt.Sprintf("%s %d (best %d, total %d)", ui.IconFlame, sn.Progress.ComboCurrent, sn.Progress.ComboBest, sn.Progress.ComboTotal)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d days (best %d)", sn.Streak, sn.Log.BestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Exercises", sn.Log.TotalCompleted))
			if sn.Log.FastestTime != nil {
				fmt.Fprintln(out, ui.LabelValue("Fastest", fmt.Sprintf("%.1fs", *sn.Log.FastestTime)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats & Confidants"))
			for _, st := range engine.AllStats() {
				row := sn.Stats[st]
				conf := sn.Confidants[st]
				level, xp := row.Level, row.XP
				if level == 0 {
					level = 1
				}
				rank := conf.Rank
				if rank == 0 {
					rank = 1
				}
				fmt.Fprintf(out, "- %s %-12s lvl %-3d (xp %d)  %s rank %d/%d\n",
					ui.StatIcon(string(st)), st, level, xp, ui.IconMask, rank, engine.MaxConfidantRank)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🏆 Records"))
			if sn.Records.BestTime != nil {
				fmt.Fprintf(out, "- %s %.1fs\n", ui.Key.Render("Best time:"), *sn.Records.BestTime)
			}
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Best combo:"), sn.Records.BestCombo)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Today:"), sn.Records.SessionCount)
			fmt.Fprintf(out, "- %s %d/%d achievements, %d fusions\n", ui.Key.Render("Unlocked:"), len(sn.Achievements), engine.AchievementCount(), len(sn.Fusions))

			expired, err := svc.ExpiredCards(ctx)
			if err != nil {
				return err
			}
			if len(expired) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s %d calling card(s) expired", ui.IconWarn, len(expired))))
			}
			return nil
		},
	}

	return cmd
}
