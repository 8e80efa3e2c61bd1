package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newTrophiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trophies",
		Short: "List achievements and fusion unlocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			achievements, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			fusions, err := svc.Fusions(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			unlocked := 0
			for _, a := range achievements {
				if a.Unlocked {
					unlocked++
				}
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements (%d/%d)", unlocked, len(achievements))))
			for _, a := range achievements {
				if a.Unlocked {
					fmt.Fprintf(out, "%s %s %s %s\n", ui.IconDone, a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "%s %s %s\n", ui.IconLock, ui.Muted.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Heading(ui.IconMask, "Fusions"))
			for _, f := range fusions {
				if f.Unlocked {
					fmt.Fprintf(out, "%s %s + %s = %s\n", ui.IconDone, f.First, f.Second, ui.Gold.Render(f.Result))
					continue
				}
				fmt.Fprintf(out, "%s %s + %s = %s %s\n", ui.IconLock, f.First, f.Second,
					ui.Muted.Render(f.Result), ui.Muted.Render(requiresText(f.Requires)))
			}
			return nil
		},
	}

	return cmd
}

// requiresText renders recipe requirements in stat order.
func requiresText(req map[engine.Stat]int) string {
	var parts []string
	for _, st := range engine.AllStats() {
		if min, ok := req[st]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", st, min))
		}
	}
	return "(needs " + strings.Join(parts, ", ") + ")"
}
