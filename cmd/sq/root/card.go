package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Calling cards: self-imposed module deadlines",
	}
	cmd.AddCommand(newCardAddCmd(), newCardDoneCmd(), newCardListCmd())
	return cmd
}

func newCardAddCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "add <module-id> <label>",
		Short: "Issue a calling card against a module",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("module id and label are required")
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

			card, err := svc.CreateCard(ctx, args[0], args[1], days)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s #%d: %s\n", ui.IconCard, ui.Good.Render("Card sent"), card.ID, card.Label)
			fmt.Fprintln(out, ui.LabelValue("Deadline", card.Deadline.Format("2006-01-02 15:04")))
			fmt.Fprintln(out, ui.LabelValue("Reward", fmt.Sprintf("%s %d on time", ui.IconCoin, card.Reward)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 3, "Days until the deadline")
	return cmd
}

func newCardDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <card-id>",
		Short: "Complete a calling card",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("card id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("invalid card id %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteCard(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to do: no such open card."))
				return nil
			}
			if res.OnTime {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconDone, ui.Good.Render("Heist complete!"), res.Card.Label)
				fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s +%d", ui.IconCoin, res.Credited)))
			} else {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconWarn, ui.Warn.Render("Done, but past the deadline."), res.Card.Label)
			}
			for _, ev := range res.Events {
				if ev.Kind == engine.EventAchievementUnlocked {
					fmt.Fprintln(out, ui.Gold.Render("★ "+ev.String()))
				}
			}
			return nil
		},
	}
}

func newCardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calling cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cards, err := svc.ListCards(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCard, "Calling Cards"))
			if len(cards) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No cards yet. Issue one with: sq card add <module> <label>"))
				return nil
			}
			now := time.Now()
			for _, c := range cards {
				switch {
				case c.Completed && c.RewardPaid:
					fmt.Fprintf(out, "%s #%-3d %s %s\n", ui.IconDone, c.ID, c.Label, ui.Good.Render("on time"))
				case c.Completed:
					fmt.Fprintf(out, "%s #%-3d %s %s\n", ui.IconDone, c.ID, c.Label, ui.Muted.Render("late"))
				case now.After(c.Deadline):
					fmt.Fprintf(out, "%s #%-3d %s %s\n", ui.IconWarn, c.ID, c.Label, ui.Bad.Render("expired"))
				default:
					left := engine.TimeLeft(c, now).Round(time.Minute)
					fmt.Fprintf(out, "%s #%-3d %s %s\n", ui.IconTimer, c.ID, c.Label,
						ui.Muted.Render(fmt.Sprintf("%s left, %s %d", left, ui.IconCoin, c.Reward)))
				}
			}
			return nil
		},
	}
}
