package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyquest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Spend coins on cosmetics",
		RunE:  runShopList,
	}
	cmd.AddCommand(newShopListCmd(), newShopBuyCmd())
	return cmd
}

func newShopListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shop items",
		RunE:  runShopList,
	}
}

func runShopList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	items, err := svc.ShopItems(ctx)
	if err != nil {
		return err
	}
	balance, err := svc.Balance(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconCoin, fmt.Sprintf("Shop (balance %d)", balance)))
	for _, it := range items {
		if it.Owned {
			fmt.Fprintf(out, "%s %-16s %s\n", ui.IconDone, it.ID, ui.Muted.Render("owned"))
			continue
		}
		fmt.Fprintf(out, "%s %-16s %s %d  %s\n", ui.IconLock, it.ID, ui.IconCoin, it.Price, ui.Muted.Render(it.Desc))
	}
	return nil
}

func newShopBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy a shop item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item id is required")
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

			res, err := svc.Purchase(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.IconSparkle, ui.Good.Render("Purchased"), res.Item.Name)
			fmt.Fprintln(out, ui.LabelValue("Balance", fmt.Sprintf("%s %d", ui.IconCoin, res.Balance)))
			return nil
		},
	}
}
