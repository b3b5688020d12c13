package cmd

import (
	"fmt"
	"time"

	"pantry/internal/analytics"
	"pantry/internal/cli"

	"github.com/spf13/cobra"
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Show budgets with spending progress",
	RunE:  runBudgets,
}

func init() {
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	receipts, budgets, cached, err := loadData(cfg)
	if err != nil {
		return err
	}

	if len(budgets) == 0 {
		fmt.Println("\n  No budgets configured.")
		return nil
	}

	progress := analytics.BudgetsProgress(budgets, receipts, time.Now())

	title := "BUDGETS"
	if cached {
		title += "  (cached)"
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	for _, bp := range progress {
		label := cli.TitleCase(bp.Category)
		fmt.Println(cli.RenderHorizontalBar(label, bp.Spent, bp.Amount, 30, cli.StatusColor(bp.Status)))
		fmt.Printf("  %-14s %s of %s (%s), %s left\n",
			"",
			cli.FormatMoney(bp.Spent, cfg.Locale.Currency),
			cli.FormatMoney(bp.Amount, cfg.Locale.Currency),
			cli.FormatPercent(bp.Percentage),
			cli.FormatMoney(bp.Remaining, cfg.Locale.Currency))
		fmt.Println()
	}

	return nil
}
