package cmd

import (
	"fmt"
	"time"

	"pantry/internal/analytics"
	"pantry/internal/cli"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Spending summary and category breakdown",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	receipts, budgets, cached, err := loadData(cfg)
	if err != nil {
		return err
	}

	if len(receipts) == 0 {
		fmt.Println("\n  No receipts found.")
		fmt.Println("  Add one with `pantry tui` or the mobile app.")
		return nil
	}

	until := time.Now()
	since := until.AddDate(0, 0, -cfg.General.DefaultDays)
	filtered := analytics.FilterByTime(receipts, since, until)
	stats := analytics.CalculateStats(filtered)
	data := analytics.Process(receipts, budgets, since, until)

	title := fmt.Sprintf("SPENDING  Last %dd", cfg.General.DefaultDays)
	if cached {
		title += "  (cached)"
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Receipts", cli.FormatNumber(int64(stats.TotalCount))},
			{"Total Spent", cli.FormatMoney(stats.TotalAmount, cfg.Locale.Currency)},
			{"Average Receipt", cli.FormatMoney(stats.AverageAmount, cfg.Locale.Currency)},
		},
	}))

	if len(data.Categories) > 0 {
		fmt.Println()
		fmt.Println("  Top categories")
		maxAmount := data.Categories[0].Amount
		for _, c := range data.Categories {
			fmt.Println(cli.RenderHorizontalBar(cli.TitleCase(c.Category), c.Amount, maxAmount, 30, cli.ColorAccent))
			fmt.Printf("  %-14s %s (%s)\n", "",
				cli.FormatMoney(c.Amount, cfg.Locale.Currency), cli.FormatPercent(c.Percent))
		}
	}

	if len(data.Monthly) > 0 {
		fmt.Println()
		fmt.Println("  Monthly")
		rows := make([][]string, 0, len(data.Monthly))
		for _, m := range data.Monthly {
			rows = append(rows, []string{
				cli.FormatMonth(m.Month),
				cli.FormatNumber(int64(m.Count)),
				cli.FormatMoney(m.Amount, cfg.Locale.Currency),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Month", "Receipts", "Spent"},
			Rows:    rows,
		}))
	}

	return nil
}
