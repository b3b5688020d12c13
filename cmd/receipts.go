package cmd

import (
	"fmt"
	"sort"
	"strings"

	"pantry/internal/cli"
	"pantry/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagStatus string
	flagStore  string
)

var receiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "List receipts",
	RunE:  runReceipts,
}

func init() {
	receiptsCmd.Flags().StringVar(&flagStatus, "status", "", "Filter by status (pending, processing, completed, failed)")
	receiptsCmd.Flags().StringVar(&flagStore, "store", "", "Filter by store name substring")
	rootCmd.AddCommand(receiptsCmd)
}

func runReceipts(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	receipts, _, cached, err := loadData(cfg)
	if err != nil {
		return err
	}

	filters := model.ReceiptFilters{StoreName: flagStore}
	if flagStatus != "" {
		status := model.ReceiptStatus(strings.ToUpper(flagStatus))
		ok := false
		for _, s := range model.AllStatuses {
			if s == status {
				ok = true
			}
		}
		if !ok {
			return fmt.Errorf("unknown status %q", flagStatus)
		}
		filters.Statuses = []model.ReceiptStatus{status}
	}

	filtered := make([]model.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if filters.Match(r) {
			filtered = append(filtered, r)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].PurchaseDate.After(filtered[j].PurchaseDate)
	})

	if len(filtered) == 0 {
		fmt.Println("\n  No receipts found.")
		return nil
	}

	title := "RECEIPTS"
	if cached {
		title += "  (cached)"
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := make([][]string, 0, len(filtered))
	for _, r := range filtered {
		rows = append(rows, []string{
			cli.FormatDate(r.PurchaseDate),
			r.StoreName,
			fmt.Sprintf("%d", len(r.Items)),
			string(r.Status),
			cli.FormatMoney(r.TotalAmount, cfg.Locale.Currency),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Store", "Items", "Status", "Total"},
		Rows:    rows,
	}))

	return nil
}
