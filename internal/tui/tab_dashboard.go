package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pantry/internal/analytics"
	"pantry/internal/cli"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const dashboardRecentLimit = 5

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	currency := a.cfg.Locale.Currency
	var b strings.Builder

	spentDelta, countDelta, avgDelta := a.monthDeltas(currency)
	cards := []struct{ Label, Value, Delta string }{
		{a.loc.T("dashboard.total_spent"), cli.FormatMoney(a.stats.TotalAmount, currency), spentDelta},
		{a.loc.T("dashboard.receipts"), cli.FormatNumber(int64(a.stats.TotalCount)), countDelta},
		{a.loc.T("dashboard.average"), cli.FormatMoney(a.stats.AverageAmount, currency), avgDelta},
		{a.loc.T("dashboard.budgets"), cli.FormatNumber(int64(len(a.budgets))), ""},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Recent receipts
	recent := make([]string, 0, dashboardRecentLimit)

	receipts := a.receipts
	idx := make([]int, len(receipts))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return receipts[idx[i]].PurchaseDate.After(receipts[idx[j]].PurchaseDate)
	})

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	for _, i := range idx {
		if len(recent) >= dashboardRecentLimit {
			break
		}
		r := receipts[i]
		statusStyle := lipgloss.NewStyle().Foreground(cli.ReceiptStatusColor(r.Status)).Background(t.Surface)
		line := fmt.Sprintf("%s  %s  %s  %s",
			dimStyle.Render(cli.FormatDate(r.PurchaseDate)),
			nameStyle.Render(fmt.Sprintf("%-*s", innerW/3, truncStr(r.StoreName, innerW/3))),
			nameStyle.Render(fmt.Sprintf("%10s", cli.FormatMoney(r.TotalAmount, currency))),
			statusStyle.Render(string(r.Status)),
		)
		recent = append(recent, line)
	}

	recentBody := strings.Join(recent, "\n")
	if recentBody == "" {
		recentBody = dimStyle.Render(a.loc.T("receipts.empty"))
	}
	b.WriteString(components.ContentCard(a.loc.T("dashboard.recent"), recentBody, cw))
	b.WriteString("\n")

	// Budget utilization bars
	if len(a.progress) > 0 {
		labelW := 0
		for _, bp := range a.progress {
			if len(bp.Category) > labelW {
				labelW = len(bp.Category)
			}
		}
		if labelW > innerW/3 {
			labelW = innerW / 3
		}
		barW := innerW - labelW - 8
		if barW < 10 {
			barW = 10
		}

		var budgetBody strings.Builder
		for i, bp := range a.progress {
			if i > 0 {
				budgetBody.WriteString("\n")
			}
			budgetBody.WriteString(components.BudgetBar(truncStr(bp.Category, labelW), bp, labelW, barW))
		}
		b.WriteString(components.ContentCard(a.loc.T("dashboard.budgets"), budgetBody.String(), cw))
	}

	return b.String()
}

// monthDeltas compares the current calendar month against the previous
// one. Empty strings when there is no prior month to compare.
func (a App) monthDeltas(currency string) (spent, count, avg string) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)

	cur := analytics.CalculateStats(analytics.FilterByTime(a.receipts, monthStart, now))
	prev := analytics.CalculateStats(analytics.FilterByTime(a.receipts, prevStart, monthStart.Add(-time.Nanosecond)))
	if prev.TotalCount == 0 {
		return "", "", ""
	}

	suffix := " " + a.loc.T("dashboard.vs_last_month")
	spent = cli.FormatDelta(cur.TotalAmount, prev.TotalAmount, currency) + suffix
	count = fmt.Sprintf("%+d%s", cur.TotalCount-prev.TotalCount, suffix)
	avg = cli.FormatDelta(cur.AverageAmount, prev.AverageAmount, currency) + suffix
	return spent, count, avg
}
