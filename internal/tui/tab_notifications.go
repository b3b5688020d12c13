package tui

import (
	"fmt"
	"strings"

	"pantry/internal/cli"
	"pantry/internal/model"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderNotificationsTab derives alerts from the loaded data: budgets at
// or past their critical threshold and receipts that failed processing.
func (a App) renderNotificationsTab(cw int) string {
	t := theme.Active
	currency := a.cfg.Locale.Currency

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var lines []string

	for _, bp := range a.progress {
		if bp.Status != model.BudgetCritical && bp.Status != model.BudgetExceeded {
			continue
		}
		badge := lipgloss.NewStyle().
			Foreground(components.StatusColor(bp.Status)).
			Background(t.Surface).
			Bold(true).
			Render("● " + a.loc.T("notifications.budget"))
		lines = append(lines, fmt.Sprintf("%s  %s",
			badge,
			valueStyle.Render(fmt.Sprintf("%s: %s / %s (%s)",
				bp.Category,
				cli.FormatMoney(bp.Spent, currency),
				cli.FormatMoney(bp.Amount, currency),
				cli.FormatPercent(bp.Percentage),
			)),
		))
	}

	for _, r := range a.receipts {
		if r.Status != model.StatusFailed {
			continue
		}
		badge := lipgloss.NewStyle().
			Foreground(t.Red).
			Background(t.Surface).
			Bold(true).
			Render("● " + a.loc.T("notifications.receipt"))
		lines = append(lines, fmt.Sprintf("%s  %s",
			badge,
			valueStyle.Render(fmt.Sprintf("%s · %s", r.StoreName, cli.FormatDate(r.PurchaseDate))),
		))
	}

	body := strings.Join(lines, "\n")
	if body == "" {
		body = dimStyle.Render(a.loc.T("notifications.empty"))
	}

	return components.ContentCard(a.loc.T("tab.notifications"), body, cw)
}
