package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pantry/internal/analytics"
	"pantry/internal/cli"
	"pantry/internal/model"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// analyticsRanges are the selectable time windows in days.
var analyticsRanges = []int{7, 30, 90, 365}

// analyticsState tracks the selected time range.
type analyticsState struct {
	rangeIdx int
}

func newAnalyticsState(defaultDays int) analyticsState {
	idx := 1
	for i, d := range analyticsRanges {
		if d == defaultDays {
			idx = i
			break
		}
	}
	return analyticsState{rangeIdx: idx}
}

func (a App) updateAnalyticsKey(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(analyticsRanges) {
			a.anal.rangeIdx = idx
		}
		return true, a, nil
	case "[":
		if a.anal.rangeIdx > 0 {
			a.anal.rangeIdx--
		}
		return true, a, nil
	case "]":
		if a.anal.rangeIdx < len(analyticsRanges)-1 {
			a.anal.rangeIdx++
		}
		return true, a, nil
	}
	return false, a, nil
}

func (a App) renderAnalyticsTab(cw int) string {
	t := theme.Active
	currency := a.cfg.Locale.Currency

	until := time.Now()
	days := analyticsRanges[a.anal.rangeIdx]
	since := until.AddDate(0, 0, -days)
	data := analytics.Process(a.receipts, a.budgets, since, until)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	rangeOnStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	// Range selector
	var rangeParts []string
	for i, d := range analyticsRanges {
		label := fmt.Sprintf("[%d] %dd", i+1, d)
		if d >= 365 {
			label = fmt.Sprintf("[%d] 1y", i+1)
		}
		if i == a.anal.rangeIdx {
			rangeParts = append(rangeParts, rangeOnStyle.Render(label))
		} else {
			rangeParts = append(rangeParts, dimStyle.Render(label))
		}
	}
	b.WriteString(" " + strings.Join(rangeParts, dimStyle.Render("  ")))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)

	// Monthly spending chart
	if len(data.Monthly) > 0 {
		vals := make([]float64, len(data.Monthly))
		labels := make([]string, len(data.Monthly))
		for i, m := range data.Monthly {
			vals[i] = m.Amount
			labels[i] = cli.FormatMonth(m.Month)
		}
		b.WriteString(components.ContentCard(
			a.loc.T("analytics.monthly"),
			components.BarChart(vals, labels, t.Blue, innerW, 10),
			cw,
		))
		b.WriteString("\n")
	}

	// Top categories + daily side by side
	halves := components.LayoutRow(cw, 2)
	halfInnerW := components.CardInnerWidth(halves[0])

	var catCard string
	if len(data.Categories) > 0 {
		nameW := halfInnerW / 3
		if nameW < 10 {
			nameW = 10
		}
		barMaxLen := halfInnerW - nameW - 16
		if barMaxLen < 1 {
			barMaxLen = 1
		}
		maxShare := data.Categories[0].Percent

		var catBody strings.Builder
		for _, c := range data.Categories {
			barLen := 0
			if maxShare > 0 {
				barLen = int(c.Percent / maxShare * float64(barMaxLen))
			}
			fmt.Fprintf(&catBody, "%s %s %s\n",
				nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(cli.TitleCase(c.Category), nameW))),
				barStyle.Render(strings.Repeat("█", barLen)),
				pctStyle.Render(fmt.Sprintf("%s (%s)",
					cli.FormatMoney(c.Amount, currency), cli.FormatPercent(c.Percent))),
			)
		}
		catCard = components.ContentCard(a.loc.T("analytics.categories"), catBody.String(), halves[0])
	}

	var dailyCard string
	if len(data.Daily) > 0 {
		vals := make([]float64, len(data.Daily))
		labels := make([]string, len(data.Daily))
		for i, d := range data.Daily {
			vals[i] = d.Amount
			labels[i] = dayLabel(d.Date, i, len(data.Daily))
		}
		chartH := 8
		if a.isCompactLayout() {
			chartH = 6
		}
		dailyCard = components.ContentCard(
			a.loc.T("analytics.daily"),
			components.BarChart(vals, labels, t.Cyan, components.CardInnerWidth(halves[1]), chartH),
			halves[1],
		)
	}

	if a.isCompactLayout() {
		if catCard != "" {
			b.WriteString(catCard)
			b.WriteString("\n")
		}
		if dailyCard != "" {
			b.WriteString(dailyCard)
			b.WriteString("\n")
		}
	} else if catCard != "" || dailyCard != "" {
		b.WriteString(components.CardRow([]string{catCard, dailyCard}))
		b.WriteString("\n")
	}

	// Budget comparison bars
	if len(data.Budgets) > 0 {
		labelW := 0
		for _, c := range data.Budgets {
			if len(c.Category) > labelW {
				labelW = len(c.Category)
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
		for i, c := range data.Budgets {
			if i > 0 {
				budgetBody.WriteString("\n")
			}
			bp := model.BudgetWithProgress{
				Budget:     model.Budget{Category: c.Category, Amount: c.Budgeted},
				Spent:      c.Spent,
				Percentage: c.Percentage,
				Status:     c.Status,
			}
			budgetBody.WriteString(components.BudgetBar(truncStr(c.Category, labelW), bp, labelW, barW))
		}
		b.WriteString(components.ContentCard(a.loc.T("analytics.budgets"), budgetBody.String(), cw))
	}

	return b.String()
}

// dayLabel builds compact X-axis labels: month abbreviation at the start
// and on month boundaries, day numbers elsewhere.
func dayLabel(d time.Time, i, n int) string {
	if i == 0 || (d.Day() == 1 && i != n-1) {
		return d.Format("Jan")
	}
	return strconv.Itoa(d.Day())
}
