package components

import (
	"fmt"
	"strings"

	"pantry/internal/model"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StatusColor maps a budget status to its theme color.
func StatusColor(status model.BudgetStatus) lipgloss.Color {
	t := theme.Active
	switch status {
	case model.BudgetExceeded:
		return t.Red
	case model.BudgetCritical:
		return t.Orange
	case model.BudgetWarning:
		return t.Yellow
	default:
		return t.Green
	}
}

// ProgressBar renders a block progress bar with a trailing percentage.
// pct is 0..1; values above 1 fill the bar completely.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var barColor lipgloss.Color
	switch {
	case pct >= 1.0:
		barColor = t.Red
	case pct >= 0.9:
		barColor = t.Orange
	case pct >= 0.75:
		barColor = t.Yellow
	default:
		barColor = t.Green
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// BudgetBar renders a labeled progress bar for a budget, colored by its
// status. Percentage may exceed 100; the bar caps at full.
func BudgetBar(label string, bp model.BudgetWithProgress, labelW, barWidth int) string {
	t := theme.Active

	pct := bp.Percentage / 100
	if pct < 0 {
		pct = 0
	}
	shown := pct
	if shown > 1 {
		shown = 1
	}

	color := StatusColor(bp.Status)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(shown) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", bp.Percentage))
}
