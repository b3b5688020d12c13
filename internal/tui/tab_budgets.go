package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pantry/internal/cli"
	"pantry/internal/model"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// budgetFormValues backs the huh create/edit form.
type budgetFormValues struct {
	category string
	amount   string
	period   string
}

// budgetsState tracks the budgets tab: cursor, delete confirmation, and
// the modal create/edit form.
type budgetsState struct {
	cursor     int
	confirming bool
	form       *huh.Form
	vals       budgetFormValues
	editingID  string
	editing    model.Budget // original budget when editing
}

func newBudgetForm(vals *budgetFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category").
				CharLimit(32).
				Value(&vals.category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount").
				CharLimit(10).
				Value(&vals.amount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive amount")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Period").
				Options(
					huh.NewOption("Weekly", string(model.PeriodWeekly)),
					huh.NewOption("Monthly", string(model.PeriodMonthly)),
					huh.NewOption("Yearly", string(model.PeriodYearly)),
				).
				Value(&vals.period),
		),
	)
}

// updateBudgetsKey handles list keys on the budgets tab.
func (a App) updateBudgetsKey(key string) (bool, tea.Model, tea.Cmd) {
	if a.budg.confirming {
		switch key {
		case "y", "enter":
			a.budg.confirming = false
			if a.budg.cursor < len(a.progress) {
				return true, a, a.deleteBudgetCmd(a.progress[a.budg.cursor].ID)
			}
			return true, a, nil
		default:
			a.budg.confirming = false
			return true, a, nil
		}
	}

	switch key {
	case "j", "down":
		if a.budg.cursor < len(a.progress)-1 {
			a.budg.cursor++
		}
		return true, a, nil
	case "k", "up":
		if a.budg.cursor > 0 {
			a.budg.cursor--
		}
		return true, a, nil
	case "n":
		a.budg.vals = budgetFormValues{period: string(model.PeriodMonthly)}
		a.budg.editingID = ""
		a.budg.form = newBudgetForm(&a.budg.vals)
		if a.width > 0 {
			a.budg.form = a.budg.form.WithWidth(a.width).WithHeight(a.height)
		}
		return true, a, a.budg.form.Init()
	case "enter":
		if a.budg.cursor < len(a.progress) {
			b := a.progress[a.budg.cursor].Budget
			a.budg.vals = budgetFormValues{
				category: b.Category,
				amount:   strconv.FormatFloat(b.Amount, 'f', 2, 64),
				period:   string(b.Period),
			}
			a.budg.editingID = b.ID
			a.budg.editing = b
			a.budg.form = newBudgetForm(&a.budg.vals)
			if a.width > 0 {
				a.budg.form = a.budg.form.WithWidth(a.width).WithHeight(a.height)
			}
			return true, a, a.budg.form.Init()
		}
		return true, a, nil
	case "x":
		if len(a.progress) > 0 {
			a.budg.confirming = true
		}
		return true, a, nil
	}

	return false, a, nil
}

// updateBudgetForm forwards messages to the modal form while it is open.
func (a App) updateBudgetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.budg.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.budg.form = f
	}

	if a.budg.form.State == huh.StateCompleted {
		amount, _ := strconv.ParseFloat(strings.TrimSpace(a.budg.vals.amount), 64)
		b := model.Budget{
			ID:       a.budg.editingID,
			Category: strings.TrimSpace(a.budg.vals.category),
			Amount:   amount,
			Period:   model.BudgetPeriod(a.budg.vals.period),
		}
		if a.budg.editingID != "" {
			b.StartDate = a.budg.editing.StartDate
			b.EndDate = a.budg.editing.EndDate
		} else {
			b.StartDate = time.Now()
		}
		a.budg.form = nil
		return a, a.saveBudgetCmd(b)
	}

	if a.budg.form.State == huh.StateAborted {
		a.budg.form = nil
		return a, nil
	}

	return a, cmd
}

func (a App) saveBudgetCmd(b model.Budget) tea.Cmd {
	client := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		var err error
		if b.ID == "" {
			_, err = client.CreateBudget(ctx, b)
		} else {
			_, err = client.UpdateBudget(ctx, b)
		}
		return mutationDoneMsg{err: err}
	}
}

func (a App) deleteBudgetCmd(id string) tea.Cmd {
	client := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return mutationDoneMsg{err: client.DeleteBudget(ctx, id)}
	}
}

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	currency := a.cfg.Locale.Currency

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	if len(a.progress) == 0 {
		body := dimStyle.Render(a.loc.T("budgets.empty")) + "\n\n" +
			dimStyle.Render("[n] "+a.loc.T("budgets.new"))
		return components.ContentCard(a.loc.T("tab.budgets"), body, cw)
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 0
	for _, bp := range a.progress {
		if len(bp.Category) > labelW {
			labelW = len(bp.Category)
		}
	}
	if labelW > innerW/4 {
		labelW = innerW / 4
	}
	barW := innerW/2 - labelW
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	for i, bp := range a.progress {
		if i == a.budg.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(selStyle.Render(truncStr(bp.Category, labelW)))
		} else {
			b.WriteString("  ")
			b.WriteString(valueStyle.Render(truncStr(bp.Category, labelW)))
		}
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(components.BudgetBar(string(bp.Period), bp, 8, barW))
		b.WriteString("\n  ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s %s · %s %s",
			cli.FormatMoney(bp.Spent, currency), a.loc.T("budgets.spent"),
			cli.FormatMoney(bp.Remaining, currency), a.loc.T("budgets.remaining"),
		)))
		b.WriteString("\n\n")
	}

	if a.budg.confirming {
		b.WriteString(warnStyle.Render(a.loc.T("budgets.confirm_delete")))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("[n] " + a.loc.T("budgets.new") + " · [enter] edit · [x] delete"))

	return components.ContentCard(a.loc.T("tab.budgets"), b.String(), cw)
}
