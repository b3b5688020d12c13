package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pantry/internal/cli"
	"pantry/internal/entry"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// redirectTicks is how long the success screen stays up before the app
// navigates to the receipts list (250ms ticks).
const redirectTicks = 8

// receiptCreatedMsg is sent when the wizard submit finishes.
type receiptCreatedMsg struct {
	err error
}

// wizardState drives the manual entry flow. The form itself lives in
// the entry package; this wraps it with text inputs per step.
type wizardState struct {
	form       *entry.Form
	inputs     []textinput.Model
	focus      int
	err        error
	submitting bool
	doneTicks  int
}

func newWizardState() wizardState {
	w := wizardState{form: entry.New()}
	w.inputs = basicInfoInputs(w.form)
	return w
}

func basicInfoInputs(f *entry.Form) []textinput.Model {
	store := textinput.New()
	store.CharLimit = 64
	store.Width = 32
	store.SetValue(f.StoreName)
	store.Focus()

	date := textinput.New()
	date.Placeholder = "2006-01-02"
	date.CharLimit = 10
	date.Width = 32
	if !f.PurchaseDate.IsZero() {
		date.SetValue(f.PurchaseDate.Format("2006-01-02"))
	}

	return []textinput.Model{store, date}
}

func itemInputs() []textinput.Model {
	name := textinput.New()
	name.CharLimit = 64
	name.Width = 24
	name.Focus()

	qty := textinput.New()
	qty.Placeholder = "1"
	qty.CharLimit = 8
	qty.Width = 8

	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 10
	price.Width = 10

	category := textinput.New()
	category.CharLimit = 32
	category.Width = 18

	return []textinput.Model{name, qty, price, category}
}

// wizardFocus re-focuses the current input when the tab is entered.
func (a *App) wizardFocus() tea.Cmd {
	if a.wiz.focus < len(a.wiz.inputs) {
		a.wiz.inputs[a.wiz.focus].Focus()
		return a.wiz.inputs[a.wiz.focus].Cursor.BlinkCmd()
	}
	return nil
}

// wizardTick advances the post-save redirect countdown.
func (a *App) wizardTick() tea.Cmd {
	if a.wiz.form.Step() != entry.StepDone {
		return nil
	}
	a.wiz.doneTicks++
	if a.wiz.doneTicks < redirectTicks {
		return nil
	}
	a.wiz = newWizardState()
	a.activeTab = tabReceipts
	return a.startFetch()
}

func (a *App) wizardSetFocus(i int) tea.Cmd {
	for j := range a.wiz.inputs {
		a.wiz.inputs[j].Blur()
	}
	a.wiz.focus = i
	if i >= 0 && i < len(a.wiz.inputs) {
		a.wiz.inputs[i].Focus()
		return a.wiz.inputs[i].Cursor.BlinkCmd()
	}
	return nil
}

func (a App) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	w := &a.wiz

	if w.submitting || w.form.Step() == entry.StepDone {
		return a, nil
	}

	switch key {
	case "esc":
		w.err = nil
		if w.form.Step() == entry.StepBasicInfo {
			// Leave the wizard without losing the draft
			a.activeTab = tabDashboard
			return a, nil
		}
		w.form.Back()
		a.wizardEnterStep()
		return a, a.wizardFocus()

	case "tab", "down":
		if len(w.inputs) > 0 {
			return a, a.wizardSetFocus((w.focus + 1) % len(w.inputs))
		}
		return a, nil

	case "shift+tab", "up":
		if len(w.inputs) > 0 {
			return a, a.wizardSetFocus((w.focus - 1 + len(w.inputs)) % len(w.inputs))
		}
		return a, nil

	case "ctrl+d":
		if w.form.Step() == entry.StepItems && len(w.form.Items) > 0 {
			w.form.RemoveItem(w.form.Items[len(w.form.Items)-1].ID)
		}
		return a, nil

	case "enter":
		return a.wizardEnter()
	}

	if w.focus < len(w.inputs) {
		var cmd tea.Cmd
		w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
		return a, cmd
	}
	return a, nil
}

// wizardEnter handles the enter key per step: advance focus, add an
// item, or move the form forward.
func (a App) wizardEnter() (tea.Model, tea.Cmd) {
	w := &a.wiz

	switch w.form.Step() {
	case entry.StepBasicInfo:
		if w.focus < len(w.inputs)-1 {
			return a, a.wizardSetFocus(w.focus + 1)
		}
		w.form.StoreName = strings.TrimSpace(w.inputs[0].Value())
		dateStr := strings.TrimSpace(w.inputs[1].Value())
		if dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				w.err = entry.ErrDateRequired
				return a, nil
			}
			w.form.PurchaseDate = d
		} else {
			w.form.PurchaseDate = time.Time{}
		}
		if err := w.form.Next(); err != nil {
			w.err = err
			return a, nil
		}
		w.err = nil
		a.wizardEnterStep()
		return a, a.wizardFocus()

	case entry.StepItems:
		name := strings.TrimSpace(w.inputs[0].Value())
		if name == "" {
			// Empty item row means the step is finished
			if err := w.form.Next(); err != nil {
				w.err = err
				return a, nil
			}
			w.err = nil
			a.wizardEnterStep()
			return a, nil
		}
		if w.focus < len(w.inputs)-1 {
			return a, a.wizardSetFocus(w.focus + 1)
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(w.inputs[1].Value()), 64)
		if err != nil || qty <= 0 {
			qty = 1
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(w.inputs[2].Value()), 64)
		if err != nil || price < 0 {
			price = 0
		}
		category := strings.TrimSpace(w.inputs[3].Value())
		w.form.AddItem(name, qty, price, category)
		w.err = nil
		w.inputs = itemInputs()
		return a, a.wizardSetFocus(0)

	case entry.StepReview:
		w.submitting = true
		w.err = nil
		return a, a.createReceiptCmd()
	}

	return a, nil
}

// wizardEnterStep rebuilds the inputs after a step transition.
func (a *App) wizardEnterStep() {
	switch a.wiz.form.Step() {
	case entry.StepBasicInfo:
		a.wiz.inputs = basicInfoInputs(a.wiz.form)
	case entry.StepItems:
		a.wiz.inputs = itemInputs()
	default:
		a.wiz.inputs = nil
	}
	a.wiz.focus = 0
}

func (a App) createReceiptCmd() tea.Cmd {
	client := a.api
	payload := a.wiz.form.Payload()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_, err := client.CreateReceipt(ctx, payload)
		return receiptCreatedMsg{err: err}
	}
}

// wizardCreated handles the submit result: success moves the form to its
// done state and starts the redirect countdown, failure returns to review.
func (a App) wizardCreated(msg receiptCreatedMsg) (tea.Model, tea.Cmd) {
	a.wiz.submitting = false
	if msg.err != nil {
		a.wiz.err = msg.err
		return a, nil
	}
	if err := a.wiz.form.Next(); err != nil {
		a.wiz.err = err
		return a, nil
	}
	a.wiz.doneTicks = 0
	return a, nil
}

func (a App) wizardErrText(err error) string {
	switch {
	case errors.Is(err, entry.ErrStoreRequired):
		return a.loc.T("wizard.err_store_required")
	case errors.Is(err, entry.ErrDateRequired):
		return a.loc.T("wizard.err_date_required")
	case errors.Is(err, entry.ErrNoItems):
		return a.loc.T("wizard.err_no_items")
	default:
		return err.Error()
	}
}

func (a App) renderWizardTab(cw int) string {
	t := theme.Active
	w := a.wiz
	currency := a.cfg.Locale.Currency

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	stepOnStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)

	// Step header
	steps := []struct {
		step  entry.Step
		label string
	}{
		{entry.StepBasicInfo, a.loc.T("wizard.step_basic")},
		{entry.StepItems, a.loc.T("wizard.step_items")},
		{entry.StepReview, a.loc.T("wizard.step_review")},
	}
	var headParts []string
	for i, s := range steps {
		label := fmt.Sprintf("%d. %s", i+1, s.label)
		if s.step == w.form.Step() {
			headParts = append(headParts, stepOnStyle.Render(label))
		} else {
			headParts = append(headParts, dimStyle.Render(label))
		}
	}
	head := strings.Join(headParts, dimStyle.Render("  ›  "))

	var b strings.Builder

	switch w.form.Step() {
	case entry.StepBasicInfo:
		b.WriteString(labelStyle.Render(a.loc.T("wizard.store_name")))
		b.WriteString("\n")
		b.WriteString(w.inputs[0].View())
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render(a.loc.T("wizard.purchase_date")))
		b.WriteString("\n")
		b.WriteString(w.inputs[1].View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("[enter] " + a.loc.T("common.next")))

	case entry.StepItems:
		fieldLabels := []string{
			a.loc.T("wizard.item_name"),
			a.loc.T("wizard.quantity"),
			a.loc.T("wizard.unit_price"),
			a.loc.T("wizard.category"),
		}
		for i, in := range w.inputs {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", fieldLabels[i])))
			b.WriteString(in.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")

		for _, item := range w.form.Items {
			b.WriteString(valueStyle.Render(fmt.Sprintf("  %-24s", truncStr(item.Name, 24))))
			b.WriteString(dimStyle.Render(fmt.Sprintf(" %5.1f × %8s = %8s",
				item.Quantity,
				cli.FormatMoney(item.UnitPrice, currency),
				cli.FormatMoney(item.TotalPrice, currency),
			)))
			b.WriteString("\n")
		}
		if len(w.form.Items) > 0 {
			b.WriteString(valueStyle.Render(fmt.Sprintf("  %s: %s",
				a.loc.T("wizard.total"), cli.FormatMoney(w.form.TotalAmount, currency))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("[enter] add item · empty name + [enter] " +
			a.loc.T("common.next") + " · [ctrl+d] remove last · [esc] " + a.loc.T("common.back")))

	case entry.StepReview:
		b.WriteString(labelStyle.Render(a.loc.T("wizard.store_name")+": ") + valueStyle.Render(w.form.StoreName))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(a.loc.T("wizard.purchase_date")+": ") + valueStyle.Render(cli.FormatDate(w.form.PurchaseDate)))
		b.WriteString("\n\n")
		for _, item := range w.form.Items {
			b.WriteString(valueStyle.Render(fmt.Sprintf("  %-24s", truncStr(item.Name, 24))))
			b.WriteString(dimStyle.Render(fmt.Sprintf(" %5.1f × %8s = %8s",
				item.Quantity,
				cli.FormatMoney(item.UnitPrice, currency),
				cli.FormatMoney(item.TotalPrice, currency),
			)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %s: %s",
			a.loc.T("wizard.total"), cli.FormatMoney(w.form.TotalAmount, currency))))
		b.WriteString("\n\n")
		if w.submitting {
			b.WriteString(dimStyle.Render(a.spinner.View() + " " + a.loc.T("common.loading")))
		} else {
			b.WriteString(dimStyle.Render("[enter] " + a.loc.T("wizard.submit") + " · [esc] " + a.loc.T("common.back")))
		}

	case entry.StepDone:
		b.WriteString(okStyle.Render("✓ " + a.loc.T("wizard.success")))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(a.loc.T("tab.receipts") + "…"))
	}

	if w.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errStyle.Render(a.wizardErrText(w.err)))
	}

	return components.ContentCard(head, b.String(), cw)
}
