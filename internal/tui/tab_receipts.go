package tui

import (
	"context"
	"fmt"
	"strings"

	"pantry/internal/cli"
	"pantry/internal/model"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// receiptsState tracks the receipts tab: cursor, transient filters,
// store search input, and the delete confirmation.
type receiptsState struct {
	cursor     int
	statusIdx  int // -1 = all statuses
	filters    model.ReceiptFilters
	searching  bool
	search     textinput.Model
	expanded   bool
	confirming bool
	deleting   bool
}

func newReceiptsState() receiptsState {
	return receiptsState{statusIdx: -1}
}

func newSearchInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 30
	return ti
}

// updateReceiptsKey handles list keys; returns handled=false for keys
// that should fall through to the global bindings.
func (a App) updateReceiptsKey(key string) (bool, tea.Model, tea.Cmd) {
	visible := a.visibleReceipts()

	if a.rcpt.confirming {
		switch key {
		case "y", "enter":
			a.rcpt.confirming = false
			if a.rcpt.cursor < len(visible) {
				a.rcpt.deleting = true
				return true, a, a.deleteReceiptCmd(visible[a.rcpt.cursor].ID)
			}
			return true, a, nil
		default:
			a.rcpt.confirming = false
			return true, a, nil
		}
	}

	switch key {
	case "j", "down":
		if a.rcpt.cursor < len(visible)-1 {
			a.rcpt.cursor++
		}
		return true, a, nil
	case "k", "up":
		if a.rcpt.cursor > 0 {
			a.rcpt.cursor--
		}
		return true, a, nil
	case "g":
		a.rcpt.cursor = 0
		return true, a, nil
	case "G":
		a.rcpt.cursor = len(visible) - 1
		if a.rcpt.cursor < 0 {
			a.rcpt.cursor = 0
		}
		return true, a, nil
	case "/":
		a.rcpt.searching = true
		a.rcpt.search = newSearchInput(a.loc.T("receipts.filter_store"))
		a.rcpt.search.SetValue(a.rcpt.filters.StoreName)
		a.rcpt.search.Focus()
		return true, a, a.rcpt.search.Cursor.BlinkCmd()
	case "f":
		// Cycle: all -> each status -> all
		a.rcpt.statusIdx++
		if a.rcpt.statusIdx >= len(model.AllStatuses) {
			a.rcpt.statusIdx = -1
			a.rcpt.filters.Statuses = nil
		} else {
			a.rcpt.filters.Statuses = []model.ReceiptStatus{model.AllStatuses[a.rcpt.statusIdx]}
		}
		a.rcpt.cursor = 0
		return true, a, nil
	case "enter":
		a.rcpt.expanded = !a.rcpt.expanded
		return true, a, nil
	case "esc":
		if a.rcpt.expanded {
			a.rcpt.expanded = false
			return true, a, nil
		}
		if !a.rcpt.filters.IsZero() {
			a.rcpt.filters = model.ReceiptFilters{}
			a.rcpt.statusIdx = -1
			a.rcpt.cursor = 0
			return true, a, nil
		}
		return false, a, nil
	case "x":
		if len(visible) > 0 && !a.rcpt.deleting {
			a.rcpt.confirming = true
		}
		return true, a, nil
	}

	return false, a, nil
}

func (a App) updateReceiptSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.rcpt.filters.StoreName = strings.TrimSpace(a.rcpt.search.Value())
		a.rcpt.searching = false
		a.rcpt.cursor = 0
		return a, nil
	case "esc":
		a.rcpt.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.rcpt.search, cmd = a.rcpt.search.Update(msg)
	return a, cmd
}

func (a App) deleteReceiptCmd(id string) tea.Cmd {
	client := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return mutationDoneMsg{err: client.DeleteReceipt(ctx, id)}
	}
}

func (a App) renderReceiptsTab(cw, contentH int) string {
	t := theme.Active
	currency := a.cfg.Locale.Currency
	visible := a.visibleReceipts()

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	var head strings.Builder

	// Filter line
	statusLabel := "all"
	if len(a.rcpt.filters.Statuses) == 1 {
		statusLabel = string(a.rcpt.filters.Statuses[0])
	}
	head.WriteString(dimStyle.Render(fmt.Sprintf(" [f] %s: %s", a.loc.T("receipts.status"), statusLabel)))
	if a.rcpt.searching {
		head.WriteString(dimStyle.Render("  [/] "))
		head.WriteString(a.rcpt.search.View())
	} else if a.rcpt.filters.StoreName != "" {
		head.WriteString(dimStyle.Render(fmt.Sprintf("  [/] %s: %s", a.loc.T("receipts.store"), a.rcpt.filters.StoreName)))
	}
	if a.rcpt.confirming {
		head.WriteString("  ")
		head.WriteString(warnStyle.Render(a.loc.T("receipts.confirm_delete")))
	}
	head.WriteString("\n")

	if len(visible) == 0 {
		return head.String() + "\n" + dimStyle.Render("  "+a.loc.T("receipts.empty"))
	}

	innerW := components.CardInnerWidth(cw)
	storeW := innerW / 3
	listH := contentH - 4
	if a.rcpt.expanded {
		listH = listH / 2
	}
	if listH < 3 {
		listH = 3
	}

	// The cursor is the only scroll anchor; derive the window from it.
	offset := 0
	if a.rcpt.cursor >= listH {
		offset = a.rcpt.cursor - listH + 1
	}

	var listBody strings.Builder
	for i := offset; i < len(visible) && i < offset+listH; i++ {
		r := visible[i]
		statusStyle := lipgloss.NewStyle().Foreground(cli.ReceiptStatusColor(r.Status)).Background(t.Surface)

		line := fmt.Sprintf("%s  %-*s  %10s  ",
			cli.FormatDate(r.PurchaseDate),
			storeW, truncStr(r.StoreName, storeW),
			cli.FormatMoney(r.TotalAmount, currency),
		)
		if i == a.rcpt.cursor {
			listBody.WriteString(markerStyle.Render("▸ "))
			listBody.WriteString(selStyle.Render(line))
			listBody.WriteString(lipgloss.NewStyle().Foreground(cli.ReceiptStatusColor(r.Status)).Background(t.SurfaceHover).Render(string(r.Status)))
		} else {
			listBody.WriteString(nameStyle.Render("  " + line))
			listBody.WriteString(statusStyle.Render(string(r.Status)))
		}
		listBody.WriteString("\n")
	}
	listBody.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", a.rcpt.cursor+1, len(visible))))

	out := head.String() + components.ContentCard(a.loc.T("tab.receipts"), listBody.String(), cw)

	// Detail pane for the selected receipt
	if a.rcpt.expanded && a.rcpt.cursor < len(visible) {
		r := visible[a.rcpt.cursor]
		var detail strings.Builder
		detail.WriteString(nameStyle.Render(r.StoreName))
		detail.WriteString(dimStyle.Render("  " + cli.FormatDate(r.PurchaseDate)))
		detail.WriteString("\n")
		for _, item := range r.Items {
			detail.WriteString(fmt.Sprintf("%s %s\n",
				nameStyle.Render(fmt.Sprintf("  %-*s", storeW, truncStr(item.Name, storeW))),
				dimStyle.Render(fmt.Sprintf("%5.1f × %8s = %8s  %s",
					item.Quantity,
					cli.FormatMoney(item.UnitPrice, currency),
					cli.FormatMoney(item.TotalPrice, currency),
					item.Category,
				)),
			))
		}
		detail.WriteString(nameStyle.Render(fmt.Sprintf("  %s: %s",
			a.loc.T("receipts.total"), cli.FormatMoney(r.TotalAmount, currency))))
		out += "\n" + components.ContentCard(a.loc.T("receipts.items"), detail.String(), cw)
	}

	return out
}
