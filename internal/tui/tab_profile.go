package tui

import (
	"strings"

	"pantry/internal/cli"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderProfileTab(cw int) string {
	t := theme.Active
	user := a.auth.State().User

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	if user != nil {
		if user.Name != "" {
			b.WriteString(valueStyle.Render(user.Name))
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(user.Email))
		b.WriteString("\n\n")
		if !user.CreatedAt.IsZero() {
			b.WriteString(labelStyle.Render(a.loc.T("profile.member_since") + ": "))
			b.WriteString(valueStyle.Render(cli.FormatDate(user.CreatedAt)))
			b.WriteString("\n")
		}
		if user.Preferences.Language != "" {
			b.WriteString(labelStyle.Render(a.loc.T("settings.language") + ": "))
			b.WriteString(valueStyle.Render(user.Preferences.Language))
			b.WriteString("\n")
		}
		if user.Preferences.Currency != "" {
			b.WriteString(labelStyle.Render(a.loc.T("settings.currency") + ": "))
			b.WriteString(valueStyle.Render(user.Preferences.Currency))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[L] log out"))

	return components.ContentCard(a.loc.T("tab.profile"), b.String(), cw)
}
