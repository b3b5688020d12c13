package tui

import (
	"fmt"
	"strconv"
	"strings"

	"pantry/internal/api"
	"pantry/internal/config"
	"pantry/internal/i18n"
	"pantry/internal/store"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldServer = iota
	settingsFieldLanguage
	settingsFieldCurrency
	settingsFieldTheme
	settingsFieldDays
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsState() settingsState {
	return settingsState{}
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) updateSettingsKey(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return true, a, nil
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return true, a, nil
	case "t":
		// Quick light/dark toggle; persisted like any other edit
		a.themes.Toggle()
		a.cfg.Appearance.Mode = string(a.themes.Mode())
		a.settings.saveErr = config.Save(a.cfg)
		a.settings.saved = a.settings.saveErr == nil
		return true, a, nil
	case "enter":
		model, cmd := a.settingsStartEdit()
		return true, model, cmd
	}
	return false, a, nil
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldServer:
		ti.Placeholder = "http://localhost:8080/api"
		ti.SetValue(a.cfg.Server.BaseURL)
	case settingsFieldLanguage:
		ti.Placeholder = strings.Join(i18n.Supported, ", ")
		ti.SetValue(a.cfg.Locale.Language)
	case settingsFieldCurrency:
		ti.Placeholder = "USD, EUR, GBP, JPY"
		ti.SetValue(a.cfg.Locale.Currency)
	case settingsFieldTheme:
		ti.Placeholder = "light, dark, auto"
		ti.SetValue(a.cfg.Appearance.Mode)
	case settingsFieldDays:
		ti.Placeholder = "30"
		ti.SetValue(strconv.Itoa(a.cfg.General.DefaultDays))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field to config and live app state.
func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldServer:
		if val != "" && val != a.cfg.Server.BaseURL {
			a.cfg.Server.BaseURL = val
			// Point the client at the new server; the session may not be
			// valid there, in which case the next fetch forces a re-login.
			fresh := api.NewClient(val, a.auth.State().Token)
			*a.api = *fresh
		}
	case settingsFieldLanguage:
		a.cfg.Locale.Language = val
		a.loc.SetLanguage(val)
		a.cfg.Locale.Language = a.loc.Language()
	case settingsFieldCurrency:
		if val != "" {
			a.cfg.Locale.Currency = strings.ToUpper(val)
		}
	case settingsFieldTheme:
		mode := theme.ParseMode(val)
		a.cfg.Appearance.Mode = string(mode)
		a.themes.SetMode(mode)
	case settingsFieldDays:
		var d int
		if _, err := fmt.Sscanf(val, "%d", &d); err == nil && d > 0 {
			a.cfg.General.DefaultDays = d
			a.anal = newAnalyticsState(d)
		}
	}

	a.settings.saveErr = config.Save(a.cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{a.loc.T("settings.server"), a.cfg.Server.BaseURL},
		{a.loc.T("settings.language"), a.loc.Language()},
		{a.loc.T("settings.currency"), a.cfg.Locale.Currency},
		{a.loc.T("settings.theme"), fmt.Sprintf("%s (%s)", a.cfg.Appearance.Mode, theme.Active.Name)},
		{"Days", strconv.Itoa(a.cfg.General.DefaultDays)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-12s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-12s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render(a.loc.T("settings.saved")))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [enter] edit  [t] toggle theme  [esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file: ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Cache file:  ") + valueStyle.Render(cachePathLabel(a.cfg.General.NoCache)))

	var b strings.Builder
	b.WriteString(components.ContentCard(a.loc.T("tab.settings"), formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}

func cachePathLabel(disabled bool) string {
	if disabled {
		return "(disabled)"
	}
	return store.CachePath()
}
