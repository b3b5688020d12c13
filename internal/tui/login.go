package tui

import (
	"context"
	"strings"

	"pantry/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginState holds the sign-in form.
type loginState struct {
	email      textinput.Model
	password   textinput.Model
	focus      int // 0 = email, 1 = password
	submitting bool
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.CharLimit = 128
	password.Width = 36
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginState{email: email, password: password}
}

func (a App) loginCmd(email, password string) tea.Cmd {
	mgr := a.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return loginDoneMsg{err: mgr.Login(ctx, email, password)}
	}
}

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.login.submitting {
		return a, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		a.login.focus = 1 - a.login.focus
		if a.login.focus == 0 {
			a.login.email.Focus()
			a.login.password.Blur()
			return a, a.login.email.Cursor.BlinkCmd()
		}
		a.login.email.Blur()
		a.login.password.Focus()
		return a, a.login.password.Cursor.BlinkCmd()

	case "enter":
		if a.login.focus == 0 {
			a.login.focus = 1
			a.login.email.Blur()
			a.login.password.Focus()
			return a, a.login.password.Cursor.BlinkCmd()
		}
		email := strings.TrimSpace(a.login.email.Value())
		password := a.login.password.Value()
		if email == "" || password == "" {
			return a, nil
		}
		a.login.submitting = true
		return a, a.loginCmd(email, password)

	case "q", "esc":
		if a.login.email.Value() == "" && a.login.password.Value() == "" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	if a.login.focus == 0 {
		a.login.email, cmd = a.login.email.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (a App) renderLogin() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	errStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ " + a.loc.T("login.title")))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(a.loc.T("login.email")))
	b.WriteString("\n")
	b.WriteString(a.login.email.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(a.loc.T("login.password")))
	b.WriteString("\n")
	b.WriteString(a.login.password.View())
	b.WriteString("\n\n")

	if a.login.submitting {
		b.WriteString(dimStyle.Render(a.spinner.View() + " " + a.loc.T("common.loading")))
	} else if err := a.auth.State().Err; err != nil {
		b.WriteString(errStyle.Render(a.loc.T("login.failed") + ": " + truncStr(err.Error(), 48)))
	} else {
		b.WriteString(dimStyle.Render("[enter] " + a.loc.T("login.submit")))
	}

	card := cardStyle.Render(b.String())

	h := a.height
	if h < 5 {
		h = 5
	}
	return lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
