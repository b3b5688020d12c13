// Package tui provides the interactive Bubble Tea client for pantry.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pantry/internal/analytics"
	"pantry/internal/api"
	"pantry/internal/auth"
	"pantry/internal/config"
	"pantry/internal/i18n"
	"pantry/internal/model"
	"pantry/internal/store"
	"pantry/internal/tui/components"
	"pantry/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

// Tab indices, in tab bar order.
const (
	tabDashboard = iota
	tabReceipts
	tabNew
	tabBudgets
	tabAnalytics
	tabSettings
	tabProfile
	tabNotifications
	tabCount
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	fetchTimeout = 30 * time.Second
)

// dataMsg carries a completed receipts+budgets fetch. seq ties the
// response to the request that started it; responses from superseded
// requests are dropped so a slow fetch can never overwrite a newer one.
type dataMsg struct {
	seq       int
	receipts  []model.Receipt
	budgets   []model.Budget
	fetchedAt time.Time
	stale     bool // served from the local cache because the server was unreachable
	err       error
}

// loginDoneMsg is sent when a login attempt finishes.
type loginDoneMsg struct {
	err error
}

// validateDoneMsg is sent when a stored-token validation finishes.
type validateDoneMsg struct {
	err error
}

// refreshDoneMsg is sent when a session token refresh finishes.
type refreshDoneMsg struct {
	err error
}

// mutationDoneMsg is sent when a create/update/delete against the API
// finishes. Any successful mutation triggers a refetch.
type mutationDoneMsg struct {
	err error
}

type tickMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	api    *api.Client
	auth   *auth.Manager
	loc    *i18n.Locale
	themes *theme.Provider

	// Data
	receipts  []model.Receipt
	budgets   []model.Budget
	progress  []model.BudgetWithProgress
	stats     model.ReceiptStats
	fetchedAt time.Time
	stale     bool
	loaded    bool
	loading   bool
	dataErr   error
	seq       int // sequence number of the newest issued fetch

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// Per-view state
	login    loginState
	rcpt     receiptsState
	wiz      wizardState
	budg     budgetsState
	anal     analyticsState
	settings settingsState
}

// NewApp creates the root model from loaded configuration.
func NewApp(cfg config.Config) App {
	client := api.NewClient(cfg.Server.BaseURL, cfg.Session.Token)

	persist := func(token string) error {
		c, err := config.Load()
		if err != nil {
			c = config.DefaultConfig()
		}
		c.Session.Token = token
		return config.Save(c)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:      cfg,
		api:      client,
		auth:     auth.NewManager(client, persist, cfg.Session.Token),
		loc:      i18n.New(cfg.Locale.Language),
		themes:   theme.NewProvider(theme.ParseMode(cfg.Appearance.Mode)),
		spinner:  sp,
		login:    newLoginState(),
		rcpt:     newReceiptsState(),
		wiz:      newWizardState(),
		anal:     newAnalyticsState(cfg.General.DefaultDays),
		settings: newSettingsState(),
	}
}

// tabs returns the tab bar entries in the current language.
func (a App) tabs() []components.Tab {
	return []components.Tab{
		components.NewTab(a.loc.T("tab.dashboard"), 'd'),
		components.NewTab(a.loc.T("tab.receipts"), 'r'),
		components.NewTab(a.loc.T("tab.new"), 'n'),
		components.NewTab(a.loc.T("tab.budgets"), 'b'),
		components.NewTab(a.loc.T("tab.analytics"), 'a'),
		components.NewTab(a.loc.T("tab.settings"), 's'),
		components.NewTab(a.loc.T("tab.profile"), 'p'),
		components.NewTab(a.loc.T("tab.notifications"), 'g'),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, tickCmd()}

	switch a.auth.State().Status {
	case auth.StatusPending:
		cmds = append(cmds, a.validateCmd())
	case auth.StatusUnauthenticated:
		cmds = append(cmds, a.login.email.Cursor.BlinkCmd())
	}

	return tea.Batch(cmds...)
}

// recompute refreshes everything derived from the raw receipts and budgets.
func (a *App) recompute() {
	now := time.Now()
	a.stats = analytics.CalculateStats(a.receipts)
	a.progress = analytics.BudgetsProgress(a.budgets, a.receipts, now)

	visible := a.visibleReceipts()
	if a.rcpt.cursor >= len(visible) {
		a.rcpt.cursor = len(visible) - 1
	}
	if a.rcpt.cursor < 0 {
		a.rcpt.cursor = 0
	}
}

// startFetch bumps the sequence number and kicks off a fresh load.
func (a *App) startFetch() tea.Cmd {
	a.seq++
	a.loading = true
	a.dataErr = nil
	return a.fetchDataCmd(a.seq)
}

// fetchDataCmd loads receipts and budgets in parallel. On success the
// local cache is rewritten; when the server is unreachable it falls back
// to the cached copy and marks the data stale.
func (a App) fetchDataCmd(seq int) tea.Cmd {
	client := a.api
	noCache := a.cfg.General.NoCache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var (
			receipts []model.Receipt
			budgets  []model.Budget
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			receipts, err = client.ListReceipts(gctx, model.ReceiptFilters{})
			return err
		})
		g.Go(func() error {
			var err error
			budgets, err = client.ListBudgets(gctx)
			return err
		})
		err := g.Wait()

		if err == nil {
			if !noCache {
				if cache, cerr := store.Open(store.CachePath()); cerr == nil {
					_ = cache.SaveReceipts(receipts)
					_ = cache.SaveBudgets(budgets)
					_ = cache.Close()
				}
			}
			return dataMsg{seq: seq, receipts: receipts, budgets: budgets, fetchedAt: time.Now()}
		}

		if errors.Is(err, api.ErrUnauthorized) || noCache {
			return dataMsg{seq: seq, err: err}
		}

		// Server unreachable: serve the cached copy so the UI stays usable.
		if cache, cerr := store.Open(store.CachePath()); cerr == nil {
			cachedReceipts, rAt, rerr := cache.LoadReceipts()
			cachedBudgets, bAt, berr := cache.LoadBudgets()
			_ = cache.Close()
			if rerr == nil && berr == nil && (len(cachedReceipts) > 0 || len(cachedBudgets) > 0) {
				at := rAt
				if !bAt.IsZero() && bAt.Before(at) {
					at = bAt
				}
				return dataMsg{
					seq:       seq,
					receipts:  cachedReceipts,
					budgets:   cachedBudgets,
					fetchedAt: at,
					stale:     true,
					err:       err,
				}
			}
		}

		return dataMsg{seq: seq, err: err}
	}
}

func (a App) validateCmd() tea.Cmd {
	mgr := a.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return validateDoneMsg{err: mgr.Validate(ctx)}
	}
}

func (a App) refreshSessionCmd() tea.Cmd {
	mgr := a.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return refreshDoneMsg{err: mgr.Refresh(ctx)}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.budg.form != nil {
			a.budg.form = a.budg.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case dataMsg:
		if msg.seq < a.seq {
			// Response from a superseded fetch; a newer one is in flight
			// or already landed.
			return a, nil
		}
		a.loading = false
		if msg.receipts == nil && msg.budgets == nil && msg.err != nil {
			a.dataErr = msg.err
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return a, a.refreshSessionCmd()
			}
			// A failed first load still lands the main view on empty
			// data so the error banner is visible.
			if !a.loaded {
				a.loaded = true
				a.recompute()
			}
			return a, nil
		}
		a.receipts = msg.receipts
		a.budgets = msg.budgets
		a.fetchedAt = msg.fetchedAt
		a.stale = msg.stale
		a.loaded = true
		if msg.stale {
			a.dataErr = nil
		}
		a.recompute()
		return a, nil

	case loginDoneMsg:
		a.login.submitting = false
		if msg.err != nil {
			return a, nil // auth state carries the error for the login view
		}
		a.login = newLoginState()
		return a, a.startFetch()

	case validateDoneMsg:
		if msg.err != nil {
			return a, a.login.email.Cursor.BlinkCmd()
		}
		return a, a.startFetch()

	case refreshDoneMsg:
		if msg.err != nil {
			if a.auth.State().Status == auth.StatusUnauthenticated {
				// Session is gone; the login gate takes over on the next View.
				a.loaded = false
				return a, a.login.email.Cursor.BlinkCmd()
			}
			// Refresh failed on the network, not the token. Land the
			// page with the banner instead of spinning forever.
			a.dataErr = msg.err
			if !a.loaded {
				a.loaded = true
				a.recompute()
			}
			return a, nil
		}
		return a, a.startFetch()

	case mutationDoneMsg:
		a.rcpt.deleting = false
		if msg.err != nil {
			a.dataErr = msg.err
			return a, nil
		}
		return a, a.startFetch()

	case receiptCreatedMsg:
		return a.wizardCreated(msg)

	case spinner.TickMsg:
		if a.loading || !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}

		// While in auto mode, follow the terminal background preference.
		if a.themes.Mode() == theme.ModeAuto {
			a.themes.Refresh()
		}

		if cmd := a.wizardTick(); cmd != nil {
			cmds = append(cmds, cmd)
		}

		return a, tea.Batch(cmds...)
	}

	// Forward everything else to the budget form when it is open
	// (cursor blinks and similar internal messages).
	if a.budg.form != nil {
		return a.updateBudgetForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Login gate intercepts all keys until the session is confirmed.
	if !a.auth.IsAuthenticated() {
		if a.auth.State().Status == auth.StatusPending {
			return a, nil
		}
		return a.updateLogin(msg)
	}

	// Modal states intercept keys before global bindings.
	if a.budg.form != nil {
		return a.updateBudgetForm(msg)
	}
	if a.activeTab == tabNew {
		return a.updateWizard(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == tabReceipts && a.rcpt.searching {
		return a.updateReceiptSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Banner dismissal
	if a.dataErr != nil && key == "esc" {
		a.dataErr = nil
		return a, nil
	}

	// Tab-local bindings
	switch a.activeTab {
	case tabReceipts:
		if handled, m, cmd := a.updateReceiptsKey(key); handled {
			return m, cmd
		}
	case tabBudgets:
		if handled, m, cmd := a.updateBudgetsKey(key); handled {
			return m, cmd
		}
	case tabAnalytics:
		if handled, m, cmd := a.updateAnalyticsKey(key); handled {
			return m, cmd
		}
	case tabSettings:
		if handled, m, cmd := a.updateSettingsKey(key); handled {
			return m, cmd
		}
	case tabProfile:
		if key == "L" {
			a.auth.Logout()
			a.loaded = false
			a.login = newLoginState()
			return a, a.login.email.Cursor.BlinkCmd()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "R":
		if !a.loading {
			return a, a.startFetch()
		}
		return a, nil
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + tabCount) % tabCount
		return a, a.enteredTab()
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % tabCount
		return a, a.enteredTab()
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(a.tabs(), rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, a.enteredTab()
		}
	}

	return a, nil
}

// enteredTab runs per-tab focus side effects after navigation.
func (a *App) enteredTab() tea.Cmd {
	if a.activeTab == tabNew {
		return a.wizardFocus()
	}
	return nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// visibleReceipts returns receipts passing the list filters, newest first.
func (a App) visibleReceipts() []model.Receipt {
	var out []model.Receipt
	for _, r := range a.receipts {
		if a.rcpt.filters.Match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	switch a.auth.State().Status {
	case auth.StatusUnauthenticated:
		return a.renderLogin()
	case auth.StatusPending:
		return a.viewLoading(a.loc.T("common.loading"))
	}

	if !a.loaded {
		return a.viewLoading(a.loc.T("common.loading"))
	}

	if a.budg.form != nil {
		return a.budg.form.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  pantry needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading(label string) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ pantry"))
	b.WriteString(subtitleStyle.Render(" · Grocery Spending"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" " + label))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
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

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"d r n b a s p g", "Jump to tab"},
		{"← → / tab", "Previous / Next tab"},
		{"j k", "Navigate lists"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"/", "Filter receipts by store"},
		{"f", "Cycle status filter"},
		{"Enter", "Expand / Confirm"},
		{"x", "Delete selected"},
		{"R", "Refetch from server"},
		{"L", "Log out (profile tab)"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", bind.key)),
			descStyle.Render(bind.desc))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar + context pill (language, currency, stale marker)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(a.loc.Language()) +
		pillStyle.Render(" │ ") +
		pillAccentStyle.Render(a.cfg.Locale.Currency)
	if a.stale {
		staleStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
		pill += pillStyle.Render(" │ ") + staleStyle.Render("offline")
	}
	if a.loading {
		pill += pillStyle.Render(" │ ") + pillAccentStyle.Render(a.spinner.View())
	}
	pill += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.tabs(), a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	dataAge := ""
	if !a.fetchedAt.IsZero() {
		dataAge = humanAge(time.Since(a.fetchedAt))
		if a.stale {
			dataAge += " (cached)"
		}
	}
	statusBar := components.RenderStatusBar(w, dataAge)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabReceipts:
		content = a.renderReceiptsTab(cw, contentH)
	case tabNew:
		content = a.renderWizardTab(cw)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabAnalytics:
		content = a.renderAnalyticsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	case tabProfile:
		content = a.renderProfileTab(cw)
	case tabNotifications:
		content = a.renderNotificationsTab(cw)
	}

	if a.dataErr != nil {
		content = a.renderErrorBanner(cw) + "\n" + content
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderErrorBanner shows the last request error until dismissed or
// superseded by a successful fetch.
func (a App) renderErrorBanner(cw int) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Width(cw - 2).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	return style.Render(truncStr(a.dataErr.Error(), cw-6)) + "\n" +
		dimStyle.Render(" [esc] "+a.loc.T("common.dismiss"))
}

// ─── Helpers ────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func humanAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards and empty lines are filled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
