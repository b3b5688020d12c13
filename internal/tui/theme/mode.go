package theme

import "github.com/muesli/termenv"

// Mode selects how the effective theme is chosen.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
	ModeAuto  Mode = "auto"
)

// ParseMode returns the mode for a stored string, defaulting to auto.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeLight, ModeDark:
		return Mode(s)
	default:
		return ModeAuto
	}
}

// Provider derives the effective theme from the mode and, while in auto,
// the terminal's background preference. The detector is only consulted in
// auto mode; Refresh re-checks it so a changed terminal background takes
// effect on the next UI tick.
type Provider struct {
	mode     Mode
	detector func() bool // reports a dark background
	osDark   bool
}

// NewProvider creates a provider using termenv background detection.
func NewProvider(mode Mode) *Provider {
	return newProvider(mode, termenv.HasDarkBackground)
}

func newProvider(mode Mode, detector func() bool) *Provider {
	p := &Provider{mode: ParseMode(string(mode)), detector: detector}
	p.Refresh()
	return p
}

// Mode returns the configured mode.
func (p *Provider) Mode() Mode {
	return p.mode
}

// SetMode switches the mode and recomputes the effective theme.
func (p *Provider) SetMode(m Mode) {
	p.mode = ParseMode(string(m))
	p.Refresh()
}

// Toggle flips between light and dark only; it never lands on auto.
func (p *Provider) Toggle() {
	if p.Effective().Name == Dark.Name {
		p.SetMode(ModeLight)
	} else {
		p.SetMode(ModeDark)
	}
}

// Refresh re-reads the background preference while in auto mode and
// updates the package Active theme.
func (p *Provider) Refresh() {
	if p.mode == ModeAuto {
		p.osDark = p.detector()
	}
	Active = p.Effective()
}

// Effective returns the theme the mode resolves to.
func (p *Provider) Effective() Theme {
	switch p.mode {
	case ModeLight:
		return Light
	case ModeDark:
		return Dark
	default:
		if p.osDark {
			return Dark
		}
		return Light
	}
}
