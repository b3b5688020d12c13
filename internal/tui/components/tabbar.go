package components

import (
	"strings"

	"pantry/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// NewTab builds a tab, locating the shortcut letter inside the name.
func NewTab(name string, key rune) Tab {
	pos := strings.IndexRune(strings.ToLower(name), key)
	return Tab{Name: name, Key: key, KeyPos: pos}
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(tabs []Tab, activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var parts []string
	for i, tab := range tabs {
		var rendered string
		if i == activeIdx {
			rendered = activeStyle.Render(tab.Name)
		} else {
			// Render with highlighted shortcut key
			if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
				before := tab.Name[:tab.KeyPos]
				key := string(tab.Name[tab.KeyPos])
				after := tab.Name[tab.KeyPos+1:]
				rendered = inactiveStyle.Render(before) +
					dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]") +
					inactiveStyle.Render(after)
			} else {
				rendered = inactiveStyle.Render(tab.Name) +
					dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
			}
		}
		parts = append(parts, rendered)
	}

	// Single row when everything fits, otherwise split in half
	row := " " + strings.Join(parts, "  ")
	if lipgloss.Width(row) <= width || len(parts) < 2 {
		return row
	}
	mid := (len(parts) + 1) / 2
	return " " + strings.Join(parts[:mid], "  ") + "\n " + strings.Join(parts[mid:], "  ")
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(tabs []Tab, key rune) int {
	for i, tab := range tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
