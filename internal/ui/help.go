package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay content.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	k := m.keys

	sections := []helpSection{
		section("Browse", k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom, k.QuickView),
		section("Find", k.Search, k.ClearSearch, k.CycleSort, k.NextCategory, k.Filters),
		section("Shop", k.AddToCart, k.ToggleWishlist, k.Cart, k.Wishlist, k.Account, k.Logout),
		section("Cart", k.Increase, k.Decrease, k.EditQty, k.Remove, k.Checkout),
		section("Quick view", k.NextSize, k.PrevSize, k.NextColor),
		section("General", k.Activity, k.CycleTheme, k.Close, k.Help, k.Quit),
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)
	blocks := make([]string, 0, len(sections))
	for _, sec := range sections {
		lines := []string{styles.AccentText.Bold(true).Render(sec.title)}
		for _, item := range sec.items {
			lines = append(lines, keyStyle.Render(item.key)+styles.Text.Render(item.desc))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	single := strings.Join(blocks, "\n\n")
	// Title, blank line and border take four rows.
	if lipgloss.Height(single)+4 <= m.overlayHeight() || m.width < 2*helpWidth {
		return single
	}
	half := (len(blocks) + 1) / 2
	left := lipgloss.NewStyle().Width(helpWidth - 4).Render(strings.Join(blocks[:half], "\n\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Join(blocks[half:], "\n\n"))
}

// helpBoxWidth widens the help surface when renderHelp switched to columns.
func (m Model) helpBoxWidth(content string) int {
	return max(helpWidth, lipgloss.Width(content)+4)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

// section builds a help section from the bindings' own help text.
func section(title string, bindings ...key.Binding) helpSection {
	s := helpSection{title: title}
	for _, b := range bindings {
		h := b.Help()
		s.items = append(s.items, helpItem{key: h.Key, desc: h.Desc})
	}
	return s
}
