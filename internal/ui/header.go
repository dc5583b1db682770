package ui

import (
	"fmt"
	"strings"

	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/view"
)

// renderHeader renders the store bar: logo, category, wishlist and cart
// badges, and the account control.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bar := newBarPainter(m.theme.Surface)

	left := []string{
		bar.paint("◆ storefront", styles.Logo),
		bar.paint("Category:", styles.MutedText) + bar.space +
			bar.paint(categoryLabel(m.snapshot.Category), styles.Text),
	}

	menu := view.UserMenu(m.snapshot)
	account := bar.paint(menu.Label, styles.MutedText)
	if menu.LoggedIn {
		account = bar.paint("● "+menu.Label, styles.SuccessText)
	}
	right := []string{
		bar.paint("♥ Wishlist", styles.Heart) + bar.badge(view.WishlistBadge(m.snapshot), styles.Text),
		bar.paint("Cart", styles.CartMark) + bar.badge(view.CartBadge(m.snapshot), styles.Text),
		account,
	}
	return styles.Header.Width(m.width).Render(bar.spread(left, right, m.width))
}

// renderCommandBar renders key hints, or the search input while typing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bar := newBarPainter(m.theme.Surface)

	if m.searching {
		return styles.Header.Width(m.width).Render(m.searchInput.View())
	}

	hints := [][2]string{
		{"/", "Search"},
		{"s", m.query.Sort.Label()},
		{"Tab", "Category"},
		{"f", "Filters"},
		{"a", "Add"},
		{"w", "Save"},
		{"c", "Cart"},
		{"v", "Wishlist"},
		{"u", "Account"},
		{"?", "More"},
	}
	segments := make([]string, 0, len(hints)+3)
	for _, h := range hints {
		segments = append(segments, bar.hint(h[0], h[1], styles.AccentText, styles.MutedText))
	}
	if m.query.Search != "" {
		segments = append(segments, bar.paint("/"+truncate(m.query.Search, 18), styles.AccentText))
	}
	if m.query.Filters.Active() {
		segments = append(segments, bar.paint("filtered", styles.WarningText))
	}
	segments = append(segments, bar.hint("T", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bar.gap(2)))
}

// renderFooter renders the current notice, the checkout indicator and the
// product count.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bar := newBarPainter(m.theme.Surface)

	var left []string
	if m.snapshot.CheckoutPending {
		left = append(left, bar.paint(m.spinner.View()+" Processing order...", styles.InfoText))
	}
	if n, ok := m.board.Current(); ok {
		left = append(left, bar.paint(n.Message, styles.NoticeStyle(n.Kind == notify.Error)))
	}

	count := fmt.Sprintf("%d of %d products", len(m.grid.Cards), m.grid.Total)
	right := []string{bar.paint(count, styles.FaintText)}
	return styles.Footer.Width(m.width).Render(bar.spread(left, right, m.width))
}
