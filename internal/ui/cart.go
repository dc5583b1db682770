package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/pricing"
	"github.com/five82/storefront/internal/state"
	"github.com/five82/storefront/internal/view"
)

// panelCache holds the cart and wishlist projections. A panel is only
// re-projected while its surface is open and the state has moved on.
type panelCache struct {
	cart        view.CartPanel
	wishlist    view.WishlistPanel
	cartVersion uint64
	wishVersion uint64
	projections int
}

// refreshPanels re-projects the open panel when stale, or always when force is set.
func (m *Model) refreshPanels(force bool) {
	switch m.surface {
	case surfaceCart:
		if force || m.panels.cartVersion != m.stateVersion {
			m.panels.cart = view.Cart(m.snapshot)
			m.panels.cartVersion = m.stateVersion
			m.panels.projections++
		}
	case surfaceWishlist:
		if force || m.panels.wishVersion != m.stateVersion {
			m.panels.wishlist = view.Wishlist(m.snapshot)
			m.panels.wishVersion = m.stateVersion
			m.panels.projections++
		}
	}
}

func (m *Model) clampPanelCursors() {
	m.cartCursor = clampIndex(m.cartCursor, len(m.panels.cart.Lines))
	m.wishCursor = clampIndex(m.wishCursor, len(m.panels.wishlist.Entries))
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *Model) moveCartCursor(delta int) {
	m.cartCursor = clampIndex(m.cartCursor+delta, len(m.panels.cart.Lines))
}

func (m *Model) moveWishCursor(delta int) {
	m.wishCursor = clampIndex(m.wishCursor+delta, len(m.panels.wishlist.Entries))
}

func (m Model) selectedCartLine() (view.CartLine, bool) {
	lines := m.panels.cart.Lines
	if m.cartCursor < 0 || m.cartCursor >= len(lines) {
		return view.CartLine{}, false
	}
	return lines[m.cartCursor], true
}

func (m *Model) stepCartLine(delta int) {
	line, ok := m.selectedCartLine()
	if !ok {
		return
	}
	m.store.StepCartQuantity(line.ProductID, delta)
	m.mutated()
}

func (m *Model) editCartQuantity() tea.Cmd {
	line, ok := m.selectedCartLine()
	if !ok {
		return nil
	}
	return m.beginQuantityEdit(line.Quantity)
}

func (m *Model) beginQuantityEdit(current int) tea.Cmd {
	m.editingQty = true
	m.qtyInput.SetValue(strconv.Itoa(current))
	m.qtyInput.CursorEnd()
	return m.qtyInput.Focus()
}

func (m *Model) endQuantityEdit() string {
	raw := m.qtyInput.Value()
	m.editingQty = false
	m.qtyInput.Blur()
	m.qtyInput.Reset()
	return raw
}

func (m *Model) applyCartQuantity() tea.Cmd {
	raw := m.endQuantityEdit()
	line, ok := m.selectedCartLine()
	if !ok {
		return nil
	}
	m.store.UpdateCartQuantity(line.ProductID, raw)
	m.mutated()
	return nil
}

func (m *Model) cancelQuantity() tea.Cmd {
	m.endQuantityEdit()
	return nil
}

func (m *Model) removeCartLine() tea.Cmd {
	line, ok := m.selectedCartLine()
	if !ok {
		return nil
	}
	m.store.RemoveFromCart(line.ProductID)
	m.mutated()
	m.clampPanelCursors()
	return nil
}

// checkout starts an order. An empty cart opens the empty-cart surface and
// a missing session opens the login form. Otherwise the order completes
// after the checkout delay.
func (m *Model) checkout() tea.Cmd {
	err := m.store.BeginCheckout()
	m.mutated()
	switch {
	case errors.Is(err, state.ErrEmptyCart):
		return m.open(surfaceCartEmpty)
	case errors.Is(err, state.ErrAuthRequired):
		return m.open(surfaceAuth)
	case err != nil:
		return nil
	}

	delay := m.checkoutDelay
	if delay <= 0 {
		delay = DefaultCheckoutDelay
	}
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(delay, func(time.Time) tea.Msg { return checkoutDoneMsg{} }),
	)
}

// finishCheckout places the pending order and closes the cart.
func (m *Model) finishCheckout() {
	order, ok := m.store.CompleteCheckout()
	m.mutated()
	if !ok {
		if m.surface == surfaceCart && len(m.snapshot.Cart) == 0 {
			m.open(surfaceCartEmpty)
		}
		return
	}
	m.lastOrder = &order
	if m.surface == surfaceCart {
		m.closeAll()
	}
}

func (m *Model) addWishToCart() tea.Cmd {
	entry, ok := m.selectedWish()
	if !ok {
		return nil
	}
	m.store.AddToCart(state.Item{
		ProductID: entry.ProductID,
		Name:      entry.Name,
		Price:     entry.Price,
		Image:     entry.Image,
	}, 1)
	m.mutated()
	return nil
}

func (m *Model) removeWish() tea.Cmd {
	entry, ok := m.selectedWish()
	if !ok {
		return nil
	}
	m.store.ToggleWishlist(entry)
	m.mutated()
	m.clampPanelCursors()
	return nil
}

// selectedWish returns the stored entry under the wishlist cursor.
func (m Model) selectedWish() (state.WishlistEntry, bool) {
	entries := m.panels.wishlist.Entries
	if m.wishCursor < 0 || m.wishCursor >= len(entries) {
		return state.WishlistEntry{}, false
	}
	id := entries[m.wishCursor].ProductID
	for _, e := range m.snapshot.Wishlist {
		if e.ProductID == id {
			return e, true
		}
	}
	return state.WishlistEntry{}, false
}

func (m Model) renderCart() string {
	styles := m.theme.Styles()
	panel := m.panels.cart
	inner := cartWidth - 4

	var b strings.Builder
	if panel.Empty {
		b.WriteString(styles.MutedText.Render(panel.Message))
		b.WriteString("\n\n")
	}
	for i, l := range panel.Lines {
		b.WriteString(m.renderCartLine(i, l))
	}
	if !panel.Empty {
		b.WriteString("\n")
	}

	b.WriteString(m.renderQuote(panel.Quote, inner))
	b.WriteString("\n")

	if panel.Pending {
		b.WriteString(styles.InfoText.Render(m.spinner.View() + " Processing order..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("j/k select  +/- qty  e type qty  d remove  enter checkout  esc close"))
	return b.String()
}

func (m Model) renderCartLine(i int, l view.CartLine) string {
	styles := m.theme.Styles()
	marker := "  "
	name := styles.Text.Render(padRight(truncate(l.Name, 24), 24))
	if i == m.cartCursor {
		marker = styles.AccentText.Render("› ")
		name = styles.AccentText.Bold(true).Render(padRight(truncate(l.Name, 24), 24))
	}

	qty := m.renderStepper(l.Quantity, l.CanDec, l.CanInc)
	if i == m.cartCursor && m.editingQty {
		qty = m.qtyInput.View()
	}

	line := fmt.Sprintf("%s%s %s  %s  %s\n",
		marker,
		name,
		styles.MutedText.Render(padRight(l.UnitPrice, 8)),
		qty,
		styles.Text.Bold(true).Render(l.Total),
	)
	if l.Options != "" {
		line += "    " + styles.FaintText.Render(l.Options) + "\n"
	}
	return line
}

// renderStepper draws a quantity with its decrement and increment controls.
func (m Model) renderStepper(qty int, canDec, canInc bool) string {
	styles := m.theme.Styles()
	dec := styles.AccentText.Render("-")
	if !canDec {
		dec = styles.FaintText.Render("-")
	}
	inc := styles.AccentText.Render("+")
	if !canInc {
		inc = styles.FaintText.Render("+")
	}
	return fmt.Sprintf("%s %2d %s", dec, qty, inc)
}

func (m Model) renderQuote(q pricing.Breakdown, width int) string {
	styles := m.theme.Styles()
	row := func(label, value string, bold bool) string {
		gap := maxInt(width-len(label)-len(value), 1)
		text := label + strings.Repeat(" ", gap) + value
		if bold {
			return styles.Text.Bold(true).Render(text)
		}
		return styles.MutedText.Render(text)
	}
	return strings.Join([]string{
		row("Subtotal", q.Subtotal.String(), false),
		row("Tax", q.Tax.String(), false),
		row("Shipping", q.Shipping.String(), false),
		row("Total", q.Total.String(), true),
	}, "\n")
}

func (m Model) renderCartEmpty() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.WarningText.Render(view.EmptyCartMessage))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Add something from the catalog before checking out."))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter/esc continue shopping"))
	return b.String()
}

func (m Model) renderWishlist() string {
	styles := m.theme.Styles()
	panel := m.panels.wishlist

	var b strings.Builder
	if panel.Empty {
		b.WriteString(styles.MutedText.Render(panel.Message))
		b.WriteString("\n\n")
	}
	for i, e := range panel.Entries {
		marker := "  "
		name := styles.Text.Render(padRight(truncate(e.Name, 26), 26))
		if i == m.wishCursor {
			marker = styles.AccentText.Render("› ")
			name = styles.AccentText.Bold(true).Render(padRight(truncate(e.Name, 26), 26))
		}
		b.WriteString(marker + styles.Heart.Render("♥ ") + name + " ")
		b.WriteString(styles.MutedText.Render(padRight(e.Price, 9)))
		b.WriteString(styles.FaintText.Render(titleCase(e.Category)))
		if e.InCart {
			b.WriteString(" " + styles.CartMark.Render("in cart"))
		}
		b.WriteString("\n")
	}
	if !panel.Empty {
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("j/k select  a/enter add to cart  d remove  esc close"))
	return b.String()
}
