package ui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/catalog"
)

// quickViewProduct returns the product the selection refers to.
func (m Model) quickViewProduct() (catalog.Product, bool) {
	return m.catalog.Lookup(m.snapshot.Selection.ProductID)
}

// stepChoice returns the choice dir steps away from current, wrapping.
// With nothing chosen, forward picks the first and backward the last.
func stepChoice(choices []string, current string, dir int) string {
	if len(choices) == 0 {
		return ""
	}
	i := slices.Index(choices, current)
	if i < 0 {
		if dir < 0 {
			return choices[len(choices)-1]
		}
		return choices[0]
	}
	return choices[(i+dir+len(choices))%len(choices)]
}

func (m *Model) stepSize(dir int) {
	m.store.SelectSize(stepChoice(m.catalog.Sizes(), m.snapshot.Selection.Size, dir))
	m.mutated()
}

func (m *Model) stepColor(dir int) {
	m.store.SelectColor(stepChoice(m.catalog.Colors(), m.snapshot.Selection.Color, dir))
	m.mutated()
}

func (m *Model) stepSelectionQuantity(delta int) {
	m.store.StepSelectionQuantity(delta)
	m.mutated()
}

func (m *Model) editSelectionQuantity() tea.Cmd {
	return m.beginQuantityEdit(m.snapshot.Selection.Quantity)
}

func (m *Model) applySelectionQuantity() tea.Cmd {
	m.store.SetSelectionQuantity(m.endQuantityEdit())
	m.mutated()
	return nil
}

// addSelection adds the quick-view product with the chosen options and
// closes the quick view on success.
func (m *Model) addSelection() tea.Cmd {
	p, ok := m.quickViewProduct()
	if !ok {
		return nil
	}
	added := m.store.AddSelectionToCart(itemFor(p))
	m.mutated()
	if added {
		m.closeAll()
	}
	return nil
}

func (m *Model) toggleQuickViewWishlist() tea.Cmd {
	p, ok := m.quickViewProduct()
	if !ok {
		return nil
	}
	m.store.ToggleWishlist(wishEntryFor(p))
	m.mutated()
	return nil
}

func (m Model) renderQuickView() string {
	styles := m.theme.Styles()
	p, ok := m.quickViewProduct()
	if !ok {
		return styles.MutedText.Render("Product not found")
	}
	sel := m.snapshot.Selection

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.Title))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s · %s", p.Brand, titleCase(p.Category))))
	b.WriteString("\n")
	if p.Rating > 0 {
		b.WriteString(styles.Rating.Render(stars(p.Rating)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if p.OldPrice > p.Price {
		b.WriteString(styles.Sale.Render(p.Price.String()))
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Strikethrough(true).Render(p.OldPrice.String()))
	} else {
		b.WriteString(styles.Text.Bold(true).Render(p.Price.String()))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderChoices("Size", m.catalog.Sizes(), sel.Size))
	b.WriteString("\n")
	b.WriteString(m.renderChoices("Color", m.catalog.Colors(), sel.Color))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render(padRight("Quantity", 10)))
	if m.editingQty {
		b.WriteString(m.qtyInput.View())
	} else {
		b.WriteString(m.renderStepper(sel.Quantity, sel.Quantity > 1, sel.Quantity < 10))
	}
	b.WriteString("\n\n")

	if m.snapshot.InWishlist(p.ID) {
		b.WriteString(styles.Heart.Render("♥ In your wishlist"))
	} else {
		b.WriteString(styles.FaintText.Render("♡ Not in your wishlist"))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.FaintText.Render("h/l size  c color  +/- qty  e type qty  a add to cart  w wishlist  esc close"))
	return b.String()
}

// renderChoices renders a labelled row of options with the chosen one highlighted.
func (m Model) renderChoices(label string, choices []string, chosen string) string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(choices))
	for _, c := range choices {
		if c == chosen {
			parts = append(parts, styles.Selected.Bold(true).Render(" "+c+" "))
		} else {
			parts = append(parts, styles.MutedText.Render(" "+c+" "))
		}
	}
	row := styles.MutedText.Render(padRight(label, 10)) + strings.Join(parts, "")
	if chosen == "" && label == "Size" {
		row += " " + styles.WarningText.Render("pick one")
	}
	return row
}
