package ui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/pricing"
	"github.com/five82/storefront/internal/view"
)

type filterKind int

const (
	filterPrice filterKind = iota
	filterColor
	filterSize
	filterBrand
)

func (k filterKind) String() string {
	switch k {
	case filterColor:
		return "Colors"
	case filterSize:
		return "Sizes"
	case filterBrand:
		return "Brands"
	default:
		return "Price"
	}
}

type filterRow struct {
	kind  filterKind
	value string
}

// filterPanel lists the filter choices offered by the catalog.
type filterPanel struct {
	rows      []filterRow
	cursor    int
	priceStep pricing.Money
	priceCeil pricing.Money
}

func newFilterPanel(c *catalog.Catalog) filterPanel {
	rows := []filterRow{{kind: filterPrice}}
	for _, v := range c.FilterColors() {
		rows = append(rows, filterRow{kind: filterColor, value: v})
	}
	for _, v := range c.FilterSizes() {
		rows = append(rows, filterRow{kind: filterSize, value: v})
	}
	for _, v := range c.Brands() {
		rows = append(rows, filterRow{kind: filterBrand, value: v})
	}

	ceil := c.MaxPrice()
	// Whole-dollar steps, ten of them across the catalog's range.
	step := (ceil/10 + 99) / 100 * 100
	if step <= 0 {
		step = 100
	}
	return filterPanel{rows: rows, priceStep: step, priceCeil: ceil}
}

func (f *filterPanel) move(delta int) {
	f.cursor = clampIndex(f.cursor+delta, len(f.rows))
}

func (f filterPanel) current() (filterRow, bool) {
	if f.cursor < 0 || f.cursor >= len(f.rows) {
		return filterRow{}, false
	}
	return f.rows[f.cursor], true
}

// nextMaxPrice moves a price ceiling by one step. Zero means no limit;
// stepping up past the catalog's highest price returns to no limit.
func (f filterPanel) nextMaxPrice(current pricing.Money, dir int) pricing.Money {
	switch {
	case dir == 0:
		return 0
	case dir < 0 && current == 0:
		return maxMoney(f.priceCeil-f.priceStep, f.priceStep)
	case dir < 0:
		return maxMoney(current-f.priceStep, f.priceStep)
	case current == 0:
		return 0
	}
	next := current + f.priceStep
	if next >= f.priceCeil {
		return 0
	}
	return next
}

func maxMoney(a, b pricing.Money) pricing.Money {
	if a > b {
		return a
	}
	return b
}

// toggle adds value to set or removes it.
func toggle(set []string, value string) []string {
	if i := slices.Index(set, value); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), value)
}

// adjustFilter applies dir to the row under the cursor. Choice rows toggle
// whatever the direction; the price row steps its ceiling.
func (m *Model) adjustFilter(dir int) {
	row, ok := m.filters.current()
	if !ok {
		return
	}
	f := &m.query.Filters
	switch row.kind {
	case filterPrice:
		f.MaxPrice = m.filters.nextMaxPrice(f.MaxPrice, dir)
	case filterColor:
		f.Colors = toggle(f.Colors, row.value)
	case filterSize:
		f.Sizes = toggle(f.Sizes, row.value)
	case filterBrand:
		f.Brands = toggle(f.Brands, row.value)
	}
	m.refreshGrid()
	m.resetCursor()
}

func (m *Model) resetFilters() tea.Cmd {
	m.query.Filters = view.Filters{}
	m.refreshGrid()
	m.resetCursor()
	return nil
}

func (m Model) renderFilters() string {
	styles := m.theme.Styles()
	f := m.query.Filters

	var b strings.Builder
	last := filterKind(-1)
	for i, row := range m.filters.rows {
		if row.kind != last {
			if last >= 0 {
				b.WriteString("\n")
			}
			b.WriteString(styles.AccentText.Bold(true).Render(row.kind.String()))
			b.WriteString("\n")
			last = row.kind
		}

		marker := "  "
		if i == m.filters.cursor {
			marker = styles.AccentText.Render("› ")
		}

		var text string
		switch row.kind {
		case filterPrice:
			limit := "Any"
			if f.MaxPrice > 0 {
				limit = "up to " + f.MaxPrice.String()
			}
			text = fmt.Sprintf("‹ %s ›", limit)
		case filterColor:
			text = checkbox(slices.Contains(f.Colors, row.value)) + " " + titleCase(row.value)
		case filterSize:
			text = checkbox(slices.Contains(f.Sizes, row.value)) + " " + row.value
		case filterBrand:
			text = checkbox(slices.Contains(f.Brands, row.value)) + " " + row.value
		}
		if i == m.filters.cursor {
			b.WriteString(marker + styles.Text.Bold(true).Render(text))
		} else {
			b.WriteString(marker + styles.MutedText.Render(text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.InfoText.Render(fmt.Sprintf("%d of %d products", len(m.grid.Cards), m.grid.Total)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("j/k move  space toggle  h/l price  r reset  esc close"))
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
