package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/state"
	"github.com/five82/storefront/internal/view"
)

// refreshGrid re-projects the product grid from the query and snapshot.
func (m *Model) refreshGrid() {
	m.grid = view.Grid(m.products, m.query, m.snapshot)
	m.clampGrid()
}

// gridColumns is the number of cards per row.
func (m Model) gridColumns() int {
	return maxInt(1, m.width/cardOuterWidth)
}

// gridRows is the number of card rows that fit on screen.
func (m Model) gridRows() int {
	return maxInt(1, (m.height-gridTop-1)/cardOuterHeight)
}

func (m *Model) clampGrid() {
	n := len(m.grid.Cards)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	cols, rows := m.gridColumns(), m.gridRows()
	row := m.cursor / cols
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// moveCursor moves the grid selection by delta cards. Ignored while a
// surface holds the scroll lock.
func (m *Model) moveCursor(delta int) {
	if m.scrollLocked() || len(m.grid.Cards) == 0 {
		return
	}
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(idx int) {
	if m.scrollLocked() {
		return
	}
	m.cursor = idx
	m.clampGrid()
}

// resetCursor returns to the first card after the visible set changes.
func (m *Model) resetCursor() {
	m.cursor = 0
	m.offset = 0
	m.clampGrid()
}

func (m Model) selectedProduct() (catalog.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.grid.Cards) {
		return catalog.Product{}, false
	}
	return m.grid.Cards[m.cursor].Product, true
}

// clickGrid selects the card under (x, y) and opens its quick view.
func (m *Model) clickGrid(x, y int) {
	if y < gridTop || x < 0 {
		return
	}
	cols := m.gridColumns()
	col := x / cardOuterWidth
	if col >= cols {
		return
	}
	row := (y-gridTop)/cardOuterHeight + m.offset
	if row >= m.offset+m.gridRows() {
		return
	}
	idx := row*cols + col
	if idx >= len(m.grid.Cards) {
		return
	}
	m.setCursor(idx)
	m.openQuickView()
}

func itemFor(p catalog.Product) state.Item {
	return state.Item{ProductID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}

func wishEntryFor(p catalog.Product) state.WishlistEntry {
	return state.WishlistEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
	}
}

func (m *Model) openQuickView() tea.Cmd {
	p, ok := m.selectedProduct()
	if !ok {
		return nil
	}
	m.store.OpenProduct(p.ID)
	m.mutated()
	return m.open(surfaceQuickView)
}

func (m *Model) addSelectedToCart() tea.Cmd {
	p, ok := m.selectedProduct()
	if !ok {
		return nil
	}
	m.store.AddToCart(itemFor(p), 1)
	m.mutated()
	return nil
}

func (m *Model) toggleSelectedWishlist() tea.Cmd {
	p, ok := m.selectedProduct()
	if !ok {
		return nil
	}
	m.store.ToggleWishlist(wishEntryFor(p))
	m.mutated()
	return nil
}

func (m *Model) startSearch() tea.Cmd {
	m.searching = true
	m.searchInput.SetValue(m.query.Search)
	m.searchInput.CursorEnd()
	return m.searchInput.Focus()
}

// applySearch commits the typed term. A term that hides every product
// posts an error notice.
func (m *Model) applySearch() tea.Cmd {
	m.searching = false
	m.searchInput.Blur()
	m.query.Search = strings.TrimSpace(m.searchInput.Value())
	m.refreshGrid()
	m.resetCursor()
	m.logger.Debug("search applied", "term", m.query.Search, "results", len(m.grid.Cards))
	if m.grid.NoMatches {
		m.board.Post(notify.Error, view.NoResultsMessage)
	}
	return nil
}

func (m *Model) cancelSearch() tea.Cmd {
	m.searching = false
	m.searchInput.Blur()
	m.searchInput.Reset()
	return m.clearSearch()
}

func (m *Model) clearSearch() tea.Cmd {
	if m.query.Search == "" {
		return nil
	}
	m.query.Search = ""
	m.refreshGrid()
	m.resetCursor()
	return nil
}

func (m *Model) cycleSort() tea.Cmd {
	m.query.Sort = m.query.Sort.Next()
	m.refreshGrid()
	m.resetCursor()
	m.savePrefs()
	return nil
}

// stepCategory moves the category filter through "All" and the catalog's
// categories.
func (m *Model) stepCategory(dir int) {
	if len(m.categories) == 0 {
		return
	}
	idx := 0
	for i, c := range m.categories {
		if c == m.snapshot.Category {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(m.categories)) % len(m.categories)
	m.store.SetCategory(m.categories[idx])
	m.mutated()
	m.resetCursor()
}

func categoryLabel(name string) string {
	if name == "" {
		return "All"
	}
	return titleCase(name)
}

// renderGrid renders the visible rows of product cards.
func (m Model) renderGrid() string {
	height := maxInt(m.height-gridTop-1, 1)
	box := lipgloss.NewStyle().Width(m.width).Height(height)
	styles := m.theme.Styles()

	if len(m.grid.Cards) == 0 {
		msg := "No products in this category"
		if m.grid.NoMatches {
			msg = view.NoResultsMessage
		}
		return box.Render(lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(msg)))
	}

	cols, rows := m.gridColumns(), m.gridRows()
	var lines []string
	for r := m.offset; r < m.offset+rows; r++ {
		start := r * cols
		if start >= len(m.grid.Cards) {
			break
		}
		end := minInt(start+cols, len(m.grid.Cards))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(m.grid.Cards[i], i == m.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCard(c view.Card, selected bool) string {
	styles := m.theme.Styles()
	p := c.Product

	title := styles.Text.Bold(true).Render(truncate(p.Title, CardWidth))
	if selected {
		title = styles.AccentText.Bold(true).Render(truncate(p.Title, CardWidth))
	}
	meta := styles.MutedText.Render(truncate(fmt.Sprintf("%s · %s", p.Brand, titleCase(p.Category)), CardWidth))

	price := styles.Text.Render(c.Price)
	if c.OldPrice != "" {
		price = styles.Sale.Render(c.Price) + " " + styles.FaintText.Strikethrough(true).Render(c.OldPrice)
	}

	rating := styles.Rating.Render(stars(p.Rating))

	var marks []string
	if c.Wishlisted {
		marks = append(marks, styles.Heart.Render("♥ saved"))
	}
	if c.InCart > 0 {
		marks = append(marks, styles.CartMark.Render(fmt.Sprintf("in cart ×%d", c.InCart)))
	}
	if len(marks) == 0 {
		marks = append(marks, styles.FaintText.Render("♡"))
	}

	border := lipgloss.Color(m.theme.Border)
	if selected {
		border = lipgloss.Color(m.theme.BorderFocus)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(CardWidth).
		Height(CardLines).
		MaxHeight(cardOuterHeight).
		Render(strings.Join([]string{title, meta, price, rating, strings.Join(marks, "  ")}, "\n"))
}
