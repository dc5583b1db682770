package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// surface is an overlay shown above the grid. At most one is open.
type surface int

const (
	surfaceNone surface = iota
	surfaceCart
	surfaceCartEmpty
	surfaceWishlist
	surfaceAuth
	surfaceQuickView
	surfaceFilters
	surfaceHelp
	surfaceActivity
)

func (s surface) String() string {
	switch s {
	case surfaceCart:
		return "cart"
	case surfaceCartEmpty:
		return "cart-empty"
	case surfaceWishlist:
		return "wishlist"
	case surfaceAuth:
		return "auth"
	case surfaceQuickView:
		return "quick-view"
	case surfaceFilters:
		return "filters"
	case surfaceHelp:
		return "help"
	case surfaceActivity:
		return "activity"
	default:
		return "none"
	}
}

// open closes every surface and shows s.
func (m *Model) open(s surface) tea.Cmd {
	m.closeAll()
	if s == surfaceNone {
		return nil
	}
	m.surface = s
	m.logger.Debug("surface opened", "surface", s.String())

	switch s {
	case surfaceCart, surfaceWishlist:
		m.refreshPanels(true)
		m.clampPanelCursors()
	case surfaceAuth:
		if !m.snapshot.LoggedIn() {
			return m.auth.reset(tabLogin)
		}
	case surfaceActivity:
		return m.loadActivity()
	}
	return nil
}

// closeAll hides every surface and releases the grid.
func (m *Model) closeAll() {
	m.searching = false
	m.searchInput.Blur()
	m.editingQty = false
	m.qtyInput.Blur()
	m.qtyInput.Reset()
	m.auth.blur()
	m.surface = surfaceNone
}

// scrollLocked reports whether grid scrolling is suspended.
func (m Model) scrollLocked() bool {
	return m.surface != surfaceNone
}

// surfaceBox renders the open surface without placement.
func (m Model) surfaceBox() string {
	switch m.surface {
	case surfaceCart:
		return m.renderModal("Shopping Cart", m.renderCart(), cartWidth)
	case surfaceCartEmpty:
		return m.renderModal("Shopping Cart", m.renderCartEmpty(), cartWidth)
	case surfaceWishlist:
		return m.renderModal("Wishlist", m.renderWishlist(), wishlistWidth)
	case surfaceAuth:
		return m.renderModal(m.authTitle(), m.renderAuth(), authWidth)
	case surfaceQuickView:
		return m.renderModal("Quick View", m.renderQuickView(), quickViewWidth)
	case surfaceFilters:
		return m.renderModal("Filters", m.renderFilters(), filtersWidth)
	case surfaceHelp:
		content := m.renderHelp()
		return m.renderModal("Keyboard Shortcuts", content, m.helpBoxWidth(content))
	case surfaceActivity:
		return m.renderModal(m.activityTitle(), m.renderActivity(), maxInt(m.width-2, 20))
	default:
		return ""
	}
}

// renderSurface renders the open surface centered on the screen, keeping
// the footer so notices stay visible.
func (m Model) renderSurface() string {
	return m.placeModal(m.surfaceBox()) + "\n" + m.renderFooter()
}

// surfaceRect returns the screen region of the open surface.
func (m Model) surfaceRect() rect {
	if m.surface == surfaceNone {
		return rect{}
	}
	return m.modalRect(m.surfaceBox())
}

// handleMouse handles clicks and the wheel.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		if m.surface != surfaceNone {
			if !m.surfaceRect().contains(msg.X, msg.Y) {
				m.closeAll()
			}
			return
		}
		m.clickGrid(msg.X, msg.Y)

	case tea.MouseButtonWheelUp:
		m.wheel(-1)

	case tea.MouseButtonWheelDown:
		m.wheel(1)
	}
}

// wheel scrolls the open surface, or the grid when nothing is open.
func (m *Model) wheel(dir int) {
	switch m.surface {
	case surfaceNone:
		m.moveCursor(dir * m.gridColumns())
	case surfaceActivity:
		if dir < 0 {
			m.activity.viewport.LineUp(3)
		} else {
			m.activity.viewport.LineDown(3)
		}
	}
}
