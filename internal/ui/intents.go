package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/prefs"
)

// scope selects the binding set for a key press. It follows the open
// surface, plus whether a text input has focus.
type scope int

const (
	scopeGrid scope = iota
	scopeSearch
	scopeCart
	scopeCartQty
	scopeCartEmpty
	scopeWishlist
	scopeAuth
	scopeAccount
	scopeQuickView
	scopeQuickViewQty
	scopeFilters
	scopeHelp
	scopeActivity
)

// text reports whether unbound keys go to a text input.
func (s scope) text() bool {
	switch s {
	case scopeSearch, scopeCartQty, scopeAuth, scopeQuickViewQty:
		return true
	}
	return false
}

// intent is a user action, independent of the key that triggered it.
type intent int

const (
	intentNone intent = iota

	intentQuit
	intentToggleHelp
	intentCycleTheme
	intentClose

	intentGridUp
	intentGridDown
	intentGridLeft
	intentGridRight
	intentGridTop
	intentGridBottom
	intentQuickView
	intentGridAddToCart
	intentGridWishlist
	intentSearchStart
	intentSearchClear
	intentCycleSort
	intentNextCategory
	intentPrevCategory
	intentOpenFilters
	intentOpenCart
	intentOpenWishlist
	intentOpenAccount
	intentLogout
	intentOpenActivity

	intentSearchApply
	intentSearchCancel

	intentCartUp
	intentCartDown
	intentCartInc
	intentCartDec
	intentCartEditQty
	intentCartRemove
	intentCheckout
	intentCartQtyApply
	intentQtyCancel

	intentWishUp
	intentWishDown
	intentWishAdd
	intentWishRemove

	intentAuthSubmit
	intentAuthNextField
	intentAuthPrevField
	intentAuthSwitchTab

	intentNextSize
	intentPrevSize
	intentNextColor
	intentSelInc
	intentSelDec
	intentSelEditQty
	intentSelAdd
	intentSelWishlist
	intentSelQtyApply

	intentFilterUp
	intentFilterDown
	intentFilterToggle
	intentFilterLess
	intentFilterMore
	intentFilterReset

	intentActivityUp
	intentActivityDown
	intentActivityTop
	intentActivityBottom
	intentActivityRefresh
)

type binding struct {
	key    key.Binding
	intent intent
}

type handler func(*Model) tea.Cmd

// router maps key presses to intents and intents to handlers. It is built
// once and shared by every copy of the model.
type router struct {
	bindings map[scope][]binding
	handlers map[intent]handler
}

func newRouter(k keyMap) *router {
	global := []binding{
		{k.Quit, intentQuit},
		{k.Help, intentToggleHelp},
		{k.CycleTheme, intentCycleTheme},
	}
	interrupt := []binding{
		{k.ForceQuit, intentQuit},
	}
	with := func(extra []binding, own ...binding) []binding {
		return append(own, extra...)
	}

	r := &router{
		bindings: map[scope][]binding{
			scopeGrid: with(global,
				binding{k.Up, intentGridUp},
				binding{k.Down, intentGridDown},
				binding{k.Left, intentGridLeft},
				binding{k.Right, intentGridRight},
				binding{k.Top, intentGridTop},
				binding{k.Bottom, intentGridBottom},
				binding{k.QuickView, intentQuickView},
				binding{k.AddToCart, intentGridAddToCart},
				binding{k.ToggleWishlist, intentGridWishlist},
				binding{k.Search, intentSearchStart},
				binding{k.ClearSearch, intentSearchClear},
				binding{k.CycleSort, intentCycleSort},
				binding{k.NextCategory, intentNextCategory},
				binding{k.PrevCategory, intentPrevCategory},
				binding{k.Filters, intentOpenFilters},
				binding{k.Cart, intentOpenCart},
				binding{k.Wishlist, intentOpenWishlist},
				binding{k.Account, intentOpenAccount},
				binding{k.Logout, intentLogout},
				binding{k.Activity, intentOpenActivity},
			),
			scopeSearch: with(interrupt,
				binding{k.Confirm, intentSearchApply},
				binding{k.Close, intentSearchCancel},
			),
			scopeCart: with(global,
				binding{k.Close, intentClose},
				binding{k.Up, intentCartUp},
				binding{k.Down, intentCartDown},
				binding{k.Increase, intentCartInc},
				binding{k.Decrease, intentCartDec},
				binding{k.EditQty, intentCartEditQty},
				binding{k.Remove, intentCartRemove},
				binding{k.Checkout, intentCheckout},
			),
			scopeCartQty: with(interrupt,
				binding{k.Confirm, intentCartQtyApply},
				binding{k.Close, intentQtyCancel},
			),
			scopeCartEmpty: with(global,
				binding{k.Close, intentClose},
				binding{k.Confirm, intentClose},
			),
			scopeWishlist: with(global,
				binding{k.Close, intentClose},
				binding{k.Up, intentWishUp},
				binding{k.Down, intentWishDown},
				binding{k.AddToCart, intentWishAdd},
				binding{k.Confirm, intentWishAdd},
				binding{k.Remove, intentWishRemove},
			),
			scopeAuth: with(interrupt,
				binding{k.Close, intentClose},
				binding{k.Confirm, intentAuthSubmit},
				binding{k.NextField, intentAuthNextField},
				binding{k.PrevField, intentAuthPrevField},
				binding{k.SwitchTab, intentAuthSwitchTab},
			),
			scopeAccount: with(global,
				binding{k.Close, intentClose},
				binding{k.Logout, intentLogout},
			),
			scopeQuickView: with(global,
				binding{k.Close, intentClose},
				binding{k.NextSize, intentNextSize},
				binding{k.PrevSize, intentPrevSize},
				binding{k.NextColor, intentNextColor},
				binding{k.Increase, intentSelInc},
				binding{k.Decrease, intentSelDec},
				binding{k.EditQty, intentSelEditQty},
				binding{k.AddToCart, intentSelAdd},
				binding{k.ToggleWishlist, intentSelWishlist},
			),
			scopeQuickViewQty: with(interrupt,
				binding{k.Confirm, intentSelQtyApply},
				binding{k.Close, intentQtyCancel},
			),
			scopeFilters: with(global,
				binding{k.Close, intentClose},
				binding{k.Up, intentFilterUp},
				binding{k.Down, intentFilterDown},
				binding{k.Toggle, intentFilterToggle},
				binding{k.Left, intentFilterLess},
				binding{k.Right, intentFilterMore},
				binding{k.ResetFilter, intentFilterReset},
			),
			scopeHelp: with(global,
				binding{k.Close, intentClose},
			),
			scopeActivity: with(global,
				binding{k.Close, intentClose},
				binding{k.Up, intentActivityUp},
				binding{k.Down, intentActivityDown},
				binding{k.Top, intentActivityTop},
				binding{k.Bottom, intentActivityBottom},
				binding{k.Refresh, intentActivityRefresh},
			),
		},
		handlers: map[intent]handler{
			intentQuit:       func(*Model) tea.Cmd { return tea.Quit },
			intentToggleHelp: (*Model).toggleHelp,
			intentCycleTheme: (*Model).cycleTheme,
			intentClose:      func(m *Model) tea.Cmd { m.closeAll(); return nil },

			intentGridUp:        func(m *Model) tea.Cmd { m.moveCursor(-m.gridColumns()); return nil },
			intentGridDown:      func(m *Model) tea.Cmd { m.moveCursor(m.gridColumns()); return nil },
			intentGridLeft:      func(m *Model) tea.Cmd { m.moveCursor(-1); return nil },
			intentGridRight:     func(m *Model) tea.Cmd { m.moveCursor(1); return nil },
			intentGridTop:       func(m *Model) tea.Cmd { m.setCursor(0); return nil },
			intentGridBottom:    func(m *Model) tea.Cmd { m.setCursor(len(m.grid.Cards) - 1); return nil },
			intentQuickView:     (*Model).openQuickView,
			intentGridAddToCart: (*Model).addSelectedToCart,
			intentGridWishlist:  (*Model).toggleSelectedWishlist,
			intentSearchStart:   (*Model).startSearch,
			intentSearchClear:   (*Model).clearSearch,
			intentCycleSort:     (*Model).cycleSort,
			intentNextCategory:  func(m *Model) tea.Cmd { m.stepCategory(1); return nil },
			intentPrevCategory:  func(m *Model) tea.Cmd { m.stepCategory(-1); return nil },
			intentOpenFilters:   func(m *Model) tea.Cmd { return m.open(surfaceFilters) },
			intentOpenCart:      func(m *Model) tea.Cmd { return m.open(surfaceCart) },
			intentOpenWishlist:  func(m *Model) tea.Cmd { return m.open(surfaceWishlist) },
			intentOpenAccount:   (*Model).openAccount,
			intentLogout:        (*Model).logout,
			intentOpenActivity:  func(m *Model) tea.Cmd { return m.open(surfaceActivity) },

			intentSearchApply:  (*Model).applySearch,
			intentSearchCancel: (*Model).cancelSearch,

			intentCartUp:       func(m *Model) tea.Cmd { m.moveCartCursor(-1); return nil },
			intentCartDown:     func(m *Model) tea.Cmd { m.moveCartCursor(1); return nil },
			intentCartInc:      func(m *Model) tea.Cmd { m.stepCartLine(1); return nil },
			intentCartDec:      func(m *Model) tea.Cmd { m.stepCartLine(-1); return nil },
			intentCartEditQty:  (*Model).editCartQuantity,
			intentCartRemove:   (*Model).removeCartLine,
			intentCheckout:     (*Model).checkout,
			intentCartQtyApply: (*Model).applyCartQuantity,
			intentQtyCancel:    (*Model).cancelQuantity,

			intentWishUp:     func(m *Model) tea.Cmd { m.moveWishCursor(-1); return nil },
			intentWishDown:   func(m *Model) tea.Cmd { m.moveWishCursor(1); return nil },
			intentWishAdd:    (*Model).addWishToCart,
			intentWishRemove: (*Model).removeWish,

			intentAuthSubmit:    (*Model).submitAuth,
			intentAuthNextField: func(m *Model) tea.Cmd { return m.auth.moveFocus(1) },
			intentAuthPrevField: func(m *Model) tea.Cmd { return m.auth.moveFocus(-1) },
			intentAuthSwitchTab: func(m *Model) tea.Cmd { return m.auth.switchTab() },

			intentNextSize:    func(m *Model) tea.Cmd { m.stepSize(1); return nil },
			intentPrevSize:    func(m *Model) tea.Cmd { m.stepSize(-1); return nil },
			intentNextColor:   func(m *Model) tea.Cmd { m.stepColor(1); return nil },
			intentSelInc:      func(m *Model) tea.Cmd { m.stepSelectionQuantity(1); return nil },
			intentSelDec:      func(m *Model) tea.Cmd { m.stepSelectionQuantity(-1); return nil },
			intentSelEditQty:  (*Model).editSelectionQuantity,
			intentSelAdd:      (*Model).addSelection,
			intentSelWishlist: (*Model).toggleQuickViewWishlist,
			intentSelQtyApply: (*Model).applySelectionQuantity,

			intentFilterUp:     func(m *Model) tea.Cmd { m.filters.move(-1); return nil },
			intentFilterDown:   func(m *Model) tea.Cmd { m.filters.move(1); return nil },
			intentFilterToggle: func(m *Model) tea.Cmd { m.adjustFilter(0); return nil },
			intentFilterLess:   func(m *Model) tea.Cmd { m.adjustFilter(-1); return nil },
			intentFilterMore:   func(m *Model) tea.Cmd { m.adjustFilter(1); return nil },
			intentFilterReset:  (*Model).resetFilters,

			intentActivityUp:      func(m *Model) tea.Cmd { m.activity.viewport.LineUp(1); return nil },
			intentActivityDown:    func(m *Model) tea.Cmd { m.activity.viewport.LineDown(1); return nil },
			intentActivityTop:     func(m *Model) tea.Cmd { m.activity.viewport.GotoTop(); return nil },
			intentActivityBottom:  func(m *Model) tea.Cmd { m.activity.viewport.GotoBottom(); return nil },
			intentActivityRefresh: (*Model).loadActivity,
		},
	}
	return r
}

// resolve returns the intent bound to msg in scope s. The first match wins.
func (r *router) resolve(s scope, msg tea.KeyMsg) intent {
	for _, b := range r.bindings[s] {
		if key.Matches(msg, b.key) {
			return b.intent
		}
	}
	return intentNone
}

// scope returns the binding set for the current model state.
func (m Model) scope() scope {
	switch m.surface {
	case surfaceCart:
		if m.editingQty {
			return scopeCartQty
		}
		return scopeCart
	case surfaceCartEmpty:
		return scopeCartEmpty
	case surfaceWishlist:
		return scopeWishlist
	case surfaceAuth:
		if m.snapshot.LoggedIn() {
			return scopeAccount
		}
		return scopeAuth
	case surfaceQuickView:
		if m.editingQty {
			return scopeQuickViewQty
		}
		return scopeQuickView
	case surfaceFilters:
		return scopeFilters
	case surfaceHelp:
		return scopeHelp
	case surfaceActivity:
		return scopeActivity
	}
	if m.searching {
		return scopeSearch
	}
	return scopeGrid
}

// handleKey routes a key press through the intent table. In text scopes,
// unbound keys edit the focused input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	sc := m.scope()
	in := m.router.resolve(sc, msg)
	if in == intentNone {
		if sc.text() {
			return m.updateInput(sc, msg)
		}
		return nil
	}
	h, ok := m.router.handlers[in]
	if !ok {
		m.logger.Warn("intent has no handler", "intent", int(in))
		return nil
	}
	return h(m)
}

// updateInput forwards msg to the text input that owns scope s.
func (m *Model) updateInput(s scope, msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch s {
	case scopeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case scopeCartQty, scopeQuickViewQty:
		m.qtyInput, cmd = m.qtyInput.Update(msg)
	case scopeAuth:
		cmd = m.auth.update(msg)
	}
	return cmd
}

func (m *Model) toggleHelp() tea.Cmd {
	if m.surface == surfaceHelp {
		m.closeAll()
		return nil
	}
	return m.open(surfaceHelp)
}

func (m *Model) cycleTheme() tea.Cmd {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.savePrefs()
	return nil
}

// savePrefs persists the theme and sort order. Failures are logged only.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Sort: string(m.query.Sort)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}
