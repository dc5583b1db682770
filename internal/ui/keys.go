package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Close      key.Binding

	// Grid navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Shopping
	QuickView      key.Binding
	AddToCart      key.Binding
	ToggleWishlist key.Binding
	Search         key.Binding
	ClearSearch    key.Binding
	CycleSort      key.Binding
	NextCategory   key.Binding
	PrevCategory   key.Binding
	Filters        key.Binding
	Cart           key.Binding
	Wishlist       key.Binding
	Account        key.Binding
	Logout         key.Binding
	Activity       key.Binding

	// Panels
	Increase    key.Binding
	Decrease    key.Binding
	EditQty     key.Binding
	Remove      key.Binding
	Checkout    key.Binding
	NextSize    key.Binding
	PrevSize    key.Binding
	NextColor   key.Binding
	Toggle      key.Binding
	ResetFilter key.Binding
	Refresh     key.Binding

	// Forms
	Confirm   key.Binding
	NextField key.Binding
	PrevField key.Binding
	SwitchTab key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		QuickView: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Quick view"),
		),
		AddToCart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to cart"),
		),
		ToggleWishlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Toggle wishlist"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear search"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous category"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filters"),
		),
		Cart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cart"),
		),
		Wishlist: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Wishlist"),
		),
		Account: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Account"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Logout"),
		),
		Activity: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Activity log"),
		),

		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Increase quantity"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Decrease quantity"),
		),
		EditQty: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Type quantity"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Remove"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Checkout"),
		),
		NextSize: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next size"),
		),
		PrevSize: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous size"),
		),
		NextColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next color"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle"),
		),
		ResetFilter: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		SwitchTab: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Login/Sign up"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.QuickView, k.AddToCart, k.ToggleWishlist},
		{k.Search, k.ClearSearch, k.CycleSort, k.NextCategory, k.Filters},
		{k.Cart, k.Wishlist, k.Account, k.Logout, k.Activity},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
