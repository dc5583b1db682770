// Package ui implements the storefront terminal interface with Bubble Tea.
//
// # Layout
//
// The main screen is a header (category, wishlist and cart badges, account
// control), a command bar, the product grid and a footer that carries the
// current notice and the checkout indicator. Everything else is a surface:
// cart, empty-cart prompt, wishlist, login/signup or account menu, quick
// view, filters, help and the activity log. Surfaces are drawn centered above
// the footer and at most one is open at a time. While one is open the grid
// ignores scrolling, and a left click outside its box closes it.
//
// # Input
//
// Key presses are resolved through a table built once by New. The table is
// keyed by scope (the open surface, or a focused text input) and maps each
// key to one intent; each intent has one handler. In text scopes (search,
// quantity entry, the auth form) keys without a binding edit the input, so
// typing "q" into the search box does not quit.
//
// # State
//
// Handlers call state.Store mutators and then refresh the model's snapshot.
// The grid is re-projected on every refresh. The cart and wishlist panels
// are re-projected only while their surface is open and the state version
// has changed, and always when the surface opens.
//
// Checkout is two-phase: BeginCheckout marks the order pending and a tea.Tick
// delivers checkoutDoneMsg after the configured delay, which completes it.
// Each new notice schedules its own dismissal; a timer only dismisses the
// notice it was scheduled for.
//
// # Usage
//
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Store:   store,
//		Board:   board,
//		Catalog: cat,
//		Logger:  logger,
//	})
package ui
