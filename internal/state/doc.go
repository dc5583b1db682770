// Package state owns the storefront's application state.
//
// # Overview
//
// A single Store holds the cart, the wishlist, the optional user session,
// the quick-view selection and the active category. The UI never touches the
// fields directly: it calls Store methods (the mutators) and renders from the
// Snapshot they leave behind.
//
//	key press ──→ ui intent ──→ store.AddToCart(...)
//	                                 │
//	                                 ├─→ persister.Save("cart", ...)
//	                                 ├─→ notifier.Post(Success, "... added to cart")
//	                                 ↓
//	                          store.Snapshot() ──→ view projectors ──→ render
//
// # Persistence
//
// Cart, wishlist and session are written under the keys "cart", "wishlist"
// and "currentUser" after every change that touches them. Logging out deletes
// "currentUser". Selection, category and the checkout flag live only in
// memory. Hydrate reads the three keys back at startup; anything missing or
// unreadable loads as empty, quantities are clamped and duplicate cart lines
// merged.
//
// # Checkout
//
// Checkout is split in two so the caller can show a loading indicator during
// the simulated processing delay:
//
//	err := store.BeginCheckout() // ErrEmptyCart, ErrAuthRequired, ErrCheckoutPending
//	...delay...
//	order, ok := store.CompleteCheckout()
//
// BeginCheckout sets a pending flag; a second call before CompleteCheckout
// returns ErrCheckoutPending.
//
// # Concurrency
//
// The UI calls mutators from its single update goroutine, but the Store still
// guards its state with a sync.RWMutex so snapshots may be taken from command
// goroutines. Snapshot returns deep copies.
package state
