// Package view projects a state snapshot into the view models the UI renders.
// Every function here is read-only.
package view

import (
	"fmt"
	"strings"

	"github.com/five82/storefront/internal/pricing"
	"github.com/five82/storefront/internal/state"
)

// EmptyCartMessage is shown in place of cart lines.
const EmptyCartMessage = "Your cart is empty"

// EmptyWishlistMessage is shown in place of wishlist entries.
const EmptyWishlistMessage = "Your wishlist is empty"

// CartBadge is the cart count shown in the header: "" when empty, "(n)" otherwise.
func CartBadge(snap state.Snapshot) string {
	return badge(snap.CartCount())
}

// WishlistBadge is the wishlist count shown in the header.
func WishlistBadge(snap state.Snapshot) string {
	return badge(len(snap.Wishlist))
}

func badge(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("(%d)", n)
}

// CartLine is one rendered cart row.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice string
	Options   string // "Size: M, Color: blue" or ""
	Quantity  int
	CanDec    bool
	CanInc    bool
	Total     string
}

// CartPanel is the rendered cart surface.
type CartPanel struct {
	Lines   []CartLine
	Quote   pricing.Breakdown
	Empty   bool
	Message string
	Pending bool
}

// Cart projects the cart and its totals.
func Cart(snap state.Snapshot) CartPanel {
	panel := CartPanel{
		Quote:   pricing.Quote(snap.PricedLines()),
		Pending: snap.CheckoutPending,
	}
	if len(snap.Cart) == 0 {
		panel.Empty = true
		panel.Message = EmptyCartMessage
		return panel
	}
	panel.Lines = make([]CartLine, 0, len(snap.Cart))
	for _, l := range snap.Cart {
		panel.Lines = append(panel.Lines, CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.String(),
			Options:   options(l.Size, l.Color),
			Quantity:  l.Quantity,
			CanDec:    l.Quantity > state.MinQuantity,
			CanInc:    l.Quantity < state.MaxQuantity,
			Total:     l.Total().String(),
		})
	}
	return panel
}

func options(size, color string) string {
	var parts []string
	if size != "" {
		parts = append(parts, "Size: "+size)
	}
	if color != "" {
		parts = append(parts, "Color: "+color)
	}
	return strings.Join(parts, ", ")
}

// WishlistEntry is one rendered wishlist row.
type WishlistEntry struct {
	ProductID string
	Name      string
	Price     string
	Category  string
	InCart    bool
}

// WishlistPanel is the rendered wishlist surface.
type WishlistPanel struct {
	Entries []WishlistEntry
	Empty   bool
	Message string
}

// Wishlist projects the saved products.
func Wishlist(snap state.Snapshot) WishlistPanel {
	if len(snap.Wishlist) == 0 {
		return WishlistPanel{Empty: true, Message: EmptyWishlistMessage}
	}
	inCart := make(map[string]bool, len(snap.Cart))
	for _, l := range snap.Cart {
		inCart[l.ProductID] = true
	}
	panel := WishlistPanel{Entries: make([]WishlistEntry, 0, len(snap.Wishlist))}
	for _, e := range snap.Wishlist {
		panel.Entries = append(panel.Entries, WishlistEntry{
			ProductID: e.ProductID,
			Name:      e.Name,
			Price:     e.Price.String(),
			Category:  e.Category,
			InCart:    inCart[e.ProductID],
		})
	}
	return panel
}

// Menu items offered by the user menu.
const (
	MenuLogin   = "Login"
	MenuProfile = "Profile"
	MenuOrders  = "Orders"
	MenuLogout  = "Logout"
)

// AccountMenu is the header account control.
type AccountMenu struct {
	Label    string
	LoggedIn bool
	Items    []string
}

// UserMenu projects the account control from the session.
func UserMenu(snap state.Snapshot) AccountMenu {
	if snap.User == nil {
		return AccountMenu{Label: "Account", Items: []string{MenuLogin}}
	}
	label := strings.TrimSpace(snap.User.Name)
	if label == "" {
		label = "Account"
	}
	return AccountMenu{
		Label:    label,
		LoggedIn: true,
		Items:    []string{MenuProfile, MenuOrders, MenuLogout},
	}
}
