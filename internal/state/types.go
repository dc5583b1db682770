package state

import (
	"errors"
	"strings"
	"time"

	"github.com/five82/storefront/internal/pricing"
)

// Persisted keys.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyUser     = "currentUser"
)

// Quantity bounds for cart lines and the selection.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// OrderStatusProcessing is the status of every placed order.
const OrderStatusProcessing = "processing"

// Checkout precondition failures.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAuthRequired    = errors.New("login required")
	ErrCheckoutPending = errors.New("checkout already in progress")
)

// CartLine is one distinct product in the cart.
type CartLine struct {
	ProductID string        `json:"id"`
	Name      string        `json:"name"`
	UnitPrice pricing.Money `json:"price"`
	Image     string        `json:"image"`
	Quantity  int           `json:"quantity"`
	Size      string        `json:"size,omitempty"`
	Color     string        `json:"color,omitempty"`
}

// Total is the line's unit price times its quantity.
func (l CartLine) Total() pricing.Money {
	return l.UnitPrice * pricing.Money(l.Quantity)
}

// WishlistEntry is a saved product reference.
type WishlistEntry struct {
	ProductID string        `json:"id"`
	Name      string        `json:"name"`
	Price     pricing.Money `json:"price"`
	Image     string        `json:"image"`
	Category  string        `json:"category"`
}

// UserSession is the logged-in user. No password is kept.
type UserSession struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Selection is the size, color and quantity picked for the product in quick view.
type Selection struct {
	ProductID string
	Size      string
	Color     string
	Quantity  int
}

// Item describes a product being added to the cart.
type Item struct {
	ProductID string
	Name      string
	Price     pricing.Money
	Image     string
	Size      string
	Color     string
}

// Order is the receipt produced by a completed checkout.
type Order struct {
	ID       string
	PlacedAt time.Time
	Lines    []CartLine
	Quote    pricing.Breakdown
	Status   string
}

// Snapshot is a copy of the application state.
type Snapshot struct {
	Cart            []CartLine
	Wishlist        []WishlistEntry
	User            *UserSession
	Selection       Selection
	Category        string
	CheckoutPending bool
}

// LoggedIn reports whether a session is present.
func (s Snapshot) LoggedIn() bool {
	return s.User != nil
}

// CartCount is the sum of line quantities.
func (s Snapshot) CartCount() int {
	n := 0
	for _, l := range s.Cart {
		n += l.Quantity
	}
	return n
}

// InWishlist reports whether id is saved.
func (s Snapshot) InWishlist(id string) bool {
	for _, e := range s.Wishlist {
		if e.ProductID == id {
			return true
		}
	}
	return false
}

// PricedLines converts the cart for pricing.Quote.
func (s Snapshot) PricedLines() []pricing.Line {
	return pricedLines(s.Cart)
}

func pricedLines(cart []CartLine) []pricing.Line {
	out := make([]pricing.Line, 0, len(cart))
	for _, l := range cart {
		out = append(out, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return out
}

func (s Snapshot) clone() Snapshot {
	dup := s
	dup.Cart = cloneSlice(s.Cart)
	dup.Wishlist = cloneSlice(s.Wishlist)
	if s.User != nil {
		u := *s.User
		dup.User = &u
	}
	return dup
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

// ClampQuantity limits n to [MinQuantity, MaxQuantity].
func ClampQuantity(n int) int {
	if n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}

// ParseQuantity reads the leading integer of raw and clamps it. Input without
// a leading integer, or a zero, reads as 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			break
		}
		if n <= MaxQuantity {
			n = n*10 + int(c-'0')
		}
		digits++
	}
	if digits == 0 || n == 0 {
		return MinQuantity
	}
	if neg {
		n = -n
	}
	return ClampQuantity(n)
}
