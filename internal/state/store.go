package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/pricing"
)

// Persister stores state fragments by key. *storage.Adapter satisfies it.
type Persister interface {
	Save(key string, value any)
	Load(key string, dest any) bool
	Clear(key string)
}

// Notifier receives user-visible messages. *notify.Board satisfies it.
type Notifier interface {
	Post(kind notify.Kind, message string) notify.Notice
}

// Store owns the application state. Every change goes through one of its
// methods, which persist the affected keys and post a notice.
type Store struct {
	mu      sync.RWMutex
	current Snapshot

	persist Persister
	notes   Notifier
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// New returns an empty Store. Call Hydrate to load persisted state.
// Nil collaborators are allowed; their side effects are skipped.
func New(persist Persister, notes Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Store{
		current: Snapshot{Selection: Selection{Quantity: MinQuantity}},
		persist: persist,
		notes:   notes,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Hydrate replaces the cart, wishlist and session with what storage holds.
// Missing or malformed values load as empty.
func (s *Store) Hydrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("hydrate: %w", err)
	}

	var cart []CartLine
	var wishlist []WishlistEntry
	var user *UserSession
	if s.persist != nil {
		if !s.persist.Load(KeyCart, &cart) {
			cart = nil
		}
		if !s.persist.Load(KeyWishlist, &wishlist) {
			wishlist = nil
		}
		var u UserSession
		if s.persist.Load(KeyUser, &u) && strings.TrimSpace(u.Email) != "" {
			user = &u
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Cart = normalizeCart(cart)
	s.current.Wishlist = normalizeWishlist(wishlist)
	s.current.User = user
	s.logger.Debug("state hydrated",
		"cart_lines", len(s.current.Cart),
		"wishlist", len(s.current.Wishlist),
		"logged_in", user != nil)
	return nil
}

// normalizeCart clamps quantities and merges lines that share a product ID.
func normalizeCart(lines []CartLine) []CartLine {
	var out []CartLine
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.UnitPrice < 0 {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity = ClampQuantity(out[i].Quantity + l.Quantity)
			continue
		}
		l.Quantity = ClampQuantity(l.Quantity)
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

func normalizeWishlist(entries []WishlistEntry) []WishlistEntry {
	var out []WishlistEntry
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ProductID == "" || seen[e.ProductID] {
			continue
		}
		seen[e.ProductID] = true
		out = append(out, e)
	}
	return out
}

// AddToCart adds quantity of item. An existing line grows by quantity; the
// result is clamped to [MinQuantity, MaxQuantity].
func (s *Store) AddToCart(item Item, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(item, quantity)
}

func (s *Store) addLocked(item Item, quantity int) {
	if i := s.cartIndex(item.ProductID); i >= 0 {
		line := &s.current.Cart[i]
		line.Quantity = ClampQuantity(line.Quantity + quantity)
	} else {
		s.current.Cart = append(s.current.Cart, CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Image:     item.Image,
			Quantity:  ClampQuantity(quantity),
			Size:      item.Size,
			Color:     item.Color,
		})
	}
	s.saveCart()
	s.logger.Debug("cart add", "product", item.ProductID, "quantity", quantity)
	s.post(notify.Success, item.Name+" added to cart")
}

// RemoveFromCart drops the line for id. Removing an absent id still succeeds.
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.cartIndex(id); i >= 0 {
		s.current.Cart = append(s.current.Cart[:i], s.current.Cart[i+1:]...)
	}
	s.saveCart()
	s.logger.Debug("cart remove", "product", id)
	s.post(notify.Success, "Item removed from cart")
}

// UpdateCartQuantity sets the quantity of the line for id from user input.
// It reports whether a line was updated.
func (s *Store) UpdateCartQuantity(id, raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cartIndex(id)
	if i < 0 {
		return false
	}
	s.current.Cart[i].Quantity = ParseQuantity(raw)
	s.saveCart()
	s.logger.Debug("cart quantity", "product", id, "quantity", s.current.Cart[i].Quantity)
	return true
}

// StepCartQuantity moves the quantity of the line for id by delta.
func (s *Store) StepCartQuantity(id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cartIndex(id)
	if i < 0 {
		return false
	}
	s.current.Cart[i].Quantity = ClampQuantity(s.current.Cart[i].Quantity + delta)
	s.saveCart()
	return true
}

// ToggleWishlist flips membership of entry.ProductID and returns the new
// membership. The entry is only stored when the product is being added.
func (s *Store) ToggleWishlist(entry WishlistEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := true
	if i := s.wishlistIndex(entry.ProductID); i >= 0 {
		s.current.Wishlist = append(s.current.Wishlist[:i], s.current.Wishlist[i+1:]...)
		added = false
	} else {
		s.current.Wishlist = append(s.current.Wishlist, entry)
	}
	s.save(KeyWishlist, s.current.Wishlist)
	s.logger.Debug("wishlist toggle", "product", entry.ProductID, "saved", added)
	if added {
		s.post(notify.Success, "Added to wishlist")
	} else {
		s.post(notify.Success, "Removed from wishlist")
	}
	return added
}

// Login starts a session when both fields are filled in. No credentials are
// checked.
func (s *Store) Login(email, password string) bool {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		s.post(notify.Error, "Please fill in all fields")
		return false
	}
	s.startSession(UserSession{Email: email, Name: "User"})
	s.post(notify.Success, "Login successful!")
	return true
}

// Signup starts a session under name when all fields are filled in.
func (s *Store) Signup(name, email, password string) bool {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		s.post(notify.Error, "Please fill in all fields")
		return false
	}
	s.startSession(UserSession{Email: email, Name: name})
	s.post(notify.Success, "Account created successfully!")
	return true
}

func (s *Store) startSession(u UserSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.User = &u
	s.saveUser()
	s.logger.Info("session started")
}

// Logout ends the session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.User = nil
	s.saveUser()
	s.logger.Info("session ended")
	s.post(notify.Success, "Logged out successfully")
}

// BeginCheckout checks the checkout preconditions in order and marks the
// checkout pending. The caller completes it with CompleteCheckout after the
// processing delay.
func (s *Store) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case len(s.current.Cart) == 0:
		s.post(notify.Error, "Your cart is empty")
		return ErrEmptyCart
	case s.current.User == nil:
		s.post(notify.Error, "Please login to checkout")
		return ErrAuthRequired
	case s.current.CheckoutPending:
		return ErrCheckoutPending
	}
	s.current.CheckoutPending = true
	s.logger.Debug("checkout started", "lines", len(s.current.Cart))
	return nil
}

// CompleteCheckout places the order for the pending checkout and empties the
// cart. It reports false when no checkout is pending, or when the cart was
// emptied while the checkout was processing; the latter also ends the
// checkout.
func (s *Store) CompleteCheckout() (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current.CheckoutPending {
		return Order{}, false
	}
	if len(s.current.Cart) == 0 {
		s.current.CheckoutPending = false
		s.logger.Debug("checkout abandoned", "reason", "cart emptied")
		s.post(notify.Error, "Your cart is empty")
		return Order{}, false
	}
	lines := cloneSlice(s.current.Cart)
	order := Order{
		ID:       s.newID(),
		PlacedAt: s.now(),
		Lines:    lines,
		Quote:    pricing.Quote(pricedLines(lines)),
		Status:   OrderStatusProcessing,
	}
	s.current.Cart = nil
	s.current.CheckoutPending = false
	s.saveCart()
	s.logger.Info("order placed",
		"order_id", order.ID,
		"lines", len(order.Lines),
		"total", order.Quote.Total.String())
	s.post(notify.Success, "Order placed successfully!")
	return order, true
}

// CancelCheckout clears a pending checkout without placing an order.
func (s *Store) CancelCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.CheckoutPending = false
}

// OpenProduct makes id the quick-view product and resets the selection.
func (s *Store) OpenProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Selection = Selection{ProductID: id, Quantity: MinQuantity}
}

// SelectSize records the chosen size.
func (s *Store) SelectSize(size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Selection.Size = size
}

// SelectColor records the chosen color.
func (s *Store) SelectColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Selection.Color = color
}

// SetSelectionQuantity sets the selection quantity from user input.
func (s *Store) SetSelectionQuantity(raw string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Selection.Quantity = ParseQuantity(raw)
	return s.current.Selection.Quantity
}

// StepSelectionQuantity moves the selection quantity by delta.
func (s *Store) StepSelectionQuantity(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Selection.Quantity = ClampQuantity(s.current.Selection.Quantity + delta)
	return s.current.Selection.Quantity
}

// AddSelectionToCart adds item using the selection's quantity, size and
// color. A size must be chosen first.
func (s *Store) AddSelectionToCart(item Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.current.Selection
	if sel.Size == "" {
		s.post(notify.Error, "Please select a size")
		return false
	}
	item.Size = sel.Size
	item.Color = sel.Color
	s.addLocked(item, sel.Quantity)
	return true
}

// SetCategory sets the active category filter. Empty means all categories.
func (s *Store) SetCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Category = name
}

func (s *Store) cartIndex(id string) int {
	for i, l := range s.current.Cart {
		if l.ProductID == id {
			return i
		}
	}
	return -1
}

func (s *Store) wishlistIndex(id string) int {
	for i, e := range s.current.Wishlist {
		if e.ProductID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saveCart() {
	cart := s.current.Cart
	if cart == nil {
		cart = []CartLine{}
	}
	s.save(KeyCart, cart)
}

func (s *Store) saveUser() {
	if s.persist == nil {
		return
	}
	if s.current.User == nil {
		s.persist.Clear(KeyUser)
		return
	}
	s.persist.Save(KeyUser, s.current.User)
}

func (s *Store) save(key string, value any) {
	if s.persist != nil {
		s.persist.Save(key, value)
	}
}

func (s *Store) post(kind notify.Kind, message string) {
	if s.notes != nil {
		s.notes.Post(kind, message)
	}
}
