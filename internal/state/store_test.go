package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/pricing"
	"github.com/five82/storefront/internal/storage"
)

type recordingNotifier struct {
	notices []notify.Notice
}

func (r *recordingNotifier) Post(kind notify.Kind, message string) notify.Notice {
	n := notify.Notice{Kind: kind, Message: message, Seq: uint64(len(r.notices) + 1)}
	r.notices = append(r.notices, n)
	return n
}

func (r *recordingNotifier) last(t *testing.T) notify.Notice {
	t.Helper()
	if len(r.notices) == 0 {
		t.Fatalf("no notice posted")
	}
	return r.notices[len(r.notices)-1]
}

func newTestStore(t *testing.T) (*Store, *storage.Memory, *recordingNotifier) {
	t.Helper()
	mem := storage.NewMemory()
	notes := &recordingNotifier{}
	s := New(storage.NewAdapter(mem, nil), notes, nil)
	s.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	s.newID = func() string { return "order-1" }
	return s, mem, notes
}

func storedCart(t *testing.T, mem *storage.Memory) []CartLine {
	t.Helper()
	data, ok, err := mem.Get(context.Background(), KeyCart)
	if err != nil || !ok {
		t.Fatalf("cart not persisted: ok=%v err=%v", ok, err)
	}
	var lines []CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		t.Fatalf("decode persisted cart: %v", err)
	}
	return lines
}

var shirt = Item{ProductID: "1", Name: "Oxford Shirt", Price: 1000, Image: "shirt.jpg"}

func TestAddToCart_SameProductAccumulatesClamped(t *testing.T) {
	tests := []struct {
		name string
		adds []int
		want int
	}{
		{"single", []int{1}, 1},
		{"sum", []int{2, 3}, 5},
		{"caps at ten", []int{4, 4, 4}, 10},
		{"one big add", []int{25}, 10},
		{"non-positive first add", []int{0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem, _ := newTestStore(t)
			for _, n := range tt.adds {
				s.AddToCart(shirt, n)
			}
			snap := s.Snapshot()
			if len(snap.Cart) != 1 {
				t.Fatalf("cart lines = %d, want 1", len(snap.Cart))
			}
			if got := snap.Cart[0].Quantity; got != tt.want {
				t.Fatalf("quantity = %d, want %d", got, tt.want)
			}
			if got := storedCart(t, mem); len(got) != 1 || got[0].Quantity != tt.want {
				t.Fatalf("persisted cart = %+v", got)
			}
		})
	}
}

func TestAddToCart_Notice(t *testing.T) {
	s, _, notes := newTestStore(t)
	s.AddToCart(shirt, 1)
	n := notes.last(t)
	if n.Message != "Oxford Shirt added to cart" || n.Kind != notify.Success {
		t.Fatalf("notice = %+v", n)
	}
}

func TestRemoveFromCart(t *testing.T) {
	s, mem, notes := newTestStore(t)
	s.AddToCart(shirt, 2)
	s.AddToCart(Item{ProductID: "2", Name: "Cap", Price: 500}, 1)

	s.RemoveFromCart("1")
	snap := s.Snapshot()
	if len(snap.Cart) != 1 || snap.Cart[0].ProductID != "2" {
		t.Fatalf("cart = %+v, want only product 2", snap.Cart)
	}
	if n := notes.last(t); n.Message != "Item removed from cart" {
		t.Fatalf("notice = %q", n.Message)
	}

	s.RemoveFromCart("missing")
	if got := storedCart(t, mem); len(got) != 1 {
		t.Fatalf("persisted cart = %+v, want 1 line", got)
	}
}

func TestUpdateCartQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"0", 1},
		{"-4", 1},
		{"11", 10},
		{"999999999999", 10},
		{"abc", 1},
		{"", 1},
		{" 7 ", 7},
		{"4.9", 4},
		{"6pcs", 6},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, _, _ := newTestStore(t)
			s.AddToCart(shirt, 2)
			if !s.UpdateCartQuantity("1", tt.raw) {
				t.Fatalf("UpdateCartQuantity returned false")
			}
			if got := s.Snapshot().Cart[0].Quantity; got != tt.want {
				t.Fatalf("quantity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateCartQuantity_UnknownIDIsNoop(t *testing.T) {
	s, _, notes := newTestStore(t)
	if s.UpdateCartQuantity("nope", "5") {
		t.Fatalf("UpdateCartQuantity returned true for unknown id")
	}
	if len(s.Snapshot().Cart) != 0 || len(notes.notices) != 0 {
		t.Fatalf("unknown id changed state or posted a notice")
	}
}

func TestStepCartQuantity(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.AddToCart(shirt, 9)
	s.StepCartQuantity("1", 5)
	if got := s.Snapshot().Cart[0].Quantity; got != 10 {
		t.Fatalf("quantity = %d, want 10", got)
	}
	s.StepCartQuantity("1", -20)
	if got := s.Snapshot().Cart[0].Quantity; got != 1 {
		t.Fatalf("quantity = %d, want 1", got)
	}
}

func TestToggleWishlist_IsItsOwnInverse(t *testing.T) {
	s, _, notes := newTestStore(t)
	entry := WishlistEntry{ProductID: "3", Name: "Denim", Price: 7999, Category: "men"}

	if !s.ToggleWishlist(entry) {
		t.Fatalf("first toggle should add")
	}
	if !s.Snapshot().InWishlist("3") {
		t.Fatalf("product 3 not in wishlist after add")
	}
	if n := notes.last(t); n.Message != "Added to wishlist" {
		t.Fatalf("notice = %q", n.Message)
	}
	if s.ToggleWishlist(entry) {
		t.Fatalf("second toggle should remove")
	}
	if snap := s.Snapshot(); snap.InWishlist("3") || len(snap.Wishlist) != 0 {
		t.Fatalf("wishlist = %+v, want empty", snap.Wishlist)
	}
	if n := notes.last(t); n.Message != "Removed from wishlist" {
		t.Fatalf("notice = %q", n.Message)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name, email, password string
		ok                    bool
		notice                string
	}{
		{"filled", "a@b.c", "pw", true, "Login successful!"},
		{"missing email", "", "pw", false, "Please fill in all fields"},
		{"blank password", "a@b.c", "   ", false, "Please fill in all fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem, notes := newTestStore(t)
			if got := s.Login(tt.email, tt.password); got != tt.ok {
				t.Fatalf("Login = %v, want %v", got, tt.ok)
			}
			if n := notes.last(t); n.Message != tt.notice {
				t.Fatalf("notice = %q, want %q", n.Message, tt.notice)
			}
			snap := s.Snapshot()
			if snap.LoggedIn() != tt.ok {
				t.Fatalf("LoggedIn = %v, want %v", snap.LoggedIn(), tt.ok)
			}
			_, stored, _ := mem.Get(context.Background(), KeyUser)
			if stored != tt.ok {
				t.Fatalf("currentUser stored = %v, want %v", stored, tt.ok)
			}
			if tt.ok && (snap.User.Email != tt.email || snap.User.Name != "User") {
				t.Fatalf("session = %+v", snap.User)
			}
		})
	}
}

func TestLogin_DoesNotLogEmail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(storage.NewAdapter(storage.NewMemory(), nil), nil, logger)

	if !s.Login("ada@example.com", "pw") {
		t.Fatalf("Login failed")
	}
	out := buf.String()
	if !strings.Contains(out, "session started") {
		t.Fatalf("log = %q, want a session record", out)
	}
	if strings.Contains(out, "ada@example.com") {
		t.Fatalf("log leaks the email: %q", out)
	}
}

func TestSignupAndLogout(t *testing.T) {
	s, mem, notes := newTestStore(t)
	if s.Signup("Ada", "ada@example.com", "") {
		t.Fatalf("Signup without password succeeded")
	}
	if notes.last(t).Kind != notify.Error {
		t.Fatalf("missing field should post an error notice")
	}
	if !s.Signup("Ada", "ada@example.com", "secret") {
		t.Fatalf("Signup failed")
	}
	if got := s.Snapshot().User; got == nil || got.Name != "Ada" {
		t.Fatalf("session = %+v, want Ada", got)
	}
	if n := notes.last(t); n.Message != "Account created successfully!" {
		t.Fatalf("notice = %q", n.Message)
	}

	s.Logout()
	if s.Snapshot().LoggedIn() {
		t.Fatalf("still logged in after Logout")
	}
	if _, ok, _ := mem.Get(context.Background(), KeyUser); ok {
		t.Fatalf("currentUser key still stored after Logout")
	}
	if n := notes.last(t); n.Message != "Logged out successfully" {
		t.Fatalf("notice = %q", n.Message)
	}
}

func TestBeginCheckout_Preconditions(t *testing.T) {
	s, _, notes := newTestStore(t)

	if err := s.BeginCheckout(); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty cart: err = %v, want ErrEmptyCart", err)
	}
	if n := notes.last(t); n.Message != "Your cart is empty" || n.Kind != notify.Error {
		t.Fatalf("notice = %+v", n)
	}

	s.AddToCart(shirt, 2)
	if err := s.BeginCheckout(); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("no session: err = %v, want ErrAuthRequired", err)
	}
	if n := notes.last(t); n.Message != "Please login to checkout" {
		t.Fatalf("notice = %q", n.Message)
	}
	if snap := s.Snapshot(); len(snap.Cart) != 1 || snap.CheckoutPending {
		t.Fatalf("blocked checkout changed state: %+v", snap)
	}

	s.Login("a@b.c", "pw")
	if err := s.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	if !s.Snapshot().CheckoutPending {
		t.Fatalf("CheckoutPending = false after BeginCheckout")
	}
	if err := s.BeginCheckout(); !errors.Is(err, ErrCheckoutPending) {
		t.Fatalf("re-entry: err = %v, want ErrCheckoutPending", err)
	}
}

func TestCompleteCheckout(t *testing.T) {
	s, mem, notes := newTestStore(t)
	if _, ok := s.CompleteCheckout(); ok {
		t.Fatalf("CompleteCheckout without BeginCheckout succeeded")
	}

	s.AddToCart(Item{ProductID: "a", Name: "A", Price: 1000}, 2)
	s.AddToCart(Item{ProductID: "b", Name: "B", Price: 500}, 1)
	s.Login("a@b.c", "pw")
	if err := s.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}

	order, ok := s.CompleteCheckout()
	if !ok {
		t.Fatalf("CompleteCheckout returned false")
	}
	want := pricing.Breakdown{Subtotal: 2500, Tax: 250, Shipping: 599, Total: 3349}
	if order.Quote != want {
		t.Fatalf("quote = %+v, want %+v", order.Quote, want)
	}
	if order.ID != "order-1" || order.Status != OrderStatusProcessing || len(order.Lines) != 2 {
		t.Fatalf("order = %+v", order)
	}

	snap := s.Snapshot()
	if len(snap.Cart) != 0 || snap.CheckoutPending {
		t.Fatalf("state after checkout = %+v", snap)
	}
	if got := storedCart(t, mem); len(got) != 0 {
		t.Fatalf("persisted cart = %+v, want empty", got)
	}
	if n := notes.last(t); n.Message != "Order placed successfully!" {
		t.Fatalf("notice = %q", n.Message)
	}
	if _, ok := s.CompleteCheckout(); ok {
		t.Fatalf("second CompleteCheckout succeeded")
	}
}

func TestCompleteCheckout_CartEmptiedWhilePending(t *testing.T) {
	s, mem, notes := newTestStore(t)
	s.AddToCart(Item{ProductID: "1", Name: "Shirt", Price: 2999}, 1)
	s.Login("a@b.c", "pw")
	if err := s.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}

	s.RemoveFromCart("1")
	if order, ok := s.CompleteCheckout(); ok {
		t.Fatalf("CompleteCheckout placed an order for an empty cart: %+v", order)
	}
	if s.Snapshot().CheckoutPending {
		t.Fatalf("checkout still pending")
	}
	if n := notes.last(t); n.Message != "Your cart is empty" || n.Kind != notify.Error {
		t.Fatalf("notice = %+v", n)
	}
	if got := storedCart(t, mem); len(got) != 0 {
		t.Fatalf("persisted cart = %+v", got)
	}

	// A fresh checkout is possible once the cart is filled again.
	s.AddToCart(Item{ProductID: "1", Name: "Shirt", Price: 2999}, 1)
	if err := s.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout after abandoned checkout: %v", err)
	}
}

func TestSelection(t *testing.T) {
	s, _, notes := newTestStore(t)
	s.OpenProduct("1")
	s.SelectColor("blue")
	if s.AddSelectionToCart(shirt) {
		t.Fatalf("AddSelectionToCart without size succeeded")
	}
	if n := notes.last(t); n.Message != "Please select a size" {
		t.Fatalf("notice = %q", n.Message)
	}

	s.SelectSize("M")
	if got := s.SetSelectionQuantity("x"); got != 1 {
		t.Fatalf("SetSelectionQuantity(x) = %d, want 1", got)
	}
	if got := s.StepSelectionQuantity(20); got != 10 {
		t.Fatalf("StepSelectionQuantity = %d, want 10", got)
	}
	s.StepSelectionQuantity(-7)
	if !s.AddSelectionToCart(shirt) {
		t.Fatalf("AddSelectionToCart failed")
	}
	line := s.Snapshot().Cart[0]
	if line.Quantity != 3 || line.Size != "M" || line.Color != "blue" {
		t.Fatalf("line = %+v, want qty 3 size M color blue", line)
	}

	s.OpenProduct("2")
	if sel := s.Snapshot().Selection; sel.Size != "" || sel.Color != "" || sel.Quantity != 1 || sel.ProductID != "2" {
		t.Fatalf("selection not reset: %+v", sel)
	}
}

func TestHydrate_RoundTrip(t *testing.T) {
	mem := storage.NewMemory()
	first := New(storage.NewAdapter(mem, nil), nil, nil)
	first.AddToCart(shirt, 4)
	first.ToggleWishlist(WishlistEntry{ProductID: "9", Name: "Tee"})
	first.Login("a@b.c", "pw")
	first.SetCategory("men")

	second := New(storage.NewAdapter(mem, nil), nil, nil)
	if err := second.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	snap := second.Snapshot()
	if len(snap.Cart) != 1 || snap.Cart[0].Quantity != 4 || snap.Cart[0].UnitPrice != 1000 {
		t.Fatalf("cart = %+v", snap.Cart)
	}
	if !snap.InWishlist("9") || snap.User == nil || snap.User.Email != "a@b.c" {
		t.Fatalf("hydrated = %+v", snap)
	}
	if snap.Category != "" {
		t.Fatalf("category persisted: %q", snap.Category)
	}
}

func TestHydrate_MalformedAndDirtyData(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	_ = mem.Set(ctx, KeyCart, []byte(`[{"id":"a","name":"A","price":1,"quantity":40},{"id":"a","name":"A","price":1,"quantity":3},{"id":"b","name":"B","price":2,"quantity":-1}]`))
	_ = mem.Set(ctx, KeyWishlist, []byte(`{not json`))
	_ = mem.Set(ctx, KeyUser, []byte(`null`))

	s := New(storage.NewAdapter(mem, nil), nil, nil)
	if err := s.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Cart) != 2 || snap.Cart[0].Quantity != 10 || snap.Cart[1].Quantity != 1 {
		t.Fatalf("cart = %+v, want merged and clamped", snap.Cart)
	}
	if len(snap.Wishlist) != 0 || snap.User != nil {
		t.Fatalf("malformed data should hydrate empty: %+v", snap)
	}
}

func TestHydrate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(nil, nil, nil).Hydrate(ctx); err == nil {
		t.Fatalf("Hydrate with canceled context returned nil")
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.AddToCart(shirt, 1)
	s.Login("a@b.c", "pw")

	snap := s.Snapshot()
	snap.Cart[0].Quantity = 9
	snap.User.Email = "x"

	again := s.Snapshot()
	if again.Cart[0].Quantity != 1 || again.User.Email != "a@b.c" {
		t.Fatalf("Snapshot shares memory with the store: %+v", again)
	}
}

func TestNilCollaborators(t *testing.T) {
	s := New(nil, nil, nil)
	s.AddToCart(shirt, 1)
	s.ToggleWishlist(WishlistEntry{ProductID: "1"})
	s.Login("a@b.c", "pw")
	s.Logout()
	if got := s.Snapshot().CartCount(); got != 1 {
		t.Fatalf("CartCount = %d, want 1", got)
	}
}
