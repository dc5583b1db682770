package view

import (
	"slices"
	"strings"
	"testing"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/pricing"
	"github.com/five82/storefront/internal/state"
)

func defaultProducts(t *testing.T) []catalog.Product {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return c.Products()
}

func ids(v GridView) []string {
	out := make([]string, 0, len(v.Cards))
	for _, c := range v.Cards {
		out = append(out, c.Product.ID)
	}
	return out
}

func TestBadges(t *testing.T) {
	var snap state.Snapshot
	if CartBadge(snap) != "" || WishlistBadge(snap) != "" {
		t.Fatalf("empty badges = %q/%q, want blank", CartBadge(snap), WishlistBadge(snap))
	}
	snap.Cart = []state.CartLine{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 3}}
	snap.Wishlist = []state.WishlistEntry{{ProductID: "a"}}
	if got := CartBadge(snap); got != "(5)" {
		t.Fatalf("CartBadge = %q, want (5)", got)
	}
	if got := WishlistBadge(snap); got != "(1)" {
		t.Fatalf("WishlistBadge = %q, want (1)", got)
	}
}

func TestCart(t *testing.T) {
	empty := Cart(state.Snapshot{})
	if !empty.Empty || empty.Message != EmptyCartMessage || empty.Quote != (pricing.Breakdown{}) {
		t.Fatalf("empty cart panel = %+v", empty)
	}

	snap := state.Snapshot{Cart: []state.CartLine{
		{ProductID: "a", Name: "A", UnitPrice: 1000, Quantity: 2, Size: "M", Color: "red"},
		{ProductID: "b", Name: "B", UnitPrice: 500, Quantity: 10},
	}}
	panel := Cart(snap)
	if panel.Empty || len(panel.Lines) != 2 {
		t.Fatalf("panel = %+v", panel)
	}
	want := pricing.Breakdown{Subtotal: 7000, Tax: 700, Shipping: 599, Total: 8299}
	if panel.Quote != want {
		t.Fatalf("quote = %+v, want %+v", panel.Quote, want)
	}
	first := panel.Lines[0]
	if first.Options != "Size: M, Color: red" || first.Total != "$20.00" || !first.CanDec || !first.CanInc {
		t.Fatalf("first line = %+v", first)
	}
	if second := panel.Lines[1]; second.Options != "" || second.CanInc {
		t.Fatalf("second line = %+v", second)
	}
}

func TestWishlist(t *testing.T) {
	if got := Wishlist(state.Snapshot{}); !got.Empty {
		t.Fatalf("empty wishlist panel = %+v", got)
	}
	snap := state.Snapshot{
		Cart:     []state.CartLine{{ProductID: "a", Quantity: 1}},
		Wishlist: []state.WishlistEntry{{ProductID: "a", Name: "A", Price: 1999}, {ProductID: "b", Name: "B"}},
	}
	panel := Wishlist(snap)
	if len(panel.Entries) != 2 || !panel.Entries[0].InCart || panel.Entries[1].InCart {
		t.Fatalf("entries = %+v", panel.Entries)
	}
	if panel.Entries[0].Price != "$19.99" {
		t.Fatalf("price = %q", panel.Entries[0].Price)
	}
}

func TestUserMenu(t *testing.T) {
	out := UserMenu(state.Snapshot{})
	if out.LoggedIn || out.Label != "Account" || !slices.Equal(out.Items, []string{MenuLogin}) {
		t.Fatalf("logged-out menu = %+v", out)
	}
	in := UserMenu(state.Snapshot{User: &state.UserSession{Email: "a@b.c", Name: "Ada"}})
	if !in.LoggedIn || in.Label != "Ada" || !slices.Equal(in.Items, []string{MenuProfile, MenuOrders, MenuLogout}) {
		t.Fatalf("logged-in menu = %+v", in)
	}
}

func TestGrid_SearchShirtIsIdempotent(t *testing.T) {
	products := defaultProducts(t)
	q := Query{Search: "  SHIRT "}
	first := Grid(products, q, state.Snapshot{})
	if len(first.Cards) == 0 {
		t.Fatalf("no products matched shirt")
	}
	for _, c := range first.Cards {
		p := c.Product
		hay := strings.ToLower(strings.Join([]string{p.Name, p.Category, p.Brand, p.Title}, "|"))
		if !strings.Contains(hay, "shirt") {
			t.Fatalf("product %s visible without matching shirt", p.ID)
		}
	}
	hidden := 0
	for _, p := range products {
		if !Matches(p, "shirt") {
			hidden++
		}
	}
	if len(first.Cards)+hidden != len(products) {
		t.Fatalf("visible %d + hidden %d != %d", len(first.Cards), hidden, len(products))
	}

	visible := make([]catalog.Product, 0, len(first.Cards))
	for _, c := range first.Cards {
		visible = append(visible, c.Product)
	}
	again := Grid(visible, q, state.Snapshot{})
	if !slices.Equal(ids(first), ids(again)) {
		t.Fatalf("search not idempotent: %v then %v", ids(first), ids(again))
	}
}

func TestGrid_NoMatches(t *testing.T) {
	products := defaultProducts(t)
	if v := Grid(products, Query{Search: "zzzz"}, state.Snapshot{}); !v.NoMatches || len(v.Cards) != 0 {
		t.Fatalf("grid = %+v, want NoMatches", v)
	}
	if v := Grid(products, Query{Search: "   "}, state.Snapshot{}); v.NoMatches || len(v.Cards) != len(products) {
		t.Fatalf("blank search should show all, got %d cards", len(v.Cards))
	}
}

func TestGrid_PriceSortsAreReversed(t *testing.T) {
	products := defaultProducts(t)
	low := Grid(products, Query{Sort: SortPriceLow}, state.Snapshot{})
	high := Grid(products, Query{Sort: SortPriceHigh}, state.Snapshot{})

	prices := func(v GridView) []pricing.Money {
		out := make([]pricing.Money, 0, len(v.Cards))
		for _, c := range v.Cards {
			out = append(out, c.Product.Price)
		}
		return out
	}
	lp, hp := prices(low), prices(high)
	slices.Reverse(hp)
	if !slices.Equal(lp, hp) {
		t.Fatalf("price-low %v is not price-high reversed %v", lp, hp)
	}
	if !slices.IsSorted(lp) {
		t.Fatalf("price-low not ascending: %v", lp)
	}
}

func TestGrid_SortsBySeqAndRating(t *testing.T) {
	products := []catalog.Product{
		{ID: "2", Seq: 2, Rating: 4.0},
		{ID: "10", Seq: 10, Rating: 4.9},
		{ID: "1", Seq: 1, Rating: 3.5},
	}
	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortDefault, []string{"1", "2", "10"}},
		{SortNewest, []string{"10", "2", "1"}},
		{SortRating, []string{"10", "2", "1"}},
		{"bogus", []string{"1", "2", "10"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := ids(Grid(products, Query{Sort: tt.key}, state.Snapshot{}))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrid_FiltersCompose(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Seq: 1, Price: 1000, Color: "red", Size: "M", Brand: "A", Category: "men"},
		{ID: "2", Seq: 2, Price: 3000, Color: "red", Size: "L", Brand: "B", Category: "men"},
		{ID: "3", Seq: 3, Price: 2000, Color: "blue", Size: "M", Brand: "A", Category: "women"},
		{ID: "4", Seq: 4, Price: 500, Color: "red", Size: "M", Brand: "B", Category: "women"},
	}
	tests := []struct {
		name     string
		q        Query
		category string
		want     []string
	}{
		{"none", Query{}, "", []string{"1", "2", "3", "4"}},
		{"max price", Query{Filters: Filters{MaxPrice: 2000}}, "", []string{"1", "3", "4"}},
		{"color and size", Query{Filters: Filters{Colors: []string{"red"}, Sizes: []string{"M"}}}, "", []string{"1", "4"}},
		{"brand and category", Query{Filters: Filters{Brands: []string{"B"}}}, "women", []string{"4"}},
		{"filters then sort", Query{Filters: Filters{Colors: []string{"red"}}, Sort: SortPriceHigh}, "", []string{"2", "1", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Grid(products, tt.q, state.Snapshot{Category: tt.category}))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrid_CardsReflectMembership(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Seq: 1, Price: 1000, OldPrice: 1500},
		{ID: "2", Seq: 2, Price: 1000},
	}
	snap := state.Snapshot{
		Wishlist: []state.WishlistEntry{{ProductID: "2"}},
		Cart:     []state.CartLine{{ProductID: "1", Quantity: 3}},
	}
	v := Grid(products, Query{}, snap)
	if v.Cards[0].Wishlisted || !v.Cards[1].Wishlisted {
		t.Fatalf("wishlist flags = %v/%v", v.Cards[0].Wishlisted, v.Cards[1].Wishlisted)
	}
	if v.Cards[0].OldPrice != "$15.00" || v.Cards[1].OldPrice != "" || v.Cards[0].InCart != 3 {
		t.Fatalf("cards = %+v", v.Cards)
	}
}

func TestSortKey_NextCycles(t *testing.T) {
	k := SortDefault
	for range SortKeys {
		k = k.Next()
	}
	if k != SortDefault {
		t.Fatalf("cycling all keys ended at %q", k)
	}
	if SortRating.Label() != "Top Rated" {
		t.Fatalf("label = %q", SortRating.Label())
	}
}
