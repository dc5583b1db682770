package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/pricing"
	"github.com/five82/storefront/internal/state"
)

// NoResultsMessage is posted when a search hides every product.
const NoResultsMessage = "No products found matching your search"

// SortKey selects the grid order.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// SortKeys lists the orders in the sequence the UI cycles through them.
var SortKeys = []SortKey{SortDefault, SortPriceLow, SortPriceHigh, SortRating, SortNewest}

// Label is the human name of the sort order.
func (k SortKey) Label() string {
	switch k {
	case SortPriceLow:
		return "Price: Low to High"
	case SortPriceHigh:
		return "Price: High to Low"
	case SortRating:
		return "Top Rated"
	case SortNewest:
		return "Newest"
	default:
		return "Featured"
	}
}

// Next returns the order after k, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// Filters narrow the grid. Zero values impose no constraint.
type Filters struct {
	MaxPrice pricing.Money
	Colors   []string
	Sizes    []string
	Brands   []string
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.MaxPrice > 0 || len(f.Colors) > 0 || len(f.Sizes) > 0 || len(f.Brands) > 0
}

// Query is everything that decides which products show and in what order.
// The category comes from the snapshot.
type Query struct {
	Search  string
	Filters Filters
	Sort    SortKey
}

// Card is one visible product.
type Card struct {
	Product    catalog.Product
	Price      string
	OldPrice   string // "" when not discounted
	Wishlisted bool
	InCart     int // quantity already in the cart
}

// GridView is the visible, ordered product set.
type GridView struct {
	Cards []Card
	Total int // products before search and filters
	// NoMatches is set when a non-blank search hid every product.
	NoMatches bool
}

// Grid applies search, category, filters and sort to products.
func Grid(products []catalog.Product, q Query, snap state.Snapshot) GridView {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	preds := []func(catalog.Product) bool{
		matchSearch(term),
		matchCategory(snap.Category),
		matchMaxPrice(q.Filters.MaxPrice),
		matchAny(q.Filters.Colors, func(p catalog.Product) string { return p.Color }),
		matchAny(q.Filters.Sizes, func(p catalog.Product) string { return p.Size }),
		matchAny(q.Filters.Brands, func(p catalog.Product) string { return p.Brand }),
	}

	visible := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if matchAll(p, preds) {
			visible = append(visible, p)
		}
	}
	Sort(visible, q.Sort)

	inCart := make(map[string]int, len(snap.Cart))
	for _, l := range snap.Cart {
		inCart[l.ProductID] = l.Quantity
	}
	view := GridView{Total: len(products), Cards: make([]Card, 0, len(visible))}
	for _, p := range visible {
		c := Card{
			Product:    p,
			Price:      p.Price.String(),
			Wishlisted: snap.InWishlist(p.ID),
			InCart:     inCart[p.ID],
		}
		if p.OldPrice > p.Price {
			c.OldPrice = p.OldPrice.String()
		}
		view.Cards = append(view.Cards, c)
	}
	view.NoMatches = term != "" && len(view.Cards) == 0
	return view
}

func matchAll(p catalog.Product, preds []func(catalog.Product) bool) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

// Matches reports whether p contains term in its name, category, brand or
// title. A blank term matches everything.
func Matches(p catalog.Product, term string) bool {
	return matchSearch(strings.ToLower(strings.TrimSpace(term)))(p)
}

func matchSearch(term string) func(catalog.Product) bool {
	return func(p catalog.Product) bool {
		if term == "" {
			return true
		}
		for _, field := range []string{p.Name, p.Category, p.Brand, p.Title} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}
}

func matchCategory(category string) func(catalog.Product) bool {
	return func(p catalog.Product) bool {
		return category == "" || strings.EqualFold(p.Category, category)
	}
}

func matchMaxPrice(limit pricing.Money) func(catalog.Product) bool {
	return func(p catalog.Product) bool {
		return limit <= 0 || p.Price <= limit
	}
}

func matchAny(allowed []string, field func(catalog.Product) string) func(catalog.Product) bool {
	return func(p catalog.Product) bool {
		return len(allowed) == 0 || slices.Contains(allowed, field(p))
	}
}

// Sort orders products in place by key. The sort is stable.
func Sort(products []catalog.Product, key SortKey) {
	var order func(a, b catalog.Product) int
	switch key {
	case SortPriceLow:
		order = func(a, b catalog.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		order = func(a, b catalog.Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortRating:
		order = func(a, b catalog.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortNewest:
		order = func(a, b catalog.Product) int { return cmp.Compare(b.Seq, a.Seq) }
	default:
		order = func(a, b catalog.Product) int { return cmp.Compare(a.Seq, b.Seq) }
	}
	slices.SortStableFunc(products, order)
}
