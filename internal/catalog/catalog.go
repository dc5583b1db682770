// Package catalog loads the products the storefront sells. Products are
// addressed by ID and expose the static attributes search, filters and sort
// work on.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/storefront/internal/pricing"
)

//go:embed default.toml
var defaultCatalog []byte

// Product is one sellable item.
type Product struct {
	ID       string
	Name     string
	Title    string // headline shown on the card; defaults to Name
	Price    pricing.Money
	OldPrice pricing.Money // zero when the product is not discounted
	Category string
	Brand    string
	Image    string
	Color    string
	Size     string
	Rating   float64

	// Seq orders products for the default and newest sorts: the numeric ID
	// when it parses, otherwise the highest numeric ID plus the load position.
	Seq int
}

// Catalog is the loaded product set plus the quick-view choices.
type Catalog struct {
	products []Product
	byID     map[string]int
	sizes    []string
	colors   []string
}

type rawProduct struct {
	ID       string  `toml:"id" yaml:"id" json:"id"`
	Name     string  `toml:"name" yaml:"name" json:"name"`
	Title    string  `toml:"title" yaml:"title" json:"title"`
	Price    float64 `toml:"price" yaml:"price" json:"price"`
	OldPrice float64 `toml:"old_price" yaml:"old_price" json:"old_price"`
	Category string  `toml:"category" yaml:"category" json:"category"`
	Brand    string  `toml:"brand" yaml:"brand" json:"brand"`
	Image    string  `toml:"image" yaml:"image" json:"image"`
	Color    string  `toml:"color" yaml:"color" json:"color"`
	Size     string  `toml:"size" yaml:"size" json:"size"`
	Rating   float64 `toml:"rating" yaml:"rating" json:"rating"`
}

type rawCatalog struct {
	Sizes    []string     `toml:"sizes" yaml:"sizes" json:"sizes"`
	Colors   []string     `toml:"colors" yaml:"colors" json:"colors"`
	Products []rawProduct `toml:"products" yaml:"products" json:"products"`
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, ".toml")
}

// Load reads the catalog at path. An empty path loads the bundled catalog.
// The format follows the extension: .toml, .yaml/.yml or .json.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a catalog document in the format named by ext.
func Parse(data []byte, ext string) (*Catalog, error) {
	var raw rawCatalog
	var err error
	switch strings.ToLower(ext) {
	case ".toml", "":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return build(raw)
}

func build(raw rawCatalog) (*Catalog, error) {
	if len(raw.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}
	c := &Catalog{
		products: make([]Product, 0, len(raw.Products)),
		byID:     make(map[string]int, len(raw.Products)),
		sizes:    trimAll(raw.Sizes),
		colors:   trimAll(raw.Colors),
	}
	// Non-numeric IDs are ordered after every numeric one, by file position.
	highest := 0
	for _, rp := range raw.Products {
		if n, err := strconv.Atoi(strings.TrimSpace(rp.ID)); err == nil {
			highest = max(highest, n)
		}
	}
	for i, rp := range raw.Products {
		id := strings.TrimSpace(rp.ID)
		if id == "" {
			return nil, fmt.Errorf("product %d: id is required", i+1)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("product %q: duplicate id", id)
		}
		name := strings.TrimSpace(rp.Name)
		if name == "" {
			return nil, fmt.Errorf("product %q: name is required", id)
		}
		if rp.Price < 0 || rp.OldPrice < 0 {
			return nil, fmt.Errorf("product %q: price must be non-negative", id)
		}
		title := strings.TrimSpace(rp.Title)
		if title == "" {
			title = name
		}
		seq := highest + i + 1
		if n, err := strconv.Atoi(id); err == nil {
			seq = n
		}
		c.byID[id] = len(c.products)
		c.products = append(c.products, Product{
			ID:       id,
			Name:     name,
			Title:    title,
			Price:    pricing.FromFloat(rp.Price),
			OldPrice: pricing.FromFloat(rp.OldPrice),
			Category: strings.TrimSpace(rp.Category),
			Brand:    strings.TrimSpace(rp.Brand),
			Image:    strings.TrimSpace(rp.Image),
			Color:    strings.TrimSpace(rp.Color),
			Size:     strings.TrimSpace(rp.Size),
			Rating:   rp.Rating,
			Seq:      seq,
		})
	}
	return c, nil
}

// Products returns the products in load order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Sizes returns the quick-view size choices.
func (c *Catalog) Sizes() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.sizes...)
}

// Colors returns the quick-view color choices.
func (c *Catalog) Colors() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.colors...)
}

// Categories returns distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	return c.distinct(func(p Product) string { return p.Category })
}

// Brands returns distinct brands, sorted.
func (c *Catalog) Brands() []string {
	out := c.distinct(func(p Product) string { return p.Brand })
	sort.Strings(out)
	return out
}

// FilterColors returns distinct product colors, sorted.
func (c *Catalog) FilterColors() []string {
	out := c.distinct(func(p Product) string { return p.Color })
	sort.Strings(out)
	return out
}

// FilterSizes returns distinct product sizes in first-seen order.
func (c *Catalog) FilterSizes() []string {
	return c.distinct(func(p Product) string { return p.Size })
}

// MaxPrice returns the highest product price.
func (c *Catalog) MaxPrice() pricing.Money {
	var highest pricing.Money
	if c == nil {
		return highest
	}
	for _, p := range c.products {
		if p.Price > highest {
			highest = p.Price
		}
	}
	return highest
}

func (c *Catalog) distinct(field func(Product) string) []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		v := field(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
