// Package catalog holds the static product list the storefront sells.
// Products are loaded once at startup, either from the built-in TechShop
// line-up or from a YAML override file, and never change afterwards.
package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Product is one purchasable catalog entry.
type Product struct {
	ID          int
	Name        string
	Price       decimal.Decimal
	Description string
	Icon        string
}

// Catalog is an immutable, ordered product collection with id lookup.
type Catalog struct {
	products []Product
	byID     map[int]Product
}

// New builds a catalog from the given products, validating every entry.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]Product, len(products)),
	}
	for i, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog: product[%d]: id must be > 0", i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("catalog: product[%d]: name is required", i)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("catalog: product %d: price must be >= 0", p.ID)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c, nil
}

// Load reads a catalog override file: a YAML list of products.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var raw []struct {
		ID          int     `yaml:"id"`
		Name        string  `yaml:"name"`
		Price       float64 `yaml:"price"`
		Description string  `yaml:"description"`
		Icon        string  `yaml:"icon"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	products := make([]Product, 0, len(raw))
	for _, entry := range raw {
		products = append(products, Product{
			ID:          entry.ID,
			Name:        entry.Name,
			Price:       decimal.NewFromFloat(entry.Price),
			Description: entry.Description,
			Icon:        entry.Icon,
		})
	}
	return New(products)
}

// List returns the products in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks up a product by id.
func (c *Catalog) Get(id int) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
