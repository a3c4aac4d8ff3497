// Package products holds the static product catalog the storefront sells
// from. The catalog is reference data compiled into the binary; carts,
// orders, and reviews refer to products by their numeric id.
package products

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
)

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CategoryID    int             `json:"categoryId"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	EcoTag        string          `json:"ecoTag"`
	InStock       bool            `json:"inStock"`
	Rating        float64         `json:"rating"`
	Features      []string        `json:"features"`
}

// Catalog is a read-only product lookup service.
type Catalog interface {
	List() []Product
	GetByID(id int) (Product, error)
	ListByCategory(categoryID int) []Product
	Featured() []Product
	Categories() []Category
}

type catalog struct {
	products   []Product
	categories []Category
	byID       map[int]Product
}

// NewCatalog builds the catalog from the compiled-in seed data.
func NewCatalog() Catalog {
	byID := make(map[int]Product, len(seedProducts))
	for _, p := range seedProducts {
		byID[p.ID] = p
	}
	return &catalog{
		products:   seedProducts,
		categories: seedCategories,
		byID:       byID,
	}
}

func (c *catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *catalog) GetByID(id int) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
	}
	return p, nil
}

func (c *catalog) ListByCategory(categoryID int) []Product {
	var out []Product
	for _, p := range c.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Featured returns the first four products, matching the storefront home page.
func (c *catalog) Featured() []Product {
	n := 4
	if len(c.products) < n {
		n = len(c.products)
	}
	out := make([]Product, n)
	copy(out, c.products[:n])
	return out
}

func (c *catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}
