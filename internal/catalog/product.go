// Package catalog provides a read-only client for the upstream product
// catalog and helpers for filtering and sorting its results.
package catalog

import "sort"

// Product represents a catalog item as served by the upstream API.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Rating holds the upstream aggregate review score for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Sort orders accepted by Filter. SortDefault keeps the upstream order.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Filter describes the product list query: an optional category set, an
// optional price range and a sort order.
type Filter struct {
	Categories []string
	MinPrice   float64
	MaxPrice   float64 // 0 means unbounded
	Sort       string
}

// Apply filters and sorts products without mutating the input slice.
func (f Filter) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
			continue
		}
		if p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}
	return filtered
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
