package store

import (
	"context"
	"strings"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
)

// Memory is the read-only fallback catalogue used when no durable store is
// configured. It serves a fixed sample set so the query engine has something
// to answer with; imports cannot run against it.
type Memory struct {
	products []catalogue.Product
}

// NewMemory creates the fallback catalogue with the fixed sample set.
func NewMemory() *Memory {
	return &Memory{products: sampleProducts()}
}

// UpsertProduct always fails: the fallback set is never mutated by imports.
func (s *Memory) UpsertProduct(ctx context.Context, p catalogue.Product, sourceFeed string) error {
	return ErrReadOnly
}

// RegisterFeed always fails on the read-only fallback.
func (s *Memory) RegisterFeed(ctx context.Context, url string) error {
	return ErrReadOnly
}

// QueryProducts filters the fixed sample set in-process. No result cap: the
// set is bounded by its own small size.
func (s *Memory) QueryProducts(ctx context.Context, f Filters) ([]catalogue.Product, error) {
	matched := []catalogue.Product{}
	for _, p := range s.products {
		if matchesFilters(p, f) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// matchesFilters applies the conjunction of all specified filters to one
// product, with the same semantics as the durable query path.
func matchesFilters(p catalogue.Product, f Filters) bool {
	if f.Q != "" {
		q := strings.ToLower(f.Q)
		title := strings.ToLower(p.Title)
		brand := ""
		if p.Brand != nil {
			brand = strings.ToLower(*p.Brand)
		}
		if !strings.Contains(title, q) && !strings.Contains(brand, q) {
			return false
		}
	}

	if f.Brand != "" {
		if p.Brand == nil || !strings.Contains(strings.ToLower(*p.Brand), strings.ToLower(f.Brand)) {
			return false
		}
	}

	if f.Tag != "" {
		found := false
		for _, t := range p.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if min := priceBound(f.MinPrice); min != nil {
		if p.Price == nil || *p.Price < *min {
			return false
		}
	}

	if max := priceBound(f.MaxPrice); max != nil {
		if p.Price == nil || *p.Price > *max {
			return false
		}
	}

	return true
}

func sampleProducts() []catalogue.Product {
	return []catalogue.Product{
		{
			ID:       "p1",
			Title:    "Upcycled denim tote bag",
			Price:    floatPtr(24.99),
			Currency: strPtr("EUR"),
			Brand:    strPtr("EcoStitch"),
			Tags:     []string{catalogue.TagUpcycled, catalogue.TagHandmade},
			URL:      "https://example.com/product/p1",
			Image:    strPtr("https://via.placeholder.com/600x600.png?text=Upcycled+Tote"),
		},
		{
			ID:       "p2",
			Title:    "Recycled glass water bottle",
			Price:    floatPtr(18.5),
			Currency: strPtr("EUR"),
			Brand:    strPtr("GreenSip"),
			Tags:     []string{catalogue.TagRecycled},
			URL:      "https://example.com/product/p2",
			Image:    strPtr("https://via.placeholder.com/600x600.png?text=Recycled+Bottle"),
		},
	}
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
