// Package feed normalizes parsed shopping-feed documents into canonical
// products: it locates the item collection across known schema variants, maps
// raw item nodes to products, and parses price strings.
package feed

import (
	xmlparser "github.com/ecofinds/catalogue-service/internal/parsers/xml"
)

// variant describes one known feed shape and where its item list lives.
// Some shapes have more than one plausible root path (RSS documents may or
// may not surface the <rss> wrapper element).
type variant struct {
	Name  string
	Paths []string
}

// variants are tried in fixed priority order; the first path that resolves
// wins and later variants are never consulted.
var variants = []variant{
	{Name: "rss", Paths: []string{"rss.channel.item", "channel.item"}},
	{Name: "atom", Paths: []string{"feed.entry"}},
	{Name: "products", Paths: []string{"products.product"}},
	{Name: "productfeed", Paths: []string{"productfeed.product"}},
}

// ExtractItems locates the repeated product-like item collection in a parsed
// document tree and returns it as a uniform slice. A single item node is
// wrapped as a one-element slice. An unrecognized document yields an empty
// slice, not an error: it simply produces zero products downstream.
func ExtractItems(doc map[string]interface{}) []interface{} {
	for _, v := range variants {
		for _, path := range v.Paths {
			if value, ok := xmlparser.Lookup(doc, path); ok {
				return xmlparser.AsSlice(value)
			}
		}
	}
	return nil
}
