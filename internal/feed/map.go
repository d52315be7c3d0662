package feed

import (
	"fmt"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
	xmlparser "github.com/ecofinds/catalogue-service/internal/parsers/xml"
	"github.com/ecofinds/catalogue-service/internal/tags"
)

// Candidate key lists per canonical field. Google Merchant feeds namespace
// their fields with g:, generic feeds use bare names; both are tried in order.
var (
	titleKeys      = []string{"title", "g:title"}
	urlKeys        = []string{"link", "link.@_href", "url"}
	idKeys         = []string{"g:id", "id"}
	brandKeys      = []string{"g:brand", "brand"}
	imageKeys      = []string{"g:image_link", "image_link", "image"}
	extraImageKeys = []string{"g:additional_image_link", "additional_image_link"}
	priceKeys      = []string{"g:price", "price"}
)

// MapItem maps one raw item node to a canonical Product. Items missing a
// title or url are dropped (nil return) rather than reported: downstream gets
// a shorter product list, never a hole. index feeds the feed-{index} id
// fallback and is the item's zero-based position in the extracted sequence.
func MapItem(item interface{}, index int) *catalogue.Product {
	node, ok := item.(map[string]interface{})
	if !ok {
		return nil
	}

	title, ok := firstString(node, titleKeys)
	if !ok {
		return nil
	}
	url, ok := firstString(node, urlKeys)
	if !ok {
		return nil
	}

	id, ok := firstString(node, idKeys)
	if !ok {
		id = fmt.Sprintf("feed-%d", index)
	}

	product := &catalogue.Product{
		ID:    id,
		Title: title,
		URL:   url,
	}

	if brand, ok := firstString(node, brandKeys); ok {
		product.Brand = &brand
	}

	if image, ok := firstString(node, imageKeys); ok {
		product.Image = &image
	} else if image, ok := firstString(node, extraImageKeys); ok {
		product.Image = &image
	}

	if raw, ok := firstString(node, priceKeys); ok {
		product.Price, product.Currency = ParsePrice(raw)
	}

	classifyInput := title
	if product.Brand != nil {
		classifyInput = title + " " + *product.Brand
	}
	product.Tags = tags.Classify(classifyInput)
	if product.Tags == nil {
		product.Tags = []string{}
	}

	return product
}

// MapItems maps a full extracted sequence, compacting dropped items. The
// returned count of drops feeds metrics only; drops are not errors.
func MapItems(items []interface{}) (products []catalogue.Product, dropped int) {
	products = make([]catalogue.Product, 0, len(items))
	for i, item := range items {
		p := MapItem(item, i)
		if p == nil {
			dropped++
			continue
		}
		products = append(products, *p)
	}
	return products, dropped
}

func firstString(node map[string]interface{}, keys []string) (string, bool) {
	for _, key := range keys {
		if value, ok := xmlparser.Lookup(node, key); ok {
			if s, ok := xmlparser.Text(value); ok {
				return s, true
			}
		}
	}
	return "", false
}
