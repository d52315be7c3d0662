// Package store is the durable product/feed registry behind the import
// pipeline and the query engine. Two implementations exist: a Postgres-backed
// catalogue and a read-only in-memory fallback used when no durable store is
// configured. The choice is made once at startup and injected.
package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
)

// ErrReadOnly is returned by write operations on the in-memory fallback
// catalogue; imports cannot run without a durable store.
var ErrReadOnly = errors.New("catalogue store is read-only")

// Filters holds the raw, caller-supplied query filter values. An absent or
// unparsable value means the filter is not applied — never a user-facing
// error.
type Filters struct {
	Q        string `json:"q"`
	Brand    string `json:"brand"`
	Tag      string `json:"tag"`
	MinPrice string `json:"minPrice"`
	MaxPrice string `json:"maxPrice"`
}

// Catalogue is the capability interface over the product/feed registry.
type Catalogue interface {
	// UpsertProduct inserts the product or overwrites all mutable fields of
	// an existing row with the same id; absent optional fields overwrite
	// with null. importedAt is set to now on every successful call.
	UpsertProduct(ctx context.Context, p catalogue.Product, sourceFeed string) error

	// RegisterFeed records a feed URL at most once; re-registration is a
	// no-op, not an error.
	RegisterFeed(ctx context.Context, url string) error

	// QueryProducts returns the products satisfying the conjunction of all
	// specified filters, most recently imported first.
	QueryProducts(ctx context.Context, f Filters) ([]catalogue.Product, error)
}

// priceBound parses an inclusive price bound. Unparsable input (including
// empty) yields nil, which callers treat as bound-not-specified.
func priceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
