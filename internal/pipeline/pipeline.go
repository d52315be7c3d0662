// Package pipeline executes an import run: fetch a feed, parse it into a
// generic tree, extract and map its items, and upsert the resulting products
// into the catalogue. One run per feed URL, strictly sequential.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
	"github.com/ecofinds/catalogue-service/internal/feed"
	"github.com/ecofinds/catalogue-service/internal/fetch"
	"github.com/ecofinds/catalogue-service/internal/parsers/charset"
	xmlparser "github.com/ecofinds/catalogue-service/internal/parsers/xml"
	"github.com/ecofinds/catalogue-service/internal/store"
)

// Result is what a successful import run reports back.
type Result struct {
	FeedURL  string              `json:"feedUrl"`
	Count    int                 `json:"count"`
	Products []catalogue.Product `json:"products"`
}

// PersistError wraps a persistence failure partway through a run. Products
// upserted before the failure stay written; the run as a whole still fails.
type PersistError struct {
	Op  string // "register_feed" or "upsert_product"
	Key string // feed URL or product id
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persistence failed (%s %s): %v", e.Op, e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Importer runs the import pipeline against an injected catalogue.
type Importer struct {
	store  store.Catalogue
	client *fetch.Client
	logger zerolog.Logger
}

// NewImporter wires an importer with its collaborators.
func NewImporter(cat store.Catalogue, client *fetch.Client, logger zerolog.Logger) *Importer {
	return &Importer{
		store:  cat,
		client: client,
		logger: logger,
	}
}

// Run executes the full pipeline for one feed URL. Run-level failures
// (fetch, parse, persistence) abort and propagate; item-level problems only
// shrink the product list.
func (imp *Importer) Run(ctx context.Context, feedURL string) (*Result, error) {
	start := time.Now()

	result, err := imp.run(ctx, feedURL)

	importDuration.Observe(time.Since(start).Seconds())
	importsTotal.WithLabelValues(outcomeLabel(err)).Inc()

	return result, err
}

func (imp *Importer) run(ctx context.Context, feedURL string) (*Result, error) {
	logger := imp.logger.With().Str("feed", feedURL).Logger()
	logger.Info().Msg("Starting import run")

	raw, err := imp.client.FetchFeed(ctx, feedURL)
	if err != nil {
		logger.Error().Err(err).Msg("Feed fetch failed")
		return nil, err
	}

	body, err := charset.DecodeAuto(raw)
	if err != nil {
		return nil, &xmlparser.ParseError{Err: err}
	}

	doc, err := xmlparser.Parse(body)
	if err != nil {
		logger.Error().Err(err).Msg("Feed parse failed")
		return nil, err
	}

	items := feed.ExtractItems(doc)
	products, dropped := feed.MapItems(items)
	if dropped > 0 {
		droppedItems.Add(float64(dropped))
		logger.Warn().Int("dropped", dropped).Msg("Dropped items missing title or link")
	}

	if err := imp.store.RegisterFeed(ctx, feedURL); err != nil {
		return nil, &PersistError{Op: "register_feed", Key: feedURL, Err: err}
	}

	// Sequential, one statement per product, no transaction: a failure on
	// item N leaves items 1..N-1 durably written.
	for _, p := range products {
		if err := imp.store.UpsertProduct(ctx, p, feedURL); err != nil {
			logger.Error().Err(err).Str("product", p.ID).Msg("Upsert failed, aborting run")
			return nil, &PersistError{Op: "upsert_product", Key: p.ID, Err: err}
		}
		importedProducts.Inc()
	}

	logger.Info().
		Int("items", len(items)).
		Int("products", len(products)).
		Msg("Import run complete")

	return &Result{
		FeedURL:  feedURL,
		Count:    len(products),
		Products: products,
	}, nil
}

// outcomeLabel classifies a run error for the imports_total metric.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var statusErr *fetch.StatusError
	var transportErr *fetch.TransportError
	var parseErr *xmlparser.ParseError
	var persistErr *PersistError
	switch {
	case errors.As(err, &statusErr):
		return "fetch_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &persistErr):
		return "persist_error"
	default:
		return "error"
	}
}
