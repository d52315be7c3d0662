// Package handlers exposes the catalogue over HTTP: product queries, feed
// imports, and health. Handlers stay thin; all pipeline and query logic lives
// behind the injected collaborators.
package handlers

import (
	"github.com/rs/zerolog"

	"github.com/ecofinds/catalogue-service/internal/pipeline"
	"github.com/ecofinds/catalogue-service/internal/store"
)

// Handler bundles the injected collaborators for all HTTP endpoints.
type Handler struct {
	catalogue store.Catalogue
	importer  *pipeline.Importer
	logger    zerolog.Logger
}

// New creates the HTTP handler set.
func New(cat store.Catalogue, importer *pipeline.Importer, logger zerolog.Logger) *Handler {
	return &Handler{
		catalogue: cat,
		importer:  importer,
		logger:    logger,
	}
}
