package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/catalogue-service/internal/fetch"
	xmlparser "github.com/ecofinds/catalogue-service/internal/parsers/xml"
	"github.com/ecofinds/catalogue-service/internal/pipeline"
	"github.com/ecofinds/catalogue-service/internal/store"
)

// ImportFeed triggers a full import run for a feed URL.
// GET /import/google?url=https://example.com/shopping-feed.xml
// The run executes synchronously within the request; error kinds map to
// distinct status codes so callers can tell a bad feed from a bad network.
func (h *Handler) ImportFeed(c *gin.Context) {
	feedURL := c.Query("url")
	if feedURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing url parameter",
			"example": "/import/google?url=https://example.com/google-shopping.xml",
		})
		return
	}

	result, err := h.importer.Run(c.Request.Context(), feedURL)
	if err != nil {
		h.respondImportError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) respondImportError(c *gin.Context, err error) {
	var statusErr *fetch.StatusError
	var transportErr *fetch.TransportError
	var parseErr *xmlparser.ParseError
	var persistErr *pipeline.PersistError

	switch {
	case errors.As(err, &statusErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "Feed source returned an error response",
			"status": statusErr.Status,
			"reason": statusErr.Reason,
		})
	case errors.As(err, &transportErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "Feed source could not be reached",
			"detail": transportErr.Error(),
		})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Feed body is not well-formed XML",
			"detail": parseErr.Error(),
		})
	case errors.Is(err, store.ErrReadOnly):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "No durable store configured; imports are unavailable",
		})
	case errors.As(err, &persistErr):
		h.logger.Error().Err(err).Msg("Import persistence failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to persist imported products",
		})
	default:
		h.logger.Error().Err(err).Msg("Import failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
	}
}
