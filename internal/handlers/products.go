package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
	"github.com/ecofinds/catalogue-service/internal/store"
)

// FilterEcho reports the effective filter values back to the client, null for
// unspecified ones.
type FilterEcho struct {
	Q        *string `json:"q"`
	Brand    *string `json:"brand"`
	Tag      *string `json:"tag"`
	MinPrice *string `json:"minPrice"`
	MaxPrice *string `json:"maxPrice"`
}

// ProductsResponse is the query endpoint payload.
type ProductsResponse struct {
	UpdatedAt string              `json:"updatedAt"`
	Count     int                 `json:"count"`
	Filters   FilterEcho          `json:"filters"`
	Products  []catalogue.Product `json:"products"`
}

// QueryProducts serves the filtered catalogue read.
// GET /products?q=&brand=&tag=&minPrice=&maxPrice=
// Malformed filter values are silently skipped, never a client error.
func (h *Handler) QueryProducts(c *gin.Context) {
	filters := store.Filters{
		Q:        strings.ToLower(strings.TrimSpace(c.Query("q"))),
		Brand:    strings.ToLower(strings.TrimSpace(c.Query("brand"))),
		Tag:      strings.TrimSpace(c.Query("tag")),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
	}

	products, err := h.catalogue.QueryProducts(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error().Err(err).Msg("Product query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query products"})
		return
	}

	c.JSON(http.StatusOK, ProductsResponse{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Count:     len(products),
		Filters: FilterEcho{
			Q:        nullable(filters.Q),
			Brand:    nullable(filters.Brand),
			Tag:      nullable(filters.Tag),
			MinPrice: nullable(filters.MinPrice),
			MaxPrice: nullable(filters.MaxPrice),
		},
		Products: products,
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
