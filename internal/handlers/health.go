package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/catalogue-service/internal/database"
)

// HealthResponse reports service and store health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Root answers the bare liveness probe.
// GET /
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Backend is running\n")
}

// HealthCheck reports health including durable store reachability.
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	response := HealthResponse{Status: "ok"}

	if database.Pool() != nil {
		if err := database.Status(c.Request.Context()); err != nil {
			response.Database = "disconnected"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response.Database = "connected"
	} else {
		// Memory fallback mode: queries work, imports do not.
		response.Database = "not configured"
	}

	c.JSON(http.StatusOK, response)
}
