package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	backendURL string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(backendURL string) *HealthHandler {
	return &HealthHandler{backendURL: backendURL}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": h.backendURL})
}
