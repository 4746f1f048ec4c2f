package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyscout-backend/internal/platform/logger"
)

// StorePinger probes catalog store connectivity.
type StorePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	log   *logger.Logger
	store StorePinger
}

func NewHealthHandler(log *logger.Logger, store StorePinger) *HealthHandler {
	return &HealthHandler{
		log:   log.With("handler", "HealthHandler"),
		store: store,
	}
}

// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.Warn("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
