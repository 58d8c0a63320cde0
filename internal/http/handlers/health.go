package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/farm-catalog-backend/internal/http/response"
)

type HealthHandlerDeps struct {
	ServiceName string
	Version     string
	// Ping checks backing storage; nil means always healthy.
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	deps HealthHandlerDeps
}

func NewHealthHandler(deps HealthHandlerDeps) *HealthHandler {
	if deps.ServiceName == "" {
		deps.ServiceName = "farm-catalog"
	}
	return &HealthHandler{deps: deps}
}

// GET /
func (h *HealthHandler) Home(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"message": "Welcome to the Farm Catalog API",
		"service": h.deps.ServiceName,
		"version": h.deps.Version,
		"metrics": "/metrics",
	})
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.deps.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.deps.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "service": h.deps.ServiceName})
			return
		}
	}
	response.RespondOK(c, gin.H{"status": "UP", "service": h.deps.ServiceName})
}
