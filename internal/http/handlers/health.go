package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	env     string
	version string
	ping    func() error
}

func NewHealthHandler(env, version string, ping func() error) *HealthHandler {
	return &HealthHandler{env: env, version: version, ping: ping}
}

func (h *HealthHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":      "API online",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
		"version":     h.version,
	})
}

// Readyz also checks the database connection.
func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.ping != nil {
		if err := h.ping(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
