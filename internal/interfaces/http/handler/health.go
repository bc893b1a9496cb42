package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/practiq/backend/internal/infrastructure/persistence"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	BaseHandler
	db      *persistence.Database
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	database := "up"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		database = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"version":  h.version,
		"database": database,
	})
}
