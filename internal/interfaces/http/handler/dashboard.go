package handler

import (
	"github.com/gin-gonic/gin"

	appdashboard "github.com/practiq/backend/internal/application/dashboard"
)

// DashboardHandler serves the practice overview
type DashboardHandler struct {
	BaseHandler
	dashboardService *appdashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *appdashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, summary)
}
