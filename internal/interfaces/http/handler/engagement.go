package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appengagement "github.com/practiq/backend/internal/application/engagement"
)

// EngagementHandler serves service offerings and client engagements
type EngagementHandler struct {
	BaseHandler
	engagementService *appengagement.Service
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagementService *appengagement.Service) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// CreateService handles POST /api/v1/services
func (h *EngagementHandler) CreateService(c *gin.Context) {
	var req appengagement.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid service request: "+err.Error())
		return
	}

	resp, err := h.engagementService.CreateService(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// ListServices handles GET /api/v1/services
func (h *EngagementHandler) ListServices(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	services, err := h.engagementService.ListServices(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, services)
}

// Engage handles POST /api/v1/clients/:ref/engagements
func (h *EngagementHandler) Engage(c *gin.Context) {
	var req appengagement.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid engagement request: "+err.Error())
		return
	}

	resp, err := h.engagementService.Engage(c.Request.Context(), c.Param("ref"), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// ListForClient handles GET /api/v1/clients/:ref/engagements
func (h *EngagementHandler) ListForClient(c *gin.Context) {
	engagements, err := h.engagementService.ListForClient(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, engagements)
}

// End handles POST /api/v1/engagements/:id/end
func (h *EngagementHandler) End(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid engagement id")
		return
	}

	resp, err := h.engagementService.End(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
