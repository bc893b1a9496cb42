package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcompliance "github.com/practiq/backend/internal/application/compliance"
)

// FilingHandler serves statutory filings and their workflow
type FilingHandler struct {
	BaseHandler
	filingService *appcompliance.Service
}

// NewFilingHandler creates a new FilingHandler
func NewFilingHandler(filingService *appcompliance.Service) *FilingHandler {
	return &FilingHandler{filingService: filingService}
}

// Create handles POST /api/v1/clients/:ref/filings
func (h *FilingHandler) Create(c *gin.Context) {
	var req appcompliance.CreateFilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid filing request: "+err.Error())
		return
	}

	resp, err := h.filingService.Create(c.Request.Context(), c.Param("ref"), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /api/v1/filings
func (h *FilingHandler) List(c *gin.Context) {
	var filter appcompliance.FilingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list filter: "+err.Error())
		return
	}

	page, err := h.filingService.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListForClient handles GET /api/v1/clients/:ref/filings
func (h *FilingHandler) ListForClient(c *gin.Context) {
	filings, err := h.filingService.ListForClient(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, filings)
}

// UpdateStatus handles PUT /api/v1/filings/:id/status
func (h *FilingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid filing id")
		return
	}

	var req appcompliance.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status request: "+err.Error())
		return
	}

	resp, err := h.filingService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
