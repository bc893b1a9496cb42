package handler

import (
	"github.com/gin-gonic/gin"

	appclient "github.com/practiq/backend/internal/application/client"
)

// ClientHandler serves the client book: creation with reference
// allocation, lookups, updates and administrative reference changes
type ClientHandler struct {
	BaseHandler
	clientService *appclient.Service
	lookupService *appclient.CompanyLookupService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *appclient.Service, lookupService *appclient.CompanyLookupService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		lookupService: lookupService,
	}
}

// Create handles POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req appclient.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid client request: "+err.Error())
		return
	}

	resp, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /api/v1/clients
func (h *ClientHandler) List(c *gin.Context) {
	var filter appclient.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list filter: "+err.Error())
		return
	}

	page, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /api/v1/clients/:ref
func (h *ClientHandler) Get(c *gin.Context) {
	resp, err := h.clientService.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /api/v1/clients/:ref
func (h *ClientHandler) Update(c *gin.Context) {
	var req appclient.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid client request: "+err.Error())
		return
	}

	resp, err := h.clientService.Update(c.Request.Context(), c.Param("ref"), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// ReassignRef handles POST /api/v1/clients/:ref/reassign-ref
func (h *ClientHandler) ReassignRef(c *gin.Context) {
	var req appclient.ReassignRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid reassign request: "+err.Error())
		return
	}

	resp, err := h.clientService.ReassignRef(c.Request.Context(), c.Param("ref"), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/clients/:ref
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), c.Param("ref")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// RefreshFromRegistry handles POST /api/v1/clients/:ref/refresh-registry
func (h *ClientHandler) RefreshFromRegistry(c *gin.Context) {
	resp, err := h.lookupService.RefreshClient(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
