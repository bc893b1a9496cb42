package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appclient "github.com/practiq/backend/internal/application/client"
)

// PortfolioHandler serves portfolio administration
type PortfolioHandler struct {
	BaseHandler
	portfolioService *appclient.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *appclient.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

func (h *PortfolioHandler) code(c *gin.Context) (int, bool) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code < 1 {
		h.BadRequest(c, "Invalid portfolio code")
		return 0, false
	}
	return code, true
}

// Create handles POST /api/v1/portfolios
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req appclient.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid portfolio request: "+err.Error())
		return
	}

	resp, err := h.portfolioService.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /api/v1/portfolios
func (h *PortfolioHandler) List(c *gin.Context) {
	portfolios, err := h.portfolioService.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, portfolios)
}

// Get handles GET /api/v1/portfolios/:code
func (h *PortfolioHandler) Get(c *gin.Context) {
	code, ok := h.code(c)
	if !ok {
		return
	}

	resp, err := h.portfolioService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Rename handles PUT /api/v1/portfolios/:code
func (h *PortfolioHandler) Rename(c *gin.Context) {
	code, ok := h.code(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required,min=1,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid portfolio request: "+err.Error())
		return
	}

	resp, err := h.portfolioService.Rename(c.Request.Context(), code, req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
