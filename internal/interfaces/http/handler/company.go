package handler

import (
	"github.com/gin-gonic/gin"

	appclient "github.com/practiq/backend/internal/application/client"
)

// CompanyHandler serves Companies House profile lookups
type CompanyHandler struct {
	BaseHandler
	lookupService *appclient.CompanyLookupService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(lookupService *appclient.CompanyLookupService) *CompanyHandler {
	return &CompanyHandler{lookupService: lookupService}
}

// Lookup handles GET /api/v1/companies/:number
func (h *CompanyHandler) Lookup(c *gin.Context) {
	profile, err := h.lookupService.Lookup(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, profile)
}
