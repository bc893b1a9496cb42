package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appdocument "github.com/practiq/backend/internal/application/document"
	"github.com/practiq/backend/internal/interfaces/http/middleware"
)

// DocumentHandler serves the presigned upload/download flow for client
// documents
type DocumentHandler struct {
	BaseHandler
	documentService *appdocument.Service
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *appdocument.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// InitiateUpload handles POST /api/v1/clients/:ref/documents
func (h *DocumentHandler) InitiateUpload(c *gin.Context) {
	var req appdocument.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid upload request: "+err.Error())
		return
	}

	uploadedBy := ""
	if claims := middleware.GetClaims(c); claims != nil {
		uploadedBy = claims.Username
	}

	resp, err := h.documentService.InitiateUpload(c.Request.Context(), c.Param("ref"), req, uploadedBy)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// ConfirmUpload handles POST /api/v1/documents/:id/confirm
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document id")
		return
	}

	resp, err := h.documentService.ConfirmUpload(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Download handles GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document id")
		return
	}

	resp, err := h.documentService.Download(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// ListForClient handles GET /api/v1/clients/:ref/documents
func (h *DocumentHandler) ListForClient(c *gin.Context) {
	docs, err := h.documentService.ListForClient(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, docs)
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document id")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
