// Package handler contains the gin HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/practiq/backend/internal/domain/shared"
	"github.com/practiq/backend/internal/interfaces/http/dto"
	"github.com/practiq/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct{}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends a 200 response with pagination meta
func (h *BaseHandler) Page(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewPageResponse(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends an empty 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response, typically after binding fails
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.CodeBadRequest, message, middleware.GetRequestID(c)))
}

// Error maps a service error onto the response envelope. Domain errors
// carry their own code; repository sentinels get generic codes; anything
// else is a 500 with no detail leaked.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	switch {
	case errors.As(err, &domainErr):
		c.JSON(dto.HTTPStatus(domainErr.Code),
			dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.CodeNotFound, "Resource not found", requestID))
	case errors.Is(err, shared.ErrAlreadyExists):
		c.JSON(http.StatusConflict,
			dto.NewErrorResponse("ALREADY_EXISTS", "Resource already exists", requestID))
	default:
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.CodeInternal, "An unexpected error occurred", requestID))
	}
}
