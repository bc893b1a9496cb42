package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/practiq/backend/internal/application/identity"
)

// UserHandler serves staff account administration. The router guards
// these routes with the partner role.
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req appidentity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid user request: "+err.Error())
		return
	}

	resp, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, users)
}

// Get handles GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	resp, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	var req appidentity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid user request: "+err.Error())
		return
	}

	resp, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Unlock handles POST /api/v1/users/:id/unlock
func (h *UserHandler) Unlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	resp, err := h.userService.Unlock(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate handles DELETE /api/v1/users/:id
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
