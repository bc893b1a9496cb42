// Package middleware holds the gin middleware for the API server.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/practiq/backend/internal/infrastructure/logger"
)

// RequestIDHeader is the header used to propagate request IDs
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key for the request ID
const requestIDKey = "request_id"

// RequestID accepts an inbound X-Request-ID or generates one, stores it
// on the context and echoes it in the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		ctx, _ := logger.WithRequestID(c.Request.Context(), logger.FromContext(c.Request.Context()), id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the request ID for the current request
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
