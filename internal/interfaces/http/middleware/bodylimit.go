package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/practiq/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared Content-Length exceeds the
// limit and caps the reader for requests that stream without one
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds the allowed size", GetRequestID(c)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
