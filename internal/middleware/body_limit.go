package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luckyticket/internal/pkg/response"
)

// BodyLimit caps the request body at limit bytes. Requests that declare a
// larger Content-Length are rejected up front; the rest fail on read with
// *http.MaxBytesError.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			response.AbortWithError(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
