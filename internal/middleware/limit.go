package middleware

import (
	"net/http" // MaxBytesReader

	"github.com/gin-gonic/gin" // Gin web framework
)

// MaxBodySize caps the request body at limit bytes. Reading past the limit
// yields *http.MaxBytesError, which the upload handlers turn into a 413 with
// a flashed message.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
