// Package middleware holds the Gin middleware shared by all routes.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bondiano/social-network-higload/logger"
)

// RequestID injects a unique X-Request-Id header into every request and
// response, and stores it under the service's request-ID log field so the
// request logger picks it up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(logger.FieldRequestID, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
