package middleware

import (
	"net/http"

	"book-notify/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery converts a handler panic into a 500 response and an error log entry.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("[PANIC] %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}
