package http

import (
	"errors"
	"net/http"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case entity.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes err using the shared status mapping. Server-side
// failures are logged and reported with failMsg only.
func respondError(c *gin.Context, log *logger.Logger, err error, failMsg string) {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest:
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			c.JSON(status, gin.H{"error": verr.Error(), "fields": verr.Fields})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
	case http.StatusUnauthorized:
		c.JSON(status, gin.H{"error": "Unauthorized"})
	case http.StatusForbidden:
		c.JSON(status, gin.H{"error": "Forbidden"})
	case http.StatusNotFound:
		c.JSON(status, gin.H{"error": "Notification not found"})
	default:
		log.Error("%s: %v", failMsg, err)
		c.JSON(status, gin.H{"error": failMsg})
	}
}

// targetUser resolves whose data a request addresses. Routes carrying a
// :user_id parameter may only address the authenticated caller.
func targetUser(c *gin.Context) (string, error) {
	caller := c.GetString("user_id")
	if caller == "" {
		return "", entity.ErrUnauthorized
	}
	if pathUser := c.Param("user_id"); pathUser != "" && pathUser != caller {
		return "", entity.ErrForbidden
	}
	return caller, nil
}
