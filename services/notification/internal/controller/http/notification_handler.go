package http

import (
	"net/http"
	"strconv"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	inboxUseCase usecase.InboxUseCase
	logger       *logger.Logger
}

func NewNotificationHandler(inboxUseCase usecase.InboxUseCase, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		inboxUseCase: inboxUseCase,
		logger:       logger,
	}
}

// GetNotifications godoc
// @Summary      Get user notifications
// @Description  Get a page of the authenticated user's notifications, newest first
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (starts at 1)"
// @Param        page_size query int false "Page size (1-100, default 20)"
// @Param        filter query string false "all, unread or read"
// @Success      200  {object}  entity.NotificationPage
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil {
			page = parsed
		}
	}

	pageSize := usecase.DefaultPageSize
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil {
			pageSize = parsed
		}
	}

	filter, ok := entity.ParseReadFilter(c.Query("filter"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be one of all, unread, read"})
		return
	}

	result, err := h.inboxUseCase.List(c.Request.Context(), userID, page, pageSize, filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get notifications")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUnreadCount godoc
// @Summary      Get unread count
// @Description  Number of unread notifications of the authenticated user
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	unread, err := h.inboxUseCase.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to count unread notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": unread})
}

// MarkRead godoc
// @Summary      Mark notification as read
// @Description  Marking an already read notification succeeds without changes
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	id := c.Param("id")
	if err := h.inboxUseCase.MarkRead(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err, "Failed to mark notification as read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "id": id})
}

// MarkAllRead godoc
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	updated, err := h.inboxUseCase.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to mark notifications as read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read", "updated": updated})
}

// DeleteNotification godoc
// @Summary      Delete notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	id := c.Param("id")
	if err := h.inboxUseCase.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err, "Failed to delete notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted", "id": id})
}

// DeleteReadNotifications godoc
// @Summary      Delete read notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/read [delete]
func (h *NotificationHandler) DeleteReadNotifications(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	deleted, err := h.inboxUseCase.DeleteAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Read notifications deleted", "deleted": deleted})
}
