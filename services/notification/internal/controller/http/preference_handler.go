package http

import (
	"net/http"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	preferenceUseCase usecase.PreferenceUseCase
	logger            *logger.Logger
}

func NewPreferenceHandler(preferenceUseCase usecase.PreferenceUseCase, logger *logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceUseCase: preferenceUseCase,
		logger:            logger,
	}
}

// UpdatePreferencesRequest replaces every flag at once; omitted flags are rejected.
type UpdatePreferencesRequest struct {
	InAppEnabled *bool `json:"in_app_enabled" binding:"required"`
	CommentReply *bool `json:"comment_reply" binding:"required"`
	NewRating    *bool `json:"new_rating" binding:"required"`
	BookUpdate   *bool `json:"book_update" binding:"required"`
	NewFollower  *bool `json:"new_follower" binding:"required"`
}

// GetPreferences godoc
// @Summary      Get notification preferences
// @Description  Returns the user's preferences, creating the all-enabled defaults on first access
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Preferences
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/preferences [get]
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	prefs, err := h.preferenceUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get preferences")
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences godoc
// @Summary      Replace notification preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdatePreferencesRequest true "All preference flags"
// @Success      200  {object}  entity.Preferences
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/preferences [put]
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	userID, err := targetUser(c)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.preferenceUseCase.Replace(c.Request.Context(), entity.Preferences{
		UserID:       userID,
		InAppEnabled: *req.InAppEnabled,
		CommentReply: *req.CommentReply,
		NewRating:    *req.NewRating,
		BookUpdate:   *req.BookUpdate,
		NewFollower:  *req.NewFollower,
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to update preferences")
		return
	}

	c.JSON(http.StatusOK, saved)
}
