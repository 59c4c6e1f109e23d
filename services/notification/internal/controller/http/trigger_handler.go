package http

import (
	"net/http"

	"book-notify/pkg/logger"
	"book-notify/pkg/metrics"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TriggerHandler struct {
	ingestionUseCase usecase.IngestionUseCase
	logger           *logger.Logger
}

func NewTriggerHandler(ingestionUseCase usecase.IngestionUseCase, logger *logger.Logger) *TriggerHandler {
	return &TriggerHandler{
		ingestionUseCase: ingestionUseCase,
		logger:           logger,
	}
}

// SubmitTrigger godoc
// @Summary      Submit trigger event
// @Description  Internal endpoint for content services. The event type is taken from the body.
// @Tags         triggers
// @Accept       json
// @Produce      json
// @Param        X-Service-Token header string false "Internal service token"
// @Param        request body entity.TriggerEvent true "Trigger event"
// @Success      202  {object}  usecase.DispatchResult
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /triggers [post]
func (h *TriggerHandler) SubmitTrigger(c *gin.Context) {
	var event entity.TriggerEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		metrics.TriggersRejected.WithLabelValues("http").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.ingest(c, event)
}

// SubmitTypedTrigger returns a handler for one event type; a type in the
// body is overridden by the route.
//
// @Summary      Submit typed trigger event
// @Tags         triggers
// @Accept       json
// @Produce      json
// @Param        X-Service-Token header string false "Internal service token"
// @Param        request body entity.TriggerEvent true "Trigger event"
// @Success      202  {object}  usecase.DispatchResult
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /triggers/comment-reply [post]
// @Router       /triggers/new-rating [post]
// @Router       /triggers/book-update [post]
// @Router       /triggers/new-follower [post]
func (h *TriggerHandler) SubmitTypedTrigger(t entity.NotificationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event entity.TriggerEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			metrics.TriggersRejected.WithLabelValues("http").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		event.Type = t
		h.ingest(c, event)
	}
}

func (h *TriggerHandler) ingest(c *gin.Context, event entity.TriggerEvent) {
	result, err := h.ingestionUseCase.Ingest(c.Request.Context(), event)
	if err != nil {
		if entity.IsValidationError(err) {
			metrics.TriggersRejected.WithLabelValues("http").Inc()
		}
		respondError(c, h.logger, err, "Failed to deliver notification")
		return
	}

	c.JSON(http.StatusAccepted, result)
}
