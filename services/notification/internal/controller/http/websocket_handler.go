package http

import (
	"net/http"
	"strings"

	"book-notify/pkg/logger"
	"book-notify/pkg/metrics"
	"book-notify/services/notification/internal/gateway"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	gateway  *gateway.Gateway
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewWebSocketHandler accepts browser connections from allowedOrigin only;
// an empty value or "*" accepts any origin.
func NewWebSocketHandler(gw *gateway.Gateway, allowedOrigin string, logger *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		gateway: gw,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigin),
		},
		logger: logger,
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if allowed == "" || allowed == "*" {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "" || strings.EqualFold(origin, allowed)
	}
}

func connectionToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		return token
	}
	return ""
}

// HandleWebSocket godoc
// @Summary      Open live notification stream
// @Description  Upgrades to a websocket after verifying the token. Frames: connected, notification, pong.
// @Tags         notifications
// @Param        token query string false "JWT access token (or Authorization: Bearer)"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /notifications/ws [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	token := connectionToken(c)
	userID, err := h.gateway.Authenticate(token)
	if err != nil {
		reason := "invalid_token"
		if token == "" {
			reason = "missing_token"
		}
		metrics.ConnectionsRejected.WithLabelValues(reason).Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		metrics.ConnectionsRejected.WithLabelValues("upgrade_failed").Inc()
		h.logger.Warn("[WS] Failed to upgrade connection for user %s: %v", userID, err)
		return
	}

	h.gateway.Serve(c.Request.Context(), userID, conn)
}
