package gateway

import (
	"context"

	"book-notify/pkg/logger"
	"book-notify/pkg/metrics"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/registry"
)

// LocalPusher delivers notifications to connections held by this process.
type LocalPusher struct {
	registry registry.Registry
	logger   *logger.Logger
}

func NewLocalPusher(reg registry.Registry, log *logger.Logger) *LocalPusher {
	return &LocalPusher{registry: reg, logger: log}
}

// Push returns the number of connections a push was attempted on.
func (p *LocalPusher) Push(_ context.Context, n *entity.Notification) int {
	payload, err := EncodeNotification(n)
	if err != nil {
		p.logger.Error("[PUSH] Failed to encode notification %s: %v", n.ID, err)
		return 0
	}
	return p.Deliver(n.UserID, payload)
}

// Deliver writes an already encoded frame to every connection of userID.
// Failures are logged and never retried.
func (p *LocalPusher) Deliver(userID string, payload []byte) int {
	conns := p.registry.ConnectionsFor(userID)
	for _, conn := range conns {
		if err := conn.Send(payload); err != nil {
			metrics.LivePushes.WithLabelValues("dropped").Inc()
			p.logger.Warn("[PUSH] Dropped frame for user %s on connection %s: %v", userID, conn.ID(), err)
			continue
		}
		metrics.LivePushes.WithLabelValues("sent").Inc()
	}
	return len(conns)
}
