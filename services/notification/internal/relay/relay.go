package relay

import (
	"context"
	"errors"
	"strings"

	"book-notify/pkg/logger"
	"book-notify/pkg/metrics"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/gateway"

	"github.com/redis/go-redis/v9"
)

const (
	ChannelPrefix  = "notifications:"
	ChannelPattern = ChannelPrefix + "*"
)

func Channel(userID string) string {
	return ChannelPrefix + userID
}

// Deliverer hands an encoded frame to the local connections of a user.
type Deliverer interface {
	Deliver(userID string, payload []byte) int
}

// RedisPusher publishes notifications so that every gateway process can
// deliver them to the connections it holds.
type RedisPusher struct {
	client *redis.Client
	logger *logger.Logger
}

func NewRedisPusher(client *redis.Client, log *logger.Logger) *RedisPusher {
	return &RedisPusher{client: client, logger: log}
}

// Push returns the number of subscribed processes that received the frame.
func (p *RedisPusher) Push(ctx context.Context, n *entity.Notification) int {
	payload, err := gateway.EncodeNotification(n)
	if err != nil {
		p.logger.Error("[RELAY] Failed to encode notification %s: %v", n.ID, err)
		return 0
	}

	receivers, err := p.client.Publish(ctx, Channel(n.UserID), payload).Result()
	if err != nil {
		metrics.LivePushes.WithLabelValues("relay_failed").Inc()
		p.logger.Warn("[RELAY] Failed to publish notification %s for user %s: %v", n.ID, n.UserID, err)
		return 0
	}
	metrics.LivePushes.WithLabelValues("relayed").Inc()
	return int(receivers)
}

// Subscriber feeds relayed frames into this process's connections.
type Subscriber struct {
	client    *redis.Client
	deliverer Deliverer
	logger    *logger.Logger
}

func NewSubscriber(client *redis.Client, deliverer Deliverer, log *logger.Logger) *Subscriber {
	return &Subscriber{client: client, deliverer: deliverer, logger: log}
}

// Run blocks until ctx is cancelled or the subscription fails.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.PSubscribe(ctx, ChannelPattern)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return err
	}
	s.logger.Info("[RELAY] Subscribed to %s", ChannelPattern)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			userID := strings.TrimPrefix(msg.Channel, ChannelPrefix)
			if userID == "" {
				continue
			}
			s.deliverer.Deliver(userID, []byte(msg.Payload))
		}
	}
}
