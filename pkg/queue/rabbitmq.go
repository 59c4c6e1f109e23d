package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"book-notify/pkg/config"
	"book-notify/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TriggerExchange = "notification_triggers"
	// Routing key used when a trigger is published without a type.
	DefaultRoutingKey = "trigger"
)

// TriggerRoutingKeys are bound to the trigger queue in addition to DefaultRoutingKey.
var TriggerRoutingKeys = []string{"comment_reply", "new_rating", "book_update", "new_follower"}

// PermanentError marks a message that can never be processed and must not
// be redelivered.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return "permanent: " + e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Disposition decides how a delivery is settled after its handler returned err.
func Disposition(err error) (ack bool, requeue bool) {
	if err == nil {
		return true, false
	}
	var perm *PermanentError
	if errors.As(err, &perm) {
		return false, false
	}
	return false, true
}

type Client struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	logger    *logger.Logger
}

func URL(cfg *config.Config) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		TriggerExchange, // name
		"direct",        // type
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		cfg.TriggerQueueName, // name
		true,                 // durable
		false,                // delete when unused
		false,                // exclusive
		false,                // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range append([]string{DefaultRoutingKey}, TriggerRoutingKeys...) {
		if err := channel.QueueBind(cfg.TriggerQueueName, key, TriggerExchange, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue to %s: %w", key, err)
		}
	}

	// One unacknowledged trigger at a time keeps redeliveries in order.
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:      conn,
		channel:   channel,
		queueName: cfg.TriggerQueueName,
		logger:    log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishTrigger publishes an encoded trigger event. An empty routing key
// falls back to DefaultRoutingKey.
func (c *Client) PublishTrigger(ctx context.Context, routingKey string, body []byte) error {
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}

	err := c.channel.PublishWithContext(ctx,
		TriggerExchange, // exchange
		routingKey,      // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish trigger to exchange=%s, routing_key=%s: %v", TriggerExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published trigger to exchange=%s, routing_key=%s", TriggerExchange, routingKey)
	return nil
}

// ConsumeTriggers registers handler for the trigger queue and processes
// deliveries in the background until ctx is cancelled or the channel closes.
// A PermanentError rejects the message; any other error requeues it.
func (c *Client) ConsumeTriggers(ctx context.Context, handler func(ctx context.Context, body []byte) error) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from trigger queue: %s", c.queueName)

	go func() {
		defer c.logger.Info("[RABBITMQ] Trigger consumer stopped")
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.settle(msg, handler(ctx, msg.Body))
			}
		}
	}()

	return nil
}

func (c *Client) settle(msg amqp.Delivery, err error) {
	ack, requeue := Disposition(err)
	if ack {
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.Error("[RABBITMQ] Failed to ack trigger: %v", ackErr)
		}
		return
	}

	if requeue {
		c.logger.Warn("[RABBITMQ] Trigger processing failed, requeueing: %v", err)
	} else {
		c.logger.Error("[RABBITMQ] Rejecting trigger: %v, body=%s", err, string(msg.Body))
	}
	if nackErr := msg.Nack(false, requeue); nackErr != nil {
		c.logger.Error("[RABBITMQ] Failed to nack trigger: %v", nackErr)
	}
}

// QueueLength returns the number of triggers waiting in the queue.
func (c *Client) QueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(c.queueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
