package consumer

import (
	"context"
	"fmt"

	"book-notify/pkg/logger"
	"book-notify/pkg/metrics"
	"book-notify/pkg/queue"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/usecase"

	"github.com/goccy/go-json"
)

// TriggerConsumer turns queued trigger events into notifications.
type TriggerConsumer struct {
	ingestionUseCase usecase.IngestionUseCase
	logger           *logger.Logger
}

func NewTriggerConsumer(ingestionUseCase usecase.IngestionUseCase, logger *logger.Logger) *TriggerConsumer {
	return &TriggerConsumer{
		ingestionUseCase: ingestionUseCase,
		logger:           logger,
	}
}

// Handle processes one message body. Undecodable or invalid events are
// returned as permanent errors; storage failures are returned as-is so the
// message is redelivered.
func (tc *TriggerConsumer) Handle(ctx context.Context, body []byte) error {
	var event entity.TriggerEvent
	if err := json.Unmarshal(body, &event); err != nil {
		metrics.TriggersRejected.WithLabelValues("queue").Inc()
		return queue.Permanent(fmt.Errorf("decode trigger event: %w", err))
	}

	result, err := tc.ingestionUseCase.Ingest(ctx, event)
	if err != nil {
		if entity.IsValidationError(err) {
			metrics.TriggersRejected.WithLabelValues("queue").Inc()
			return queue.Permanent(err)
		}
		return err
	}

	tc.logger.Debug("[CONSUMER] Trigger type=%s for user %s processed: stored=%t pushed=%d",
		event.Type, event.RecipientID, result.Stored, result.Pushed)
	return nil
}
