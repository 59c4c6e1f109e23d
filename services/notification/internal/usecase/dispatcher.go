package usecase

import (
	"context"

	"book-notify/pkg/logger"
	"book-notify/pkg/metrics"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/repo/persistent"
)

// Pusher delivers a stored notification to the recipient's live connections.
// It is best effort: it returns the number of push attempts and never fails.
type Pusher interface {
	Push(ctx context.Context, notification *entity.Notification) int
}

type DispatchResult struct {
	NotificationID string `json:"notification_id,omitempty"`
	Stored         bool   `json:"stored"`
	Pushed         int    `json:"pushed"`
	Suppressed     bool   `json:"suppressed"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, notification *entity.Notification) (DispatchResult, error)
}

type dispatcher struct {
	preferenceRepo   persistent.PreferenceRepository
	notificationRepo persistent.NotificationRepository
	pusher           Pusher
	logger           *logger.Logger
}

func NewDispatcher(preferenceRepo persistent.PreferenceRepository, notificationRepo persistent.NotificationRepository, pusher Pusher, logger *logger.Logger) Dispatcher {
	return &dispatcher{
		preferenceRepo:   preferenceRepo,
		notificationRepo: notificationRepo,
		pusher:           pusher,
		logger:           logger,
	}
}

// Dispatch persists the notification and then pushes it live, subject to the
// recipient's preferences. The push only happens after a successful commit;
// a storage failure aborts the dispatch and is returned to the caller.
func (d *dispatcher) Dispatch(ctx context.Context, notification *entity.Notification) (DispatchResult, error) {
	prefs, err := d.preferenceRepo.GetOrCreate(ctx, notification.UserID)
	if err != nil {
		metrics.NotificationsDispatched.WithLabelValues(string(notification.Type), "failed").Inc()
		d.logger.Error("[DISPATCHER] Failed to load preferences for user %s: %v", notification.UserID, err)
		return DispatchResult{}, err
	}

	decision := Decide(prefs, notification.Type)
	if decision.Suppressed() {
		metrics.NotificationsDispatched.WithLabelValues(string(notification.Type), "suppressed").Inc()
		d.logger.Debug("[DISPATCHER] Notification type=%s suppressed by preferences of user %s", notification.Type, notification.UserID)
		return DispatchResult{Suppressed: true}, nil
	}

	var result DispatchResult
	if decision.Store {
		if err := d.notificationRepo.Create(ctx, notification); err != nil {
			metrics.NotificationsDispatched.WithLabelValues(string(notification.Type), "failed").Inc()
			d.logger.Error("[DISPATCHER] Failed to store notification for user %s: %v", notification.UserID, err)
			return DispatchResult{}, err
		}
		result.Stored = true
		result.NotificationID = notification.ID
		metrics.NotificationsDispatched.WithLabelValues(string(notification.Type), "stored").Inc()
	}

	if decision.Push {
		result.Pushed = d.pusher.Push(ctx, notification)
	}

	d.logger.Info("[DISPATCHER] Delivered notification id=%s type=%s to user %s: stored=%t pushed=%d",
		notification.ID, notification.Type, notification.UserID, result.Stored, result.Pushed)
	return result, nil
}
