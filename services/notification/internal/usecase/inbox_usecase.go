package usecase

import (
	"context"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type InboxUseCase interface {
	List(ctx context.Context, userID string, page, pageSize int, filter entity.ReadFilter) (*entity.NotificationPage, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, notificationID string) error
	DeleteAllRead(ctx context.Context, userID string) (int64, error)
}

type inboxUseCase struct {
	notificationRepo persistent.NotificationRepository
	logger           *logger.Logger
}

func NewInboxUseCase(notificationRepo persistent.NotificationRepository, logger *logger.Logger) InboxUseCase {
	return &inboxUseCase{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// NormalizePage clamps paging input: page starts at 1, pageSize defaults to
// 20 and is capped at 100.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func (uc *inboxUseCase) List(ctx context.Context, userID string, page, pageSize int, filter entity.ReadFilter) (*entity.NotificationPage, error) {
	page, pageSize = NormalizePage(page, pageSize)
	if filter == "" {
		filter = entity.FilterAll
	}

	notifications, total, err := uc.notificationRepo.List(ctx, userID, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		uc.logger.Error("[INBOX] Failed to list notifications for user %s: %v", userID, err)
		return nil, err
	}

	unread, err := uc.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Error("[INBOX] Failed to count unread for user %s: %v", userID, err)
		return nil, err
	}

	if notifications == nil {
		notifications = []entity.Notification{}
	}

	return &entity.NotificationPage{
		Notifications: notifications,
		Page:          page,
		PageSize:      pageSize,
		Total:         total,
		Unread:        unread,
	}, nil
}

func (uc *inboxUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *inboxUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	if _, err := uuid.Parse(notificationID); err != nil {
		return entity.ErrNotFound
	}
	if err := uc.notificationRepo.MarkRead(ctx, userID, notificationID); err != nil {
		return err
	}
	uc.logger.Debug("[INBOX] User %s marked notification %s as read", userID, notificationID)
	return nil
}

func (uc *inboxUseCase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := uc.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		uc.logger.Error("[INBOX] Failed to mark all read for user %s: %v", userID, err)
		return 0, err
	}
	uc.logger.Info("[INBOX] User %s marked %d notifications as read", userID, updated)
	return updated, nil
}

func (uc *inboxUseCase) Delete(ctx context.Context, userID, notificationID string) error {
	if _, err := uuid.Parse(notificationID); err != nil {
		return entity.ErrNotFound
	}
	return uc.notificationRepo.Delete(ctx, userID, notificationID)
}

func (uc *inboxUseCase) DeleteAllRead(ctx context.Context, userID string) (int64, error) {
	deleted, err := uc.notificationRepo.DeleteAllRead(ctx, userID)
	if err != nil {
		uc.logger.Error("[INBOX] Failed to delete read notifications for user %s: %v", userID, err)
		return 0, err
	}
	uc.logger.Info("[INBOX] User %s deleted %d read notifications", userID, deleted)
	return deleted, nil
}
