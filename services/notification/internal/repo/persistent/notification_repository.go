package persistent

import (
	"context"
	"errors"
	"fmt"

	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, userID string, filter entity.ReadFilter, limit, offset int) ([]entity.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, notificationID string) error
	DeleteAllRead(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts the notification and copies the assigned id and timestamp back.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	m := ToNotificationModel(notification)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return fmt.Errorf("%w: insert notification: %w", entity.ErrStorage, err)
	}
	notification.ID = m.ID
	notification.CreatedAt = m.CreatedAt
	return nil
}

func (r *notificationRepository) scoped(ctx context.Context, userID string, filter entity.ReadFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.NotificationModel{}).Where("user_id = ?", userID)
	switch filter {
	case entity.FilterUnread:
		q = q.Where("is_read = ?", false)
	case entity.FilterRead:
		q = q.Where("is_read = ?", true)
	}
	return q
}

func (r *notificationRepository) List(ctx context.Context, userID string, filter entity.ReadFilter, limit, offset int) ([]entity.Notification, int64, error) {
	var total int64
	if err := r.scoped(ctx, userID, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count notifications: %w", entity.ErrStorage, err)
	}

	var models []model.NotificationModel
	err := r.scoped(ctx, userID, filter).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list notifications: %w", entity.ErrStorage, err)
	}

	return ToNotificationEntities(models), total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.scoped(ctx, userID, entity.FilterUnread).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: count unread notifications: %w", entity.ErrStorage, err)
	}
	return count, nil
}

// MarkRead flips the read flag of one of the user's notifications. A
// notification that is already read is left untouched; one that does not
// belong to the user is reported exactly like one that does not exist.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.NotificationModel
		if err := tx.Where("id = ? AND user_id = ?", notificationID, userID).First(&m).Error; err != nil {
			return err
		}
		if m.IsRead {
			return nil
		}
		return tx.Model(&model.NotificationModel{}).
			Where("id = ? AND user_id = ?", notificationID, userID).
			Update("is_read", true).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: mark notification read: %w", entity.ErrStorage, err)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.NotificationModel{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Update("is_read", true)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("%w: mark all notifications read: %w", entity.ErrStorage, err)
	}
	return affected, nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID, notificationID string) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", notificationID, userID).Delete(&model.NotificationModel{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("%w: delete notification: %w", entity.ErrStorage, err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) DeleteAllRead(ctx context.Context, userID string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND is_read = ?", userID, true).Delete(&model.NotificationModel{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("%w: delete read notifications: %w", entity.ErrStorage, err)
	}
	return affected, nil
}
