package persistent

import (
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/model"
)

func ToNotificationEntity(m *model.NotificationModel) entity.Notification {
	n := entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      entity.NotificationType(m.Type),
		Title:     m.Title,
		Message:   m.Message,
		Data:      m.Data,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt.UTC(),
	}
	if m.Link != nil {
		n.Link = *m.Link
	}
	return n
}

func ToNotificationEntities(models []model.NotificationModel) []entity.Notification {
	notifications := make([]entity.Notification, len(models))
	for i := range models {
		notifications[i] = ToNotificationEntity(&models[i])
	}
	return notifications
}

func ToNotificationModel(n *entity.Notification) *model.NotificationModel {
	m := &model.NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Link != "" {
		link := n.Link
		m.Link = &link
	}
	return m
}

func ToPreferencesEntity(m *model.PreferenceModel) entity.Preferences {
	return entity.Preferences{
		UserID:       m.UserID,
		InAppEnabled: m.InAppEnabled,
		CommentReply: m.CommentReply,
		NewRating:    m.NewRating,
		BookUpdate:   m.BookUpdate,
		NewFollower:  m.NewFollower,
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func ToPreferenceModel(p *entity.Preferences) *model.PreferenceModel {
	return &model.PreferenceModel{
		UserID:       p.UserID,
		InAppEnabled: p.InAppEnabled,
		CommentReply: p.CommentReply,
		NewRating:    p.NewRating,
		BookUpdate:   p.BookUpdate,
		NewFollower:  p.NewFollower,
		UpdatedAt:    p.UpdatedAt,
	}
}
