package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationModel struct {
	ID        string                 `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string                 `gorm:"column:user_id;type:varchar(64);not null;index:idx_notifications_user_created,priority:1"`
	Type      string                 `gorm:"column:type;type:varchar(32);not null"`
	Title     string                 `gorm:"column:title;type:varchar(120);not null"`
	Message   string                 `gorm:"column:message;type:varchar(500);not null"`
	Link      *string                `gorm:"column:link;type:varchar(255)"`
	Data      map[string]interface{} `gorm:"column:data;type:jsonb;serializer:json"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time              `gorm:"column:created_at;not null;index:idx_notifications_user_created,priority:2,sort:desc"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return nil
}
