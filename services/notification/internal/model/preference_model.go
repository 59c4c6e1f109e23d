package model

import "time"

// Boolean columns carry no gorm default: a default tag would make gorm skip
// explicit false values on insert.
type PreferenceModel struct {
	UserID       string    `gorm:"column:user_id;type:varchar(64);primaryKey"`
	InAppEnabled bool      `gorm:"column:in_app_enabled;not null"`
	CommentReply bool      `gorm:"column:comment_reply;not null"`
	NewRating    bool      `gorm:"column:new_rating;not null"`
	BookUpdate   bool      `gorm:"column:book_update;not null"`
	NewFollower  bool      `gorm:"column:new_follower;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (PreferenceModel) TableName() string {
	return "notification_preferences"
}
