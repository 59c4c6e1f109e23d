package entity

import "time"

// NotificationType is the closed set of events this service turns into notifications.
type NotificationType string

const (
	TypeCommentReply NotificationType = "comment_reply"
	TypeNewRating    NotificationType = "new_rating"
	TypeBookUpdate   NotificationType = "book_update"
	TypeNewFollower  NotificationType = "new_follower"
)

// NotificationTypes lists every supported type in a stable order.
var NotificationTypes = []NotificationType{
	TypeCommentReply,
	TypeNewRating,
	TypeBookUpdate,
	TypeNewFollower,
}

func (t NotificationType) Valid() bool {
	for _, known := range NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

const (
	MaxTitleLength   = 120
	MaxMessageLength = 500
)

// Notification is one inbox entry. Only IsRead changes after creation.
type Notification struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Link      string                 `json:"link,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

// ReadFilter selects which inbox entries a listing returns.
type ReadFilter string

const (
	FilterAll    ReadFilter = "all"
	FilterUnread ReadFilter = "unread"
	FilterRead   ReadFilter = "read"
)

func ParseReadFilter(s string) (ReadFilter, bool) {
	switch ReadFilter(s) {
	case "", FilterAll:
		return FilterAll, true
	case FilterUnread:
		return FilterUnread, true
	case FilterRead:
		return FilterRead, true
	}
	return "", false
}

// NotificationPage is one page of a user's inbox, newest first.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
	Total         int64          `json:"total"`
	Unread        int64          `json:"unread"`
}
