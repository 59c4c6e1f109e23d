package entity

import "time"

// Preferences holds a user's in-app delivery flags. The master flag gates
// every per-type override.
type Preferences struct {
	UserID       string    `json:"user_id"`
	InAppEnabled bool      `json:"in_app_enabled"`
	CommentReply bool      `json:"comment_reply"`
	NewRating    bool      `json:"new_rating"`
	BookUpdate   bool      `json:"book_update"`
	NewFollower  bool      `json:"new_follower"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:       userID,
		InAppEnabled: true,
		CommentReply: true,
		NewRating:    true,
		BookUpdate:   true,
		NewFollower:  true,
	}
}

// TypeEnabled reports the stored override for t, ignoring the master flag.
func (p Preferences) TypeEnabled(t NotificationType) bool {
	switch t {
	case TypeCommentReply:
		return p.CommentReply
	case TypeNewRating:
		return p.NewRating
	case TypeBookUpdate:
		return p.BookUpdate
	case TypeNewFollower:
		return p.NewFollower
	}
	return false
}

// Allows applies the master flag on top of the per-type override.
func (p Preferences) Allows(t NotificationType) bool {
	return p.InAppEnabled && p.TypeEnabled(t)
}
