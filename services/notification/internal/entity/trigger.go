package entity

// TriggerEvent is the structured description a content service submits.
// It only lives long enough to be rendered into a Notification.
type TriggerEvent struct {
	Type        NotificationType `json:"type" validate:"required"`
	RecipientID string           `json:"recipient_id" validate:"required,uuid"`
	ActorID     string           `json:"actor_id,omitempty" validate:"omitempty,max=64"`
	ActorName   string           `json:"actor_name,omitempty" validate:"omitempty,max=100"`
	BookTitle   string           `json:"book_title,omitempty" validate:"omitempty,max=200"`
	BookID      string           `json:"book_id,omitempty" validate:"omitempty,max=64,excludesall=/?#"`
	CommentID   string           `json:"comment_id,omitempty" validate:"omitempty,max=64,excludesall=/?#"`
	Rating      *int             `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}
