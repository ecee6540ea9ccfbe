package events

import (
	"time"

	"github.com/anonto42/promptswipe/backend/internal/models"
)

const SubjectNotificationCreated = "notifications.created"

// NotificationCreated is published after a notification row commits
type NotificationCreated struct {
	NotificationID uint                    `json:"notification_id"`
	Type           models.NotificationType `json:"notification_type"`
	RecipientID    uint                    `json:"recipient_id"`
	ActorID        uint                    `json:"actor_id"`
	PostID         *uint                   `json:"post_id,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

func NewNotificationCreated(n *models.Notification) NotificationCreated {
	return NotificationCreated{
		NotificationID: n.ID,
		Type:           n.Type,
		RecipientID:    n.RecipientID,
		ActorID:        n.ActorID,
		PostID:         n.PostID,
		CreatedAt:      n.CreatedAt,
	}
}
