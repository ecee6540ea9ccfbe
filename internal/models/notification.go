package models

import (
	"fmt"
	"time"
)

// NotificationType is a closed set; every switch over it must stay exhaustive.
type NotificationType string

const (
	NotificationFollow    NotificationType = "follow"
	NotificationLike      NotificationType = "like"
	NotificationSuperLike NotificationType = "super_like"
)

// NotificationTypeForLike maps a positive like state to its notification type.
func NotificationTypeForLike(t LikeType) (NotificationType, bool) {
	switch t {
	case LikeTypeLike:
		return NotificationLike, true
	case LikeTypeSuperLike:
		return NotificationSuperLike, true
	case LikeTypeUnlike:
		return "", false
	}
	return "", false
}

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationFollow, NotificationLike, NotificationSuperLike:
		return true
	}
	return false
}

// Message renders the human readable line for the notification list.
func (t NotificationType) Message(actorName string) string {
	switch t {
	case NotificationFollow:
		return fmt.Sprintf("%s started following you", actorName)
	case NotificationLike:
		return fmt.Sprintf("%s liked your post", actorName)
	case NotificationSuperLike:
		return fmt.Sprintf("%s super-liked your post", actorName)
	}
	return ""
}

// Notification is immutable apart from IsRead
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Type        NotificationType `json:"notification_type" gorm:"size:30;index"`
	ActorID     uint             `json:"actor_id" gorm:"index"`
	Actor       User             `json:"-" gorm:"foreignKey:ActorID"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	PostID      *uint            `json:"post_id,omitempty" gorm:"index"`
	IsRead      bool             `json:"read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// SerializedNotification is one entry of the notification list
type SerializedNotification struct {
	ID               uint             `json:"id"`
	NotificationType NotificationType `json:"notification_type"`
	Message          string           `json:"message"`
	PostID           *uint            `json:"post_id,omitempty"`
	Read             bool             `json:"read"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	NotifierUser     UserSummary      `json:"notifier_user"`
}
